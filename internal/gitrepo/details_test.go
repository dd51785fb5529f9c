package gitrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetCommitDetails(t *testing.T) {
	dir := initTestRepoWithCommits(t, 2)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	head, err := h.Head(ctx)
	require.NoError(t, err)

	details, err := h.GetCommitDetails(ctx, head)
	require.NoError(t, err)
	require.True(t, details.ID.Equal(head))
	require.Equal(t, "test", details.Author.Name)
	require.Equal(t, "test@example.com", details.Author.Email)
	require.NotZero(t, details.Author.Time)
	require.Len(t, details.Parents, 1)
	require.Equal(t, "commit", details.Message.Subject)
	require.Equal(t, "commit\n", details.Message.Combine())
}

func TestCommitDetailsRoundTripsPrettifiedMessage(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	dirtyFile(t, dir, "f.txt", "round trip")
	require.NoError(t, h.Stage(ctx, "f.txt"))

	msg := "subject line  \n\n\nbody text\n"
	id, err := h.Commit(ctx, msg)
	require.NoError(t, err)

	details, err := h.GetCommitDetails(ctx, id)
	require.NoError(t, err)
	require.Equal(t, PrettifyMessage(msg), details.Message.Combine())
}

func TestCommitFiles(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	dirtyFile(t, dir, "new.txt", "n")
	dirtyFile(t, dir, "f.txt", "edited")
	require.NoError(t, h.Stage(ctx, "."))
	id, err := h.Commit(ctx, "touch two files")
	require.NoError(t, err)

	items, err := h.CommitFiles(ctx, id)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byPath := map[string]StatusItemKind{}
	for _, it := range items {
		byPath[it.Path] = it.Kind
	}
	require.Equal(t, StatusModified, byPath["f.txt"])
	require.Equal(t, StatusNew, byPath["new.txt"])
}
