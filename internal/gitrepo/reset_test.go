package gitrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResetHardMovesHead(t *testing.T) {
	dir := initTestRepoWithCommits(t, 3)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	commits, err := h.RevList(ctx, "", 0, 3)
	require.NoError(t, err)
	target := commits[2].ID

	require.NoError(t, h.Reset(ctx, target, ResetHard))

	head, err := h.Head(ctx)
	require.NoError(t, err)
	require.True(t, head.Equal(target))

	items, err := h.Status(ctx, false)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestUndoCommitKeepsChangesStaged(t *testing.T) {
	dir := initTestRepoWithCommits(t, 2)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	before, err := h.RevList(ctx, "", 0, 2)
	require.NoError(t, err)

	require.NoError(t, h.UndoCommit(ctx))

	head, err := h.Head(ctx)
	require.NoError(t, err)
	require.True(t, head.Equal(before[1].ID))

	items, err := h.Status(ctx, false)
	require.NoError(t, err)
	require.Len(t, items, 1, "undone commit's changes stay staged")
}
