package gitrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func dirtyFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestStashSaveListPop(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	dirtyFile(t, dir, "f.txt", "changed")
	require.NoError(t, h.StashSave(ctx, "wip one", false, false))

	entries, err := h.StashList(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 0, entries[0].Index)
	require.Contains(t, entries[0].Message, "wip one")
	require.Equal(t, "stash@{0}", entries[0].Ref())

	items, err := h.Status(ctx, false)
	require.NoError(t, err)
	require.Empty(t, items)

	require.NoError(t, h.StashPop(ctx, 0))
	entries, err = h.StashList(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)

	items, err = h.Status(ctx, false)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestStashDropMultipleHighestFirst(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	for _, msg := range []string{"first", "second", "third"} {
		dirtyFile(t, dir, "f.txt", msg)
		require.NoError(t, h.StashSave(ctx, msg, false, false))
	}

	// drop the two oldest; passing them lowest-first must still work
	require.NoError(t, h.StashDrop(ctx, []int{1, 2}))

	entries, err := h.StashList(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Contains(t, entries[0].Message, "third")
}

func TestStashListEmpty(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	entries, err := h.StashList(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries)
}
