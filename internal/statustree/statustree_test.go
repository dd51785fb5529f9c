package statustree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chmouel/gogitui/internal/gitrepo"
)

func si(path string, kind gitrepo.StatusItemKind) gitrepo.StatusItem {
	return gitrepo.StatusItem{Path: path, Kind: kind}
}

func TestNewIsPending(t *testing.T) {
	tr := New()
	require.True(t, tr.Pending())
}

func TestUpdate_NoOpOnEqualHash(t *testing.T) {
	tr := New()
	items := []gitrepo.StatusItem{si("a.txt", gitrepo.StatusModified)}
	tr.Update(items)
	require.False(t, tr.Pending())

	tr.Toggle(0) // no directories present, should be a no-op but doesn't crash
	before := tr.Selection()

	tr.Update(items) // identical slice: must be a no-op, selection unchanged
	require.Equal(t, before, tr.Selection())
}

// Selection is tracked by path across an update that adds a file.
func TestUpdate_PreservesSelection(t *testing.T) {
	tr := New()
	tr.Update([]gitrepo.StatusItem{
		si("dir/a.txt", gitrepo.StatusModified),
		si("dir/b.txt", gitrepo.StatusNew),
		si("z.txt", gitrepo.StatusDeleted),
	})

	// Select "z.txt".
	for i, it := range tr.Items() {
		if it.FullPath == "z.txt" {
			tr.selection = i
		}
	}
	sel, ok := tr.SelectedStatus()
	require.True(t, ok)
	require.Equal(t, "z.txt", sel.Path)

	// Re-update with an added file; selection should still resolve to z.txt.
	tr.Update([]gitrepo.StatusItem{
		si("dir/a.txt", gitrepo.StatusModified),
		si("dir/b.txt", gitrepo.StatusNew),
		si("dir/c.txt", gitrepo.StatusNew),
		si("z.txt", gitrepo.StatusDeleted),
	})
	sel, ok = tr.SelectedStatus()
	require.True(t, ok)
	require.Equal(t, "z.txt", sel.Path)
}

func TestToggleCollapsesDirectory(t *testing.T) {
	tr := New()
	tr.Update([]gitrepo.StatusItem{
		si("dir/sub/a.txt", gitrepo.StatusModified),
		si("dir/sub/b.txt", gitrepo.StatusNew),
		si("other.txt", gitrepo.StatusNew),
	})

	dirIdx := -1
	for i, it := range tr.Items() {
		if it.FullPath == "dir" {
			dirIdx = i
		}
	}
	require.GreaterOrEqual(t, dirIdx, 0)
	tr.Toggle(dirIdx)

	for _, it := range tr.Items() {
		if it.FullPath == "dir/sub/a.txt" || it.FullPath == "dir/sub/b.txt" || it.FullPath == "dir/sub" {
			require.False(t, it.Visible)
		}
	}
}

func TestAvailableExcludesFoldedAway(t *testing.T) {
	tr := New()
	tr.Update([]gitrepo.StatusItem{
		si("a/b/c.txt", gitrepo.StatusModified),
		si("a/b/d.txt", gitrepo.StatusModified),
	})
	// "a" and "a/b" both single-child-directory chains down to files;
	// "a" folds into "a/b" at draw time and must not be Available.
	for _, idx := range tr.Available() {
		require.False(t, tr.Items()[idx].FoldedAway)
	}
}
