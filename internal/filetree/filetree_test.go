package filetree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// S4: given paths ["a/b/c", "a/b/d"], the tree has exactly 3 items
// (folded): one Path a/b, two Files a/b/c, a/b/d; initial selection 0.
func TestBuild_SingleChildFolding(t *testing.T) {
	tr := Build([]string{"a/b/c", "a/b/d"}, nil)
	require.Len(t, tr.Items(), 3)

	items := tr.Items()
	require.Equal(t, KindPath, items[0].Kind)
	require.Equal(t, "a/b", items[0].FullPath)
	require.Equal(t, "a/b", items[0].DisplaySegment)
	require.Equal(t, 0, items[0].Indent)

	require.Equal(t, KindFile, items[1].Kind)
	require.Equal(t, "a/b/c", items[1].FullPath)
	require.Equal(t, 1, items[1].Indent)

	require.Equal(t, KindFile, items[2].Kind)
	require.Equal(t, "a/b/d", items[2].FullPath)
	require.Equal(t, 1, items[2].Indent)

	require.Equal(t, 0, tr.Selection())
}

// S5: given paths ["a/b/c", "a/d"], collapse index 1 (a/b), then
// move_selection(Down) from index 1 yields index 3 (a/d), skipping
// hidden a/b/c.
func TestMoveSelection_SkipsHiddenOnCollapse(t *testing.T) {
	tr := Build([]string{"a/b/c", "a/d"}, nil)
	items := tr.Items()
	// a(0) a/b(1) a/b/c(2) a/d(3)
	require.Len(t, items, 4)
	require.Equal(t, "a", items[0].FullPath)
	require.Equal(t, "a/b", items[1].FullPath)
	require.Equal(t, "a/b/c", items[2].FullPath)
	require.Equal(t, "a/d", items[3].FullPath)

	tr.Collapse(1, false)
	require.False(t, tr.Items()[2].Visible)

	tr.SetSelection(1)
	tr.MoveSelection(MoveDown)
	require.Equal(t, 3, tr.Selection())
}

// Invariant 1: FileTree completeness.
func TestCompleteness(t *testing.T) {
	tr := Build([]string{"x/y/z.txt", "x/w.txt", "top.txt"}, nil)
	items := tr.Items()
	seen := map[string]int{}
	for i, it := range items {
		seen[it.FullPath] = i
	}
	for _, it := range items {
		p := it.FullPath
		for {
			idx := strings.LastIndex(p, "/")
			if idx < 0 {
				break
			}
			parent := p[:idx]
			parentIdx, ok := seen[parent]
			if ok {
				require.Less(t, parentIdx, seen[it.FullPath])
			}
			p = parent
		}
	}
}

// Invariant 2: visibility <-> collapse.
func TestVisibilityInvariant(t *testing.T) {
	tr := Build([]string{"a/b/c", "a/b/d", "a/e"}, nil)
	// Find index of "a" and collapse it (recursive not needed, it is the
	// top-level ancestor of everything else).
	var aIdx = -1
	for i, it := range tr.Items() {
		if it.FullPath == "a" {
			aIdx = i
		}
	}
	require.GreaterOrEqual(t, aIdx, 0)
	tr.Collapse(aIdx, false)

	for _, it := range tr.Items() {
		if it.FullPath == "a" {
			continue
		}
		require.True(t, strings.HasPrefix(it.FullPath, "a/"))
		require.False(t, it.Visible)
	}
}

// Invariant 3: selection visibility after a sequence of operations.
func TestSelectionAlwaysVisible(t *testing.T) {
	tr := Build([]string{"a/b/c", "a/b/d", "a/e", "z"}, nil)
	tr.MoveSelection(MoveEnd)
	tr.MoveSelection(MoveLeft)
	tr.MoveSelection(MoveUp)
	tr.MoveSelection(MoveDown)
	tr.MoveSelection(MoveRight)

	count, idx := tr.VisualSelection()
	require.GreaterOrEqual(t, count, 1)
	sel, ok := tr.SelectedItem()
	require.True(t, ok)
	require.True(t, sel.Visible)
	require.GreaterOrEqual(t, idx, 0)
}

func TestSelectedFile(t *testing.T) {
	tr := Build([]string{"only.txt"}, nil)
	f, ok := tr.SelectedFile()
	require.True(t, ok)
	require.Equal(t, "only.txt", f.FullPath)
}

func TestEmptyTree(t *testing.T) {
	tr := Build(nil, nil)
	require.Equal(t, 0, tr.Len())
	require.Equal(t, -1, tr.Selection())
	tr.MoveSelection(MoveDown) // must not panic
}
