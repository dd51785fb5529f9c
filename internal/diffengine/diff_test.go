package diffengine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/foo.txt b/foo.txt
index 1234567..89abcde 100644
--- a/foo.txt
+++ b/foo.txt
@@ -1,3 +1,4 @@
 line one
-line two
+line two changed
+line three added
 line four
`

func TestParseUnifiedDiff(t *testing.T) {
	fd := parseUnifiedDiff("foo.txt", sampleDiff)
	require.Equal(t, "foo.txt", fd.Path)
	require.Len(t, fd.Hunks, 1)

	h := fd.Hunks[0]
	require.Equal(t, 1, h.OldStart)
	require.Equal(t, 3, h.OldCount)
	require.Equal(t, 1, h.NewStart)
	require.Equal(t, 4, h.NewCount)
	require.Len(t, h.Lines, 5)
	require.Equal(t, LineContext, h.Lines[0].Kind)
	require.Equal(t, LineDelete, h.Lines[1].Kind)
	require.Equal(t, "line two", h.Lines[1].Content)
	require.Equal(t, LineAdd, h.Lines[2].Kind)
	require.Equal(t, LineAdd, h.Lines[3].Kind)
	require.Equal(t, LineContext, h.Lines[4].Kind)
	require.NotZero(t, h.Hash)
}

// Property 6: hunk identity is stable across repeated reads of the same text.
func TestHunkHash_StableAcrossRereads(t *testing.T) {
	a := parseUnifiedDiff("foo.txt", sampleDiff)
	b := parseUnifiedDiff("foo.txt", sampleDiff)
	require.Equal(t, a.Hunks[0].Hash, b.Hunks[0].Hash)
}

func TestHunkHash_ChangesWithContent(t *testing.T) {
	a := parseUnifiedDiff("foo.txt", sampleDiff)
	other := `diff --git a/foo.txt b/foo.txt
--- a/foo.txt
+++ b/foo.txt
@@ -1,3 +1,4 @@
 line one
-line two
+line two changed differently
+line three added
 line four
`
	b := parseUnifiedDiff("foo.txt", other)
	require.NotEqual(t, a.Hunks[0].Hash, b.Hunks[0].Hash)
}

func TestBuildPartialHunk_DropsUnselectedAdds(t *testing.T) {
	fd := parseUnifiedDiff("foo.txt", sampleDiff)
	hunk := fd.Hunks[0]
	// Lines: [0]=ctx "line one", [1]=del "line two", [2]=add "line two changed",
	// [3]=add "line three added", [4]=ctx "line four".
	partial := buildPartialHunk(hunk, map[int]bool{2: true})
	// Unselected delete becomes context; unselected add is dropped.
	var adds, deletes, ctx int
	for _, l := range partial.Lines {
		switch l.Kind {
		case LineAdd:
			adds++
		case LineDelete:
			deletes++
		case LineContext:
			ctx++
		}
	}
	require.Equal(t, 1, adds)
	require.Equal(t, 0, deletes)
	require.Equal(t, 3, ctx) // line one, line two (demoted), line four
}

func TestBuildHunkPatch_RendersApplyableText(t *testing.T) {
	fd := parseUnifiedDiff("foo.txt", sampleDiff)
	patch := buildHunkPatch(fd, fd.Hunks[0])
	require.Contains(t, patch, "--- a/foo.txt")
	require.Contains(t, patch, "+++ b/foo.txt")
	require.Contains(t, patch, "@@ -1,3 +1,4 @@")
	require.Contains(t, patch, "-line two\n")
	require.Contains(t, patch, "+line two changed\n")
}
