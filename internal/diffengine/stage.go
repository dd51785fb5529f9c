package diffengine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/chmouel/gogitui/internal/gitrepo"
)

// StageHunk applies hunkHash's content from the current workdir-vs-index
// diff to the index ErrHunkNotFound surfaces when no
// hunk with that hash exists in a fresh read; the caller re-fetches.
func StageHunk(ctx context.Context, repoDir, path string, opts gitrepo.DiffOptions, hunkHash uint64) error {
	fd, hunk, err := findHunk(ctx, repoDir, path, gitrepo.DiffTarget{Kind: gitrepo.DiffWorkdirVsIndex}, opts, hunkHash)
	if err != nil {
		return err
	}
	return applyPatch(ctx, repoDir, buildHunkPatch(fd, hunk), applyOpts{cached: true})
}

// UnstageHunk applies the inverse of hunkHash's content, read from the
// current index-vs-head diff, back onto the index.
func UnstageHunk(ctx context.Context, repoDir, path string, opts gitrepo.DiffOptions, hunkHash uint64) error {
	fd, hunk, err := findHunk(ctx, repoDir, path, gitrepo.DiffTarget{Kind: gitrepo.DiffIndexVsHead}, opts, hunkHash)
	if err != nil {
		return err
	}
	return applyPatch(ctx, repoDir, buildHunkPatch(fd, hunk), applyOpts{cached: true, reverse: true})
}

// ResetHunk applies the inverse of a workdir-vs-index hunk to the
// working tree, discarding that hunk's uncommitted change.
func ResetHunk(ctx context.Context, repoDir, path string, opts gitrepo.DiffOptions, hunkHash uint64) error {
	fd, hunk, err := findHunk(ctx, repoDir, path, gitrepo.DiffTarget{Kind: gitrepo.DiffWorkdirVsIndex}, opts, hunkHash)
	if err != nil {
		return err
	}
	return applyPatch(ctx, repoDir, buildHunkPatch(fd, hunk), applyOpts{reverse: true})
}

// StageLines, UnstageLines, and ResetLines apply a synthetic minimal
// patch covering exactly the given line indices within hunkHash's Lines,
// re-anchored to the file's current state. Unselected Add lines are
// dropped from the patch; unselected Delete lines are kept as context,
// so the net effect touches only the requested lines.
func StageLines(ctx context.Context, repoDir, path string, opts gitrepo.DiffOptions, hunkHash uint64, lineIndices []int) error {
	fd, hunk, err := findHunk(ctx, repoDir, path, gitrepo.DiffTarget{Kind: gitrepo.DiffWorkdirVsIndex}, opts, hunkHash)
	if err != nil {
		return err
	}
	partial := buildPartialHunk(hunk, toSet(lineIndices))
	return applyPatch(ctx, repoDir, buildHunkPatch(fd, partial), applyOpts{cached: true})
}

func UnstageLines(ctx context.Context, repoDir, path string, opts gitrepo.DiffOptions, hunkHash uint64, lineIndices []int) error {
	fd, hunk, err := findHunk(ctx, repoDir, path, gitrepo.DiffTarget{Kind: gitrepo.DiffIndexVsHead}, opts, hunkHash)
	if err != nil {
		return err
	}
	partial := buildPartialHunk(hunk, toSet(lineIndices))
	return applyPatch(ctx, repoDir, buildHunkPatch(fd, partial), applyOpts{cached: true, reverse: true})
}

func ResetLines(ctx context.Context, repoDir, path string, opts gitrepo.DiffOptions, hunkHash uint64, lineIndices []int) error {
	fd, hunk, err := findHunk(ctx, repoDir, path, gitrepo.DiffTarget{Kind: gitrepo.DiffWorkdirVsIndex}, opts, hunkHash)
	if err != nil {
		return err
	}
	partial := buildPartialHunk(hunk, toSet(lineIndices))
	return applyPatch(ctx, repoDir, buildHunkPatch(fd, partial), applyOpts{reverse: true})
}

func toSet(indices []int) map[int]bool {
	m := make(map[int]bool, len(indices))
	for _, i := range indices {
		m[i] = true
	}
	return m
}

// buildPartialHunk recomputes old/new counts for a hunk that will only
// apply the lines in selected; everything else collapses to context.
func buildPartialHunk(hunk Hunk, selected map[int]bool) Hunk {
	out := Hunk{OldStart: hunk.OldStart, NewStart: hunk.NewStart}
	for i, l := range hunk.Lines {
		switch l.Kind {
		case LineContext:
			out.Lines = append(out.Lines, l)
			out.OldCount++
			out.NewCount++
		case LineAdd:
			if selected[i] {
				out.Lines = append(out.Lines, l)
				out.NewCount++
			}
		case LineDelete:
			if selected[i] {
				out.Lines = append(out.Lines, l)
				out.OldCount++
			} else {
				out.Lines = append(out.Lines, Line{Kind: LineContext, Content: l.Content})
				out.OldCount++
				out.NewCount++
			}
		}
	}
	out.Header = fmt.Sprintf("@@ -%d,%d +%d,%d @@", out.OldStart, out.OldCount, out.NewStart, out.NewCount)
	return out
}

// buildHunkPatch renders a single-hunk patch applicable with `git apply`.
func buildHunkPatch(fd FileDiff, hunk Hunk) string {
	var b strings.Builder
	oldPath, newPath := "a/"+fd.Path, "b/"+fd.Path
	if fd.OldPath != "" {
		oldPath = "a/" + fd.OldPath
	}
	if hunk.OldStart == 0 && hunk.OldCount == 0 {
		oldPath = "/dev/null"
	}

	fmt.Fprintf(&b, "diff --git a/%s b/%s\n", fd.Path, fd.Path)
	fmt.Fprintf(&b, "--- %s\n", oldPath)
	fmt.Fprintf(&b, "+++ %s\n", newPath)
	fmt.Fprintf(&b, "%s\n", headerFor(hunk))
	for _, l := range hunk.Lines {
		switch l.Kind {
		case LineAdd:
			b.WriteString("+" + l.Content + "\n")
		case LineDelete:
			b.WriteString("-" + l.Content + "\n")
		default:
			b.WriteString(" " + l.Content + "\n")
		}
	}
	return b.String()
}

func headerFor(hunk Hunk) string {
	if hunk.Header != "" {
		return hunk.Header
	}
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
}

type applyOpts struct {
	cached  bool
	reverse bool
}

// applyPatch feeds patch to `git apply`. A non-zero exit is fatal to
// the operation only, leaving the index/workdir exactly as they were
// (git apply is atomic per invocation).
func applyPatch(ctx context.Context, repoDir, patch string, opts applyOpts) error {
	args := []string{"apply", "--whitespace=nowarn"}
	if opts.cached {
		args = append(args, "--cached")
	}
	if opts.reverse {
		args = append(args, "--reverse")
	}
	args = append(args, "-")

	// #nosec G204 -- args are internally constructed flags, not user input
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoDir
	cmd.Stdin = strings.NewReader(patch)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git apply: %s", strings.TrimSpace(stderr.String()))
	}
	return nil
}
