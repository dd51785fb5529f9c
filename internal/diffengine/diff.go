// Package diffengine computes structured hunk-line diffs for a single
// file (working tree / index / commit / commit pair / stash) and applies
// partial-hunk stage, unstage, and reset operations against them. It
// shells out to `git diff --no-color -p` for the unified
// text and `git apply` for mutation rather than linking a diff library.
package diffengine

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/chmouel/gogitui/internal/gitrepo"
)

// LineKind tags one DiffLine.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdd
	LineDelete
	LineHeader
)

// Line is one row of a Hunk's body.
type Line struct {
	Kind    LineKind
	Content string // without the leading +/-/space marker
}

// Hunk is a contiguous region of a FileDiff. Hash is a deterministic
// function of the header text and the ordered line contents: the
// identity used to stage/unstage/reset exactly this hunk, stable across
// re-reads so long as its content has not changed.
type Hunk struct {
	Hash     uint64
	Header   string // the literal "@@ -a,b +c,d @@ ..." line
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// FileDiff is a finite ordered sequence of Hunks for one path.
type FileDiff struct {
	Path    string
	OldPath string // set when the file was renamed
	Binary  bool
	Hunks   []Hunk
}

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@(.*)$`)

// hashHunk computes Hunk.Hash: xxhash over the header bytes followed by
// each line's kind tag and content, in order.
func hashHunk(header string, lines []Line) uint64 {
	h := xxhash.New()
	_, _ = h.Write([]byte(header))
	_, _ = h.Write([]byte{'\n'})
	for _, l := range lines {
		_, _ = h.Write([]byte{byte(l.Kind)})
		_, _ = h.Write([]byte(l.Content))
		_, _ = h.Write([]byte{'\n'})
	}
	return h.Sum64()
}

// Compute produces path's FileDiff against target.
func Compute(ctx context.Context, repoDir string, path string, target gitrepo.DiffTarget, opts gitrepo.DiffOptions) (FileDiff, error) {
	args := []string{"diff", "--no-color", "-U" + strconv.Itoa(maxInt(opts.ContextLines, 0))}
	if opts.IgnoreWhitespace {
		args = append(args, "--ignore-all-space")
	}
	if opts.InterhunkLines > 0 {
		args = append(args, "--inter-hunk-context="+strconv.Itoa(opts.InterhunkLines))
	}

	switch target.Kind {
	case gitrepo.DiffWorkdirVsIndex:
		// no revision args: worktree vs index is git diff's default
	case gitrepo.DiffIndexVsHead:
		args = append(args, "--cached")
	case gitrepo.DiffCommit:
		args = append(args, target.A.String()+"^!")
	case gitrepo.DiffCommitPair:
		args = append(args, target.A.String(), target.B.String())
	case gitrepo.DiffStash:
		args = append(args, target.Stash.String()+"^!")
	}
	args = append(args, "--", path)

	// #nosec G204 -- args are built from internal logic, never shell-interpolated
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoDir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return FileDiff{}, fmt.Errorf("git diff: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return FileDiff{}, err
	}
	return parseUnifiedDiff(path, string(out)), nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func parseUnifiedDiff(path, text string) FileDiff {
	fd := FileDiff{Path: path}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var cur *Hunk
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "Binary files"):
			fd.Binary = true
		case strings.HasPrefix(line, "rename from "):
			fd.OldPath = strings.TrimPrefix(line, "rename from ")
		case strings.HasPrefix(line, "@@"):
			m := hunkHeaderRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if cur != nil {
				cur.Hash = hashHunk(cur.Header, cur.Lines)
				fd.Hunks = append(fd.Hunks, *cur)
			}
			oldStart, _ := strconv.Atoi(m[1])
			oldCount := 1
			if m[2] != "" {
				oldCount, _ = strconv.Atoi(m[2])
			}
			newStart, _ := strconv.Atoi(m[3])
			newCount := 1
			if m[4] != "" {
				newCount, _ = strconv.Atoi(m[4])
			}
			cur = &Hunk{Header: line, OldStart: oldStart, OldCount: oldCount, NewStart: newStart, NewCount: newCount}
		case strings.HasPrefix(line, "diff --git "), strings.HasPrefix(line, "index "),
			strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "),
			strings.HasPrefix(line, "new file mode"), strings.HasPrefix(line, "deleted file mode"),
			strings.HasPrefix(line, "similarity index"), strings.HasPrefix(line, "rename to "):
			// file-level header, not part of any hunk
		default:
			if cur == nil {
				continue
			}
			if line == "" {
				cur.Lines = append(cur.Lines, Line{Kind: LineContext, Content: ""})
				continue
			}
			switch line[0] {
			case '+':
				cur.Lines = append(cur.Lines, Line{Kind: LineAdd, Content: line[1:]})
			case '-':
				cur.Lines = append(cur.Lines, Line{Kind: LineDelete, Content: line[1:]})
			case ' ':
				cur.Lines = append(cur.Lines, Line{Kind: LineContext, Content: line[1:]})
			case '\\':
				// "\ No newline at end of file" is not a content line
			default:
				cur.Lines = append(cur.Lines, Line{Kind: LineContext, Content: line})
			}
		}
	}
	if cur != nil {
		cur.Hash = hashHunk(cur.Header, cur.Lines)
		fd.Hunks = append(fd.Hunks, *cur)
	}
	return fd
}

// findHunk re-fetches the diff and returns the hunk matching hash, or
// ErrHunkNotFound when the content has moved on.
func findHunk(ctx context.Context, repoDir, path string, target gitrepo.DiffTarget, opts gitrepo.DiffOptions, hash uint64) (FileDiff, Hunk, error) {
	fd, err := Compute(ctx, repoDir, path, target, opts)
	if err != nil {
		return FileDiff{}, Hunk{}, err
	}
	for _, h := range fd.Hunks {
		if h.Hash == hash {
			return fd, h, nil
		}
	}
	return fd, Hunk{}, gitrepo.ErrHunkNotFound{Hash: hash}
}
