package gitrepo

import (
	"context"
	"strings"
)

// Head returns the commit id HEAD points to. It fails with ErrNoHead when
// the branch is unborn (no commits yet).
func (h *Handle) Head(ctx context.Context) (CommitId, error) {
	out, err := h.run(ctx, []string{"rev-parse", "HEAD"}, 0, 128)
	if err != nil {
		return CommitId{}, err
	}
	if out == "" || !validHex(out) {
		return CommitId{}, ErrNoHead{}
	}
	return NewCommitId(out), nil
}

// HeadBranchName returns HEAD's shorthand name (e.g. "main"), or empty
// when HEAD is detached. An unborn branch reports ErrNoHead, the same
// way Head does.
func (h *Handle) HeadBranchName(ctx context.Context) (string, error) {
	if _, err := h.Head(ctx); err != nil {
		return "", err
	}
	out, err := h.run(ctx, []string{"symbolic-ref", "--short", "-q", "HEAD"}, 0, 1)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
