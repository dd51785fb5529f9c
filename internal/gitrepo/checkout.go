package gitrepo

import (
	"context"
	"fmt"
	"strings"
)

// isWorkdirDirty reports whether the working tree has any changes,
// ignoring untracked/ignored files unless includeUntracked is set.
func (h *Handle) isWorkdirDirty(ctx context.Context, includeUntracked bool) (bool, error) {
	args := []string{"status", "--porcelain=v2"}
	if !includeUntracked {
		args = append(args, "--untracked-files=no")
	}
	out, err := h.run(ctx, args)
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// CheckoutBranch performs checkout-tree then moves HEAD.
// Non-conflicting untracked files are preserved; conflicts fail the
// operation without mutating anything (git's own checkout semantics).
func (h *Handle) CheckoutBranch(ctx context.Context, name string) error {
	out, err := h.runChecked(ctx, []string{"checkout", name})
	if err != nil {
		return ErrGeneric{Message: strings.TrimSpace(out)}
	}
	return nil
}

// CheckoutCommit detaches HEAD at id. Fails with ErrUncommittedChanges
// when the working tree is non-empty (ignoring ignored files).
func (h *Handle) CheckoutCommit(ctx context.Context, id CommitId) error {
	dirty, err := h.isWorkdirDirty(ctx, false)
	if err != nil {
		return err
	}
	if dirty {
		return ErrUncommittedChanges{Op: "checkout_commit"}
	}
	_, err = h.runChecked(ctx, []string{"checkout", "--detach", id.String()})
	return err
}

// RemoteBranchRef identifies a remote-tracking branch to check out
// locally, e.g. {Remote: "origin", Branch: "feature"}.
type RemoteBranchRef struct {
	Remote string
	Branch string
}

// CheckoutRemoteBranch creates a local branch at the remote's commit,
// sets its upstream, and checks it out. On checkout failure, the
// previously checked-out ref is restored.
func (h *Handle) CheckoutRemoteBranch(ctx context.Context, ref RemoteBranchRef) error {
	previous, _ := h.run(ctx, []string{"rev-parse", "--abbrev-ref", "HEAD"}, 0, 128)

	remoteRef := fmt.Sprintf("%s/%s", ref.Remote, ref.Branch)
	if _, err := h.runChecked(ctx, []string{"branch", "--track", ref.Branch, remoteRef}); err != nil {
		return err
	}

	if _, err := h.runChecked(ctx, []string{"checkout", ref.Branch}); err != nil {
		if previous != "" && previous != "HEAD" {
			_, _ = h.runChecked(ctx, []string{"checkout", previous})
		}
		_, _ = h.runChecked(ctx, []string{"branch", "-D", ref.Branch})
		return err
	}
	return nil
}
