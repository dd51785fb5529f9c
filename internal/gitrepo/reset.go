package gitrepo

import "context"

// Reset moves HEAD (and, depending on kind, the index and working tree)
// to the given commit.
func (h *Handle) Reset(ctx context.Context, id CommitId, kind ResetKind) error {
	_, err := h.runChecked(ctx, []string{"reset", kind.gitFlag(), id.String()})
	return err
}

// UndoCommit resets the current branch to HEAD's first parent, keeping
// the undone commit's changes staged in the index.
func (h *Handle) UndoCommit(ctx context.Context) error {
	_, err := h.runChecked(ctx, []string{"reset", "--soft", "HEAD~1"})
	return err
}

// AbortMerge abandons an in-progress merge and restores the pre-merge
// state of index and working tree.
func (h *Handle) AbortMerge(ctx context.Context) error {
	_, err := h.runChecked(ctx, []string{"merge", "--abort"})
	return err
}

// AbortRevert abandons an in-progress revert.
func (h *Handle) AbortRevert(ctx context.Context) error {
	_, err := h.runChecked(ctx, []string{"revert", "--abort"})
	return err
}

// AbortRebase abandons an in-progress rebase and checks out the original
// branch.
func (h *Handle) AbortRebase(ctx context.Context) error {
	_, err := h.runChecked(ctx, []string{"rebase", "--abort"})
	return err
}
