package gitrepo

import (
	"context"
	"fmt"
	"strings"
)

// StashEntry describes one entry in the stash reflog.
type StashEntry struct {
	// Index is the position in the stash list, 0 being the newest.
	Index   int
	ID      CommitId
	Message string
}

// Ref returns the stash@{n} form git commands address this entry by.
func (s StashEntry) Ref() string { return fmt.Sprintf("stash@{%d}", s.Index) }

// StashList returns all stash entries, newest first.
func (h *Handle) StashList(ctx context.Context) ([]StashEntry, error) {
	raw, err := h.run(ctx, []string{"stash", "list", "--format=%H" + logFieldSep + "%gs"})
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var entries []StashEntry
	for i, line := range strings.Split(raw, "\n") {
		id, msg, ok := strings.Cut(line, logFieldSep)
		if !ok {
			continue
		}
		entries = append(entries, StashEntry{Index: i, ID: NewCommitId(id), Message: msg})
	}
	return entries, nil
}

// StashSave stashes the working tree. keepIndex leaves staged changes in
// the index; includeUntracked also stashes untracked files.
func (h *Handle) StashSave(ctx context.Context, message string, keepIndex, includeUntracked bool) error {
	args := []string{"stash", "push"}
	if keepIndex {
		args = append(args, "--keep-index")
	}
	if includeUntracked {
		args = append(args, "--include-untracked")
	}
	if message != "" {
		args = append(args, "-m", message)
	}
	_, err := h.runChecked(ctx, args)
	return err
}

// StashApply applies the entry without dropping it.
func (h *Handle) StashApply(ctx context.Context, index int) error {
	_, err := h.runChecked(ctx, []string{"stash", "apply", fmt.Sprintf("stash@{%d}", index)})
	return err
}

// StashPop applies the entry and drops it on success.
func (h *Handle) StashPop(ctx context.Context, index int) error {
	_, err := h.runChecked(ctx, []string{"stash", "pop", fmt.Sprintf("stash@{%d}", index)})
	return err
}

// StashDrop removes entries by index. Indices are dropped highest-first
// so earlier drops do not shift the positions of later ones.
func (h *Handle) StashDrop(ctx context.Context, indices []int) error {
	sorted := append([]int(nil), indices...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] > sorted[i] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	for _, idx := range sorted {
		if _, err := h.runChecked(ctx, []string{"stash", "drop", fmt.Sprintf("stash@{%d}", idx)}); err != nil {
			return err
		}
	}
	return nil
}
