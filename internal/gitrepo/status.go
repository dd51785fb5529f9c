package gitrepo

import (
	"context"
	"strings"
)

// Status returns the working-tree status, decoding porcelain v2 XY
// codes into StatusItems.
func (h *Handle) Status(ctx context.Context, includeIgnored bool) ([]StatusItem, error) {
	args := []string{"status", "--porcelain=v2"}
	if includeIgnored {
		args = append(args, "--ignored")
	}
	raw, err := h.run(ctx, args)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var items []StatusItem
	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "1 "), strings.HasPrefix(line, "2 "):
			fields := strings.Fields(line)
			if len(fields) < 9 {
				continue
			}
			xy := fields[1]
			path := fields[len(fields)-1]
			if strings.HasPrefix(line, "2 ") {
				// rename/copy: "... <score> <newPath>\t<origPath>"; report the new path
				if before, _, ok := strings.Cut(line, "\t"); ok {
					beforeFields := strings.Fields(before)
					path = beforeFields[len(beforeFields)-1]
				}
			}
			items = append(items, StatusItem{Path: path, Kind: statusKindFromXY(xy)})
		case strings.HasPrefix(line, "u "):
			fields := strings.Fields(line)
			if len(fields) < 11 {
				continue
			}
			items = append(items, StatusItem{Path: fields[len(fields)-1], Kind: StatusConflicted})
		case strings.HasPrefix(line, "? "):
			items = append(items, StatusItem{Path: strings.TrimPrefix(line, "? "), Kind: StatusNew})
		case strings.HasPrefix(line, "! "):
			if includeIgnored {
				items = append(items, StatusItem{Path: strings.TrimPrefix(line, "! "), Kind: StatusNew})
			}
		}
	}
	return items, nil
}

// statusKindFromXY classifies a porcelain v2 XY code. Index and worktree
// states are collapsed to one StatusItemKind, favoring the more specific
// change (rename/typechange) over a plain modification.
func statusKindFromXY(xy string) StatusItemKind {
	if len(xy) != 2 {
		return StatusModified
	}
	x, y := xy[0], xy[1]
	switch {
	case x == 'A' || y == 'A':
		return StatusNew
	case x == 'D' || y == 'D':
		return StatusDeleted
	case x == 'R' || y == 'R':
		return StatusRenamed
	case x == 'T' || y == 'T':
		return StatusTypechange
	default:
		return StatusModified
	}
}

// Stage adds path's current working-tree content to the index.
func (h *Handle) Stage(ctx context.Context, path string) error {
	_, err := h.runChecked(ctx, []string{"add", "--", path})
	return err
}

// Unstage removes path from the index, restoring it to HEAD's state there
// without touching the working tree.
func (h *Handle) Unstage(ctx context.Context, path string) error {
	_, err := h.runChecked(ctx, []string{"restore", "--staged", "--", path})
	return err
}

// ResetPath resets the index entry for path to HEAD, equivalent to Unstage
// but named to match's reset_path.
func (h *Handle) ResetPath(ctx context.Context, path string) error {
	return h.Unstage(ctx, path)
}

// DiscardWorkdir reverts path's working-tree content to the index.
func (h *Handle) DiscardWorkdir(ctx context.Context, path string) error {
	_, err := h.runChecked(ctx, []string{"checkout", "--", path})
	return err
}
