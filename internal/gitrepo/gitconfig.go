package gitrepo

import "context"

// ConfigString reads a single git config value, returning "" when unset
// (mirrors `git config --get`'s exit-1-means-absent convention).
func (h *Handle) ConfigString(ctx context.Context, key string) (string, error) {
	out, err := h.run(ctx, []string{"config", "--get", key}, 0, 1)
	if err != nil {
		return "", err
	}
	return out, nil
}

// ConfigIsPullRebase reports whether pull.rebase is enabled.
func (h *Handle) ConfigIsPullRebase(ctx context.Context) bool {
	val, err := h.ConfigString(ctx, "pull.rebase")
	if err != nil {
		return false
	}
	return val == "true" || val == "1" || val == "interactive" || val == "merges"
}
