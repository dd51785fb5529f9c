package gitrepo

import (
	"context"
	"strings"
)

// Remotes lists configured remote names.
func (h *Handle) Remotes(ctx context.Context) ([]string, error) {
	raw, err := h.run(ctx, []string{"remote"})
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	return strings.Split(raw, "\n"), nil
}

// AddRemote registers a new remote.
func (h *Handle) AddRemote(ctx context.Context, name, url string) error {
	_, err := h.runChecked(ctx, []string{"remote", "add", name, url})
	return err
}

// DeleteRemote removes a remote and its remote-tracking branches.
func (h *Handle) DeleteRemote(ctx context.Context, name string) error {
	_, err := h.runChecked(ctx, []string{"remote", "remove", name})
	return err
}

// RemoteURL returns the fetch URL for a remote, or "" when unset.
func (h *Handle) RemoteURL(ctx context.Context, name string) (string, error) {
	return h.ConfigString(ctx, "remote."+name+".url")
}

// DeleteRemoteBranch deletes a branch on its remote via git push --delete.
func (h *Handle) DeleteRemoteBranch(ctx context.Context, remote, branch string) error {
	_, err := h.runChecked(ctx, []string{"push", remote, "--delete", branch})
	return err
}
