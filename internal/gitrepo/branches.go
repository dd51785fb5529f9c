package gitrepo

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Branches lists local or remote-tracking branches.
// Local branches report upstream via the git-config-driven lookup;
// remote branches report HasTracking by cross-referencing local
// branches' upstreams.
func (h *Handle) Branches(ctx context.Context, filter BranchFilter) ([]BranchInfo, error) {
	refPrefix := "refs/heads"
	if filter == BranchRemote {
		refPrefix = "refs/remotes"
	}

	format := "%(refname:short)|%(objectname)|%(contents:subject)"
	raw, err := h.run(ctx, []string{
		"for-each-ref", "--format=" + format, refPrefix,
	})
	if err != nil {
		return nil, err
	}

	headName, _ := h.HeadBranchName(ctx)

	var localUpstreams map[string]string
	if filter == BranchRemote {
		localUpstreams, _ = h.allLocalUpstreams(ctx)
	}

	var out []BranchInfo
	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			continue
		}
		name, id, subject := parts[0], parts[1], parts[2]
		if filter == BranchRemote && strings.HasSuffix(name, "/HEAD") {
			continue // symbolic ref to the remote's default branch, not a real branch
		}

		info := BranchInfo{
			Name:             name,
			Reference:        refPrefix + "/" + name,
			TopCommit:        NewCommitId(id),
			TopCommitMessage: subject,
		}

		if filter == BranchLocal {
			upstream, _ := h.run(ctx, []string{"rev-parse", "--abbrev-ref", name + "@{upstream}"}, 0, 128)
			remote, _ := h.ConfigString(ctx, "branch."+name+".remote")
			info.Details = BranchDetails{
				IsLocal:  true,
				IsHead:   name == headName,
				Upstream: upstream,
				Remote:   remote,
			}
		} else {
			_, tracked := localUpstreams[name]
			info.Details = BranchDetails{HasTracking: tracked}
		}

		out = append(out, info)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// allLocalUpstreams maps each local branch's upstream ref (e.g.
// "origin/main") to its local branch name, used to compute remote
// branches' HasTracking flag without an O(n*m) scan.
func (h *Handle) allLocalUpstreams(ctx context.Context) (map[string]string, error) {
	raw, err := h.run(ctx, []string{
		"for-each-ref", "--format=%(refname:short) %(upstream:short)", "refs/heads",
	})
	if err != nil {
		return nil, err
	}
	result := make(map[string]string)
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] != "" {
			result[fields[1]] = fields[0]
		}
	}
	return result, nil
}

// BranchCompareUpstream reports ahead/behind counts against a branch's
// upstream via reachability counting (git rev-list --left-right --count).
func (h *Handle) BranchCompareUpstream(ctx context.Context, branch string) (ahead, behind int, err error) {
	upstream, err := h.run(ctx, []string{"rev-parse", "--abbrev-ref", branch + "@{upstream}"}, 0, 128)
	if err != nil || upstream == "" {
		return 0, 0, fmt.Errorf("branch %q has no upstream", branch)
	}
	out, err := h.run(ctx, []string{"rev-list", "--left-right", "--count", branch + "..." + upstream})
	if err != nil {
		return 0, 0, err
	}
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected rev-list output: %q", out)
	}
	fmt.Sscanf(fields[0], "%d", &ahead)
	fmt.Sscanf(fields[1], "%d", &behind)
	return ahead, behind, nil
}

// CreateBranch creates a new branch at HEAD and returns its ref name.
func (h *Handle) CreateBranch(ctx context.Context, name string) (string, error) {
	if _, err := h.runChecked(ctx, []string{"branch", name}); err != nil {
		return "", err
	}
	return "refs/heads/" + name, nil
}

// RenameBranch renames the branch at ref to newName.
func (h *Handle) RenameBranch(ctx context.Context, ref, newName string) error {
	oldName := strings.TrimPrefix(ref, "refs/heads/")
	_, err := h.runChecked(ctx, []string{"branch", "-m", oldName, newName})
	return err
}

// DeleteBranch deletes the branch at ref. Deleting the currently
// checked-out branch is reported as a distinct error.
func (h *Handle) DeleteBranch(ctx context.Context, ref string) error {
	name := strings.TrimPrefix(ref, "refs/heads/")
	headName, _ := h.HeadBranchName(ctx)
	if name == headName {
		return ErrCannotDeleteCurrentBranch{Branch: name}
	}
	_, err := h.runChecked(ctx, []string{"branch", "-D", name})
	return err
}

// DefaultRemote picks the remote used when a branch has no upstream:
// origin if present, else the sole remote, else ErrNoDefaultRemoteFound.
func (h *Handle) DefaultRemote(ctx context.Context) (string, error) {
	raw, err := h.run(ctx, []string{"remote"})
	if err != nil {
		return "", err
	}
	var remotes []string
	for _, line := range strings.Split(raw, "\n") {
		if line != "" {
			remotes = append(remotes, line)
		}
	}
	for _, r := range remotes {
		if r == "origin" {
			return "origin", nil
		}
	}
	if len(remotes) == 1 {
		return remotes[0], nil
	}
	return "", ErrNoDefaultRemoteFound{Remotes: remotes}
}

// GetBranchRemote reads branch.<name>.remote.
func (h *Handle) GetBranchRemote(ctx context.Context, branch string) (string, error) {
	return h.ConfigString(ctx, "branch."+branch+".remote")
}

// SetUpstreamIfMissing sets branch to track <remote>/<branch> when it
// currently has no upstream.
func (h *Handle) SetUpstreamIfMissing(ctx context.Context, branch, remote string) error {
	if _, err := h.run(ctx, []string{"rev-parse", "--abbrev-ref", branch + "@{upstream}"}, 0, 128); err == nil {
		return nil // already has an upstream
	}
	_, err := h.runChecked(ctx, []string{"branch", "--set-upstream-to=" + remote + "/" + branch, branch})
	return err
}
