package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/gogitui/internal/diffengine"
	"github.com/chmouel/gogitui/internal/gitrepo"
	"github.com/chmouel/gogitui/internal/jobs"
)

// The load* commands run git reads on bubbletea's command goroutines,
// which is where all non-UI work happens; each worker talks back only
// through its returned message or the notification bus.

func (m *Model) loadStatus() tea.Cmd {
	return func() tea.Msg {
		items, err := m.repo.Status(m.ctx, false)
		return statusLoadedMsg{items: items, err: err}
	}
}

func (m *Model) loadLog() tea.Cmd {
	return func() tea.Msg {
		total, err := m.walker.Fetch(m.ctx)
		return logLoadedMsg{total: total, err: err}
	}
}

func (m *Model) loadBranches() tea.Cmd {
	return func() tea.Msg {
		local, err := m.repo.Branches(m.ctx, gitrepo.BranchLocal)
		if err != nil {
			return branchesLoadedMsg{err: err}
		}
		remote, err := m.repo.Branches(m.ctx, gitrepo.BranchRemote)
		if err != nil {
			return branchesLoadedMsg{err: err}
		}
		return branchesLoadedMsg{local: local, remote: remote}
	}
}

func (m *Model) loadStash() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.repo.StashList(m.ctx)
		return stashLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) loadTags() tea.Cmd {
	return func() tea.Msg {
		tags, err := m.repo.Tags(m.ctx)
		return tagsLoadedMsg{tags: tags, err: err}
	}
}

// loadSelectedDiff recomputes the diff pane for the currently selected
// status file, if any.
func (m *Model) loadSelectedDiff() tea.Cmd {
	item, ok := m.status.SelectedStatus()
	if !ok {
		return nil
	}
	target := gitrepo.DiffTarget{Kind: gitrepo.DiffWorkdirVsIndex}
	if m.stagedView {
		target = gitrepo.DiffTarget{Kind: gitrepo.DiffIndexVsHead}
	}
	path := item.Path
	return func() tea.Msg {
		fd, err := diffengine.Compute(m.ctx, m.repo.WorkDir(), path, target, m.engineOpts)
		return diffLoadedMsg{path: path, diff: fd, err: err}
	}
}

func (m *Model) refreshHeader() tea.Cmd {
	return func() tea.Msg {
		name, _, err := m.branchName.Lookup()
		if err != nil {
			// an unborn branch has no header to show, not an error popup
			if _, ok := err.(gitrepo.ErrNoHead); ok {
				return headerLoadedMsg{branch: "(no commits)"}
			}
			return headerLoadedMsg{branch: ""}
		}
		ahead, behind, err := m.repo.BranchCompareUpstream(m.ctx, name)
		if err != nil {
			return headerLoadedMsg{branch: name}
		}
		return headerLoadedMsg{branch: name, ahead: ahead, behind: behind}
	}
}

// mutate wraps a repository mutation: run, then report so the update
// loop triggers a full re-read.
func (m *Model) mutate(fn func() error) tea.Cmd {
	m.working = true
	return func() tea.Msg {
		return mutationDoneMsg{err: fn()}
	}
}

func (m *Model) stageSelected() tea.Cmd {
	item, ok := m.status.SelectedStatus()
	if !ok {
		return nil
	}
	return m.mutate(func() error { return m.repo.Stage(m.ctx, item.Path) })
}

func (m *Model) unstageSelected() tea.Cmd {
	item, ok := m.status.SelectedStatus()
	if !ok {
		return nil
	}
	return m.mutate(func() error { return m.repo.Unstage(m.ctx, item.Path) })
}

func (m *Model) stageSelectedHunk() tea.Cmd {
	hunk, ok := m.selectedHunk()
	if !ok {
		return nil
	}
	path := m.currentPath
	return m.mutate(func() error {
		return diffengine.StageHunk(m.ctx, m.repo.WorkDir(), path, m.engineOpts, hunk.Hash)
	})
}

func (m *Model) unstageSelectedHunk() tea.Cmd {
	hunk, ok := m.selectedHunk()
	if !ok {
		return nil
	}
	path := m.currentPath
	return m.mutate(func() error {
		return diffengine.UnstageHunk(m.ctx, m.repo.WorkDir(), path, m.engineOpts, hunk.Hash)
	})
}

func (m *Model) selectedHunk() (diffengine.Hunk, bool) {
	if m.hunkSel < 0 || m.hunkSel >= len(m.currentDiff.Hunks) {
		return diffengine.Hunk{}, false
	}
	return m.currentDiff.Hunks[m.hunkSel], true
}

func (m *Model) runCommit(message string, amend bool) tea.Cmd {
	m.working = true
	return func() tea.Msg {
		var (
			id  gitrepo.CommitId
			err error
		)
		if amend {
			id, err = m.repo.Amend(m.ctx, gitrepo.AmendTarget{}, message)
		} else {
			id, err = m.repo.Commit(m.ctx, message)
		}
		return commitDoneMsg{id: id, msg: message, err: err}
	}
}

// runPush spawns the progress job on its own goroutine; results arrive
// over the bus.
func (m *Model) runPush(force bool) tea.Cmd {
	m.working = true
	branch := m.headerBranch
	return func() tea.Msg {
		remote, err := m.repo.GetBranchRemote(m.ctx, branch)
		if err != nil || remote == "" {
			remote, err = m.repo.DefaultRemote(m.ctx)
			if err != nil {
				return errMsg{err: err}
			}
		}
		go jobs.RunPush(m.ctx, m.repo, m.bus.Sender(), branch, remote, branch, force)
		return nil
	}
}

func (m *Model) runFetch() tea.Cmd {
	m.working = true
	return func() tea.Msg {
		remote, err := m.repo.DefaultRemote(m.ctx)
		if err != nil {
			return errMsg{err: err}
		}
		go jobs.RunFetch(m.ctx, m.repo, m.bus.Sender(), remote, true)
		return nil
	}
}

func (m *Model) runPushTags() tea.Cmd {
	m.working = true
	return func() tea.Msg {
		remote, err := m.repo.DefaultRemote(m.ctx)
		if err != nil {
			return errMsg{err: err}
		}
		go jobs.RunPushTags(m.ctx, m.repo, m.bus.Sender(), remote)
		return nil
	}
}

func (m *Model) requestBlame() tea.Cmd {
	item, ok := m.status.SelectedStatus()
	if !ok {
		return nil
	}
	m.blame.Request(jobs.BlameKey{Path: item.Path})
	return nil
}

func (m *Model) requestHostTags() tea.Cmd {
	return func() tea.Msg {
		remote, err := m.repo.DefaultRemote(m.ctx)
		if err != nil {
			return nil
		}
		m.hostTags.Request(remote)
		return nil
	}
}
