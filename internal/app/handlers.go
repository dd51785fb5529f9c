package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/gogitui/internal/app/screen"
	"github.com/chmouel/gogitui/internal/clipboard"
	"github.com/chmouel/gogitui/internal/config"
	"github.com/chmouel/gogitui/internal/diffengine"
	"github.com/chmouel/gogitui/internal/event"
	"github.com/chmouel/gogitui/internal/gitrepo"
	"github.com/chmouel/gogitui/internal/jobs"
	"github.com/chmouel/gogitui/internal/statustree"
	"github.com/chmouel/gogitui/internal/watch"
)

// handleKey dispatches a key press against the merged bindings, then
// against pane-local navigation defaults.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		m.Close()
		return tea.Quit
	}

	switch m.keys[key] {
	case config.ActionQuit:
		m.quitting = true
		m.Close()
		return tea.Quit
	case config.ActionHelp:
		m.screens.Push(screen.NewHelpScreen(m.windowWidth, m.windowHeight, m.thm, false))
		return nil
	case config.ActionRefresh:
		m.events.Push(event.Update{Needs: event.NeedsAll})
		return nil
	case config.ActionCommit:
		return m.openCommitScreen(false)
	case config.ActionAmend:
		return m.openCommitScreen(true)
	case config.ActionStage:
		return m.stageSelected()
	case config.ActionUnstage:
		return m.unstageSelected()
	case config.ActionDiscard:
		if item, ok := m.status.SelectedStatus(); ok {
			m.confirm(fmt.Sprintf("Discard changes to %s?", item.Path), event.ResetLines{Path: item.Path})
		}
		return nil
	case config.ActionStageHunk:
		return m.stageSelectedHunk()
	case config.ActionUnstageHunk:
		return m.unstageSelectedHunk()
	case config.ActionResetHunk:
		if hunk, ok := m.selectedHunk(); ok {
			m.confirm("Reset this hunk in the working tree?", event.ResetHunk{Path: m.currentPath, Hash: hunk.Hash})
		}
		return nil
	case config.ActionPush:
		return m.runPush(false)
	case config.ActionForcePush:
		return m.runPush(true)
	case config.ActionFetch:
		m.events.Push(event.FetchRemotes{})
		return nil
	case config.ActionPushTags:
		m.events.Push(event.PushTags{})
		return nil
	case config.ActionStashSave:
		return m.openStashSaveScreen()
	case config.ActionStashPop:
		if m.active == paneStash && m.stashSel < len(m.stash) {
			m.confirm(fmt.Sprintf("Pop %s?", m.stash[m.stashSel].Ref()), event.StashPop{ID: m.stash[m.stashSel].Ref()})
		}
		return nil
	case config.ActionStashDrop:
		return m.openStashDropScreen()
	case config.ActionTabStatus:
		m.active = paneStatus
		return nil
	case config.ActionTabLog:
		m.active = paneLog
		return nil
	case config.ActionTabBranches:
		m.active = paneBranches
		return nil
	case config.ActionTabStash:
		m.active = paneStash
		return nil
	case config.ActionTabTags:
		m.active = paneTags
		return nil
	case config.ActionToggleFold:
		return m.toggleSelected()
	case config.ActionBlame:
		return m.requestBlame()
	case config.ActionCopyHash:
		return m.copySelectedHash()
	case config.ActionEditMessage:
		m.events.Push(event.OpenExternalEditor{})
		return nil
	case config.ActionSearchCommits:
		return m.openCommitSearchScreen()
	case config.ActionFuzzyFind:
		return m.openFuzzyFinder()
	}

	return m.handleNavKey(key)
}

// handleNavKey covers the arrows/vim motions that are pane-local and
// not rebindable.
func (m *Model) handleNavKey(key string) tea.Cmd {
	switch m.active {
	case paneStatus:
		switch key {
		case "up", "k":
			m.status.MoveSelectionWith(statustree.MoveUp, m.pageSize())
			return m.loadSelectedDiff()
		case "down", "j":
			m.status.MoveSelectionWith(statustree.MoveDown, m.pageSize())
			return m.loadSelectedDiff()
		case "home", "g":
			m.status.MoveSelectionWith(statustree.MoveHome, m.pageSize())
			return m.loadSelectedDiff()
		case "end", "G":
			m.status.MoveSelectionWith(statustree.MoveEnd, m.pageSize())
			return m.loadSelectedDiff()
		case "pgup":
			m.status.MoveSelectionWith(statustree.MovePageUp, m.pageSize())
			return m.loadSelectedDiff()
		case "pgdown":
			m.status.MoveSelectionWith(statustree.MovePageDown, m.pageSize())
			return m.loadSelectedDiff()
		case "tab":
			m.stagedView = !m.stagedView
			return m.loadSelectedDiff()
		case "[":
			m.prevHunk()
		case "]":
			m.nextHunk()
		}
	case paneLog:
		switch key {
		case "up", "k":
			if m.logSelected > 0 {
				m.logSelected--
			}
		case "down", "j":
			m.logSelected++
			if m.logSelected >= m.walker.Count() && !m.walker.Exhausted() {
				return m.loadLog()
			}
			if m.logSelected >= m.walker.Count() {
				m.logSelected = maxInt(0, m.walker.Count()-1)
			}
		case "enter":
			return m.openCommitFiles()
		}
	case paneBranches:
		switch key {
		case "up", "k":
			if m.branchSel > 0 {
				m.branchSel--
			}
		case "down", "j":
			if m.branchSel < len(m.branches)-1 {
				m.branchSel++
			}
		case "enter":
			if m.branchSel < len(m.branches) {
				name := m.branches[m.branchSel].Name
				return m.mutate(func() error { return m.repo.CheckoutBranch(m.ctx, name) })
			}
		case "n":
			return m.openCreateBranchScreen()
		case "d":
			if m.branchSel < len(m.branches) {
				ref := m.branches[m.branchSel].Reference
				m.confirm(fmt.Sprintf("Delete branch %s?", m.branches[m.branchSel].Name), event.DeleteBranch{Ref: ref})
			}
		}
	case paneStash:
		switch key {
		case "up", "k":
			if m.stashSel > 0 {
				m.stashSel--
			}
		case "down", "j":
			if m.stashSel < len(m.stash)-1 {
				m.stashSel++
			}
		}
	case paneTags:
		switch key {
		case "up", "k":
			if m.tagSel > 0 {
				m.tagSel--
			}
		case "down", "j":
			if m.tagSel < len(m.tags)-1 {
				m.tagSel++
			}
		case "d":
			if m.tagSel < len(m.tags) {
				m.confirm(fmt.Sprintf("Delete tag %s?", m.tags[m.tagSel].Name), event.DeleteTag{Name: m.tags[m.tagSel].Name})
			}
		}
	}
	return nil
}

func (m *Model) pageSize() int {
	return maxInt(5, m.windowHeight-6)
}

func (m *Model) prevHunk() {
	if m.hunkSel > 0 {
		m.hunkSel--
		m.renderDiffPane()
	}
}

func (m *Model) nextHunk() {
	if m.hunkSel < len(m.currentDiff.Hunks)-1 {
		m.hunkSel++
		m.renderDiffPane()
	}
}

func (m *Model) toggleSelected() tea.Cmd {
	if m.active != paneStatus {
		return nil
	}
	m.status.Toggle(m.status.Selection())
	return nil
}

func (m *Model) copySelectedHash() tea.Cmd {
	if m.active == paneLog {
		slice := m.walker.GetSlice(m.logSelected, 1)
		if len(slice) == 1 {
			clipboard.Copy(slice[0].ID.String())
		}
		return nil
	}
	if item, ok := m.status.SelectedStatus(); ok {
		clipboard.Copy(item.Path)
	}
	return nil
}

// confirm pushes a ConfirmAction event behind a modal prompt.
func (m *Model) confirm(message string, action event.Action) {
	scr := screen.NewConfirmScreen(message, m.thm)
	scr.OnConfirm = func() tea.Cmd {
		m.events.Push(event.ConfirmAction{Action: action})
		return nil
	}
	m.screens.Push(scr)
}

// drainEvents consumes the event queue, translating each user intent
// into commands. Called once per update tick.
func (m *Model) drainEvents() []tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range m.events.Drain() {
		if cmd := m.handleEvent(e); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func (m *Model) handleEvent(e event.Event) tea.Cmd {
	switch e := e.(type) {
	case event.ShowErrorMsg:
		m.lastErr = e.Message
		m.screens.Push(screen.NewInfoScreen(e.Message, m.thm))
		return nil
	case event.OpenPopup:
		if s, ok := e.Popup.(screen.Screen); ok {
			m.screens.Push(s)
		}
		return nil
	case event.PopupStackPop:
		m.screens.Pop()
		return nil
	case event.Update:
		return m.applyNeeds(e.Needs)
	case event.TabSwitchStatus:
		m.active = paneStatus
		return nil
	case event.SelectCommitInRevlog:
		m.active = paneLog
		m.selectCommit(e.Commit)
		return nil
	case event.FetchRemotes:
		return m.runFetch()
	case event.OpenRepo:
		return m.reopenRepo(e.Path)
	case event.PushTags:
		return m.runPushTags()
	case event.OpenExternalEditor:
		return m.openExternalEditor(e.Path)
	case event.CommitSearch:
		m.applyCommitSearch(e)
		return m.loadLog()
	case event.OpenFuzzyFinder:
		return m.openFuzzyFinderWith(e.Items, e.Target)
	case event.ConfirmAction:
		return m.applyAction(e.Action)
	}
	return nil
}

func (m *Model) applyNeeds(needs event.NeedsUpdate) tea.Cmd {
	var cmds []tea.Cmd
	if needs&event.NeedsStatus != 0 {
		cmds = append(cmds, m.loadStatus(), m.loadStash(), m.refreshHeader())
	}
	if needs&event.NeedsDiff != 0 {
		cmds = append(cmds, m.loadSelectedDiff())
	}
	if needs&event.NeedsBranches != 0 {
		cmds = append(cmds, m.loadBranches(), m.loadTags())
	}
	if needs == event.NeedsAll {
		cmds = append(cmds, m.loadLog())
	}
	return tea.Batch(cmds...)
}

// applyAction executes a confirmed destructive operation.
func (m *Model) applyAction(a event.Action) tea.Cmd {
	switch a := a.(type) {
	case event.DeleteBranch:
		return m.mutate(func() error { return m.repo.DeleteBranch(m.ctx, a.Ref) })
	case event.DeleteRemoteBranch:
		return m.mutate(func() error {
			remote, branch, found := strings.Cut(strings.TrimPrefix(a.Ref, "refs/remotes/"), "/")
			if !found {
				return gitrepo.ErrGeneric{Message: "malformed remote ref " + a.Ref}
			}
			return m.repo.DeleteRemoteBranch(m.ctx, remote, branch)
		})
	case event.DeleteTag:
		return m.mutate(func() error { return m.repo.DeleteTag(m.ctx, a.Name) })
	case event.DeleteRemote:
		return m.mutate(func() error { return m.repo.DeleteRemote(m.ctx, a.Name) })
	case event.Reset:
		return m.mutate(func() error { return m.repo.Reset(m.ctx, a.Commit, a.Kind) })
	case event.StashDrop:
		return m.mutate(func() error { return m.repo.StashDrop(m.ctx, stashIndices(a.IDs)) })
	case event.StashPop:
		return m.mutate(func() error { return m.repo.StashPop(m.ctx, stashIndex(a.ID)) })
	case event.AbortMerge:
		return m.mutate(func() error { return m.repo.AbortMerge(m.ctx) })
	case event.AbortRevert:
		return m.mutate(func() error { return m.repo.AbortRevert(m.ctx) })
	case event.AbortRebase:
		return m.mutate(func() error { return m.repo.AbortRebase(m.ctx) })
	case event.UndoCommit:
		return m.mutate(func() error { return m.repo.UndoCommit(m.ctx) })
	case event.ResetHunk:
		return m.mutate(func() error {
			return diffengine.ResetHunk(m.ctx, m.repo.WorkDir(), a.Path, m.engineOpts, a.Hash)
		})
	case event.ResetLines:
		if len(a.Indices) == 0 {
			return m.mutate(func() error { return m.repo.DiscardWorkdir(m.ctx, a.Path) })
		}
		hunk, ok := m.selectedHunk()
		if !ok {
			return nil
		}
		return m.mutate(func() error {
			return diffengine.ResetLines(m.ctx, m.repo.WorkDir(), a.Path, m.engineOpts, hunk.Hash, a.Indices)
		})
	}
	return nil
}

// stashIndex parses "stash@{N}" back to N; malformed refs map to 0.
func stashIndex(ref string) int {
	var n int
	if _, err := fmt.Sscanf(ref, "stash@{%d}", &n); err != nil {
		return 0
	}
	return n
}

func stashIndices(refs []string) []int {
	out := make([]int, 0, len(refs))
	for _, r := range refs {
		out = append(out, stashIndex(r))
	}
	return out
}

// reopenRepo swaps every repo-scoped collaborator to a new path: the
// handle, the watcher, the log walker, and the pane state.
func (m *Model) reopenRepo(path string) tea.Cmd {
	m.watcher.Stop()
	m.repo = gitrepo.Open(gitrepo.NewPathRepo(path), nil)
	m.watcher = watch.New(m.repo.GitDir(), m.repo.WorkDir())
	if err := m.watcher.Start(); err != nil {
		m.events.Push(event.ShowErrorMsg{Message: err.Error()})
	}
	m.walker = jobs.NewLogWalker(m.repo, "")
	m.blame = jobs.NewBlameJob(m.repo, m.bus.Sender())
	m.hostTags = jobs.NewHostTagsJob(m.repo, m.bus.Sender())
	m.status = statustree.New()
	m.logSelected = 0
	m.branchName.Invalidate()
	m.events.Push(event.Update{Needs: event.NeedsAll})
	return m.waitWatcher()
}

func (m *Model) selectCommit(id gitrepo.CommitId) {
	for i := 0; i < m.walker.Count(); i++ {
		slice := m.walker.GetSlice(i, 1)
		if len(slice) == 1 && slice[0].ID.Equal(id) {
			m.logSelected = i
			return
		}
	}
}

func (m *Model) applyCommitSearch(search event.CommitSearch) {
	query := strings.ToLower(search.Query)
	if query == "" {
		m.walker.SetFilter(nil)
		return
	}
	byAuthor, byMessage := search.ByAuthor, search.ByMessage
	if !byAuthor && !byMessage {
		byMessage = true
	}
	m.walker.SetFilter(func(c gitrepo.CommitSummary) bool {
		if byMessage && strings.Contains(strings.ToLower(c.Subject), query) {
			return true
		}
		if byAuthor && strings.Contains(strings.ToLower(c.Author), query) {
			return true
		}
		return false
	})
	m.logSelected = 0
}
