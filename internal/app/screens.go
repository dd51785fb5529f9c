package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/gogitui/internal/app/screen"
	"github.com/chmouel/gogitui/internal/event"
	"github.com/chmouel/gogitui/internal/gitrepo"
)

// openCommitScreen shows the commit-message textarea, preloading the
// draft kept across external-editor round-trips and wiring the
// previous-message history.
func (m *Model) openCommitScreen(amend bool) tea.Cmd {
	prompt := "Commit message"
	if amend {
		prompt = "Amend commit message"
	}
	value := m.draftMessage
	if amend && value == "" {
		if head, err := m.repo.Head(m.ctx); err == nil {
			if old, err := m.repo.CommitMessage(m.ctx, head); err == nil {
				value = old
			}
		}
	}
	m.draftAmend = amend

	scr := screen.NewTextareaScreen(prompt, "Summary of the change", value, m.windowWidth, m.windowHeight, m.thm, false)
	scr.SetHistory(m.opts.MessageHistory)
	scr.SetValidation(func(v string) string {
		if strings.TrimSpace(gitrepo.StripCommentLines(v)) == "" {
			return "Commit message cannot be empty."
		}
		return ""
	})
	scr.OnSubmit = func(value string) tea.Cmd {
		return m.runCommit(gitrepo.PrettifyMessage(gitrepo.StripCommentLines(value)), amend)
	}
	scr.OnCancel = func() tea.Cmd {
		m.draftMessage = ""
		return nil
	}
	m.screens.Push(scr)
	return nil
}

func (m *Model) openStashSaveScreen() tea.Cmd {
	scr := screen.NewInputScreen("Stash message", "wip", "", m.thm, false)
	scr.SetCheckbox("Include untracked files", true)
	scr.OnSubmit = func(value string, checked bool) tea.Cmd {
		return m.mutate(func() error {
			return m.repo.StashSave(m.ctx, value, false, checked)
		})
	}
	m.screens.Push(scr)
	return nil
}

// openStashDropScreen lets the user pick several entries at once.
func (m *Model) openStashDropScreen() tea.Cmd {
	if len(m.stash) == 0 {
		return nil
	}
	items := make([]screen.ChecklistItem, len(m.stash))
	for i, entry := range m.stash {
		items[i] = screen.ChecklistItem{
			ID:    entry.Ref(),
			Label: fmt.Sprintf("%s %s", entry.Ref(), entry.Message),
		}
	}
	scr := screen.NewChecklistScreen(items, "Drop stashes", "Filter...", "No stashes", m.windowWidth, m.windowHeight, m.thm)
	scr.OnSubmit = func(selected []screen.ChecklistItem) tea.Cmd {
		if len(selected) == 0 {
			return nil
		}
		ids := make([]string, len(selected))
		for i, it := range selected {
			ids[i] = it.ID
		}
		m.events.Push(event.ConfirmAction{Action: event.StashDrop{IDs: ids}})
		return nil
	}
	m.screens.Push(scr)
	return nil
}

func (m *Model) openCreateBranchScreen() tea.Cmd {
	scr := screen.NewInputScreen("New branch name", "feature/...", "", m.thm, false)
	scr.SetValidation(func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "Branch name cannot be empty."
		}
		return ""
	})
	scr.OnSubmit = func(value string, _ bool) tea.Cmd {
		return m.mutate(func() error {
			_, err := m.repo.CreateBranch(m.ctx, strings.TrimSpace(value))
			return err
		})
	}
	m.screens.Push(scr)
	return nil
}

func (m *Model) openCommitSearchScreen() tea.Cmd {
	scr := screen.NewInputScreen("Search commits", "message or author", "", m.thm, false)
	scr.SetCheckbox("Match author too", false)
	scr.OnSubmit = func(value string, checked bool) tea.Cmd {
		m.events.Push(event.CommitSearch{Query: value, ByMessage: true, ByAuthor: checked})
		return nil
	}
	m.screens.Push(scr)
	return nil
}

// openCommitFiles shows the files touched by the selected log commit.
func (m *Model) openCommitFiles() tea.Cmd {
	slice := m.walker.GetSlice(m.logSelected, 1)
	if len(slice) != 1 {
		return nil
	}
	id := slice[0].ID
	return func() tea.Msg {
		items, err := m.repo.CommitFiles(m.ctx, id)
		return commitFilesLoadedMsg{id: id, items: items, err: err}
	}
}

// showCommitFiles builds the popup once the read completes, on the UI
// thread.
func (m *Model) showCommitFiles(msg commitFilesLoadedMsg) {
	sel := make([]screen.SelectionItem, len(msg.items))
	for i, it := range msg.items {
		sel[i] = screen.SelectionItem{ID: it.Path, Label: it.Path, Description: it.Kind.String()}
	}
	scr := screen.NewListSelectionScreen(sel, "Files in "+msg.id.ShortString(), "Filter...", "No files", m.windowWidth, m.windowHeight, "", m.thm)
	m.screens.Push(scr)
}

func (m *Model) openFuzzyFinder() tea.Cmd {
	var names []string
	for _, b := range m.branches {
		names = append(names, b.Name)
	}
	m.events.Push(event.OpenFuzzyFinder{Items: names, Target: event.FuzzyFinderBranches})
	return nil
}

func (m *Model) openFuzzyFinderWith(items []string, target event.FuzzyFinderTarget) tea.Cmd {
	sel := make([]screen.SelectionItem, len(items))
	for i, it := range items {
		sel[i] = screen.SelectionItem{ID: it, Label: it}
	}
	scr := screen.NewListSelectionScreen(sel, "Fuzzy find", "Type to filter...", "No matches", m.windowWidth, m.windowHeight, "", m.thm)
	scr.OnSelect = func(item screen.SelectionItem) tea.Cmd {
		switch target {
		case event.FuzzyFinderBranches:
			name := item.ID
			return m.mutate(func() error { return m.repo.CheckoutBranch(m.ctx, name) })
		case event.FuzzyFinderCommits:
			m.events.Push(event.SelectCommitInRevlog{Commit: gitrepo.NewCommitId(item.ID)})
		case event.FuzzyFinderFiles:
			m.active = paneStatus
		}
		return nil
	}
	m.screens.Push(scr)
	return nil
}
