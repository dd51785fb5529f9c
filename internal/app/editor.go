package app

import (
	"os"
	"os/exec"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/gogitui/internal/gitrepo"
)

// openExternalEditor suspends the TUI and hands the commit-message
// tempfile to the configured editor; the editor's exit signals the
// message is ready. The draft kept from the previous editor round-trip
// (empty if there was none) is written out first so edits continue from it.
func (m *Model) openExternalEditor(path string) tea.Cmd {
	if path == "" {
		path = filepath.Join(m.repo.GitDir(), "COMMIT_EDITMSG")
	}
	if err := os.WriteFile(path, []byte(m.draftMessage), 0o600); err != nil {
		return func() tea.Msg { return errMsg{err: err} }
	}
	m.screens.Clear()

	editor := m.cfg.ResolvedEditor()
	// #nosec G204 -- the editor is the user's own configured command
	c := exec.Command(editor, path)
	c.Dir = m.repo.WorkDir()
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
}

// resumeCommitAfterEditor reads the edited file back, strips '#' lines,
// prettifies, and re-opens the commit popup with the result.
func (m *Model) resumeCommitAfterEditor(msg editorFinishedMsg) tea.Cmd {
	if msg.err != nil {
		return func() tea.Msg { return errMsg{err: msg.err} }
	}
	data, err := os.ReadFile(msg.path)
	if err != nil {
		return func() tea.Msg { return errMsg{err: err} }
	}
	m.draftMessage = gitrepo.PrettifyMessage(gitrepo.StripCommentLines(string(data)))
	return m.openCommitScreen(m.draftAmend)
}
