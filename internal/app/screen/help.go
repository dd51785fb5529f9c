package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/gogitui/internal/theme"
)

// HelpScreen renders searchable documentation for the app controls.
type HelpScreen struct {
	Viewport    viewport.Model
	Width       int
	Height      int
	FullText    []string
	SearchInput textinput.Model
	Searching   bool
	SearchQuery string
	Thm         *theme.Theme
	ShowIcons   bool
}

// NewHelpScreen initializes help content with the available screen size.
func NewHelpScreen(maxWidth, maxHeight int, thm *theme.Theme, showIcons bool) *HelpScreen {
	helpTextTemplate := `{{HELP_TITLE}}gogitui Help Guide

**{{HELP_NAV}}Navigation**
- j / {{ARROW_DOWN}}: Move cursor down in the focused pane
- k / {{ARROW_UP}}: Move cursor up in the focused pane
- 1 / 2 / 3 / 4 / 5: Focus the Status / Log / Branches / Stash / Tags pane
- q / Ctrl+C: Quit application

**{{HELP_STATUS_PANE}}Status Pane (when focused)**
- j / k: Navigate files and directories in the status tree
- g / G, Home / End: Jump to first / last entry
- PageUp / PageDown: Move one page up / down
- Enter: Fold / unfold the selected directory
- Tab: Switch the diff between unstaged and staged changes
- [ / ]: Select previous / next hunk
- s / u: Stage / unstage the selected entry
- S / U: Stage / unstage the selected hunk
- X: Reset the selected hunk in the working tree (with confirmation)
- D: Discard changes to selected file (with confirmation)
- b: Blame the selected file

**{{HELP_LOG}}Log Pane**
- j / k: Move between commits (more are loaded as you scroll)
- y: Copy the selected commit hash

**{{HELP_VIEWING_TOOLS}}Commits & Tools**
- c: Commit staged changes
- A: Amend the last commit
- e: Write the commit message in the external editor
- Ctrl+F: Fuzzy-find a branch and check it out
- ?: Show this help

**{{HELP_REPO_OPS}}Repository Operations**
- r: Refresh status/log
- f: Fetch remotes
- P: Push current branch (to its configured remote, else the default remote)
- Ctrl+P: Force-push current branch
- T: Push all tags
- w: Stash changes
- p: Pop the selected stash (Stash pane, with confirmation)
- d: Drop one or more stashes
- n: Create a branch at HEAD (Branches pane)

**{{HELP_BACKGROUND_REFRESH}}Background Refresh**
- The repo watcher invalidates cached status/log two seconds after the
  last filesystem change under .git and the workdir

**{{HELP_FILTERING_SEARCH}}Filtering & Search**
- /: Search commit messages (optionally authors too)
- Selection menus: press f to show the filter, Esc returns to the list

**{{HELP_HELP_NAVIGATION}}Help Navigation**
- /: Search help (Enter to apply, Esc to clear)
- q / Esc: Close help
- j / k: Scroll down / up
- Ctrl+D / Ctrl+U: Scroll half page down / up

**{{HELP_SHELL_COMPLETION}}Shell Completion**
Generate completions: gogitui completion <bash|zsh|fish>
For CLI commands, see: gogitui --help

**{{HELP_CONFIGURATION}}Configuration & Overrides**
Configuration is read from multiple sources (in order of precedence):
1. Git local config: git config --local gitui.key value
2. Git global config: git config --global gitui.key value
3. YAML file: ~/.config/gogitui/config.yaml
4. Built-in defaults (lowest)

Example: git config --local gitui.theme nord

Key bindings: define key_bindings in the configuration file; unknown
action names are rejected and the defaults kept.

{{HELP_TIP}}Tip: keys bound to actions (c, s, P, ...) can be changed under
       key_bindings; cursor motions, pane-local keys and Ctrl+C are fixed.`

	replacer := strings.NewReplacer(
		"{{HELP_TITLE}}", iconPrefix(UIIconHelpTitle, showIcons),
		"{{HELP_NAV}}", iconPrefix(UIIconNavigation, showIcons),
		"{{HELP_STATUS_PANE}}", iconPrefix(UIIconStatusPane, showIcons),
		"{{HELP_LOG}}", iconPrefix(UIIconLogPane, showIcons),
		"{{HELP_COMMIT_TREE}}", iconPrefix(UIIconCommitTree, showIcons),
		"{{HELP_VIEWING_TOOLS}}", iconPrefix(UIIconViewingTools, showIcons),
		"{{HELP_REPO_OPS}}", iconPrefix(UIIconRepoOps, showIcons),
		"{{HELP_BACKGROUND_REFRESH}}", iconPrefix(UIIconBackgroundRefresh, showIcons),
		"{{HELP_FILTERING_SEARCH}}", iconPrefix(UIIconFilterSearch, showIcons),
		"{{HELP_STATUS_INDICATORS}}", iconPrefix(UIIconStatusIndicators, showIcons),
		"{{HELP_HELP_NAVIGATION}}", iconPrefix(UIIconHelpNavigation, showIcons),
		"{{HELP_SHELL_COMPLETION}}", iconPrefix(UIIconShellCompletion, showIcons),
		"{{HELP_CONFIGURATION}}", iconPrefix(UIIconConfiguration, showIcons),
		"{{HELP_TIP}}", iconPrefix(UIIconTip, showIcons),
		"{{STATUS_CLEAN}}", statusIndicator(true, showIcons),
		"{{STATUS_DIRTY}}", statusIndicator(false, showIcons),
		"{{STATUS_AHEAD}}", aheadIndicator(showIcons),
		"{{STATUS_BEHIND}}", behindIndicator(showIcons),
		"{{ARROW_UP}}", arrowUp(showIcons),
		"{{ARROW_DOWN}}", arrowDown(showIcons),
		"{{ARROW_LEFT}}", arrowLeft(showIcons),
		"{{ARROW_RIGHT}}", arrowRight(showIcons),
	)

	helpText := replacer.Replace(helpTextTemplate)

	width := 80
	height := 30
	if maxWidth > 0 {
		width = minInt(100, maxInt(60, int(float64(maxWidth)*0.75)))
	}
	if maxHeight > 0 {
		height = minInt(40, maxInt(20, int(float64(maxHeight)*0.7)))
	}

	vp := viewport.New(width, maxInt(5, height-3))
	fullLines := strings.Split(helpText, "\n")

	ti := textinput.New()
	ti.Placeholder = "Search help (/ to start, Enter to apply, Esc to clear)"
	ti.CharLimit = 64
	ti.Prompt = "/ "
	ti.SetValue("")
	ti.Blur()
	ti.Width = maxInt(20, width-6)

	hs := &HelpScreen{
		Viewport:    vp,
		Width:       width,
		Height:      height,
		FullText:    fullLines,
		SearchInput: ti,
		Thm:         thm,
		ShowIcons:   showIcons,
	}

	hs.refreshContent()
	return hs
}

// Type returns TypeHelp to identify this screen.
func (s *HelpScreen) Type() Type {
	return TypeHelp
}

// Update handles scrolling and search input for the help screen.
func (s *HelpScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	switch key {
	case "/":
		if !s.Searching {
			s.Searching = true
			s.SearchInput.Focus()
			return s, textinput.Blink
		}
	case "enter":
		if s.Searching {
			s.SearchQuery = strings.TrimSpace(s.SearchInput.Value())
			s.Searching = false
			s.SearchInput.Blur()
			s.refreshContent()
			return s, nil
		}
	case "esc", "ctrl+c":
		// If searching, clear search; otherwise close help
		if s.Searching || s.SearchQuery != "" {
			s.Searching = false
			s.SearchInput.SetValue("")
			s.SearchQuery = ""
			s.SearchInput.Blur()
			s.refreshContent()
			return s, nil
		}
		// Close help screen
		return nil, nil
	case "q":
		// Always close on 'q'
		return nil, nil
	}

	if s.Searching {
		s.SearchInput, cmd = s.SearchInput.Update(msg)
		newQuery := strings.TrimSpace(s.SearchInput.Value())
		if newQuery != s.SearchQuery {
			s.SearchQuery = newQuery
			s.refreshContent()
		}
		return s, cmd
	}

	// Handle viewport scrolling
	switch key {
	case "ctrl+d", " ":
		s.Viewport.HalfPageDown()
		return s, nil
	case "ctrl+u":
		s.Viewport.HalfPageUp()
		return s, nil
	case "j", "down":
		s.Viewport.ScrollDown(1)
		return s, nil
	case "k", "up":
		s.Viewport.ScrollUp(1)
		return s, nil
	}

	s.Viewport, cmd = s.Viewport.Update(msg)
	return s, cmd
}

// refreshContent updates the viewport with styled and filtered content.
func (s *HelpScreen) refreshContent() {
	content := s.renderContent()
	s.Viewport.SetContent(content)
	s.Viewport.GotoTop()
}

// SetSize updates the help screen dimensions (useful on terminal resize).
func (s *HelpScreen) SetSize(maxWidth, maxHeight int) {
	width := 80
	height := 30
	if maxWidth > 0 {
		width = minInt(100, maxInt(60, int(float64(maxWidth)*0.75)))
	}
	if maxHeight > 0 {
		height = minInt(40, maxInt(20, int(float64(maxHeight)*0.7)))
	}
	s.Width = width
	s.Height = height

	// Update viewport size
	// height - 4 for borders/header/footer
	s.Viewport.Width = s.Width - 2
	s.Viewport.Height = maxInt(5, s.Height-4)
}

// renderContent applies styling and search filtering to help text.
func (s *HelpScreen) renderContent() string {
	lines := s.FullText

	// Apply styling to help content
	styledLines := []string{}
	titleStyle := lipgloss.NewStyle().Foreground(s.Thm.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(s.Thm.SuccessFg).Bold(true)

	for _, line := range lines {
		// Style section headers (lines that start with ** and end with **)
		if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") {
			header := strings.TrimPrefix(strings.TrimSuffix(line, "**"), "**")
			prefix := disclosureIndicator(false, s.ShowIcons)
			styledLines = append(styledLines, titleStyle.Render(prefix+" "+header))
			continue
		}

		// Style key bindings (lines starting with "- " and containing ": ")
		if strings.HasPrefix(line, "- ") {
			// Split on ": " (colon + space) to handle keys that contain ":"
			parts := strings.SplitN(line, ": ", 2)
			if len(parts) == 2 {
				keys := strings.TrimPrefix(parts[0], "- ")
				description := parts[1]
				styledLine := "  " + keyStyle.Render(keys) + ": " + description
				styledLines = append(styledLines, styledLine)
				continue
			}
		}

		styledLines = append(styledLines, line)
	}

	// Handle search filtering
	if strings.TrimSpace(s.SearchQuery) != "" {
		query := strings.ToLower(strings.TrimSpace(s.SearchQuery))
		highlightStyle := lipgloss.NewStyle().Foreground(s.Thm.AccentFg).Background(s.Thm.Accent).Bold(true)
		filteredLines := []string{}
		for _, line := range styledLines {
			lower := strings.ToLower(line)
			if strings.Contains(lower, query) {
				filteredLines = append(filteredLines, highlightMatches(line, lower, query, highlightStyle))
			}
		}

		if len(filteredLines) == 0 {
			return fmt.Sprintf("No help entries match %q", s.SearchQuery)
		}
		return strings.Join(filteredLines, "\n")
	}

	return strings.Join(styledLines, "\n")
}

// highlightMatches highlights all occurrences of the query in the line.
func highlightMatches(line, lowerLine, lowerQuery string, style lipgloss.Style) string {
	if lowerQuery == "" {
		return line
	}

	var b strings.Builder
	searchFrom := 0
	qLen := len(lowerQuery)

	for {
		idx := strings.Index(lowerLine[searchFrom:], lowerQuery)
		if idx < 0 {
			b.WriteString(line[searchFrom:])
			break
		}
		start := searchFrom + idx
		end := start + qLen
		b.WriteString(line[searchFrom:start])
		b.WriteString(style.Render(line[start:end]))
		searchFrom = end
	}

	return b.String()
}

// View renders the help content and search input inside the viewport.
func (s *HelpScreen) View() string {
	content := s.renderContent()

	// Keep viewport sized to available area (minus header/search lines)
	vHeight := maxInt(5, s.Height-4) // -4 for borders/header/footer
	s.Viewport.Width = s.Width - 2   // -2 for borders
	s.Viewport.Height = vHeight
	s.Viewport.SetContent(content)

	// Enhanced help modal with rounded border
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width).
		Padding(0)

	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.Width-2).
		Padding(0, 1).
		Render("❓ Help")

	// Search bar styling
	searchView := ""
	if s.Searching || s.SearchQuery != "" {
		searchView = lipgloss.NewStyle().
			Width(s.Width-2).
			Padding(0, 1).
			Render(s.SearchInput.View())

		// Add separator after search
		searchView += "\n" + lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(s.Thm.BorderDim).
			Width(s.Width-2).
			Render("")
	}

	// Footer
	footerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Align(lipgloss.Left).
		Width(s.Width - 2).
		PaddingTop(1)
	footer := footerStyle.Render("j/k: scroll • Ctrl+d/u: page • /: search • esc: close")

	// Viewport styling
	vpStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2)

	body := vpStyle.Render(s.Viewport.View())

	contentBlock := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle,
		searchView,
		body,
		footer,
	)

	return boxStyle.Render(contentBlock)
}

// Helper functions for min/max
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
