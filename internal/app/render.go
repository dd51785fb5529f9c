package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/chmouel/gogitui/internal/diffengine"
	"github.com/chmouel/gogitui/internal/gitrepo"
	"github.com/chmouel/gogitui/internal/jobs"
)

var tabTitles = []string{"Status", "Log", "Branches", "Stash", "Tags"}

// renderMain composes the header strip, tab bar, the active pane next
// to the diff pane, and the footer.
func (m *Model) renderMain() string {
	width := maxInt(minPaneWidth*2, m.windowWidth)
	leftWidth := width / 2
	rightWidth := width - leftWidth - 1

	header := m.renderHeader(width)
	tabs := m.renderTabs()

	var left string
	switch m.active {
	case paneStatus:
		left = m.renderStatusPane(leftWidth)
	case paneLog:
		left = m.renderLogPane(leftWidth)
	case paneBranches:
		left = m.renderBranchesPane(leftWidth)
	case paneStash:
		left = m.renderStashPane(leftWidth)
	case paneTags:
		left = m.renderTagsPane(leftWidth)
	}

	right := m.diffView.View()

	paneStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.thm.BorderDim).
		Width(leftWidth - 2).
		Height(maxInt(5, m.windowHeight-6))
	rightStyle := paneStyle.Width(rightWidth - 2)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(left),
		rightStyle.Render(right),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, m.renderFooter(width))
}

func (m *Model) renderHeader(width int) string {
	branch := m.headerBranch
	if branch == "" {
		branch = "…"
	}
	parts := []string{"⎇ " + branch}
	if m.ahead > 0 {
		parts = append(parts, fmt.Sprintf("↑%d", m.ahead))
	}
	if m.behind > 0 {
		parts = append(parts, fmt.Sprintf("↓%d", m.behind))
	}
	if line := m.progressLine(); line != "" {
		parts = append(parts, line)
	} else if m.working {
		parts = append(parts, m.spinner.View())
	}
	style := lipgloss.NewStyle().
		Foreground(m.thm.Accent).
		Bold(true).
		Width(width).
		Padding(0, 1)
	return style.Render(truncate.StringWithTail(strings.Join(parts, "  "), uint(maxInt(10, width-2)), "…"))
}

// progressLine renders the in-flight push/fetch progress, with byte
// counts humanized for the transfer phases.
func (m *Model) progressLine() string {
	if m.progress == nil {
		return ""
	}
	p := m.progress
	switch p.Kind {
	case gitrepo.ProgressTransfer:
		return fmt.Sprintf("receiving %d/%d (%s)", p.Current, p.Total, humanize.Bytes(uint64(maxInt64(0, p.Bytes))))
	case gitrepo.ProgressPushTransfer:
		return fmt.Sprintf("pushing %d/%d (%s)", p.Current, p.Total, humanize.Bytes(uint64(maxInt64(0, p.Bytes))))
	case gitrepo.ProgressPacking:
		return fmt.Sprintf("%s %d/%d", strings.ToLower(p.Stage), p.Current, p.Total)
	case gitrepo.ProgressUpdateTips:
		return fmt.Sprintf("updating %s %s..%s", p.RefName, p.FromOID.ShortString(), p.ToOID.ShortString())
	}
	return ""
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func (m *Model) renderTabs() string {
	activeStyle := lipgloss.NewStyle().Foreground(m.thm.AccentFg).Background(m.thm.Accent).Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().Foreground(m.thm.MutedFg).Padding(0, 1)

	rendered := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		label := fmt.Sprintf("%d %s", i+1, title)
		if pane(i) == m.active {
			rendered[i] = activeStyle.Render(label)
		} else {
			rendered[i] = inactiveStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderStatusPane(width int) string {
	if m.status.Pending() {
		return "Loading …"
	}
	items := m.status.Items()
	if len(items) == 0 {
		return lipgloss.NewStyle().Foreground(m.thm.MutedFg).Render("Working tree clean")
	}

	selStyle := lipgloss.NewStyle().Foreground(m.thm.AccentFg).Background(m.thm.Accent)
	var b strings.Builder
	for i := range items {
		if !items[i].Visible || items[i].FoldedAway {
			continue
		}
		label := m.status.DisplayLabel(i)
		line := truncate.StringWithTail(label, uint(maxInt(10, width-4)), "…")
		if i == m.status.Selection() {
			line = selStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderLogPane(width int) string {
	count := m.walker.Count()
	if count == 0 {
		return lipgloss.NewStyle().Foreground(m.thm.MutedFg).Render("No commits")
	}
	height := m.pageSize()
	start := maxInt(0, minInt(m.logSelected-height/2, count-height))
	slice := m.walker.GetSlice(start, height)

	selStyle := lipgloss.NewStyle().Foreground(m.thm.AccentFg).Background(m.thm.Accent)
	hashStyle := lipgloss.NewStyle().Foreground(m.thm.Yellow)

	var b strings.Builder
	for i, c := range slice {
		line := fmt.Sprintf("%s %s", hashStyle.Render(c.ID.ShortString()), c.Subject)
		line = truncate.StringWithTail(line, uint(maxInt(10, width-4)), "…")
		if start+i == m.logSelected {
			line = selStyle.Render(fmt.Sprintf("%s %s", c.ID.ShortString(), c.Subject))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderBranchesPane(width int) string {
	if len(m.branches) == 0 {
		return lipgloss.NewStyle().Foreground(m.thm.MutedFg).Render("No branches")
	}
	selStyle := lipgloss.NewStyle().Foreground(m.thm.AccentFg).Background(m.thm.Accent)
	var b strings.Builder
	for i, br := range m.branches {
		marker := "  "
		if br.Details.IsHead {
			marker = "* "
		}
		line := marker + br.Name
		if br.Details.Upstream != "" {
			line += " → " + br.Details.Upstream
		}
		line = truncate.StringWithTail(line, uint(maxInt(10, width-4)), "…")
		if i == m.branchSel {
			line = selStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderStashPane(width int) string {
	if len(m.stash) == 0 {
		return lipgloss.NewStyle().Foreground(m.thm.MutedFg).Render("No stashes")
	}
	selStyle := lipgloss.NewStyle().Foreground(m.thm.AccentFg).Background(m.thm.Accent)
	var b strings.Builder
	for i, s := range m.stash {
		line := truncate.StringWithTail(fmt.Sprintf("%s %s", s.Ref(), s.Message), uint(maxInt(10, width-4)), "…")
		if i == m.stashSel {
			line = selStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderTagsPane(width int) string {
	if len(m.tags) == 0 {
		return lipgloss.NewStyle().Foreground(m.thm.MutedFg).Render("No tags")
	}
	selStyle := lipgloss.NewStyle().Foreground(m.thm.AccentFg).Background(m.thm.Accent)
	var b strings.Builder
	for i, t := range m.tags {
		line := t.Name
		if t.Annotation != "" {
			line += "  " + t.Annotation
		}
		line = truncate.StringWithTail(line, uint(maxInt(10, width-4)), "…")
		if i == m.tagSel {
			line = selStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderFooter(width int) string {
	hints := "?: help • 1-5: panes • q: quit"
	if m.active == paneStatus {
		hints = "s/u: stage/unstage • S/U: hunk • c: commit • ?: help"
	}
	return lipgloss.NewStyle().
		Foreground(m.thm.MutedFg).
		Width(width).
		Padding(0, 1).
		Render(hints)
}

// renderDiffPane rebuilds the diff viewport from the current FileDiff,
// overlaying syntax highlighting when the highlight job has produced
// output for this content.
func (m *Model) renderDiffPane() {
	if len(m.currentDiff.Hunks) == 0 {
		if m.currentDiff.Binary {
			m.diffView.SetContent("(binary file)")
		} else {
			m.diffView.SetContent("")
		}
		return
	}

	addStyle := lipgloss.NewStyle().Foreground(m.thm.SuccessFg)
	delStyle := lipgloss.NewStyle().Foreground(m.thm.ErrorFg)
	headerStyle := lipgloss.NewStyle().Foreground(m.thm.Cyan)
	selHeaderStyle := headerStyle.Bold(true).Underline(true)

	// Context and added lines get the tokenized post-image overlay once
	// the highlight job has produced it; until then they render plain.
	key := jobs.HighlightKey{Path: m.currentPath, Content: postImage(m.currentDiff)}
	highlighted, haveHighlight := m.highlight.Last(key)
	if !haveHighlight {
		m.highlight.Request(key)
	}

	post := 0
	var b strings.Builder
	for i, hunk := range m.currentDiff.Hunks {
		hs := headerStyle
		if i == m.hunkSel {
			hs = selHeaderStyle
		}
		b.WriteString(hs.Render(hunk.Header))
		b.WriteString("\n")
		for _, line := range hunk.Lines {
			switch line.Kind {
			case diffengine.LineAdd:
				if haveHighlight && post < len(highlighted.Lines) {
					b.WriteString(addStyle.Render("+") + highlighted.Lines[post])
				} else {
					b.WriteString(addStyle.Render("+" + line.Content))
				}
				post++
			case diffengine.LineDelete:
				b.WriteString(delStyle.Render("-" + line.Content))
			case diffengine.LineHeader:
				b.WriteString(headerStyle.Render(line.Content))
			default:
				if haveHighlight && post < len(highlighted.Lines) {
					b.WriteString(" " + highlighted.Lines[post])
				} else {
					b.WriteString(" " + line.Content)
				}
				post++
			}
			b.WriteString("\n")
		}
	}
	m.diffView.SetContent(strings.TrimRight(b.String(), "\n"))
}

// postImage reassembles the new-side text of a diff for highlighting.
func postImage(fd diffengine.FileDiff) string {
	var b strings.Builder
	for _, hunk := range fd.Hunks {
		for _, line := range hunk.Lines {
			if line.Kind == diffengine.LineDelete || line.Kind == diffengine.LineHeader {
				continue
			}
			b.WriteString(line.Content)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderBlamePane swaps the diff viewport content for the latest blame
// result of the selected file.
func (m *Model) renderBlamePane() {
	item, ok := m.status.SelectedStatus()
	if !ok {
		return
	}
	blame, ok := m.blame.Last(jobs.BlameKey{Path: item.Path})
	if !ok {
		return
	}
	hashStyle := lipgloss.NewStyle().Foreground(m.thm.Yellow)
	authorStyle := lipgloss.NewStyle().Foreground(m.thm.MutedFg)

	var b strings.Builder
	for _, line := range blame.Lines {
		fmt.Fprintf(&b, "%s %s %4d %s\n",
			hashStyle.Render(line.Commit.ShortString()),
			authorStyle.Render(fmt.Sprintf("%-12s", truncate.String(line.Author, 12))),
			line.LineNo,
			line.Content,
		)
	}
	m.diffView.SetContent(strings.TrimRight(b.String(), "\n"))
}

// overlay centers a popup over the dimmed main view.
func (m *Model) overlay(popup string) string {
	if m.windowWidth == 0 || m.windowHeight == 0 {
		return popup
	}
	return lipgloss.Place(m.windowWidth, m.windowHeight, lipgloss.Center, lipgloss.Center, popup)
}
