// Package app provides the main application UI and logic using Bubble Tea.
package app

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/gogitui/internal/app/screen"
	"github.com/chmouel/gogitui/internal/cached"
	"github.com/chmouel/gogitui/internal/config"
	"github.com/chmouel/gogitui/internal/diffengine"
	"github.com/chmouel/gogitui/internal/event"
	"github.com/chmouel/gogitui/internal/gitrepo"
	"github.com/chmouel/gogitui/internal/jobs"
	"github.com/chmouel/gogitui/internal/log"
	"github.com/chmouel/gogitui/internal/notify"
	"github.com/chmouel/gogitui/internal/statustree"
	"github.com/chmouel/gogitui/internal/theme"
	"github.com/chmouel/gogitui/internal/watch"
)

const (
	heartbeatInterval = 5 * time.Second

	minPaneWidth = 32
)

// pane identifies the focused tab.
type pane int

const (
	paneStatus pane = iota
	paneLog
	paneBranches
	paneStash
	paneTags
)

// Model represents the main application model.
type Model struct {
	cfg  *config.AppConfig
	opts *config.Options
	keys map[string]string // bubbletea key string -> action name
	thm  *theme.Theme

	repo   *gitrepo.Handle
	engineOpts gitrepo.DiffOptions

	bus     *notify.Bus
	events  *event.Queue
	watcher *watch.Watcher
	screens *screen.Manager

	// Background jobs
	walker    *jobs.LogWalker
	highlight *jobs.SingleJob[jobs.HighlightKey, jobs.HighlightResult]
	blame     *jobs.SingleJob[jobs.BlameKey, gitrepo.FileBlame]
	hostTags  *jobs.SingleJob[string, []jobs.HostTag]

	// Cached header lookups
	branchName *cached.Cached[string]

	// Pane state
	active      pane
	status      *statustree.Tree
	stagedView  bool // diff pane shows index-vs-HEAD instead of workdir-vs-index
	logOffset   int
	logSelected int
	logTotal    int
	branches    []gitrepo.BranchInfo
	remoteBranches []gitrepo.BranchInfo
	branchSel   int
	stash       []gitrepo.StashEntry
	stashSel    int
	tags        []gitrepo.TagInfo
	tagSel      int

	// Diff pane
	diffView     viewport.Model
	currentDiff  diffengine.FileDiff
	currentPath  string
	diffFocused  bool
	hunkSel      int

	// Progress
	spinner       spinner.Model
	progress      *gitrepo.ProgressNotification
	progressKind  notify.GitKind
	working       bool

	// Commit draft, kept across editor round-trips
	draftMessage string
	draftAmend   bool

	headerBranch  string
	ahead, behind int

	windowWidth  int
	windowHeight int
	lastErr      string
	quitting     bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewModel creates the application model for a repository handle.
func NewModel(cfg *config.AppConfig, repoPath gitrepo.RepoPath) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	thm := theme.GetTheme(cfg.Theme)

	bus := notify.NewBus(64)
	repo := gitrepo.Open(repoPath, nil)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(thm.Accent)

	m := &Model{
		cfg:     cfg,
		opts:    config.LoadOptions(cfg.MessageHistorySize),
		keys:    invertBindings(config.MergeKeyBindings(cfg.KeyBindings)),
		thm:     thm,
		repo:    repo,
		engineOpts: gitrepo.DiffOptions{
			IgnoreWhitespace: cfg.IgnoreWhitespace,
			ContextLines:     cfg.ContextLines,
			InterhunkLines:   cfg.InterhunkLines,
		},
		bus:     bus,
		events:  &event.Queue{},
		watcher: watch.New(repo.GitDir(), repo.WorkDir()),
		screens: screen.NewManager(),
		status:  statustree.New(),
		spinner: sp,
		ctx:     ctx,
		cancel:  cancel,
	}

	m.walker = jobs.NewLogWalker(repo, "")
	m.highlight = jobs.NewHighlightJob(bus.Sender(), cfg.ResolvedSyntaxTheme())
	m.blame = jobs.NewBlameJob(repo, bus.Sender())
	m.hostTags = jobs.NewHostTagsJob(repo, bus.Sender())

	m.branchName = cached.New(
		func() (string, error) { return m.repo.HeadBranchName(m.ctx) },
		hashString,
	)

	m.diffView = viewport.New(80, 20)

	return m
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// invertBindings flips action->key into key->action for dispatch.
func invertBindings(bindings map[string]string) map[string]string {
	out := make(map[string]string, len(bindings))
	for action, key := range bindings {
		out[key] = action
	}
	return out
}

// Close tears down the watcher and cancels in-flight work.
func (m *Model) Close() {
	m.watcher.Stop()
	m.cancel()
}

// Init starts the watcher, arms the bus wait, and kicks the initial loads.
func (m *Model) Init() tea.Cmd {
	if err := m.watcher.Start(); err != nil {
		log.Printf("watcher: %v", err)
	}
	return tea.Batch(
		m.waitBus(),
		m.waitWatcher(),
		m.heartbeat(),
		m.spinner.Tick,
		m.loadStatus(),
		m.loadLog(),
		m.loadBranches(),
		m.loadStash(),
		m.loadTags(),
		m.refreshHeader(),
	)
}

// waitBus blocks on the notification bus and resurfaces the message in
// the update loop; re-armed after every delivery.
func (m *Model) waitBus() tea.Cmd {
	return func() tea.Msg {
		return busMsg{n: <-m.bus.Receive()}
	}
}

// waitWatcher blocks on the debounced watcher tick channel.
func (m *Model) waitWatcher() tea.Cmd {
	ticks := m.watcher.Ticks()
	return func() tea.Msg {
		if _, ok := <-ticks; !ok {
			return nil
		}
		return watchTickMsg{}
	}
}

func (m *Model) heartbeat() tea.Cmd {
	return tea.Tick(heartbeatInterval, func(time.Time) tea.Msg {
		return heartbeatMsg{}
	})
}

// Update is the bubbletea state transition.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.diffView.Width = maxInt(minPaneWidth, msg.Width/2-2)
		m.diffView.Height = maxInt(5, msg.Height-6)

	case tea.KeyMsg:
		if m.screens.IsActive() {
			next, cmd := m.screens.Current().Update(msg)
			if next == nil {
				m.screens.Pop()
			} else {
				m.screens.Set(next)
			}
			cmds = append(cmds, cmd)
			break
		}
		cmds = append(cmds, m.handleKey(msg))

	case spinner.TickMsg:
		if m.working {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case heartbeatMsg:
		cmds = append(cmds, m.heartbeat())

	case watchTickMsg:
		m.branchName.Invalidate()
		cmds = append(cmds, m.waitWatcher(), m.loadStatus(), m.refreshHeader())

	case busMsg:
		cmds = append(cmds, m.handleNotification(msg.n), m.waitBus())

	case statusLoadedMsg:
		if msg.err != nil {
			m.events.Push(event.ShowErrorMsg{Message: msg.err.Error()})
		} else {
			m.status.Update(msg.items)
			cmds = append(cmds, m.loadSelectedDiff())
		}

	case logLoadedMsg:
		if msg.err != nil {
			m.events.Push(event.ShowErrorMsg{Message: msg.err.Error()})
		} else {
			m.logTotal = msg.total
		}

	case diffLoadedMsg:
		if msg.err != nil {
			m.events.Push(event.ShowErrorMsg{Message: msg.err.Error()})
		} else {
			m.currentDiff = msg.diff
			m.currentPath = msg.path
			m.hunkSel = 0
			m.renderDiffPane()
		}

	case branchesLoadedMsg:
		if msg.err != nil {
			m.events.Push(event.ShowErrorMsg{Message: msg.err.Error()})
		} else {
			m.branches = msg.local
			m.remoteBranches = msg.remote
			if m.branchSel >= len(m.branches) {
				m.branchSel = maxInt(0, len(m.branches)-1)
			}
		}

	case stashLoadedMsg:
		if msg.err != nil {
			m.events.Push(event.ShowErrorMsg{Message: msg.err.Error()})
		} else {
			m.stash = msg.entries
			if m.stashSel >= len(m.stash) {
				m.stashSel = maxInt(0, len(m.stash)-1)
			}
		}

	case tagsLoadedMsg:
		if msg.err != nil {
			m.events.Push(event.ShowErrorMsg{Message: msg.err.Error()})
		} else {
			m.tags = msg.tags
			if m.tagSel >= len(m.tags) {
				m.tagSel = maxInt(0, len(m.tags)-1)
			}
		}

	case commitDoneMsg:
		m.working = false
		if msg.err != nil {
			m.events.Push(event.ShowErrorMsg{Message: msg.err.Error()})
		} else {
			m.opts.AppendMessage(msg.msg)
			m.draftMessage = ""
			m.draftAmend = false
			m.events.Push(event.Update{Needs: event.NeedsAll})
		}

	case mutationDoneMsg:
		m.working = false
		if msg.err != nil {
			m.events.Push(event.ShowErrorMsg{Message: msg.err.Error()})
		}
		m.events.Push(event.Update{Needs: event.NeedsAll})

	case editorFinishedMsg:
		cmds = append(cmds, m.resumeCommitAfterEditor(msg))

	case headerLoadedMsg:
		m.headerBranch = msg.branch
		m.ahead = msg.ahead
		m.behind = msg.behind

	case commitFilesLoadedMsg:
		if msg.err != nil {
			m.events.Push(event.ShowErrorMsg{Message: msg.err.Error()})
		} else {
			m.showCommitFiles(msg)
		}

	case errMsg:
		if msg.err != nil {
			m.events.Push(event.ShowErrorMsg{Message: msg.err.Error()})
		}
	}

	cmds = append(cmds, m.drainEvents()...)
	return m, tea.Batch(cmds...)
}

// handleNotification routes a bus message to the matching re-read.
func (m *Model) handleNotification(n notify.Msg) tea.Cmd {
	switch n := n.(type) {
	case notify.ProgressMsg:
		m.progress = &n.Progress
		m.progressKind = n.Kind
		if n.Progress.Kind == gitrepo.ProgressDone {
			m.progress = nil
		}
		return nil
	case notify.GitNotification:
		if n.Err != nil {
			m.working = false
			m.progress = nil
			m.events.Push(event.ShowErrorMsg{Message: n.Err.Error()})
			return nil
		}
		switch n.Kind {
		case notify.GitStatus:
			return m.loadStatus()
		case notify.GitDiff:
			return m.loadSelectedDiff()
		case notify.GitLog:
			return m.loadLog()
		case notify.GitPush, notify.GitFetch, notify.GitPushTags:
			m.working = false
			m.progress = nil
			m.events.Push(event.Update{Needs: event.NeedsAll})
			return nil
		case notify.GitBlame:
			m.renderBlamePane()
			return nil
		case notify.GitBranches:
			return m.loadBranches()
		case notify.GitTags, notify.GitRemoteTags:
			return m.loadTags()
		}
	case notify.AppNotification:
		if n.Err != nil {
			log.Printf("highlight: %v", n.Err)
			return nil
		}
		if n.Kind == notify.AppSyntaxHighlightDone {
			m.renderDiffPane()
		}
	}
	return nil
}

// View renders the full frame.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screens.IsActive() {
		return m.overlay(m.screens.Current().View())
	}
	return m.renderMain()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
