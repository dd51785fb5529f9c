// Package notify implements the typed, cloneable notification bus
// carrying GitNotification and AppNotification variants from background
// jobs to the UI thread: a many-producer, single-consumer channel kept
// free of bubbletea so jobs packages don't need to import it.
package notify

import "github.com/chmouel/gogitui/internal/gitrepo"

// GitKind enumerates the "named git job produced new output; re-read"
// family,
type GitKind int

const (
	GitStatus GitKind = iota
	GitDiff
	GitLog
	GitCommitFiles
	GitPush
	GitPushTags
	GitFetch
	GitBlame
	GitRemoteTags
	GitTags
	GitBranches
)

// GitNotification is sent whenever a named git job produces new output.
type GitNotification struct {
	Kind GitKind
	// Err is set when the job that produced this notification failed;
	// Status/Diff/etc. payloads are meaningless in that case.
	Err error
}

// AppKind enumerates non-git background work.
type AppKind int

const (
	AppSyntaxHighlightProgress AppKind = iota
	AppSyntaxHighlightDone
)

// AppNotification carries non-git background job results, e.g. syntax
// highlighting progress.
type AppNotification struct {
	Kind    AppKind
	Percent int
	Err     error
}

// ProgressMsg wraps a gitrepo.ProgressNotification with the
// git job kind it belongs to (push vs fetch), since push/fetch share the
// same progress shape but are routed to different UI panes.
type ProgressMsg struct {
	Kind     GitKind
	Progress gitrepo.ProgressNotification
}

// Msg is any value sent on the bus: GitNotification, AppNotification, or
// ProgressMsg. Consumers type-switch on it.
type Msg any

// Bus is many-producer, single-consumer: any number of Sender clones may
// write concurrently; exactly one goroutine (the UI's event loop) drains
// Receive.
type Bus struct {
	ch chan Msg
}

// NewBus creates a Bus with the given channel buffer. A buffer of 0 is
// valid but couples producer and consumer timing tightly; the UI
// typically uses a small buffer (e.g. 64) so a burst of job completions
// doesn't block workers.
func NewBus(buffer int) *Bus {
	if buffer < 0 {
		buffer = 0
	}
	return &Bus{ch: make(chan Msg, buffer)}
}

// Sender is a cheap, cloneable handle jobs use to publish notifications.
type Sender struct{ ch chan Msg }

// Sender returns a new Sender bound to this bus.
func (b *Bus) Sender() Sender { return Sender{ch: b.ch} }

// Send publishes msg. It is ordered relative to every other Send this
// Sender (or a clone derived from the same Bus) makes, so a job's
// notifications arrive in emission order; it may block if the consumer
// is slow.
func (s Sender) Send(msg Msg) { s.ch <- msg }

// Receive returns the channel the UI thread drains. Closing the bus is
// not supported; the process owns its lifetime for as long as the UI runs.
func (b *Bus) Receive() <-chan Msg { return b.ch }
