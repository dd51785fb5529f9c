package jobs

import (
	"context"
	"sync"

	"github.com/chmouel/gogitui/internal/gitrepo"
)

// LogBatchSize is the bounded slice each Fetch call advances the walk by.
const LogBatchSize = 1200

// Filter decides whether a commit stays in the walk (commit search).
// It is applied by the walker itself so callers never see
// filtered-out commits and never have to buffer them.
type Filter func(gitrepo.CommitSummary) bool

// revLister is the subset of *gitrepo.Handle the walker drives; kept as
// an interface so tests can supply a fake without a real repository.
type revLister interface {
	RevList(ctx context.Context, start string, skip, limit int) ([]gitrepo.CommitSummary, error)
}

// LogWalker is an incremental revwalk that accumulates a filtered,
// ordered slice of commits, advancing by LogBatchSize per Fetch call.
type LogWalker struct {
	source revLister
	start  string
	filter Filter

	mu        sync.Mutex
	skip      int // rev-list offset already consumed, pre-filter
	commits   []gitrepo.CommitSummary
	exhausted bool
}

// NewLogWalker creates a walker rooted at start (empty means HEAD).
func NewLogWalker(source revLister, start string) *LogWalker {
	return &LogWalker{source: source, start: start}
}

// SetFilter installs filter and fully resets the walk "a
// new filter ... fully resets the walk". Passing nil clears the filter
// and also resets, since the kept set is no longer valid.
func (w *LogWalker) SetFilter(filter Filter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filter = filter
	w.resetLocked()
}

// SetStart changes the walk's root commit and fully resets the walk.
func (w *LogWalker) SetStart(start string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.start = start
	w.resetLocked()
}

func (w *LogWalker) resetLocked() {
	w.skip = 0
	w.commits = nil
	w.exhausted = false
}

// Fetch advances the walk by up to LogBatchSize underlying commits
// (pre-filter), appends whatever passes the filter, and returns the
// cumulative count of kept commits. It is a no-op once the underlying
// revwalk is exhausted.
func (w *LogWalker) Fetch(ctx context.Context) (int, error) {
	w.mu.Lock()
	if w.exhausted {
		n := len(w.commits)
		w.mu.Unlock()
		return n, nil
	}
	start, skip, filter := w.start, w.skip, w.filter
	w.mu.Unlock()

	batch, err := w.source.RevList(ctx, start, skip, LogBatchSize)
	if err != nil {
		return 0, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.skip += len(batch)
	if len(batch) < LogBatchSize {
		w.exhausted = true
	}
	for _, c := range batch {
		if filter == nil || filter(c) {
			w.commits = append(w.commits, c)
		}
	}
	return len(w.commits), nil
}

// Count returns the number of kept commits seen so far without
// advancing the walk.
func (w *LogWalker) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.commits)
}

// Exhausted reports whether the underlying revwalk has reached its end.
func (w *LogWalker) Exhausted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.exhausted
}

// GetSlice returns up to amount kept commits starting at offset.
func (w *LogWalker) GetSlice(offset, amount int) []gitrepo.CommitSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	if offset >= len(w.commits) || amount <= 0 {
		return nil
	}
	end := offset + amount
	if end > len(w.commits) {
		end = len(w.commits)
	}
	out := make([]gitrepo.CommitSummary, end-offset)
	copy(out, w.commits[offset:end])
	return out
}
