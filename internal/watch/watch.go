// Package watch implements the debounced repo watcher: a recursive
// fsnotify watcher rooted at the workdir and git directories that
// coalesces bursts into a single "something changed" tick every two
// seconds.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/chmouel/gogitui/internal/log"
)

// Debounce is the coalescing window specifies: burst churn
// produces at most one invalidate tick within this interval.
const Debounce = 2 * time.Second

// Watcher owns a recursive fsnotify.Watcher over a repository's gitdir
// (refs/, logs/, worktrees/) and workdir. Ticks are delivered on a
// one-slot buffered channel; a tick sent while one is still unread is
// merged into it. A tick is "something
// changed on disk", never a structured payload.
type Watcher struct {
	gitDir  string
	workDir string

	mu      sync.Mutex
	watched map[string]struct{}
	watcher *fsnotify.Watcher

	ticks chan struct{}
	done  chan struct{}

	lastTick time.Time
	started  bool
}

// New creates a Watcher for the given gitdir/workdir pair. Call Start to
// begin watching.
func New(gitDir, workDir string) *Watcher {
	return &Watcher{
		gitDir:  gitDir,
		workDir: workDir,
		watched: make(map[string]struct{}),
		ticks:   make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Ticks returns the channel that receives one value per coalesced
// change. The UI treats each tick as "invalidate cached lookups and
// re-fetch status/log as needed".
func (w *Watcher) Ticks() <-chan struct{} { return w.ticks }

// Start begins watching. It is a no-op if already started or if the
// gitdir cannot be resolved to any watchable directory.
func (w *Watcher) Start() error {
	if w.started {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = watcher
	w.started = true

	w.addDir(w.gitDir)
	for _, sub := range []string{"refs", "logs", "worktrees"} {
		w.addTree(filepath.Join(w.gitDir, sub))
	}
	if w.workDir != "" && w.workDir != w.gitDir {
		w.addTree(w.workDir)
	}

	go w.run()
	return nil
}

// Stop halts the watcher and releases its file descriptors.
func (w *Watcher) Stop() {
	if !w.started {
		return
	}
	close(w.done)
	w.started = false
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				w.maybeWatchNewDir(ev.Name)
			}
			w.signal()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch: error: %v (restarting watch set)", err)
		}
	}
}

// signal debounces: ticks closer together than Debounce
// collapse into the single already-pending tick.
func (w *Watcher) signal() {
	now := time.Now()
	w.mu.Lock()
	tooSoon := !w.lastTick.IsZero() && now.Sub(w.lastTick) < Debounce
	if !tooSoon {
		w.lastTick = now
	}
	w.mu.Unlock()
	if tooSoon {
		return
	}
	select {
	case w.ticks <- struct{}{}:
	default:
		// a tick is already pending; this one is coalesced into it
	}
}

func (w *Watcher) maybeWatchNewDir(path string) {
	if !w.isUnderRoot(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	w.addDir(path)
}

func (w *Watcher) isUnderRoot(path string) bool {
	for _, root := range []string{
		filepath.Join(w.gitDir, "refs"),
		filepath.Join(w.gitDir, "logs"),
		filepath.Join(w.gitDir, "worktrees"),
		w.workDir,
	} {
		if root == "" {
			continue
		}
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) addDir(path string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.watched[path]; ok {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		log.Printf("watch: add %s: %v", path, err)
		return
	}
	w.watched[path] = struct{}{}
}

func (w *Watcher) addTree(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		w.addDir(path)
		return nil
	})
}
