package app

import (
	"github.com/chmouel/gogitui/internal/diffengine"
	"github.com/chmouel/gogitui/internal/gitrepo"
	"github.com/chmouel/gogitui/internal/notify"
)

type (
	errMsg struct{ err error }

	// busMsg wraps one notification drained from the bus; the update
	// loop routes it by kind and immediately re-arms the bus wait.
	busMsg struct{ n notify.Msg }

	// watchTickMsg is a debounced "something changed on disk" unit.
	watchTickMsg struct{}

	// heartbeatMsg forces a redraw even when nothing happened.
	heartbeatMsg struct{}

	statusLoadedMsg struct {
		items []gitrepo.StatusItem
		err   error
	}
	logLoadedMsg struct {
		total int
		err   error
	}
	diffLoadedMsg struct {
		path string
		diff diffengine.FileDiff
		err  error
	}
	branchesLoadedMsg struct {
		local  []gitrepo.BranchInfo
		remote []gitrepo.BranchInfo
		err    error
	}
	stashLoadedMsg struct {
		entries []gitrepo.StashEntry
		err     error
	}
	tagsLoadedMsg struct {
		tags []gitrepo.TagInfo
		err  error
	}
	commitDoneMsg struct {
		id  gitrepo.CommitId
		msg string
		err error
	}
	mutationDoneMsg struct {
		// outcome of a stage/unstage/discard/reset/checkout
		err error
	}
	editorFinishedMsg struct {
		path string
		err  error
	}
	headerLoadedMsg struct {
		branch        string
		ahead, behind int
	}
	commitFilesLoadedMsg struct {
		id    gitrepo.CommitId
		items []gitrepo.StatusItem
		err   error
	}
)
