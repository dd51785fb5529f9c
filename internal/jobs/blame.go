package jobs

import (
	"context"

	"github.com/chmouel/gogitui/internal/gitrepo"
	"github.com/chmouel/gogitui/internal/notify"
)

// BlameKey identifies one blame request: a path at a revision (empty
// revision blames the working tree).
type BlameKey struct {
	Path string
	Rev  string
}

type blamer interface {
	Blame(ctx context.Context, path, rev string) (gitrepo.FileBlame, error)
}

// NewBlameJob runs blame on a worker with latest-wins supersession; a
// completing request publishes GitNotification{Kind: GitBlame} and the
// UI reads the result back with Last.
func NewBlameJob(h blamer, sender notify.Sender) *SingleJob[BlameKey, gitrepo.FileBlame] {
	run := func(key BlameKey) (gitrepo.FileBlame, error) {
		return h.Blame(context.Background(), key.Path, key.Rev)
	}
	onDone := func(key BlameKey, result gitrepo.FileBlame, err error) {
		sender.Send(notify.GitNotification{Kind: notify.GitBlame, Err: err})
	}
	return NewSingleJob(run, onDone)
}
