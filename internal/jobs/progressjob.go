package jobs

import (
	"context"

	"github.com/chmouel/gogitui/internal/gitrepo"
	"github.com/chmouel/gogitui/internal/notify"
)

// pusher/fetcher are the subset of *gitrepo.Handle a progress job drives.
type pusher interface {
	Push(ctx context.Context, remote, refspec string, force bool, onProgress gitrepo.ProgressFunc) error
	SetUpstreamIfMissing(ctx context.Context, branch, remote string) error
	GetBranchRemote(ctx context.Context, branch string) (string, error)
}

type fetcher interface {
	Fetch(ctx context.Context, remote string, prune bool, onProgress gitrepo.ProgressFunc) error
}

type tagPusher interface {
	PushTags(ctx context.Context, remote string, onProgress gitrepo.ProgressFunc) error
}

// RunPush streams each ProgressNotification to sender as
// notify.ProgressMsg{Kind: GitPush}, then sends the completing
// notify.GitNotification{Kind: GitPush}. When the local branch had no
// upstream before the push, the upstream is set afterwards.
func RunPush(ctx context.Context, h pusher, sender notify.Sender, branch, remote, refspec string, force bool) {
	hadUpstream := true
	if branch != "" {
		if existing, err := h.GetBranchRemote(ctx, branch); err == nil && existing == "" {
			hadUpstream = false
		}
	}

	err := h.Push(ctx, remote, refspec, force, func(p gitrepo.ProgressNotification) {
		sender.Send(notify.ProgressMsg{Kind: notify.GitPush, Progress: p})
	})
	if err == nil && !hadUpstream && branch != "" {
		if setErr := h.SetUpstreamIfMissing(ctx, branch, remote); setErr != nil {
			sender.Send(notify.GitNotification{Kind: notify.GitPush, Err: setErr})
			return
		}
	}
	sender.Send(notify.GitNotification{Kind: notify.GitPush, Err: err})
}

// RunPushTags pushes all tags, streaming progress the same way RunPush
// does but completing with GitPushTags.
func RunPushTags(ctx context.Context, h tagPusher, sender notify.Sender, remote string) {
	err := h.PushTags(ctx, remote, func(p gitrepo.ProgressNotification) {
		sender.Send(notify.ProgressMsg{Kind: notify.GitPushTags, Progress: p})
	})
	sender.Send(notify.GitNotification{Kind: notify.GitPushTags, Err: err})
}

// RunFetch mirrors RunPush for a fetch.
func RunFetch(ctx context.Context, h fetcher, sender notify.Sender, remote string, prune bool) {
	err := h.Fetch(ctx, remote, prune, func(p gitrepo.ProgressNotification) {
		sender.Send(notify.ProgressMsg{Kind: notify.GitFetch, Progress: p})
	})
	sender.Send(notify.GitNotification{Kind: notify.GitFetch, Err: err})
}
