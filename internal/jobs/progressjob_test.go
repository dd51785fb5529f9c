package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chmouel/gogitui/internal/gitrepo"
	"github.com/chmouel/gogitui/internal/notify"
)

type fakePusher struct {
	branchRemote string
	setUpstream  bool
	progressed   []gitrepo.ProgressNotification
}

func (f *fakePusher) Push(_ context.Context, _, _ string, _ bool, onProgress gitrepo.ProgressFunc) error {
	onProgress(gitrepo.ProgressNotification{Kind: gitrepo.ProgressTransfer, Current: 1, Total: 2})
	return nil
}

func (f *fakePusher) SetUpstreamIfMissing(_ context.Context, _, _ string) error {
	f.setUpstream = true
	return nil
}

func (f *fakePusher) GetBranchRemote(_ context.Context, _ string) (string, error) {
	return f.branchRemote, nil
}

func TestRunPush_SetsUpstreamWhenMissing(t *testing.T) {
	bus := notify.NewBus(8)
	p := &fakePusher{branchRemote: ""}

	RunPush(context.Background(), p, bus.Sender(), "feature", "origin", "", false)

	require.True(t, p.setUpstream)

	var gotProgress, gotDone bool
	for i := 0; i < 2; i++ {
		msg := <-bus.Receive()
		switch m := msg.(type) {
		case notify.ProgressMsg:
			gotProgress = true
			require.Equal(t, notify.GitPush, m.Kind)
		case notify.GitNotification:
			gotDone = true
			require.Equal(t, notify.GitPush, m.Kind)
			require.NoError(t, m.Err)
		}
	}
	require.True(t, gotProgress)
	require.True(t, gotDone)
}

func TestRunPush_SkipsUpstreamWhenAlreadySet(t *testing.T) {
	bus := notify.NewBus(8)
	p := &fakePusher{branchRemote: "origin"}

	RunPush(context.Background(), p, bus.Sender(), "feature", "origin", "", false)

	require.False(t, p.setUpstream)
	<-bus.Receive()
	<-bus.Receive()
}
