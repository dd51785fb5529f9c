package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chmouel/gogitui/internal/gitrepo"
)

// fakeRevLister serves a fixed in-memory commit list, paging it the same
// way git rev-list --skip/--max-count would.
type fakeRevLister struct {
	commits []gitrepo.CommitSummary
}

func (f *fakeRevLister) RevList(_ context.Context, _ string, skip, limit int) ([]gitrepo.CommitSummary, error) {
	if skip >= len(f.commits) {
		return nil, nil
	}
	end := skip + limit
	if end > len(f.commits) {
		end = len(f.commits)
	}
	return f.commits[skip:end], nil
}

func makeCommits(n int) []gitrepo.CommitSummary {
	out := make([]gitrepo.CommitSummary, n)
	for i := range out {
		out[i] = gitrepo.CommitSummary{ID: gitrepo.NewCommitId("deadbeef")}
	}
	return out
}

func TestLogWalker_FetchAdvancesAndExhausts(t *testing.T) {
	source := &fakeRevLister{commits: makeCommits(2500)}
	w := NewLogWalker(source, "")

	n, err := w.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, LogBatchSize, n)
	require.False(t, w.Exhausted())

	n, err = w.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2400, n)
	require.False(t, w.Exhausted())

	n, err = w.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2500, n)
	require.True(t, w.Exhausted())
}

func TestLogWalker_FilterAppliesDuringWalk(t *testing.T) {
	commits := []gitrepo.CommitSummary{
		{ID: gitrepo.NewCommitId("a"), Subject: "keep me"},
		{ID: gitrepo.NewCommitId("b"), Subject: "drop me"},
		{ID: gitrepo.NewCommitId("c"), Subject: "keep me too"},
	}
	source := &fakeRevLister{commits: commits}
	w := NewLogWalker(source, "")
	w.SetFilter(func(c gitrepo.CommitSummary) bool {
		return c.Subject != "drop me"
	})

	n, err := w.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.True(t, w.Exhausted())

	slice := w.GetSlice(0, 10)
	require.Len(t, slice, 2)
	require.Equal(t, "keep me", slice[0].Subject)
	require.Equal(t, "keep me too", slice[1].Subject)
}

func TestLogWalker_SetStartResetsWalk(t *testing.T) {
	source := &fakeRevLister{commits: makeCommits(5)}
	w := NewLogWalker(source, "")
	_, err := w.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, w.Count())

	w.SetStart("other-branch")
	require.Equal(t, 0, w.Count())
	require.False(t, w.Exhausted())
}

func TestLogWalker_GetSliceOutOfRange(t *testing.T) {
	source := &fakeRevLister{commits: makeCommits(3)}
	w := NewLogWalker(source, "")
	_, _ = w.Fetch(context.Background())

	require.Nil(t, w.GetSlice(10, 5))
	require.Len(t, w.GetSlice(1, 10), 2)
}
