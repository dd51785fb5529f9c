package gitrepo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func initTestRepoWithCommits(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com")
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}
	run("init", "-q", "-b", "master")
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, "f.txt")
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i%26)}, 0o644))
		run("add", "-A")
		run("commit", "-q", "-m", "commit")
	}
	return dir
}

func TestRevList_PagesAndOrders(t *testing.T) {
	dir := initTestRepoWithCommits(t, 5)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	page1, err := h.RevList(ctx, "", 0, 3)
	require.NoError(t, err)
	require.Len(t, page1, 3)

	page2, err := h.RevList(ctx, "", 3, 3)
	require.NoError(t, err)
	require.Len(t, page2, 2)

	for _, c := range append(page1, page2...) {
		require.False(t, c.ID.IsZero())
		require.Equal(t, "test", c.Author)
		require.Equal(t, "commit", c.Subject)
	}
}

func TestRevList_DefaultsToHead(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	commits, err := h.RevList(context.Background(), "", 0, 10)
	require.NoError(t, err)
	require.Len(t, commits, 1)
}
