package gitrepo

import (
	"context"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func gitIn(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func TestEmptyRepoHasNoHead(t *testing.T) {
	dir := t.TempDir()
	gitIn(t, dir, "init", "-q", "-b", "master")
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	_, err := h.Head(ctx)
	require.ErrorAs(t, err, &ErrNoHead{})

	_, err = h.HeadBranchName(ctx)
	require.ErrorAs(t, err, &ErrNoHead{})
}

func TestFirstCommitCreatesHeadBranch(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	head, err := h.Head(ctx)
	require.NoError(t, err)
	require.False(t, head.IsZero())

	branches, err := h.Branches(ctx, BranchLocal)
	require.NoError(t, err)
	require.Len(t, branches, 1)
	require.Equal(t, "master", branches[0].Name)
	require.True(t, branches[0].Details.IsHead)
}

func TestDeleteBranchRemovesOnlyIt(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	_, err := h.CreateBranch(ctx, "branch1")
	require.NoError(t, err)
	_, err = h.CreateBranch(ctx, "branch2")
	require.NoError(t, err)
	require.NoError(t, h.CheckoutBranch(ctx, "branch1"))
	require.NoError(t, h.DeleteBranch(ctx, "refs/heads/branch2"))

	branches, err := h.Branches(ctx, BranchLocal)
	require.NoError(t, err)
	names := make([]string, len(branches))
	for i, b := range branches {
		names[i] = b.Name
	}
	require.Equal(t, []string{"branch1", "master"}, names)
}

func TestCannotDeleteCheckedOutBranch(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	err := h.DeleteBranch(ctx, "refs/heads/master")
	require.ErrorAs(t, err, &ErrCannotDeleteCurrentBranch{})
}

func TestCreateRenameDeleteRoundTrip(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	ref, err := h.CreateBranch(ctx, "old-name")
	require.NoError(t, err)
	require.NoError(t, h.RenameBranch(ctx, ref, "new-name"))
	require.NoError(t, h.DeleteBranch(ctx, "refs/heads/new-name"))

	branches, err := h.Branches(ctx, BranchLocal)
	require.NoError(t, err)
	for _, b := range branches {
		require.NotEqual(t, "old-name", b.Name)
		require.NotEqual(t, "new-name", b.Name)
	}
}

func TestDefaultRemoteRules(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	// no remotes at all
	_, err := h.DefaultRemote(ctx)
	require.ErrorAs(t, err, &ErrNoDefaultRemoteFound{})

	// a single non-origin remote is the default
	require.NoError(t, h.AddRemote(ctx, "upstream", "https://example.com/a.git"))
	remote, err := h.DefaultRemote(ctx)
	require.NoError(t, err)
	require.Equal(t, "upstream", remote)

	// two remotes, neither origin: no default
	require.NoError(t, h.AddRemote(ctx, "fork", "https://example.com/b.git"))
	_, err = h.DefaultRemote(ctx)
	require.ErrorAs(t, err, &ErrNoDefaultRemoteFound{})

	// origin always wins
	require.NoError(t, h.AddRemote(ctx, "origin", "https://example.com/c.git"))
	remote, err = h.DefaultRemote(ctx)
	require.NoError(t, err)
	require.Equal(t, "origin", remote)
}

func TestStageUnstageRestoresStatus(t *testing.T) {
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	dirtyFile(t, dir, "f.txt", "changed")
	before, err := h.Status(ctx, false)
	require.NoError(t, err)

	require.NoError(t, h.Stage(ctx, "f.txt"))
	require.NoError(t, h.Unstage(ctx, "f.txt"))

	after, err := h.Status(ctx, false)
	require.NoError(t, err)
	require.Equal(t, before, after)
}
