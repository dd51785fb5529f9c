package hooks

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func repoWithGitDir(t *testing.T) Repo {
	t.Helper()
	dir := t.TempDir()
	gitDir := filepath.Join(dir, ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "hooks"), 0o750))
	return Repo{GitDir: gitDir, WorkDir: dir}
}

func TestRunMissingHookIsOk(t *testing.T) {
	repo := repoWithGitDir(t)
	result := Run(context.Background(), repo, PreCommit)
	require.True(t, result.Ok)
	require.Empty(t, result.Message)
}

func TestRunNonExecutableHookIsOk(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit is meaningless on windows")
	}
	repo := repoWithGitDir(t)
	hookPath := filepath.Join(repo.GitDir, "hooks", string(PreCommit))
	require.NoError(t, os.WriteFile(hookPath, []byte("#!/bin/sh\nexit 1\n"), 0o600))

	result := Run(context.Background(), repo, PreCommit)
	require.True(t, result.Ok)
}

func TestRunRejectingHookReturnsNotOk(t *testing.T) {
	repo := repoWithGitDir(t)
	hookPath := filepath.Join(repo.GitDir, "hooks", string(PreCommit))
	script := "#!/bin/sh\nprintf 'rejected\\n'\nexit 1\n"
	require.NoError(t, os.WriteFile(hookPath, []byte(script), 0o755))

	result := Run(context.Background(), repo, PreCommit)
	require.False(t, result.Ok)
	require.Equal(t, "rejected\n", result.Message)
}

func TestRunCommitMsgRewritesMessage(t *testing.T) {
	repo := repoWithGitDir(t)
	hookPath := filepath.Join(repo.GitDir, "hooks", string(CommitMsg))
	script := "#!/bin/sh\nprintf 'msg\\n' > \"$1\"\nexit 0\n"
	require.NoError(t, os.WriteFile(hookPath, []byte(script), 0o755))

	newMsg, result := RunCommitMsg(context.Background(), repo, "original message\n")
	require.True(t, result.Ok)
	require.Equal(t, "msg\n", newMsg)
}

func TestRunCommitMsgKeepsOriginalWhenHookMissing(t *testing.T) {
	repo := repoWithGitDir(t)
	newMsg, result := RunCommitMsg(context.Background(), repo, "original message\n")
	require.True(t, result.Ok)
	require.Equal(t, "original message\n", newMsg)
}

func TestResolvePathHonoursCoreHooksPath(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom-hooks")
	require.NoError(t, os.MkdirAll(custom, 0o750))
	repo := Repo{GitDir: filepath.Join(dir, ".git"), WorkDir: dir, CoreHooksPath: custom}

	require.Equal(t, filepath.Join(custom, "pre-commit"), repo.resolvePath(PreCommit))
}

func TestExpandShellExpandsHomeAndEnv(t *testing.T) {
	t.Setenv("HOOKS_TEST_VAR", "expanded")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got := expandShell(filepath.Join("~", "$HOOKS_TEST_VAR"))
	require.Equal(t, filepath.Join(home, "expanded"), got)
}
