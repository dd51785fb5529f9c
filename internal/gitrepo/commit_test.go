package gitrepo

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndentSignatureIndentsContinuationLines(t *testing.T) {
	sig := "-----BEGIN PGP SIGNATURE-----\nline1\nline2\n-----END PGP SIGNATURE-----\n"
	got := indentSignature(sig)
	want := "-----BEGIN PGP SIGNATURE-----\n line1\n line2\n -----END PGP SIGNATURE-----"
	require.Equal(t, want, got)
}

func TestIndentSignatureSingleLine(t *testing.T) {
	require.Equal(t, "onlyline", indentSignature("onlyline\n"))
}

func TestParseParentsEmpty(t *testing.T) {
	require.Nil(t, parseParents(""))
	require.Nil(t, parseParents("   \n"))
}

func TestParseParentsSingle(t *testing.T) {
	got := parseParents("abc123\n")
	require.Len(t, got, 1)
	require.Equal(t, "abc123", got[0].String())
}

func TestParseParentsMultiple(t *testing.T) {
	got := parseParents("abc123 def456\n")
	require.Len(t, got, 2)
	require.Equal(t, "abc123", got[0].String())
	require.Equal(t, "def456", got[1].String())
}

func writeHook(t *testing.T, dir, name, script string) {
	t.Helper()
	hooksDir := filepath.Join(dir, ".git", "hooks")
	require.NoError(t, os.MkdirAll(hooksDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(hooksDir, name), []byte(script), 0o755))
}

func TestCommitAbortsOnRejectingPreCommitHook(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	headBefore, err := h.Head(ctx)
	require.NoError(t, err)

	writeHook(t, dir, "pre-commit", "#!/bin/sh\nprintf 'rejected\\n'\nexit 1\n")
	dirtyFile(t, dir, "f.txt", "blocked")
	require.NoError(t, h.Stage(ctx, "f.txt"))

	_, err = h.Commit(ctx, "should not land")
	var hookErr ErrHook
	require.ErrorAs(t, err, &hookErr)
	require.Equal(t, "rejected\n", hookErr.Message)

	headAfter, err := h.Head(ctx)
	require.NoError(t, err)
	require.True(t, headAfter.Equal(headBefore), "HEAD must not advance")
}

func TestCommitMsgHookRewritesMessage(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	dir := initTestRepoWithCommits(t, 1)
	h := Open(NewPathRepo(dir), nil)
	ctx := context.Background()

	writeHook(t, dir, "commit-msg", "#!/bin/sh\nprintf 'msg\\n' > \"$1\"\nexit 0\n")
	dirtyFile(t, dir, "f.txt", "rewritten")
	require.NoError(t, h.Stage(ctx, "f.txt"))

	id, err := h.Commit(ctx, "original text")
	require.NoError(t, err)

	msg, err := h.CommitMessage(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "msg", strings.TrimRight(msg, "\n"))
}
