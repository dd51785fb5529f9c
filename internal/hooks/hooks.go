// Package hooks locates and executes Git hook scripts: pre-commit,
// commit-msg, post-commit, and prepare-commit-msg.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/chmouel/gogitui/internal/log"
)

// Kind is one of the four hooks the commit flow can invoke.
type Kind string

const (
	PreCommit        Kind = "pre-commit"
	CommitMsg        Kind = "commit-msg"
	PostCommit       Kind = "post-commit"
	PrepareCommitMsg Kind = "prepare-commit-msg"
)

// Repo is the minimal view of a repository the hook runner needs. It is a
// narrow struct (rather than depending on gitrepo.Handle directly) so
// the two packages don't form an import cycle.
type Repo struct {
	GitDir        string
	WorkDir       string // empty for a bare repo with no external workdir
	CoreHooksPath string // value of core.hooksPath, or "" if unset
}

// cwd is the directory the hook subprocess runs in: the workdir for
// non-bare repos, the gitdir for bare repos without a separate workdir.
func (r Repo) cwd() string {
	if r.WorkDir != "" {
		return r.WorkDir
	}
	return r.GitDir
}

// Result reports a hook's outcome. Ok is true on exit code 0 *or* when the
// hook is missing/non-executable: that is success, not an error.
type Result struct {
	Ok      bool
	Message string // combined stdout+stderr, when !Ok
}

// resolvePath finds the hook script: core.hooksPath override, else
// <gitdir>/hooks/<hook>, then shell-expand ~ and $VAR references.
func (r Repo) resolvePath(kind Kind) string {
	var base string
	if r.CoreHooksPath != "" {
		base = r.CoreHooksPath
	} else {
		base = filepath.Join(r.GitDir, "hooks")
	}
	return expandShell(filepath.Join(base, string(kind)))
}

func expandShell(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.Expand(path, func(name string) string {
		return os.Getenv(name)
	})
}

// isExecutable reports whether the hook can run: any of the 0o111 bits
// on Unix, always true on Windows (a hook script with no mode bit is
// still runnable through bash there).
func isExecutable(path string) bool {
	if runtime.GOOS == "windows" {
		_, err := os.Stat(path)
		return err == nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&0o111 != 0
}

// Run locates and executes the named hook with args. A missing or
// non-executable hook is not an error; it returns Result{Ok: true}.
func Run(ctx context.Context, repo Repo, kind Kind, args ...string) Result {
	path := repo.resolvePath(kind)
	if _, err := os.Stat(path); err != nil {
		return Result{Ok: true}
	}
	if !isExecutable(path) {
		return Result{Ok: true}
	}

	bash, err := findBashExecutable()
	if err != nil {
		log.Printf("hooks: %v", err)
		bash = "bash"
	}

	quoted := shellQuote(path)
	shellCmd := quoted
	for _, a := range args {
		shellCmd += " " + shellQuote(a)
	}

	// #nosec G204 -- the hook path and args originate from repo config / internal logic, not external input
	cmd := exec.CommandContext(ctx, bash, "-l", "-c", shellCmd)
	cmd.Dir = repo.cwd()
	// The hook inherits this process's environment plus GOGITUI_HOOK_EXEC=1.
	cmd.Env = append(os.Environ(), "GOGITUI_HOOK_EXEC=1")

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	runErr := cmd.Run()
	combined := out.String()
	if runErr == nil {
		return Result{Ok: true}
	}
	return Result{Ok: false, Message: combined}
}

// RunCommitMsg is the commit-msg hook's special case: the message is
// written to <gitdir>/COMMIT_EDITMSG, that path is passed as
// the hook's single argument, and after the hook returns (Ok or not) the
// file is read back and replaces the in-memory message.
func RunCommitMsg(ctx context.Context, repo Repo, message string) (newMessage string, result Result) {
	tmpPath := filepath.Join(repo.GitDir, "COMMIT_EDITMSG")
	if err := os.WriteFile(tmpPath, []byte(message), 0o600); err != nil {
		return message, Result{Ok: false, Message: fmt.Sprintf("writing %s: %v", tmpPath, err)}
	}

	result = Run(ctx, repo, CommitMsg, tmpPath)

	if data, err := os.ReadFile(tmpPath); err == nil {
		newMessage = string(data)
	} else {
		newMessage = message
	}
	return newMessage, result
}

// RunPrepareCommitMsg mirrors RunCommitMsg for the prepare-commit-msg
// hook. The hook receives the tempfile path and the "message" source
// marker; its rewrite of the file is read back regardless of outcome,
// and a non-zero exit is reported but conventionally not fatal.
func RunPrepareCommitMsg(ctx context.Context, repo Repo, message string) (newMessage string, result Result) {
	tmpPath := filepath.Join(repo.GitDir, "COMMIT_EDITMSG")
	if err := os.WriteFile(tmpPath, []byte(message), 0o600); err != nil {
		return message, Result{Ok: false, Message: fmt.Sprintf("writing %s: %v", tmpPath, err)}
	}

	result = Run(ctx, repo, PrepareCommitMsg, tmpPath, "message")

	if data, err := os.ReadFile(tmpPath); err == nil {
		newMessage = string(data)
	} else {
		newMessage = message
	}
	return newMessage, result
}

// findBashExecutable locates the shell hooks run under: on non-Windows,
// "bash" on PATH is used directly. On Windows, walk up from git.exe to
// usr/bin/bash.exe, falling back to the literal "bash" if that layout
// isn't found (e.g. scoop/chocolatey installs).
func findBashExecutable() (string, error) {
	if runtime.GOOS != "windows" {
		return "bash", nil
	}
	gitPath, err := exec.LookPath("git.exe")
	if err != nil {
		return "bash", nil //nolint:nilerr // documented fallback, not an error
	}
	candidate := filepath.Join(filepath.Dir(gitPath), "..", "..", "usr", "bin", "bash.exe")
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "bash", nil
}

// shellQuote produces a POSIX-shell-safe single-quoted token.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
