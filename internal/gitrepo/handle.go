package gitrepo

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chmouel/gogitui/internal/log"
)

// NotifyFn receives ongoing, non-fatal notifications (e.g. a background
// status refresh failed). Mirrors the callback shape the rest of the
// codebase uses to avoid importing the notification bus from here.
type NotifyFn func(message string, severity string)

// Handle opens a repository at a RepoPath and carries the repository
// operations as methods. A Handle
// has no mutable shared state beyond what the git binary itself holds;
// it is safe to create one per worker goroutine.
type Handle struct {
	path RepoPath

	notify NotifyFn

	mainBranchCache string
	gitHostCache    string
}

// Open returns a Handle rooted at path. It does not itself verify the
// path is a git repository; the first operation that needs a git
// command to succeed will surface ErrGit if it is not.
func Open(path RepoPath, notify NotifyFn) *Handle {
	if notify == nil {
		notify = func(string, string) {}
	}
	return &Handle{path: path, notify: notify}
}

// GitDir returns the .git directory for this handle's repository.
func (h *Handle) GitDir() string {
	if h.path.IsSplit() {
		return h.path.GitDir
	}
	return filepath.Join(h.path.Dir, ".git")
}

// WorkDir returns the working tree directory for this handle's repository.
func (h *Handle) WorkDir() string {
	if h.path.IsSplit() {
		return h.path.WorkDir
	}
	return h.path.Dir
}

// cwd returns the directory git commands should run in: the workdir when
// one exists, otherwise the gitdir (bare repo with no external workdir).
func (h *Handle) cwd() string {
	if wd := h.WorkDir(); wd != "" {
		return wd
	}
	return h.GitDir()
}

func (h *Handle) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

// run executes `git <args...>` in the repo's working directory and
// returns its trimmed stdout. okCodes lists exit codes that should not be
// treated as failure (git config, rev-parse --verify, etc. use 1 to mean
// "not found"). On an unexpected exit code it returns ErrGit.
func (h *Handle) run(ctx context.Context, args []string, okCodes ...int) (string, error) {
	if len(okCodes) == 0 {
		okCodes = []int{0}
	}
	command := strings.Join(args, " ")
	h.debugf("run: git %s (cwd=%s)", command, h.cwd())

	// #nosec G204 -- args are built from internal logic, never shell-interpolated
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = h.cwd()

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if slices.Contains(okCodes, code) {
				return strings.TrimSpace(string(out)), nil
			}
			gitErr := ErrGit{Args: args, ExitCode: code, Stderr: strings.TrimSpace(string(exitErr.Stderr))}
			h.debugf("error: git %s: %v", command, gitErr)
			return "", gitErr
		}
		h.debugf("error: git %s: %v", command, err)
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// runChecked runs a mutating git command and returns combined output on
// failure, for surfacing to the user (e.g. a hook rejection's message).
func (h *Handle) runChecked(ctx context.Context, args []string) (string, error) {
	command := strings.Join(args, " ")
	h.debugf("run: git %s (cwd=%s)", command, h.cwd())

	// #nosec G204 -- args are built from internal logic, never shell-interpolated
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = h.cwd()

	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", ErrGit{Args: args, ExitCode: exitErr.ExitCode(), Stderr: strings.TrimSpace(string(out))}
		}
		return "", err
	}
	return string(out), nil
}

// runWithStdin executes `git <args...>` feeding stdin on the subprocess's
// standard input and returning its trimmed-free stdout. Used for commands
// that read an object from stdin, such as hash-object.
func (h *Handle) runWithStdin(ctx context.Context, args []string, stdin string) (string, error) {
	command := strings.Join(args, " ")
	h.debugf("run: git %s (cwd=%s, stdin=%d bytes)", command, h.cwd(), len(stdin))

	// #nosec G204 -- args are built from internal logic, never shell-interpolated
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = h.cwd()
	cmd.Stdin = strings.NewReader(stdin)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", ErrGit{Args: args, ExitCode: exitErr.ExitCode(), Stderr: strings.TrimSpace(string(exitErr.Stderr))}
		}
		return "", err
	}
	return string(out), nil
}

// Path returns the RepoPath this handle was opened with.
func (h *Handle) Path() RepoPath { return h.path }
