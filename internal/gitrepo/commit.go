package gitrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/chmouel/gogitui/internal/hooks"
	"github.com/chmouel/gogitui/internal/sign"
)

// ErrHook wraps a hook rejection as a HookError.
type ErrHook struct {
	Kind    hooks.Kind
	Message string
}

func (e ErrHook) Error() string { return e.Message }

func (h *Handle) hookRepo(ctx context.Context) hooks.Repo {
	coreHooksPath, _ := h.ConfigString(ctx, "core.hooksPath")
	return hooks.Repo{GitDir: h.GitDir(), WorkDir: h.WorkDir(), CoreHooksPath: coreHooksPath}
}

// SigningConfig resolves the commit-signing backend from git config, per
// An empty Format with commit.gpgSign unset means "don't sign".
func (h *Handle) SigningConfig(ctx context.Context) (sign.Config, bool, error) {
	doSign, _ := h.ConfigString(ctx, "commit.gpgSign")
	if doSign != "true" && doSign != "1" {
		return sign.Config{}, false, nil
	}

	format, _ := h.ConfigString(ctx, "gpg.format")
	key, _ := h.ConfigString(ctx, "user.signingkey")

	cfg := sign.Config{Format: sign.Format(format), Key: key}
	switch cfg.Format {
	case sign.FormatSSH:
		prog, _ := h.ConfigString(ctx, "gpg.ssh.program")
		cfg.SSHProgram = prog
	default:
		prog, _ := h.ConfigString(ctx, "gpg.openpgp.program")
		if prog == "" {
			prog, _ = h.ConfigString(ctx, "gpg.program")
		}
		cfg.OpenPGPProgram = prog
	}
	return cfg, true, nil
}

// runHookOrFail runs kind and converts a non-Ok result into an ErrHook.
func (h *Handle) runHookOrFail(ctx context.Context, kind hooks.Kind) error {
	result := hooks.Run(ctx, h.hookRepo(ctx), kind)
	if !result.Ok {
		return ErrHook{Kind: kind, Message: result.Message}
	}
	return nil
}

// resolveCommitMessage runs prepare-commit-msg then commit-msg, in that
// order, against msg, returning the final message text. A hook rejection
// at either stage aborts without creating a commit.
func (h *Handle) resolveCommitMessage(ctx context.Context, msg string) (string, error) {
	repo := h.hookRepo(ctx)
	msg = PrettifyMessage(msg)

	prepared, prepResult := hooks.RunPrepareCommitMsg(ctx, repo, msg)
	_ = prepResult // prepare-commit-msg rejections are conventionally ignored; only commit-msg is fatal

	final, msgResult := hooks.RunCommitMsg(ctx, repo, prepared)
	if !msgResult.Ok {
		return "", ErrHook{Kind: hooks.CommitMsg, Message: msgResult.Message}
	}
	return final, nil
}

// buildCommitObject assembles, optionally signs, and writes (via
// git hash-object) a commit object, returning its new CommitId.
func (h *Handle) buildCommitObject(ctx context.Context, tree string, parents []CommitId, message string) (CommitId, error) {
	authorIdent, err := h.run(ctx, []string{"var", "GIT_AUTHOR_IDENT"})
	if err != nil {
		return CommitId{}, err
	}
	committerIdent, err := h.run(ctx, []string{"var", "GIT_COMMITTER_IDENT"})
	if err != nil {
		return CommitId{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "tree %s\n", tree)
	for _, p := range parents {
		fmt.Fprintf(&b, "parent %s\n", p.String())
	}
	fmt.Fprintf(&b, "author %s\n", authorIdent)
	fmt.Fprintf(&b, "committer %s\n", committerIdent)

	signCfg, shouldSign, err := h.SigningConfig(ctx)
	if err != nil {
		return CommitId{}, err
	}
	if shouldSign {
		sig, err := sign.Sign(ctx, signCfg, []byte(b.String()))
		if err != nil {
			return CommitId{}, err
		}
		b.WriteString(sig.TrailerField)
		b.WriteString(" ")
		b.WriteString(indentSignature(sig.Data))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(message)

	id, err := h.hashObject(ctx, "commit", b.String())
	if err != nil {
		return CommitId{}, err
	}
	return id, nil
}

// indentSignature embeds a multi-line armored signature in a commit
// object header: the first line follows "gpgsig ", every subsequent line
// is prefixed with a single space, per git's header continuation rule.
func indentSignature(sig string) string {
	lines := strings.Split(strings.TrimRight(sig, "\n"), "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = " " + lines[i]
	}
	return strings.Join(lines, "\n")
}

func (h *Handle) hashObject(ctx context.Context, objType, content string) (CommitId, error) {
	cmd := []string{"hash-object", "-t", objType, "-w", "--stdin"}
	out, err := h.runWithStdin(ctx, cmd, content)
	if err != nil {
		return CommitId{}, err
	}
	return NewCommitId(strings.TrimSpace(out)), nil
}

func (h *Handle) updateRef(ctx context.Context, ref string, newID CommitId, oldID CommitId) error {
	args := []string{"update-ref", ref, newID.String()}
	if !oldID.IsZero() {
		args = append(args, oldID.String())
	}
	_, err := h.runChecked(ctx, args)
	return err
}

// Commit runs pre-commit, prepare-commit-msg, and commit-msg, then
// writes a new commit object from the current index onto HEAD.
func (h *Handle) Commit(ctx context.Context, msg string) (CommitId, error) {
	if err := h.runHookOrFail(ctx, hooks.PreCommit); err != nil {
		return CommitId{}, err
	}

	finalMsg, err := h.resolveCommitMessage(ctx, msg)
	if err != nil {
		return CommitId{}, err
	}

	tree, err := h.run(ctx, []string{"write-tree"})
	if err != nil {
		return CommitId{}, err
	}

	var parents []CommitId
	head, err := h.Head(ctx)
	if err == nil {
		parents = []CommitId{head}
	} else if _, ok := err.(ErrNoHead); !ok {
		return CommitId{}, err
	}

	newID, err := h.buildCommitObject(ctx, tree, parents, finalMsg)
	if err != nil {
		return CommitId{}, err
	}
	if err := h.updateRef(ctx, "HEAD", newID, head); err != nil {
		return CommitId{}, err
	}

	_ = h.runHookOrFail(ctx, hooks.PostCommit) // post-commit failures are logged, not fatal to the commit

	return newID, nil
}

// AmendTarget selects the commit to amend; typically HEAD.
type AmendTarget struct{ Commit CommitId }

// Amend replaces target's tree with the current index and its message
// with msg, keeping the same parents. Only amending HEAD is supported
// directly (see DESIGN.md for the scoping decision).
func (h *Handle) Amend(ctx context.Context, target AmendTarget, msg string) (CommitId, error) {
	head, err := h.Head(ctx)
	if err != nil {
		return CommitId{}, err
	}
	if !target.Commit.IsZero() && !target.Commit.Equal(head) {
		return CommitId{}, ErrGeneric{Message: "amending a commit other than HEAD is not supported"}
	}

	parentsRaw, err := h.run(ctx, []string{"log", "-1", "--pretty=%P", head.String()})
	if err != nil {
		return CommitId{}, err
	}
	parents := parseParents(parentsRaw)

	finalMsg, err := h.resolveCommitMessage(ctx, msg)
	if err != nil {
		return CommitId{}, err
	}

	tree, err := h.run(ctx, []string{"write-tree"})
	if err != nil {
		return CommitId{}, err
	}

	newID, err := h.buildCommitObject(ctx, tree, parents, finalMsg)
	if err != nil {
		return CommitId{}, err
	}
	if err := h.updateRef(ctx, "HEAD", newID, head); err != nil {
		return CommitId{}, err
	}
	return newID, nil
}

// MergeCommit creates a commit with the given explicit parent list (more
// than one for an actual merge), using the currently staged tree.
func (h *Handle) MergeCommit(ctx context.Context, msg string, parents []CommitId) (CommitId, error) {
	finalMsg, err := h.resolveCommitMessage(ctx, msg)
	if err != nil {
		return CommitId{}, err
	}
	tree, err := h.run(ctx, []string{"write-tree"})
	if err != nil {
		return CommitId{}, err
	}
	newID, err := h.buildCommitObject(ctx, tree, parents, finalMsg)
	if err != nil {
		return CommitId{}, err
	}
	head, _ := h.Head(ctx)
	if err := h.updateRef(ctx, "HEAD", newID, head); err != nil {
		return CommitId{}, err
	}
	return newID, nil
}

// Reword changes only id's message, keeping its tree and parents. Only
// rewording HEAD is supported directly; rewording an ancestor would
// require rewriting every descendant and is left to a caller-driven
// rebase (out of scope for this primitive, see DESIGN.md).
func (h *Handle) Reword(ctx context.Context, id CommitId, msg string) (CommitId, error) {
	head, err := h.Head(ctx)
	if err != nil {
		return CommitId{}, err
	}
	if !id.Equal(head) {
		return CommitId{}, ErrGeneric{Message: "rewording a commit other than HEAD requires a rebase"}
	}

	tree, err := h.run(ctx, []string{"rev-parse", id.String() + "^{tree}"})
	if err != nil {
		return CommitId{}, err
	}
	parentsRaw, err := h.run(ctx, []string{"log", "-1", "--pretty=%P", id.String()})
	if err != nil {
		return CommitId{}, err
	}
	parents := parseParents(parentsRaw)

	newID, err := h.buildCommitObject(ctx, tree, parents, msg)
	if err != nil {
		return CommitId{}, err
	}
	if err := h.updateRef(ctx, "HEAD", newID, head); err != nil {
		return CommitId{}, err
	}
	return newID, nil
}

func parseParents(raw string) []CommitId {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	fields := strings.Fields(raw)
	out := make([]CommitId, len(fields))
	for i, f := range fields {
		out[i] = NewCommitId(f)
	}
	return out
}

// CommitMessage returns a commit's message (subject + body combined).
func (h *Handle) CommitMessage(ctx context.Context, id CommitId) (string, error) {
	out, err := h.run(ctx, []string{"log", "-1", "--pretty=%B", id.String()})
	if err != nil {
		return "", err
	}
	return out, nil
}
