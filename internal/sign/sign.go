// Package sign implements the two commit-signing backends: openpgp
// (via gpg) and ssh (via ssh-keygen). Dispatch is a tagged variant with
// one case per backend.
package sign

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Format selects the signing backend, mirroring git's gpg.format values.
type Format string

const (
	FormatOpenPGP Format = "openpgp"
	FormatSSH     Format = "ssh"
	FormatX509    Format = "x509"
)

// Config carries the program/key configuration read from git config.
type Config struct {
	Format Format
	Key    string

	// OpenPGP backend.
	OpenPGPProgram string // gpg.openpgp.program, falls back to gpg.program, then "gpg"

	// SSH backend.
	SSHProgram string // gpg.ssh.program, falls back to "ssh-keygen"
}

// ErrMethodNotImplemented is returned for recognised-but-unsupported
// formats (x509).
type ErrMethodNotImplemented struct{ Format Format }

func (e ErrMethodNotImplemented) Error() string {
	return fmt.Sprintf("signing format %q is not implemented", e.Format)
}

// ErrEncryptedKey is returned when an SSH signing key is encrypted.
type ErrEncryptedKey struct{ Key string }

func (e ErrEncryptedKey) Error() string {
	return fmt.Sprintf("ssh signing key %q is encrypted and cannot be used non-interactively", e.Key)
}

// ErrSignFailed wraps a non-zero exit or missing success marker from the
// signing subprocess.
type ErrSignFailed struct {
	Program string
	Detail  string
}

func (e ErrSignFailed) Error() string {
	return fmt.Sprintf("%s: %s", e.Program, e.Detail)
}

// Signature is the result of a successful Sign call: the signature bytes
// and the trailer field name git should attach them under (e.g. "gpgsig").
type Signature struct {
	Data         string
	TrailerField string
}

// Sign dispatches to the configured backend and signs buf (the commit
// object buffer, sans the signature trailer).
func Sign(ctx context.Context, cfg Config, buf []byte) (Signature, error) {
	switch cfg.Format {
	case FormatOpenPGP, "":
		return signOpenPGP(ctx, cfg, buf)
	case FormatSSH:
		return signSSH(ctx, cfg, buf)
	case FormatX509:
		return Signature{}, ErrMethodNotImplemented{Format: cfg.Format}
	default:
		return Signature{}, ErrMethodNotImplemented{Format: cfg.Format}
	}
}

// signOpenPGP invokes `<program> --status-fd=2 -bsau <key>`, feeding buf on
// stdin. Success requires exit code 0 *and* stderr containing the
// "[GNUPG:] SIG_CREATED " marker.
func signOpenPGP(ctx context.Context, cfg Config, buf []byte) (Signature, error) {
	program := cfg.OpenPGPProgram
	if program == "" {
		program = "gpg"
	}

	// #nosec G204 -- program/key come from git config, controlled by the local user
	cmd := exec.CommandContext(ctx, program, "--status-fd=2", "-bsau", cfg.Key)
	cmd.Stdin = bytes.NewReader(buf)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	stderrStr := stderr.String()

	if runErr != nil {
		return Signature{}, ErrSignFailed{Program: program, Detail: strings.TrimSpace(stderrStr)}
	}
	if !strings.Contains(stderrStr, "\n[GNUPG:] SIG_CREATED ") && !strings.HasPrefix(stderrStr, "[GNUPG:] SIG_CREATED ") {
		return Signature{}, ErrSignFailed{Program: program, Detail: "missing SIG_CREATED marker"}
	}

	return Signature{Data: stdout.String(), TrailerField: "gpgsig"}, nil
}

// signSSH invokes `<program> -Y sign -n git -f <keyfile>`. When program is
// ssh-keygen, -P "" is also passed (no passphrase prompt). An inline
// public key (one starting with "ssh-") is written to a tempfile which is
// removed (best-effort) after signing.
func signSSH(ctx context.Context, cfg Config, buf []byte) (Signature, error) {
	program := cfg.SSHProgram
	if program == "" {
		program = "ssh-keygen"
	}

	keyPath := cfg.Key
	var tempFile string
	if strings.HasPrefix(cfg.Key, "ssh-") {
		f, err := os.CreateTemp("", "gitui-ssh-sign-*.pub")
		if err != nil {
			return Signature{}, err
		}
		tempFile = f.Name()
		if _, err := f.WriteString(cfg.Key); err != nil {
			_ = f.Close()
			_ = os.Remove(tempFile)
			return Signature{}, err
		}
		_ = f.Close()
		keyPath = tempFile
		defer func() { _ = os.Remove(tempFile) }()
	}

	args := []string{"-Y", "sign", "-n", "git", "-f", keyPath}
	if filepathBase(program) == "ssh-keygen" {
		args = append(args, "-P", "")
	}

	// #nosec G204 -- program/key path come from git config, controlled by the local user
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdin = bytes.NewReader(buf)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		// ssh-keygen refuses an encrypted key by prompting for (or
		// complaining about) a passphrase on stderr.
		if strings.Contains(detail, "passphrase") {
			return Signature{}, ErrEncryptedKey{Key: cfg.Key}
		}
		return Signature{}, ErrSignFailed{Program: program, Detail: detail}
	}

	return Signature{Data: stdout.String(), TrailerField: "gpgsig"}, nil
}

func filepathBase(p string) string {
	if idx := strings.LastIndexAny(p, `/\`); idx >= 0 {
		return p[idx+1:]
	}
	return p
}
