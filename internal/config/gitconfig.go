package config

import (
	"os/exec"
	"strconv"
	"strings"
)

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string, repoPath string) (string, error)

// runGitConfig executes a git config command and returns raw output.
func runGitConfig(args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args, repoPath)
	}
	cmd := exec.Command("git", args...)
	if repoPath != "" {
		cmd.Dir = repoPath
	}
	output, err := cmd.Output()
	if err != nil {
		// exit code 1 means no matching keys, not an error
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// ApplyGitConfigOverlay reads gitui.* keys from the repository's git
// config and applies the recognized ones over cfg, so per-repo tuning
// (e.g. whitespace handling for a vendored tree) lives next to the repo.
func ApplyGitConfigOverlay(cfg *AppConfig, repoPath string) {
	output, err := runGitConfig([]string{"config", "--get-regexp", `^gitui\.`}, repoPath)
	if err != nil || output == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		key, value, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		switch strings.TrimPrefix(key, "gitui.") {
		case "theme":
			if normalized := NormalizeThemeName(value); normalized != "" {
				cfg.Theme = normalized
			}
		case "syntaxtheme":
			cfg.SyntaxTheme = value
		case "contextlines":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				cfg.ContextLines = n
			}
		case "interhunklines":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				cfg.InterhunkLines = n
			}
		case "ignorewhitespace":
			cfg.IgnoreWhitespace = value == "true" || value == "1"
		case "maxdiffchars":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				cfg.MaxDiffChars = n
			}
		}
	}
}
