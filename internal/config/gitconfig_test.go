package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withGitConfigMock(t *testing.T, output string, err error) {
	t.Helper()
	gitConfigMock = func(args []string, repoPath string) (string, error) {
		return output, err
	}
	t.Cleanup(func() { gitConfigMock = nil })
}

func TestApplyGitConfigOverlay(t *testing.T) {
	withGitConfigMock(t, "gitui.theme nord\ngitui.contextlines 7\ngitui.ignorewhitespace true\n", nil)

	cfg := DefaultConfig()
	ApplyGitConfigOverlay(cfg, "")
	assert.Equal(t, "nord", cfg.Theme)
	assert.Equal(t, 7, cfg.ContextLines)
	assert.True(t, cfg.IgnoreWhitespace)
}

func TestApplyGitConfigOverlayIgnoresBadValues(t *testing.T) {
	withGitConfigMock(t, "gitui.theme not-a-theme\ngitui.contextlines minus\ngitui.maxdiffchars -1\n", nil)

	cfg := DefaultConfig()
	ApplyGitConfigOverlay(cfg, "")
	assert.Equal(t, DefaultConfig().Theme, cfg.Theme)
	assert.Equal(t, 3, cfg.ContextLines)
	assert.Equal(t, 200000, cfg.MaxDiffChars)
}

func TestApplyGitConfigOverlayNoKeysIsNoop(t *testing.T) {
	withGitConfigMock(t, "", nil)

	cfg := DefaultConfig()
	before := *cfg
	ApplyGitConfigOverlay(cfg, "")
	assert.Equal(t, before.Theme, cfg.Theme)
}

func TestApplyGitConfigOverlayErrorIsNoop(t *testing.T) {
	withGitConfigMock(t, "", errors.New("git not found"))

	cfg := DefaultConfig()
	ApplyGitConfigOverlay(cfg, "")
	assert.Equal(t, DefaultConfig().ContextLines, cfg.ContextLines)
}
