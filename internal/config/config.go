// Package config loads and persists the application's options: the YAML
// config file, the key-binding overlay merged on top of the defaults,
// and the commit-message history surfaced in the commit popup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chmouel/gogitui/internal/theme"
)

// AppConfig defines the global gogitui configuration options.
type AppConfig struct {
	Theme              string            `yaml:"theme"`
	SyntaxTheme        string            `yaml:"syntax_theme"` // chroma style name; derived from Theme when empty
	DebugLog           string            `yaml:"debug_log"`
	Editor             string            `yaml:"editor"` // external commit-message editor; $EDITOR when empty
	ContextLines       int               `yaml:"context_lines"`
	InterhunkLines     int               `yaml:"interhunk_lines"`
	IgnoreWhitespace   bool              `yaml:"ignore_whitespace"`
	MaxDiffChars       int               `yaml:"max_diff_chars"`
	MessageHistorySize int               `yaml:"message_history_size"`
	KeyBindings        map[string]string `yaml:"key_bindings"`
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Theme:              theme.DraculaName,
		ContextLines:       3,
		InterhunkLines:     0,
		MaxDiffChars:       200000,
		MessageHistorySize: 20,
		KeyBindings:        map[string]string{},
	}
}

// getConfigDir returns the directory the config file lives in.
func getConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gogitui")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gogitui")
}

// LoadConfig reads the config file at configPath (or the default
// location when empty), merging its values over DefaultConfig. A missing
// file is only an error when a path was given explicitly.
func LoadConfig(configPath string) (*AppConfig, error) {
	cfg := DefaultConfig()

	path := configPath
	if path == "" {
		dir := getConfigDir()
		if dir == "" {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && configPath == "" {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("config file %q not found", path)
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *AppConfig) normalize() {
	if c.ContextLines < 0 {
		c.ContextLines = 3
	}
	if c.InterhunkLines < 0 {
		c.InterhunkLines = 0
	}
	if c.MaxDiffChars <= 0 {
		c.MaxDiffChars = 200000
	}
	if c.MessageHistorySize <= 0 {
		c.MessageHistorySize = 20
	}
	if c.KeyBindings == nil {
		c.KeyBindings = map[string]string{}
	}
}

// SaveConfig writes cfg to path (or the default location when empty).
func SaveConfig(cfg *AppConfig, path string) error {
	if path == "" {
		dir := getConfigDir()
		if dir == "" {
			return fmt.Errorf("cannot determine config directory")
		}
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// SyntaxThemeForUITheme maps a UI theme to the chroma style used by the
// highlight job when syntax_theme is not set explicitly.
func SyntaxThemeForUITheme(themeName string) string {
	switch themeName {
	case theme.DraculaLightName, theme.CleanLightName, theme.OneLightName:
		return "github"
	case theme.SolarizedDarkName:
		return "solarized-dark"
	case theme.SolarizedLightName:
		return "solarized-light"
	case theme.GruvboxDarkName:
		return "gruvbox"
	case theme.GruvboxLightName, theme.EverforestLightName:
		return "gruvbox-light"
	case theme.NordName:
		return "nord"
	case theme.MonokaiName:
		return "monokai"
	case theme.CatppuccinMochaName:
		return "catppuccin-mocha"
	case theme.CatppuccinLatteName, theme.RosePineDawnName:
		return "catppuccin-latte"
	default:
		return "dracula"
	}
}

// ResolvedSyntaxTheme returns the chroma style this config selects.
func (c *AppConfig) ResolvedSyntaxTheme() string {
	if c.SyntaxTheme != "" {
		return c.SyntaxTheme
	}
	return SyntaxThemeForUITheme(c.Theme)
}

// NormalizeThemeName returns the canonical theme name if it is
// supported, or "" when it isn't.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, known := range theme.AvailableThemes() {
		if name == known {
			return known
		}
	}
	return ""
}

// ResolvedEditor returns the external editor command, falling back to
// $EDITOR then vi.
func (c *AppConfig) ResolvedEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "vi"
}
