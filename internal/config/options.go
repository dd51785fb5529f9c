package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Options is the small mutable state persisted between runs, most
// notably the commit-message history surfaced by the commit popup's
// "previous message" key.
type Options struct {
	MessageHistory []string `yaml:"message_history"`

	path    string
	maxSize int
}

// optionsDir returns the state directory options are persisted in.
func optionsDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "gogitui")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "gogitui")
}

// LoadOptions reads the persisted options, returning empty options when
// the file is missing or unreadable.
func LoadOptions(maxHistory int) *Options {
	if maxHistory <= 0 {
		maxHistory = 20
	}
	opts := &Options{maxSize: maxHistory}
	dir := optionsDir()
	if dir == "" {
		return opts
	}
	opts.path = filepath.Join(dir, "options.yaml")
	data, err := os.ReadFile(opts.path)
	if err != nil {
		return opts
	}
	_ = yaml.Unmarshal(data, opts)
	if len(opts.MessageHistory) > opts.maxSize {
		opts.MessageHistory = opts.MessageHistory[:opts.maxSize]
	}
	return opts
}

// AppendMessage records a committed message at the front of the history,
// deduplicating and trimming to the configured size, then saves.
func (o *Options) AppendMessage(msg string) {
	if msg == "" {
		return
	}
	history := []string{msg}
	for _, m := range o.MessageHistory {
		if m != msg {
			history = append(history, m)
		}
	}
	if len(history) > o.maxSize {
		history = history[:o.maxSize]
	}
	o.MessageHistory = history
	o.save()
}

// PreviousMessage returns the nth most recent message, ok=false when the
// history is shorter than that.
func (o *Options) PreviousMessage(n int) (string, bool) {
	if n < 0 || n >= len(o.MessageHistory) {
		return "", false
	}
	return o.MessageHistory[n], true
}

func (o *Options) save() {
	if o.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(o.path), 0o750); err != nil {
		return
	}
	data, err := yaml.Marshal(o)
	if err != nil {
		return
	}
	_ = os.WriteFile(o.path, data, 0o600)
}
