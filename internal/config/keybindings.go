package config

import (
	"github.com/chmouel/gogitui/internal/log"
)

// Key-binding action names. The config file's key_bindings map uses
// these as keys; values are bubbletea key strings ("c", "ctrl+p", ...).
const (
	ActionQuit          = "quit"
	ActionHelp          = "help"
	ActionRefresh       = "refresh"
	ActionCommit        = "commit"
	ActionAmend         = "amend"
	ActionStage         = "stage"
	ActionUnstage       = "unstage"
	ActionDiscard       = "discard"
	ActionStageHunk     = "stage_hunk"
	ActionUnstageHunk   = "unstage_hunk"
	ActionResetHunk     = "reset_hunk"
	ActionPush          = "push"
	ActionForcePush     = "force_push"
	ActionFetch         = "fetch"
	ActionPushTags      = "push_tags"
	ActionStashSave     = "stash_save"
	ActionStashPop      = "stash_pop"
	ActionStashDrop     = "stash_drop"
	ActionTabStatus     = "tab_status"
	ActionTabLog        = "tab_log"
	ActionTabBranches   = "tab_branches"
	ActionTabStash      = "tab_stash"
	ActionTabTags       = "tab_tags"
	ActionToggleFold    = "toggle_fold"
	ActionBlame         = "blame"
	ActionCopyHash      = "copy_hash"
	ActionEditMessage   = "edit_message"
	ActionPrevMessage   = "prev_message"
	ActionSearchCommits = "search_commits"
	ActionFuzzyFind     = "fuzzy_find"
)

// DefaultKeyBindings is the built-in scheme a config overlay merges onto.
func DefaultKeyBindings() map[string]string {
	return map[string]string{
		ActionQuit:          "q",
		ActionHelp:          "?",
		ActionRefresh:       "r",
		ActionCommit:        "c",
		ActionAmend:         "A",
		ActionStage:         "s",
		ActionUnstage:       "u",
		ActionDiscard:       "D",
		ActionStageHunk:     "S",
		ActionUnstageHunk:   "U",
		ActionResetHunk:     "X",
		ActionPush:          "P",
		ActionForcePush:     "ctrl+p",
		ActionFetch:         "f",
		ActionPushTags:      "T",
		ActionStashSave:     "w",
		ActionStashPop:      "p",
		ActionStashDrop:     "d",
		ActionTabStatus:     "1",
		ActionTabLog:        "2",
		ActionTabBranches:   "3",
		ActionTabStash:      "4",
		ActionTabTags:       "5",
		ActionToggleFold:    "enter",
		ActionBlame:         "b",
		ActionCopyHash:      "y",
		ActionEditMessage:   "e",
		ActionPrevMessage:   "up",
		ActionSearchCommits: "/",
		ActionFuzzyFind:     "ctrl+f",
	}
}

// MergeKeyBindings overlays the user's bindings on the defaults. Unknown
// action names are rejected with a logged error and the default scheme
// is kept for them.
func MergeKeyBindings(overlay map[string]string) map[string]string {
	merged := DefaultKeyBindings()
	for action, key := range overlay {
		if _, known := merged[action]; !known {
			log.Printf("config: unknown key binding action %q (ignored)", action)
			continue
		}
		if key == "" {
			log.Printf("config: empty key for action %q (default kept)", action)
			continue
		}
		merged[action] = key
	}
	return merged
}
