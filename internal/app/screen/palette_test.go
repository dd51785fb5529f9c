package screen

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/gogitui/internal/theme"
)

func TestCommandPaletteFilterToggle(t *testing.T) {
	items := []PaletteItem{
		{ID: "alpha", Label: "Alpha"},
		{ID: "beta", Label: "Beta"},
	}

	scr := NewCommandPaletteScreen(items, 80, 24, theme.Dracula())
	if !scr.FilterActive {
		t.Fatal("expected filter to be active by default")
	}

	// Type directly to filter (filter is already active)
	next, _ := scr.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	nextScr, ok := next.(*CommandPaletteScreen)
	if !ok || nextScr == nil {
		t.Fatal("expected Update to return command palette screen after typing")
	}
	scr = nextScr
	if len(scr.Filtered) != 1 || scr.Filtered[0].ID != "beta" {
		t.Fatalf("expected filtered results to include only 'beta', got %v", scr.Filtered)
	}

	// Esc exits filter mode but preserves filter text
	next, _ = scr.Update(tea.KeyMsg{Type: tea.KeyEsc})
	nextScr, ok = next.(*CommandPaletteScreen)
	if !ok || nextScr == nil {
		t.Fatal("expected Update to return command palette screen after Esc")
	}
	scr = nextScr
	if scr.FilterActive {
		t.Fatal("expected filter to be inactive after Esc")
	}
	if len(scr.Filtered) != 1 || scr.Filtered[0].ID != "beta" {
		t.Fatalf("expected filter to remain applied after Esc, got %v", scr.Filtered)
	}
}

func TestCommandPaletteViewWithIcons(t *testing.T) {
	items := []PaletteItem{
		{Label: "Repository Actions", IsSection: true, Icon: ""},
		{ID: "create", Label: "Create branch", Description: "Add a new branch", Shortcut: "c", Icon: ""},
		{ID: "delete", Label: "Delete branch", Description: "Remove a branch", Shortcut: "D", Icon: ""},
	}

	scr := NewCommandPaletteScreen(items, 100, 24, theme.Dracula())
	view := scr.View()

	// Verify the view contains expected elements
	assert.Contains(t, view, "Repository Actions", "should contain section header")
	assert.Contains(t, view, "Create branch", "should contain item label")
	assert.Contains(t, view, "of", "should contain item count")
}

func TestCommandPaletteViewWithMRU(t *testing.T) {
	items := []PaletteItem{
		{Label: "Recently Used", IsSection: true, Icon: ""},
		{ID: "recent-action", Label: "Recent Action", Description: "A recently used action", IsMRU: true, Icon: ""},
		{Label: "Git Operations", IsSection: true, Icon: ""},
		{ID: "refresh", Label: "Refresh", Description: "Reload status", Shortcut: "r", Icon: ""},
	}

	scr := NewCommandPaletteScreen(items, 100, 24, theme.Dracula())
	view := scr.View()

	assert.Contains(t, view, "Recently Used", "should contain MRU section")
	assert.Contains(t, view, "Recent Action", "should contain MRU item")
}

func TestCommandPaletteHighlightMatches(t *testing.T) {
	items := []PaletteItem{
		{ID: "create", Label: "Create branch", Description: "Add a new branch", Icon: ""},
	}

	scr := NewCommandPaletteScreen(items, 100, 24, theme.Dracula())

	// Test highlight function directly
	result := scr.highlightMatches("Create branch", "cre")
	require.NotEmpty(t, result, "highlighted result should not be empty")

	// With empty query, should return original text
	result = scr.highlightMatches("Create branch", "")
	assert.Equal(t, "Create branch", result, "empty query should return original text")
}

func TestCommandPaletteScrollIndicators(t *testing.T) {
	// Create enough items to require scrolling
	items := make([]PaletteItem, 20)
	for i := range items {
		items[i] = PaletteItem{
			ID:    "item-" + string(rune('a'+i)),
			Label: "Item " + string(rune('A'+i)),
		}
	}

	scr := NewCommandPaletteScreen(items, 100, 15, theme.Dracula())
	view := scr.View()

	// Should show scroll down indicator
	assert.True(t, strings.Contains(view, "▼") || strings.Contains(view, "↕"),
		"should show scroll indicator when items exceed visible area")
}

func TestCommandPaletteFooterFormat(t *testing.T) {
	items := []PaletteItem{
		{ID: "alpha", Label: "Alpha"},
		{ID: "beta", Label: "Beta"},
		{ID: "gamma", Label: "Gamma"},
	}

	scr := NewCommandPaletteScreen(items, 100, 24, theme.Dracula())
	view := scr.View()

	// Footer should contain item count and navigation hints
	assert.Contains(t, view, "1 of 3", "should show item count")
	assert.Contains(t, view, "navigate", "should contain navigation hint")
	assert.Contains(t, view, "Esc", "should contain escape hint")
}
