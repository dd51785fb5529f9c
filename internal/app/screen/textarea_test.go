package screen

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/gogitui/internal/theme"
)

func TestTextareaScreenType(t *testing.T) {
	s := NewTextareaScreen("Prompt", "Placeholder", "", 120, 40, theme.Dracula(), false)
	if s.Type() != TypeTextarea {
		t.Fatalf("expected TypeTextarea, got %v", s.Type())
	}
}

func TestTextareaScreenCtrlSSubmit(t *testing.T) {
	s := NewTextareaScreen("Prompt", "Placeholder", "hello", 120, 40, theme.Dracula(), false)
	called := false
	var gotValue string
	s.OnSubmit = func(value string) tea.Cmd {
		called = true
		gotValue = value
		return nil
	}

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if next != nil {
		t.Fatal("expected screen to close on Ctrl+S")
	}
	if !called {
		t.Fatal("expected submit callback to be called")
	}
	if gotValue != "hello" {
		t.Fatalf("expected value %q, got %q", "hello", gotValue)
	}
}

func TestTextareaScreenEnterAddsNewLine(t *testing.T) {
	s := NewTextareaScreen("Prompt", "Placeholder", "hello", 120, 40, theme.Dracula(), false)

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next == nil {
		t.Fatal("expected screen to stay open on Enter")
	}

	updated := next.(*TextareaScreen)
	if updated.Input.Value() != "hello\n" {
		t.Fatalf("expected newline to be inserted, got %q", updated.Input.Value())
	}
}

func TestTextareaScreenHistoryCycling(t *testing.T) {
	s := NewTextareaScreen("Prompt", "Placeholder", "draft", 120, 40, theme.Dracula(), false)
	s.SetHistory([]string{"newest", "older"})

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	s = next.(*TextareaScreen)
	if s.Input.Value() != "newest" {
		t.Fatalf("expected newest history entry, got %q", s.Input.Value())
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	s = next.(*TextareaScreen)
	if s.Input.Value() != "older" {
		t.Fatalf("expected older history entry, got %q", s.Input.Value())
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	s = next.(*TextareaScreen)
	if s.Input.Value() != "newest" {
		t.Fatalf("expected to step forward to newest, got %q", s.Input.Value())
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	s = next.(*TextareaScreen)
	if s.Input.Value() != "draft" {
		t.Fatalf("expected original draft restored, got %q", s.Input.Value())
	}
}
