package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func key(m Model, k string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestAcceptKey(t *testing.T) {
	m := sized(NewModel("Review", "Dear Hiring Manager,", 1))

	m, cmd := key(m, "a")
	if m.Decision.Outcome != OutcomeAccepted {
		t.Errorf("Expected accepted, got %s", m.Decision.Outcome)
	}
	if cmd == nil {
		t.Error("Expected quit command after verdict")
	}
}

func TestRejectKey(t *testing.T) {
	m := sized(NewModel("Review", "draft", 1))

	m, _ = key(m, "x")
	if m.Decision.Outcome != OutcomeRejected {
		t.Errorf("Expected rejected, got %s", m.Decision.Outcome)
	}
}

func TestReviseFlow(t *testing.T) {
	m := sized(NewModel("Review", "draft", 1))

	m, _ = key(m, "r")
	if m.mode != modeFeedback {
		t.Fatal("Expected feedback mode after 'r'")
	}

	// Empty feedback does not submit.
	m, _ = key(m, "enter")
	if m.mode != modeFeedback {
		t.Fatal("Empty feedback must not submit")
	}

	for _, r := range "less formal" {
		m, _ = key(m, string(r))
	}
	m, _ = key(m, "enter")

	if m.Decision.Outcome != OutcomeRevised {
		t.Fatalf("Expected revised, got %s", m.Decision.Outcome)
	}
	if m.Decision.Feedback != "less formal" {
		t.Errorf("Expected feedback text, got %q", m.Decision.Feedback)
	}
}

func TestEscReturnsToReading(t *testing.T) {
	m := sized(NewModel("Review", "draft", 1))

	m, _ = key(m, "r")
	m, _ = key(m, "esc")
	if m.mode != modeReading {
		t.Error("Expected esc to return to reading mode")
	}
	if m.Decision.Outcome != "" {
		t.Errorf("No verdict expected yet, got %s", m.Decision.Outcome)
	}
}

func TestViewShowsHelp(t *testing.T) {
	m := sized(NewModel("Review", "draft body", 2))
	view := m.View()

	if !strings.Contains(view, "round 2") {
		t.Errorf("Expected round number in header:\n%s", view)
	}
	if !strings.Contains(view, "a: accept") {
		t.Errorf("Expected key help in view:\n%s", view)
	}
}
