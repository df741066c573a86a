// Package tui implements the interactive review loop: the drafted letter is
// shown in a scrollable viewport and the user accepts it, rejects it, or
// types revision feedback that drives another drafting round.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Outcome is the review verdict.
type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRevised  Outcome = "revised"
	OutcomeRejected Outcome = "rejected"
)

// Decision is what the review loop hands back to the caller.
type Decision struct {
	Outcome  Outcome
	Feedback string
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	verdictStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))
)

type mode int

const (
	modeReading mode = iota
	modeFeedback
	modeDone
)

type Model struct {
	Title    string
	Letter   string
	Round    int
	Decision Decision

	mode     mode
	viewport viewport.Model
	input    textarea.Model
	ready    bool
	width    int
}

func NewModel(title, letter string, round int) Model {
	ta := textarea.New()
	ta.Placeholder = "What should change? (enter submits, esc cancels)"
	ta.SetHeight(4)
	ta.ShowLineNumbers = false

	return Model{
		Title:  title,
		Letter: letter,
		Round:  round,
		input:  ta,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-8)
			m.viewport.SetContent(m.Letter)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 8
		}
		m.input.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		switch m.mode {
		case modeReading:
			switch msg.String() {
			case "a":
				m.Decision = Decision{Outcome: OutcomeAccepted}
				m.mode = modeDone
				return m, tea.Quit
			case "x":
				m.Decision = Decision{Outcome: OutcomeRejected}
				m.mode = modeDone
				return m, tea.Quit
			case "r":
				m.mode = modeFeedback
				m.input.Reset()
				cmd := m.input.Focus()
				return m, cmd
			case "q", "ctrl+c":
				m.Decision = Decision{Outcome: OutcomeRejected}
				m.mode = modeDone
				return m, tea.Quit
			}

		case modeFeedback:
			switch msg.Type {
			case tea.KeyEsc:
				m.mode = modeReading
				m.input.Blur()
				return m, nil
			case tea.KeyEnter:
				feedback := strings.TrimSpace(m.input.Value())
				if feedback == "" {
					return m, nil
				}
				m.Decision = Decision{Outcome: OutcomeRevised, Feedback: feedback}
				m.mode = modeDone
				return m, tea.Quit
			case tea.KeyCtrlC:
				m.Decision = Decision{Outcome: OutcomeRejected}
				m.mode = modeDone
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	if m.mode == modeFeedback {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Loading draft..."
	}

	header := titleStyle.Render(fmt.Sprintf(" %s — round %d ", m.Title, m.Round))

	var footer string
	switch m.mode {
	case modeFeedback:
		footer = m.input.View() + "\n" + helpStyle.Render("enter: submit revision  esc: back")
	case modeDone:
		footer = verdictStyle.Render(fmt.Sprintf("Verdict: %s", m.Decision.Outcome))
	default:
		footer = helpStyle.Render("a: accept  r: revise  x: reject  ↑/↓: scroll  q: quit")
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", header, m.viewport.View(), footer)
}

// Review runs the interactive loop and returns the user's decision.
func Review(title, letter string, round int) (Decision, error) {
	program := tea.NewProgram(NewModel(title, letter, round), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return Decision{}, fmt.Errorf("review UI failed: %w", err)
	}
	model, ok := final.(Model)
	if !ok {
		return Decision{}, fmt.Errorf("unexpected review model type")
	}
	if model.Decision.Outcome == "" {
		model.Decision.Outcome = OutcomeRejected
	}
	return model.Decision, nil
}
