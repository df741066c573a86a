// Package temporal keeps time-scoped personal events accurate. Event status
// is a pure function of the event dates and the clock, recomputed from
// scratch on every sweep, so an edited date can move an event to any state
// consistent with the current time.
package temporal

import (
	"regexp"
	"time"

	"github.com/lettersmith/lettersmith/internal/memory"
)

// Default buffer windows. Hand-tuned policy, overridable via the Manager
// fields.
const (
	DefaultStartingSoonWindow      = 7 * 24 * time.Hour
	DefaultRecentlyCompletedWindow = 30 * 24 * time.Hour
)

// Transition records one status change made by a sweep.
type Transition struct {
	Description string
	From        memory.EventStatus
	To          memory.EventStatus
	At          time.Time
}

// Manager sweeps stored events, advancing status and rewriting descriptions
// to the current tense.
type Manager struct {
	events memory.EventSource

	// Buffer windows around the start and end dates.
	StartingSoonWindow      time.Duration
	RecentlyCompletedWindow time.Duration

	// Now is the clock; tests override it.
	Now func() time.Time
}

func NewManager(events memory.EventSource) *Manager {
	return &Manager{
		events:                  events,
		StartingSoonWindow:      DefaultStartingSoonWindow,
		RecentlyCompletedWindow: DefaultRecentlyCompletedWindow,
		Now:                     time.Now,
	}
}

// StatusFor computes the status for the given dates at time now. Events
// without a start date keep whatever status they have, so the caller passes
// the current one as fallback.
func (m *Manager) StatusFor(start, end *time.Time, now time.Time, fallback memory.EventStatus) memory.EventStatus {
	if start == nil {
		return fallback
	}
	switch {
	case now.Before(start.Add(-m.StartingSoonWindow)):
		return memory.StatusUpcoming
	case now.Before(*start):
		return memory.StatusStartingSoon
	case end == nil || !now.After(*end):
		return memory.StatusCurrent
	case now.After(end.Add(m.RecentlyCompletedWindow)):
		return memory.StatusCompleted
	default:
		return memory.StatusRecentlyCompleted
	}
}

// Sweep recomputes every event's status and refreshes descriptions. Returns
// the transitions that occurred. The caller is responsible for saving the
// store afterwards.
func (m *Manager) Sweep() []Transition {
	now := m.Now()
	events := m.events.Events()
	var transitions []Transition
	changed := false

	for i := range events {
		ev := events[i]
		next := m.StatusFor(ev.Start, ev.End, now, ev.Status)
		if next != ev.Status {
			transitions = append(transitions, Transition{
				Description: ev.Description,
				From:        ev.Status,
				To:          next,
				At:          now,
			})
			ev.Status = next
			changed = true
		}
		if ev.AutoUpdate.RewriteDescriptions {
			if rewritten := rewriteTense(ev.Description, ev.Status); rewritten != ev.Description {
				ev.Description = rewritten
				changed = true
			}
		}
		events[i] = ev
	}

	if changed {
		m.events.ReplaceEvents(events)
	}
	return transitions
}

// Active returns all events still relevant for personal context, in stored
// order.
func (m *Manager) Active() []memory.Event {
	var out []memory.Event
	for _, ev := range m.events.Events() {
		if ev.Status.Active() {
			out = append(out, ev)
		}
	}
	return out
}

// NewEvent parses the temporal expression in description and builds an
// event with its initial status and auto-update policy.
func (m *Manager) NewEvent(description, eventType string) memory.Event {
	now := m.Now()
	start, end, precision := ParseExpression(description, now)

	cadence := "monthly"
	if precision == PrecisionMonth {
		cadence = "weekly"
	}

	ev := memory.Event{
		Type:        eventType,
		Description: description,
		Start:       &start,
		End:         &end,
		AutoUpdate: memory.UpdateRules{
			Cadence:             cadence,
			RewriteDescriptions: true,
			Precision:           precision,
		},
	}
	ev.Status = m.StatusFor(ev.Start, ev.End, now, memory.StatusUpcoming)
	return ev
}

// Tense substitution rules, applied by status. Cosmetic only.
var (
	willBePattern    = regexp.MustCompile(`(?i)will be (attending|starting|beginning)`)
	iWillPattern     = regexp.MustCompile(`(?i)I will (attend|start|begin)`)
	nextMonthPattern = regexp.MustCompile(`(?i)next month`)
	amDoingPattern   = regexp.MustCompile(`(?i)am (attending|studying)`)
	willDoPattern    = regexp.MustCompile(`(?i)will (attend|start)`)
)

func rewriteTense(description string, status memory.EventStatus) string {
	switch status {
	case memory.StatusCurrent:
		description = nextMonthPattern.ReplaceAllString(description, "currently")
		description = willBePattern.ReplaceAllString(description, "am $1")
		description = iWillPattern.ReplaceAllString(description, "I am ${1}ing")
	case memory.StatusStartingSoon:
		description = nextMonthPattern.ReplaceAllString(description, "very soon")
	case memory.StatusCompleted, memory.StatusRecentlyCompleted:
		description = amDoingPattern.ReplaceAllString(description, "attended")
		description = willDoPattern.ReplaceAllString(description, "completed")
	}
	return description
}
