// Package selector picks the subset of stored memory worth injecting into a
// generation prompt: it scores every skill and style rule against the job's
// requirement profile, ranks, truncates, and renders a compact digest.
package selector

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lettersmith/lettersmith/internal/analyzer"
	"github.com/lettersmith/lettersmith/internal/memory"
	"github.com/lettersmith/lettersmith/internal/relevance"
)

// Relevance floors. Styles use a higher floor because their baseline score
// is already generous.
const (
	skillFloor = 0.1
	styleFloor = 0.5
)

// Default truncation limits.
const (
	DefaultMaxSkills = 8
	DefaultMaxStyles = 5
)

// ScoredSkill pairs a skill with its relevance result.
type ScoredSkill struct {
	Skill memory.Skill
	Score relevance.Score
}

// Digest is the selected memory for one job, plus the profile it was scored
// against. Render turns it into the text block handed to generation.
type Digest struct {
	Skills  []ScoredSkill
	Styles  map[memory.StyleCategory][]memory.StylePreference
	Events  []memory.Event
	Profile *analyzer.Profile
}

// EventSource is the slice of the temporal manager the selector needs.
type EventSource interface {
	Active() []memory.Event
}

// Selector wires the analyzer and scorer across the memory store.
type Selector struct {
	skills   memory.SkillSource
	styles   memory.StyleSource
	events   EventSource
	analyzer *analyzer.Analyzer
	scorer   *relevance.Scorer
}

func New(skills memory.SkillSource, styles memory.StyleSource, events EventSource, a *analyzer.Analyzer, sc *relevance.Scorer) *Selector {
	return &Selector{skills: skills, styles: styles, events: events, analyzer: a, scorer: sc}
}

// Select builds the memory digest for a job description. Skills below the
// relevance floor are dropped even when fewer than maxSkills qualify; the
// result is never padded. Temporal events are not score-filtered: every
// active event is included.
func (s *Selector) Select(jobText string, maxSkills, maxStyles int) *Digest {
	if maxSkills <= 0 {
		maxSkills = DefaultMaxSkills
	}
	if maxStyles <= 0 {
		maxStyles = DefaultMaxStyles
	}

	profile := s.analyzer.Analyze(jobText)

	var scored []ScoredSkill
	for _, skill := range s.skills.Skills() {
		score := s.scorer.ScoreSkill(skill, profile)
		if score.Final > skillFloor {
			scored = append(scored, ScoredSkill{Skill: skill, Score: score})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score.Final != scored[j].Score.Final {
			return scored[i].Score.Final > scored[j].Score.Final
		}
		return scored[i].Skill.Name < scored[j].Skill.Name
	})
	if len(scored) > maxSkills {
		scored = scored[:maxSkills]
	}

	styles := map[memory.StyleCategory][]memory.StylePreference{}
	for category, prefs := range s.styles.Styles() {
		type scoredStyle struct {
			pref  memory.StylePreference
			score float64
		}
		var kept []scoredStyle
		for _, pref := range prefs {
			if score := s.scorer.ScoreStyle(pref, profile); score.Final > styleFloor {
				kept = append(kept, scoredStyle{pref, score.Final})
			}
		}
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].score > kept[j].score })
		if len(kept) > maxStyles {
			kept = kept[:maxStyles]
		}
		for _, ks := range kept {
			styles[category] = append(styles[category], ks.pref)
		}
	}

	var events []memory.Event
	if s.events != nil {
		events = s.events.Active()
	}

	return &Digest{Skills: scored, Styles: styles, Events: events, Profile: profile}
}

// Render produces the compact text block injected into the generation
// prompt. An empty digest renders to an empty string; that is not an error,
// generation simply proceeds without memory context.
func (d *Digest) Render() string {
	var b strings.Builder

	if len(d.Skills) > 0 {
		b.WriteString("RELEVANT SKILLS AND EXPERIENCE:\n")
		for _, ss := range d.Skills {
			fmt.Fprintf(&b, "- %s: %s (relevance: %.1f)\n", ss.Skill.Name, ss.Skill.Proficiency, ss.Score.Final)
			if ss.Skill.Context != "" && len(ss.Skill.Context) < 100 {
				fmt.Fprintf(&b, "  Context: %s\n", ss.Skill.Context)
			}
		}
	}

	avoid := d.styleRules(memory.StyleAvoidPhrases, 3)
	prefer := d.styleRules(memory.StylePreferPhrases, 3)
	tone := d.styleRules(memory.StyleTone, 2)
	if len(avoid)+len(prefer)+len(tone) > 0 {
		b.WriteString("\nAPPLICABLE WRITING PREFERENCES:\n")
		if len(avoid) > 0 {
			fmt.Fprintf(&b, "- AVOID: %s\n", strings.Join(avoid, ", "))
		}
		if len(prefer) > 0 {
			fmt.Fprintf(&b, "- PREFER: %s\n", strings.Join(prefer, ", "))
		}
		if len(tone) > 0 {
			fmt.Fprintf(&b, "- TONE: %s\n", strings.Join(tone, ", "))
		}
	}

	if len(d.Events) > 0 {
		b.WriteString("\nCURRENT PERSONAL CONTEXT:\n")
		for _, group := range eventGroups {
			var lines []string
			for _, ev := range d.Events {
				if ev.Status == group.status {
					lines = append(lines, ev.Description)
				}
			}
			if len(lines) > 0 {
				fmt.Fprintf(&b, "%s: %s\n", group.label, strings.Join(lines, "; "))
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

var eventGroups = []struct {
	status memory.EventStatus
	label  string
}{
	{memory.StatusCurrent, "CURRENTLY"},
	{memory.StatusStartingSoon, "STARTING SOON"},
	{memory.StatusUpcoming, "UPCOMING"},
	{memory.StatusRecentlyCompleted, "RECENTLY COMPLETED"},
}

func (d *Digest) styleRules(category memory.StyleCategory, limit int) []string {
	prefs := d.Styles[category]
	if len(prefs) > limit {
		prefs = prefs[:limit]
	}
	out := make([]string, 0, len(prefs))
	for _, p := range prefs {
		out = append(out, p.Rule)
	}
	return out
}
