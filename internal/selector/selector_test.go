package selector

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lettersmith/lettersmith/internal/analyzer"
	"github.com/lettersmith/lettersmith/internal/memory"
	"github.com/lettersmith/lettersmith/internal/relevance"
	"github.com/lettersmith/lettersmith/internal/temporal"
)

const jobText = `IT Network Administrator

Required: network security, firewall management, windows server administration.
You will: communicate with stakeholders and document infrastructure changes.`

func newTestStore(t *testing.T) *memory.Store {
	t.Helper()
	tmpDir, _ := os.MkdirTemp("", "selector-test-*")
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	s, err := memory.Load(filepath.Join(tmpDir, "memory.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s
}

func newSelector(store *memory.Store) *Selector {
	tm := temporal.NewManager(store)
	return New(store, store, tm, analyzer.New(), relevance.NewScorer(nil))
}

func TestSelectFloorsAndTruncates(t *testing.T) {
	store := newTestStore(t)

	// Four skills that clearly match a network admin posting, six that don't.
	relevant := []string{"Network Security", "Firewall Management", "Windows Server", "Server Administration"}
	irrelevant := []string{"Oil Painting", "French Cooking", "Creative Writing", "Gardening", "Carpentry", "Pottery"}
	for _, name := range append(relevant, irrelevant...) {
		store.UpsertSkill(memory.Skill{Name: name, Proficiency: "Experienced"})
	}

	sel := newSelector(store)

	t.Run("FloorGovernsMembership", func(t *testing.T) {
		digest := sel.Select(jobText, 5, DefaultMaxStyles)
		if len(digest.Skills) != len(relevant) {
			names := make([]string, 0, len(digest.Skills))
			for _, ss := range digest.Skills {
				names = append(names, ss.Skill.Name)
			}
			t.Fatalf("Expected %d skills above the floor, got %d: %v", len(relevant), len(digest.Skills), names)
		}
		for _, ss := range digest.Skills {
			if ss.Score.Final <= 0.1 {
				t.Errorf("Skill %s below floor leaked into digest (%f)", ss.Skill.Name, ss.Score.Final)
			}
		}
	})

	t.Run("SortedDescending", func(t *testing.T) {
		digest := sel.Select(jobText, 10, DefaultMaxStyles)
		for i := 1; i < len(digest.Skills); i++ {
			if digest.Skills[i].Score.Final > digest.Skills[i-1].Score.Final {
				t.Fatal("Skills not sorted descending by score")
			}
		}
	})

	t.Run("MaxSkillsCaps", func(t *testing.T) {
		digest := sel.Select(jobText, 2, DefaultMaxStyles)
		if len(digest.Skills) != 2 {
			t.Fatalf("Expected truncation to 2 skills, got %d", len(digest.Skills))
		}
	})
}

func TestSelectEmptyStore(t *testing.T) {
	sel := newSelector(newTestStore(t))
	digest := sel.Select(jobText, DefaultMaxSkills, DefaultMaxStyles)

	if len(digest.Skills) != 0 {
		t.Errorf("Expected no skills from empty store, got %d", len(digest.Skills))
	}
	if digest.Render() != "" {
		t.Errorf("Empty digest must render empty, got %q", digest.Render())
	}
	if digest.Profile == nil {
		t.Error("Profile must always be present")
	}
}

func TestSelectIncludesActiveEventsUnfiltered(t *testing.T) {
	store := newTestStore(t)
	store.AddEvent(memory.Event{Description: "studying for a certification", Status: memory.StatusCurrent})
	store.AddEvent(memory.Event{Description: "finished an old job", Status: memory.StatusCompleted})

	sel := newSelector(store)
	digest := sel.Select(jobText, DefaultMaxSkills, DefaultMaxStyles)

	if len(digest.Events) != 1 {
		t.Fatalf("Expected 1 active event, got %d", len(digest.Events))
	}
	if digest.Events[0].Description != "studying for a certification" {
		t.Errorf("Wrong event selected: %s", digest.Events[0].Description)
	}
}

func TestRenderDigest(t *testing.T) {
	store := newTestStore(t)
	store.UpsertSkill(memory.Skill{Name: "Network Security", Proficiency: "Expert", Context: "Firewall work at last job"})
	store.UpsertStyle(memory.StylePreference{Category: memory.StyleAvoidPhrases, Rule: "I am excited to apply"})
	store.UpsertStyle(memory.StylePreference{Category: memory.StyleTone, Rule: "less formal"})
	store.AddEvent(memory.Event{Description: "currently attending a bootcamp", Status: memory.StatusCurrent})

	sel := newSelector(store)
	rendered := sel.Select(jobText, DefaultMaxSkills, DefaultMaxStyles).Render()

	checks := []string{
		"RELEVANT SKILLS AND EXPERIENCE:",
		"Network Security",
		"APPLICABLE WRITING PREFERENCES:",
		"AVOID: I am excited to apply",
		"TONE: less formal",
		"CURRENT PERSONAL CONTEXT:",
		"CURRENTLY: currently attending a bootcamp",
	}
	for _, want := range checks {
		if !strings.Contains(rendered, want) {
			t.Errorf("Rendered digest missing %q:\n%s", want, rendered)
		}
	}
}
