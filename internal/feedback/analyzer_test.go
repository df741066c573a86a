package feedback

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lettersmith/lettersmith/internal/memory"
)

func newTestStore(t *testing.T) *memory.Store {
	t.Helper()
	tmpDir, _ := os.MkdirTemp("", "feedback-test-*")
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	s, err := memory.Load(filepath.Join(tmpDir, "memory.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s
}

func TestSimpleApproval(t *testing.T) {
	store := newTestStore(t)
	a := New(store)

	for _, text := range []string{"Approved!", "looks good", "perfect", "ok"} {
		ins := a.Analyze(text, "Dear Hiring Manager,", "accepted")
		if !ins.SimpleApproval {
			t.Errorf("Expected %q to be a simple approval", text)
		}
		if ins.Effectiveness != 0.9 {
			t.Errorf("Expected effectiveness 0.9 for approval, got %f", ins.Effectiveness)
		}
	}

	// Short but substantive feedback is not a simple approval.
	ins := a.Analyze("add my SQL skill", "letter", "accepted")
	if ins.SimpleApproval {
		t.Error("Feedback with content keywords must be analyzed, not shortcut")
	}

	// Approval phrasing with a rejected outcome is not an approval.
	ins = a.Analyze("ok", "letter", "rejected")
	if ins.SimpleApproval {
		t.Error("Outcome gates the simple-approval fast path")
	}
}

func TestExtractAvoidAndPrefer(t *testing.T) {
	store := newTestStore(t)
	a := New(store)

	ins := a.Analyze(`Don't say "I am excited to apply". Use "I'm drawn to this role" instead.`, "letter", "revised")

	if len(ins.AvoidPhrases) == 0 {
		t.Fatal("Expected an avoid phrase")
	}
	if len(ins.PreferPhrases) == 0 {
		t.Fatal("Expected a prefer phrase")
	}

	avoid := store.Styles()[memory.StyleAvoidPhrases]
	if len(avoid) != 1 {
		t.Fatalf("Expected 1 stored avoid rule, got %d", len(avoid))
	}
	prefer := store.Styles()[memory.StylePreferPhrases]
	if len(prefer) != 1 {
		t.Fatalf("Expected 1 stored prefer rule, got %d", len(prefer))
	}

	if len(store.Feedback()) != 1 {
		t.Fatalf("Expected feedback history entry, got %d", len(store.Feedback()))
	}
	entry := store.Feedback()[0]
	if entry.Outcome != "revised" {
		t.Errorf("Expected revised outcome, got %s", entry.Outcome)
	}
	if len(entry.Applied) == 0 {
		t.Error("Expected applied changes recorded on the entry")
	}
}

func TestExtractToneAndSkillMention(t *testing.T) {
	store := newTestStore(t)
	a := New(store)

	ins := a.Analyze("This reads too formal. Please mention my PowerShell experience.", "letter", "revised")

	if len(ins.ToneRules) == 0 {
		t.Error("Expected a tone rule from 'too formal'")
	}
	if len(ins.SkillMentions) == 0 {
		t.Fatal("Expected a skill mention")
	}
	if len(store.Styles()[memory.StyleTone]) != 1 {
		t.Errorf("Expected stored tone rule, got %d", len(store.Styles()[memory.StyleTone]))
	}
	if store.SkillCount() == 0 {
		t.Error("Expected mentioned skill written to memory")
	}
}

func TestEffectivenessByOutcome(t *testing.T) {
	store := newTestStore(t)
	a := New(store)

	rejected := a.Analyze("completely wrong direction", "letter", "rejected")
	if rejected.Effectiveness != 0.3 {
		t.Errorf("Expected 0.3 for plain rejection, got %f", rejected.Effectiveness)
	}

	revised := a.Analyze("too wordy, less formal please", "letter", "revised")
	if revised.Effectiveness != 0.7 {
		t.Errorf("Expected 0.6 base + 0.1 insight bonus, got %f", revised.Effectiveness)
	}
}

func TestCountersAdvance(t *testing.T) {
	store := newTestStore(t)
	a := New(store)

	a.Analyze("approved", "letter", "accepted")
	a.Analyze("no thanks", "letter", "rejected")

	if store.Meta().TotalInteractions != 2 {
		t.Errorf("Expected 2 interactions, got %d", store.Meta().TotalInteractions)
	}
	if store.Meta().SuccessfulGenerations != 1 {
		t.Errorf("Expected 1 successful generation, got %d", store.Meta().SuccessfulGenerations)
	}
	if store.SuccessRate() != 0.5 {
		t.Errorf("Expected success rate 0.5, got %f", store.SuccessRate())
	}
}
