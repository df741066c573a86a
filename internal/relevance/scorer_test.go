package relevance

import (
	"testing"

	"github.com/lettersmith/lettersmith/internal/analyzer"
	"github.com/lettersmith/lettersmith/internal/memory"
)

func networkAdminProfile() *analyzer.Profile {
	return &analyzer.Profile{
		RoleType:       "technical_it",
		PrimaryFocus:   "technical",
		RequiredSkills: []string{"network security experience", "windows server administration"},
		TechDomains:    map[string]float64{"networking": 12, "systems": 6, "databases": 3},
		Technologies:   []string{"windows"},
	}
}

func TestScoreSkillRanking(t *testing.T) {
	s := NewScorer(nil)
	p := networkAdminProfile()

	netSec := s.ScoreSkill(memory.Skill{Name: "Network Security"}, p)
	mysql := s.ScoreSkill(memory.Skill{Name: "MySQL"}, p)

	if netSec.Final <= mysql.Final {
		t.Errorf("Expected network security (%f) to outrank mysql (%f) for a network admin role",
			netSec.Final, mysql.Final)
	}
	if netSec.Direct == 0 {
		t.Error("Expected a direct requirement match for network security")
	}
	if mysql.Direct != 0 {
		t.Errorf("Expected no direct match for mysql, got %f", mysql.Direct)
	}
	if mysql.DomainBoost == 0 {
		t.Error("Expected a small databases domain boost for mysql")
	}
}

func TestScoreSkillBounds(t *testing.T) {
	s := NewScorer(nil)
	p := networkAdminProfile()

	skills := []string{"Network Security", "MySQL", "Underwater Basket Weaving", "windows server administration", ""}
	for _, name := range skills {
		sc := s.ScoreSkill(memory.Skill{Name: name}, p)
		if sc.Final < 0 || sc.Final > 1 {
			t.Errorf("Final score for %q out of range: %f", name, sc.Final)
		}
		if sc.Confidence < 0 || sc.Confidence > 1 {
			t.Errorf("Confidence for %q out of range: %f", name, sc.Confidence)
		}
	}
}

func TestScoreSkillDegenerateInput(t *testing.T) {
	s := NewScorer(nil)

	if sc := s.ScoreSkill(memory.Skill{Name: "SQL"}, nil); sc.Final != 0 {
		t.Errorf("Nil profile must score zero, got %f", sc.Final)
	}
	if sc := s.ScoreSkill(memory.Skill{Name: "   "}, networkAdminProfile()); sc.Final != 0 {
		t.Errorf("Blank skill must score zero, got %f", sc.Final)
	}
}

func TestFocusPenalty(t *testing.T) {
	s := NewScorer(nil)
	businessProfile := &analyzer.Profile{
		RoleType:        "business_analyst",
		PrimaryFocus:    "business",
		BusinessDomains: map[string]float64{},
	}

	techOnly := s.ScoreSkill(memory.Skill{Name: "Technical Support"}, businessProfile)
	if techOnly.Penalty == 0 {
		t.Error("Expected a focus penalty for a technical-only skill in a business role")
	}

	dual := s.ScoreSkill(memory.Skill{Name: "Data Analysis"}, businessProfile)
	if dual.Penalty != 0 {
		t.Errorf("Dual-purpose skill must not be penalized, got penalty %f", dual.Penalty)
	}

	// Penalty applies only for business focus.
	techRole := s.ScoreSkill(memory.Skill{Name: "Technical Support"}, networkAdminProfile())
	if techRole.Penalty != 0 {
		t.Errorf("No penalty expected for technical focus, got %f", techRole.Penalty)
	}
}

func TestScoreStyle(t *testing.T) {
	s := NewScorer(nil)

	plain := &analyzer.Profile{PrimaryFocus: "technical"}
	sc := s.ScoreStyle(memory.StylePreference{Category: memory.StyleAvoidPhrases, Rule: "I am excited"}, plain)
	if sc.Final != styleBaseline {
		t.Errorf("Expected baseline %f, got %f", styleBaseline, sc.Final)
	}

	commRole := &analyzer.Profile{
		PrimaryFocus:     "business",
		Responsibilities: []string{"document business processes for stakeholders"},
	}
	sc = s.ScoreStyle(memory.StylePreference{Category: memory.StyleTone, Rule: "less formal"}, commRole)
	if sc.Final != styleBoosted {
		t.Errorf("Expected boosted %f for tone rule in communication role, got %f", styleBoosted, sc.Final)
	}
}

func TestSimilarityLadder(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		a, b string
		want float64
	}{
		{"MySQL", "mysql", simExact},
		{"sysadmin", "sys admin", simSynonym},
		{"sql", "mysql", simSubstring},
		{"mysql", "oracle", simCluster},
		{"mysql", "communication", 0},
		{"", "mysql", 0},
	}
	for _, c := range cases {
		if got := m.Similarity(c.a, c.b); got != c.want {
			t.Errorf("Similarity(%q, %q) = %f, want %f", c.a, c.b, got, c.want)
		}
	}

	// Token overlap above the threshold scores scaled jaccard.
	got := m.Similarity("customer onboarding process", "client onboarding process")
	if got <= 0 || got >= simCluster {
		t.Errorf("Expected scaled token-overlap score, got %f", got)
	}

	// Symmetric.
	if m.Similarity("sql", "mysql") != m.Similarity("mysql", "sql") {
		t.Error("Similarity must be symmetric")
	}
}
