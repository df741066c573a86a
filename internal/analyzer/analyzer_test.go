package analyzer

import (
	"reflect"
	"strings"
	"testing"
)

const networkAdminPosting = `IT Network Administrator

We are seeking a network administrator to manage our Windows server
infrastructure. You will: maintain firewall and VPN configuration, manage
Active Directory user accounts and provisioning, build PowerShell automation.
Required: network security experience, windows server administration.
Preferred: azure cloud experience.`

const collectionsAnalystPosting = `Process Development Analyst - Order to Cash

Our finance transformation team needs a process development analyst to drive
process improvement across collections and deductions. You will work with
stakeholders to document business requirements and build Power BI reporting.
Required: process improvement experience, stakeholder management.`

func TestAnalyzeTechnicalRole(t *testing.T) {
	p := New().Analyze(networkAdminPosting)

	if p.RoleType != "technical_it" {
		t.Errorf("Expected role technical_it, got %s", p.RoleType)
	}
	if p.PrimaryFocus != "technical" {
		t.Errorf("Expected technical focus, got %s", p.PrimaryFocus)
	}
	if p.Confidence <= 0 || p.Confidence > 1 {
		t.Errorf("Confidence out of range: %f", p.Confidence)
	}
	if len(p.TechDomains) == 0 {
		t.Fatal("Expected tech domain scores")
	}
	if p.TechDomains["networking"] == 0 {
		t.Error("Expected a networking domain score")
	}

	found := false
	for _, s := range p.RequiredSkills {
		if strings.Contains(s, "network security") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'network security' in required skills, got %v", p.RequiredSkills)
	}
	if len(p.PreferredSkills) == 0 {
		t.Error("Expected preferred skills from the Preferred clause")
	}
}

func TestAnalyzeBusinessRole(t *testing.T) {
	p := New().Analyze(collectionsAnalystPosting)

	if p.RoleType != "business_analyst" {
		t.Errorf("Expected role business_analyst, got %s", p.RoleType)
	}
	if p.PrimaryFocus != "business" {
		t.Errorf("Expected business focus, got %s", p.PrimaryFocus)
	}
	if p.BusinessDomains["finance"] == 0 {
		t.Error("Expected a finance domain score")
	}
	if p.BusinessDomains["process_improvement"] == 0 {
		t.Error("Expected a process_improvement domain score")
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	p := New().Analyze("")

	if p == nil {
		t.Fatal("Analyze must not return nil")
	}
	if p.RoleType != "unknown" {
		t.Errorf("Expected role unknown for empty input, got %s", p.RoleType)
	}
	if p.Confidence != 0 {
		t.Errorf("Expected zero confidence, got %f", p.Confidence)
	}
	if p.PrimaryFocus == "" {
		t.Error("PrimaryFocus must not be empty")
	}
	if p.RequiredSkills == nil || len(p.RequiredSkills) != 0 {
		t.Errorf("Expected empty non-nil required skills, got %v", p.RequiredSkills)
	}
	if p.Industry.Name != "general" {
		t.Errorf("Expected general industry, got %s", p.Industry.Name)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a, b := New(), New()
	p1 := a.Analyze(networkAdminPosting)
	p2 := b.Analyze(networkAdminPosting)

	if !reflect.DeepEqual(p1, p2) {
		t.Error("Identical input must yield identical profiles across analyzers")
	}

	// Same analyzer serves the cached profile.
	if a.Analyze(networkAdminPosting) != p1 {
		t.Error("Expected cached profile for repeated input")
	}
	a.ClearCache()
	if !reflect.DeepEqual(a.Analyze(networkAdminPosting), p1) {
		t.Error("Profile changed after cache clear")
	}
}

func TestClassifyIndustry(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"hospital it support for clinical staff, epic experience, patient care focus", "healthcare"},
		{"banking compliance and risk management, financial analysis background", "finance"},
		{"saas startup building a cloud platform with kubernetes and react", "technology"},
		{"no recognizable signals here", "general"},
	}
	for _, c := range cases {
		got := classifyIndustry(c.text)
		if got.Name != c.want {
			t.Errorf("classifyIndustry(%q) = %s, want %s", c.text, got.Name, c.want)
		}
		if got.Confidence <= 0 || got.Confidence > 1 {
			t.Errorf("Confidence out of range for %s: %f", c.want, got.Confidence)
		}
	}
}

func TestClassifyExperience(t *testing.T) {
	if got := classifyExperience("senior engineer, 7+ years leading teams"); got != "senior" {
		t.Errorf("Expected senior, got %s", got)
	}
	if got := classifyExperience("entry level role for a recent graduate"); got != "junior" {
		t.Errorf("Expected junior, got %s", got)
	}
	if got := classifyExperience("an engineer position"); got != "mid" {
		t.Errorf("Expected mid, got %s", got)
	}
}

func TestCountWordOccurrences(t *testing.T) {
	cases := []struct {
		text, term string
		want       int
	}{
		{"java and javascript", "java", 1},
		{"c++ developer, c++ a must", "c++", 2},
		{".net experience, also .net core", ".net", 2},
		{"technician with tech skills", "tech", 1},
		{"nothing here", "sql", 0},
	}
	for _, c := range cases {
		if got := countWordOccurrences(c.text, c.term); got != c.want {
			t.Errorf("countWordOccurrences(%q, %q) = %d, want %d", c.text, c.term, got, c.want)
		}
	}
}
