// Package relevance scores remembered skills and style rules against a job
// requirement profile. One consolidated scorer: direct requirement matching,
// capped domain boosts, technology similarity and a focus-mismatch penalty,
// all clamped into [0,1].
package relevance

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lettersmith/lettersmith/internal/analyzer"
	"github.com/lettersmith/lettersmith/internal/memory"
)

// Score is the ephemeral result of scoring one item against one profile.
type Score struct {
	Direct      float64
	DomainBoost float64
	Semantic    float64
	Penalty     float64
	Final       float64
	Confidence  float64
	Explanation string
}

// Weights and caps for the skill scorer.
const (
	requiredWeight   = 0.9
	preferredWeight  = 0.6
	technologyWeight = 0.3

	techDomainDivisor     = 15.0
	businessDomainDivisor = 10.0
	domainBoostCap        = 0.8
	mixedFocusWeight      = 0.6

	focusPenalty = 0.4

	styleBaseline = 0.7
	styleBoosted  = 0.9
)

// technicalOnlyTerms are penalized for business-focused roles unless the
// skill also appears in dualPurposeTerms.
var technicalOnlyTerms = []string{
	"network security", "server administration", "hardware troubleshooting",
	"windows administration", "technical support",
}

var dualPurposeTerms = []string{
	"data analysis", "sql", "database", "automation", "reporting", "excel", "power bi",
}

// Scorer scores memory items against requirement profiles.
type Scorer struct {
	matcher *Matcher
}

func NewScorer(matcher *Matcher) *Scorer {
	if matcher == nil {
		matcher = NewMatcher()
	}
	return &Scorer{matcher: matcher}
}

// Matcher returns the shared semantic matcher.
func (s *Scorer) Matcher() *Matcher {
	return s.matcher
}

// ScoreSkill scores one skill record against a profile. A nil profile or a
// degenerate record scores zero rather than failing, so one bad item never
// aborts a selection pass.
func (s *Scorer) ScoreSkill(skill memory.Skill, p *analyzer.Profile) Score {
	if p == nil || strings.TrimSpace(skill.Name) == "" {
		return Score{Explanation: "not scorable"}
	}

	name := strings.ToLower(skill.Name)
	context := strings.ToLower(skill.Context)

	var sc Score

	// Direct requirement matching: max over phrases, not sum, so near-
	// duplicate requirement lines don't double-count.
	for _, req := range p.RequiredSkills {
		if sim := s.matcher.Similarity(name, req); sim*requiredWeight > sc.Direct {
			sc.Direct = sim * requiredWeight
		}
	}
	for _, pref := range p.PreferredSkills {
		if sim := s.matcher.Similarity(name, pref); sim*preferredWeight > sc.Direct {
			sc.Direct = sim * preferredWeight
		}
	}

	switch p.PrimaryFocus {
	case "technical":
		sc.DomainBoost = domainBoost(name, context, p.TechDomains, analyzer.TechDomains, techDomainDivisor)
	case "business":
		sc.DomainBoost = domainBoost(name, context, p.BusinessDomains, analyzer.BusinessDomains, businessDomainDivisor)
	default:
		sc.DomainBoost = mixedFocusWeight*domainBoost(name, context, p.TechDomains, analyzer.TechDomains, techDomainDivisor) +
			mixedFocusWeight*domainBoost(name, context, p.BusinessDomains, analyzer.BusinessDomains, businessDomainDivisor)
	}

	for _, tech := range p.Technologies {
		if sim := s.matcher.Similarity(name, tech); sim*technologyWeight > sc.Semantic {
			sc.Semantic = sim * technologyWeight
		}
	}

	if p.PrimaryFocus == "business" && matchesAny(name, technicalOnlyTerms) && !matchesAny(name, dualPurposeTerms) {
		sc.Penalty = focusPenalty
	}

	sc.Final = clamp01(sc.Direct + sc.DomainBoost + sc.Semantic - sc.Penalty)
	sc.Confidence = confidence(sc.Direct, sc.DomainBoost, sc.Semantic)
	sc.Explanation = explain(sc, p)
	return sc
}

// ScoreStyle scores a style rule. Most writing rules apply to any posting,
// so the baseline is generous; tone and communication rules get a boost for
// communication-heavy roles.
func (s *Scorer) ScoreStyle(pref memory.StylePreference, p *analyzer.Profile) Score {
	sc := Score{Final: styleBaseline, Confidence: 0.6, Explanation: "generally applicable writing rule"}
	if p == nil {
		return sc
	}

	rule := strings.ToLower(pref.Rule)
	communicationDuties := false
	for _, resp := range p.Responsibilities {
		if strings.Contains(resp, "communicate") || strings.Contains(resp, "present") ||
			strings.Contains(resp, "write") || strings.Contains(resp, "document") {
			communicationDuties = true
			break
		}
	}

	ruleIsCommunication := pref.Category == memory.StyleTone ||
		strings.Contains(rule, "tone") || strings.Contains(rule, "communication") || strings.Contains(rule, "writing")

	if communicationDuties && ruleIsCommunication {
		sc.Final = styleBoosted
		sc.Confidence = 0.8
		sc.Explanation = "tone rule for a communication-heavy role"
	}
	return sc
}

// domainBoost adds a contribution for every scored domain whose keywords
// appear in the skill, each capped so a single dominant domain cannot
// saturate the score.
func domainBoost(name, context string, scores map[string]float64, catalogue map[string]analyzer.Domain, divisor float64) float64 {
	names := make([]string, 0, len(scores))
	for domain := range scores {
		names = append(names, domain)
	}
	sort.Strings(names)

	boost := 0.0
	for _, domain := range names {
		d, ok := catalogue[domain]
		if !ok {
			continue
		}
		for _, kw := range d.Keywords {
			if strings.Contains(name, kw) || strings.Contains(context, kw) {
				contribution := scores[domain] / divisor
				if contribution > domainBoostCap {
					contribution = domainBoostCap
				}
				boost += contribution * d.Weight
				break
			}
		}
	}
	return boost
}

func matchesAny(name string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// confidence reflects which components fired and how strong the direct
// match is.
func confidence(direct, boost, semantic float64) float64 {
	switch {
	case direct > 0.8:
		return 0.95
	case direct > 0.5 || boost > 0.6:
		return 0.8
	case direct > 0.2 || boost > 0.3 || semantic > 0.3:
		return 0.6
	default:
		return 0.4
	}
}

func explain(sc Score, p *analyzer.Profile) string {
	var parts []string

	switch {
	case sc.Direct > 0.7:
		parts = append(parts, "strong match with job requirements")
	case sc.Direct > 0.4:
		parts = append(parts, "moderate match with job requirements")
	case sc.Direct > 0.1:
		parts = append(parts, "weak match with job requirements")
	}

	if sc.DomainBoost > 0.5 {
		parts = append(parts, fmt.Sprintf("high relevance to %s role", p.PrimaryFocus))
	} else if sc.DomainBoost > 0.2 {
		parts = append(parts, fmt.Sprintf("moderate relevance to %s role", p.PrimaryFocus))
	}

	if sc.Semantic > 0.2 {
		parts = append(parts, "similar to mentioned technologies")
	}
	if sc.Penalty > 0 {
		parts = append(parts, "some mismatch with role focus")
	}

	if len(parts) == 0 {
		return "basic relevance assessment"
	}
	return strings.Join(parts, "; ")
}
