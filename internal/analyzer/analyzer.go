// Package analyzer turns free-text job postings into structured requirement
// profiles. All scoring is additive keyword work: identical input always
// yields an identical profile, and malformed input degrades to a
// low-confidence profile instead of an error.
package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sort"
	"strings"
)

// Profile is the structured summary of one job posting.
type Profile struct {
	RoleType         string             `json:"role_type"`
	PrimaryFocus     string             `json:"primary_focus"` // technical, business or mixed
	Confidence       float64            `json:"confidence"`
	RequiredSkills   []string           `json:"required_skills"`
	PreferredSkills  []string           `json:"preferred_skills"`
	TechDomains      map[string]float64 `json:"tech_domains"`
	BusinessDomains  map[string]float64 `json:"business_domains"`
	Industry         IndustryContext    `json:"industry_context"`
	ExperienceLevel  string             `json:"experience_level"`
	Technologies     []string           `json:"explicit_technologies"`
	SoftSkills       []string           `json:"soft_skills"`
	Responsibilities []string           `json:"key_responsibilities"`
}

// Analyzer builds requirement profiles and caches them for the process
// lifetime, keyed by a content hash of the posting text.
type Analyzer struct {
	cache map[string]*Profile
}

func New() *Analyzer {
	return &Analyzer{cache: map[string]*Profile{}}
}

var (
	requiredPatterns = compileClausePatterns([]string{
		`required?:?\s*([^.!?\n]*)`,
		`must have:?\s*([^.!?\n]*)`,
		`essential:?\s*([^.!?\n]*)`,
		`minimum requirements?:?\s*([^.!?\n]*)`,
		`qualifications?:?\s*([^.!?\n]*)`,
	})
	preferredPatterns = compileClausePatterns([]string{
		`preferred?:?\s*([^.!?\n]*)`,
		`nice to have:?\s*([^.!?\n]*)`,
		`bonus:?\s*([^.!?\n]*)`,
		`plus:?\s*([^.!?\n]*)`,
		`desired:?\s*([^.!?\n]*)`,
	})
	responsibilityPatterns = compileClausePatterns([]string{
		`responsibilities?:?\s*([^.!?\n]*)`,
		`duties:?\s*([^.!?\n]*)`,
		`you will:?\s*([^.!?\n]*)`,
		`the role involves:?\s*([^.!?\n]*)`,
	})

	technologyPattern = regexp.MustCompile(`\b(?:java|python|javascript|sql|aws|azure|linux|windows|oracle|mysql|postgresql|react|angular|vue|docker|kubernetes|git|jenkins|powershell|tableau|salesforce|sap)\b`)

	softSkillTerms = []string{
		"communication", "leadership", "teamwork", "problem solving", "problem-solving",
		"analytical", "detail oriented", "detail-oriented", "time management", "adaptability",
	}

	seniorIndicators = []string{"senior", "lead", "principal", "architect", "5+ years", "7+ years", "10+ years"}
	juniorIndicators = []string{"junior", "entry", "associate", "0-2 years", "1-2 years", "recent graduate"}
)

func compileClausePatterns(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

// Analyze builds the requirement profile for a posting. It never fails:
// empty or unrecognizable text yields an "unknown" role with empty skill
// lists so downstream scoring always has something to work against.
func (a *Analyzer) Analyze(jobText string) *Profile {
	key := contentHash(jobText)
	if cached, ok := a.cache[key]; ok {
		return cached
	}

	jobLower := strings.ToLower(jobText)

	p := &Profile{
		RequiredSkills:  []string{},
		PreferredSkills: []string{},
		TechDomains:     map[string]float64{},
		BusinessDomains: map[string]float64{},
		ExperienceLevel: "mid",
	}

	p.Industry = classifyIndustry(jobLower)
	p.RoleType, p.Confidence = classifyRole(jobLower)

	techContent := aggregateContentScore(jobLower, TechDomains)
	businessContent := aggregateContentScore(jobLower, BusinessDomains)

	switch {
	case p.RoleType == "technical_it":
		p.PrimaryFocus = "technical"
	case businessRoles[p.RoleType]:
		p.PrimaryFocus = "business"
	case businessContent > techContent:
		p.PrimaryFocus = "business"
	case techContent > businessContent:
		p.PrimaryFocus = "technical"
	default:
		p.PrimaryFocus = "mixed"
	}

	// Score both domain catalogues. The off-focus side is kept at a reduced
	// weight so mixed roles still see it.
	switch p.PrimaryFocus {
	case "technical":
		p.TechDomains = scoreDomains(jobLower, TechDomains, p.Industry.Name, 1.0)
		p.BusinessDomains = scoreDomains(jobLower, BusinessDomains, p.Industry.Name, 0.3)
	case "business":
		p.BusinessDomains = scoreDomains(jobLower, BusinessDomains, p.Industry.Name, 1.0)
		p.TechDomains = scoreDomains(jobLower, TechDomains, p.Industry.Name, 0.3)
	default:
		p.TechDomains = scoreDomains(jobLower, TechDomains, p.Industry.Name, 1.0)
		p.BusinessDomains = scoreDomains(jobLower, BusinessDomains, p.Industry.Name, 1.0)
	}

	p.RequiredSkills = extractPhrases(jobLower, requiredPatterns)
	p.PreferredSkills = extractPhrases(jobLower, preferredPatterns)
	p.Responsibilities = extractClauses(jobLower, responsibilityPatterns)
	p.Technologies = extractTechnologies(jobLower)
	p.SoftSkills = extractSoftSkills(jobLower)
	p.ExperienceLevel = classifyExperience(jobLower)

	a.cache[key] = p
	return p
}

// ClearCache drops all cached profiles.
func (a *Analyzer) ClearCache() {
	a.cache = map[string]*Profile{}
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(strings.ToLower(text))))
	return hex.EncodeToString(sum[:])
}

// classifyRole scores each role type by pattern occurrences, with a bonus
// for hits in the first 200 characters where titles live, then nudges the
// result with technical vs business context indicators.
func classifyRole(jobLower string) (string, float64) {
	titleArea := jobLower
	if len(titleArea) > 200 {
		titleArea = titleArea[:200]
	}

	scores := map[string]int{}
	for name, rt := range roleTypes {
		score := 0
		for _, pat := range rt.Patterns {
			score += countWordOccurrences(jobLower, pat)
			if strings.Contains(titleArea, pat) {
				score += 3
			}
		}
		for _, ind := range rt.Complexity {
			if strings.Contains(jobLower, ind) {
				score += 2
			}
		}
		scores[name] = score
	}

	techContext := countIndicators(jobLower, technicalContextIndicators)
	businessContext := countIndicators(jobLower, businessContextIndicators)

	if techContext > businessContext+2 {
		scores["technical_it"] += techContext * 2
	} else if businessContext > techContext+2 {
		scores["business_analyst"] += businessContext * 2
	}

	// An "analyst" title in a heavily technical posting is an IT analyst.
	if strings.Contains(jobLower, "analyst") && techContext >= 3 {
		scores["technical_it"] += 5
	}

	best, bestScore, total := "", 0, 0
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		total += scores[name]
		if scores[name] > bestScore {
			best, bestScore = name, scores[name]
		}
	}

	if bestScore == 0 {
		return "unknown", 0
	}
	return best, float64(bestScore) / float64(total)
}

func countIndicators(text string, indicators []string) int {
	n := 0
	for _, ind := range indicators {
		if strings.Contains(text, ind) {
			n++
		}
	}
	return n
}

func aggregateContentScore(jobLower string, domains map[string]Domain) int {
	total := 0
	for _, d := range domains {
		for _, kw := range d.Keywords {
			total += countWordOccurrences(jobLower, kw)
		}
	}
	return total
}

func scoreDomains(jobLower string, domains map[string]Domain, industry string, weight float64) map[string]float64 {
	out := map[string]float64{}
	for name, d := range domains {
		score := 0.0
		for _, kw := range d.Keywords {
			score += float64(countWordOccurrences(jobLower, kw)) * d.Weight * weight
		}
		if boost, ok := d.IndustryBoost[industry]; ok {
			score *= boost
		}
		if score > 0 {
			out[name] = score
		}
	}
	return out
}

// extractPhrases pulls the clause following an introductory phrase and
// splits it into individual requirement phrases.
func extractPhrases(jobLower string, patterns []*regexp.Regexp) []string {
	seen := map[string]bool{}
	var out []string
	for _, clause := range extractClauses(jobLower, patterns) {
		for _, phrase := range splitPhrases(clause) {
			if phrase == "" || seen[phrase] {
				continue
			}
			seen[phrase] = true
			out = append(out, phrase)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func extractClauses(jobLower string, patterns []*regexp.Regexp) []string {
	var out []string
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(jobLower, -1) {
			clause := strings.TrimSpace(m[1])
			if clause != "" {
				out = append(out, clause)
			}
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

var phraseSeparator = regexp.MustCompile(`\s*(?:,|;|\band\b|\bor\b)\s*`)

func splitPhrases(clause string) []string {
	parts := phraseSeparator.Split(clause, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func extractTechnologies(jobLower string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range technologyPattern.FindAllString(jobLower, -1) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out
}

func extractSoftSkills(jobLower string) []string {
	seen := map[string]bool{}
	var out []string
	for _, term := range softSkillTerms {
		if strings.Contains(jobLower, term) {
			normalized := strings.ReplaceAll(term, "-", " ")
			if !seen[normalized] {
				seen[normalized] = true
				out = append(out, normalized)
			}
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func classifyExperience(jobLower string) string {
	senior := countIndicators(jobLower, seniorIndicators)
	junior := countIndicators(jobLower, juniorIndicators)
	switch {
	case senior > junior:
		return "senior"
	case junior > senior:
		return "junior"
	default:
		return "mid"
	}
}

// countWordOccurrences counts boundary-delimited occurrences of term. A
// plain word-boundary regex mishandles terms like "c++" and ".net", so
// boundaries are checked byte-wise instead.
func countWordOccurrences(text, term string) int {
	if term == "" {
		return 0
	}
	count := 0
	for i := 0; ; {
		j := strings.Index(text[i:], term)
		if j < 0 {
			break
		}
		start := i + j
		end := start + len(term)
		if isBoundary(text, start-1) && isBoundary(text, end) {
			count++
		}
		i = end
	}
	return count
}

func isBoundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	c := text[i]
	isWord := c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
	return !isWord
}
