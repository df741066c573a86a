package analyzer

import "strings"

// IndustryContext is the classified industry of a posting. Confidence is
// the top industry's share of the total score across all industries.
type IndustryContext struct {
	Name       string   `json:"industry"`
	Confidence float64  `json:"confidence"`
	Indicators []string `json:"indicators,omitempty"`
}

type industryPattern struct {
	Keywords  []string
	Context   []string
	TechStack []string
}

var industryPatterns = map[string]industryPattern{
	"healthcare": {
		Keywords:  []string{"healthcare", "medical", "hospital", "clinic", "patient", "hipaa", "epic", "cerner"},
		Context:   []string{"patient care", "medical records", "clinical", "pharmaceutical"},
		TechStack: []string{"epic", "cerner", "meditech", "allscripts"},
	},
	"finance": {
		Keywords:  []string{"finance", "banking", "financial", "investment", "trading", "risk", "compliance"},
		Context:   []string{"financial analysis", "risk management", "regulatory", "trading systems"},
		TechStack: []string{"bloomberg", "murex", "calypso", "oracle financials"},
	},
	"technology": {
		Keywords:  []string{"software", "development", "engineering", "tech", "startup", "saas", "platform"},
		Context:   []string{"software development", "cloud", "agile", "devops", "microservices"},
		TechStack: []string{"aws", "azure", "kubernetes", "docker", "react"},
	},
	"manufacturing": {
		Keywords:  []string{"manufacturing", "production", "factory", "industrial", "supply chain", "quality"},
		Context:   []string{"production line", "inventory", "lean manufacturing", "six sigma"},
		TechStack: []string{"sap", "mes", "scada", "plm"},
	},
	"education": {
		Keywords:  []string{"education", "university", "school", "academic", "research", "student"},
		Context:   []string{"curriculum", "learning", "academic"},
		TechStack: []string{"canvas", "blackboard", "moodle", "peoplesoft"},
	},
	"retail": {
		Keywords:  []string{"retail", "ecommerce", "customer", "sales", "marketing", "brand"},
		Context:   []string{"customer experience", "point of sale", "merchandising"},
		TechStack: []string{"salesforce", "shopify", "oracle retail"},
	},
}

// classifyIndustry scores the industry catalogue against the lower-cased
// posting. Keywords count 2 per occurrence, context phrases 3, tech stack
// names 4. No hits at all resolves to "general" at 0.5 confidence.
func classifyIndustry(jobLower string) IndustryContext {
	scores := map[string]int{}

	for industry, pat := range industryPatterns {
		score := 0
		for _, kw := range pat.Keywords {
			score += countWordOccurrences(jobLower, kw) * 2
		}
		for _, c := range pat.Context {
			if strings.Contains(jobLower, c) {
				score += 3
			}
		}
		for _, t := range pat.TechStack {
			if strings.Contains(jobLower, t) {
				score += 4
			}
		}
		if score > 0 {
			scores[industry] = score
		}
	}

	if len(scores) == 0 {
		return IndustryContext{Name: "general", Confidence: 0.5}
	}

	best, bestScore, total := "", 0, 0
	for industry, score := range scores {
		total += score
		if score > bestScore || (score == bestScore && industry < best) {
			best, bestScore = industry, score
		}
	}

	return IndustryContext{
		Name:       best,
		Confidence: float64(bestScore) / float64(total),
		Indicators: matchingIndicators(jobLower, best),
	}
}

func matchingIndicators(jobLower, industry string) []string {
	pat, ok := industryPatterns[industry]
	if !ok {
		return nil
	}
	var out []string
	for _, kw := range pat.Keywords {
		if strings.Contains(jobLower, kw) {
			out = append(out, "keyword: "+kw)
		}
	}
	for _, c := range pat.Context {
		if strings.Contains(jobLower, c) {
			out = append(out, "context: "+c)
		}
	}
	for _, t := range pat.TechStack {
		if strings.Contains(jobLower, t) {
			out = append(out, "technology: "+t)
		}
	}
	return out
}
