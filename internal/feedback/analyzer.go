// Package feedback turns user reactions to generated letters into durable
// memory updates. Extraction is rule-based: phrase patterns map feedback
// sentences onto style rules and skill mentions, and trivial approvals skip
// analysis entirely.
package feedback

import (
	"regexp"
	"strings"
	"time"

	"github.com/lettersmith/lettersmith/internal/memory"
)

// Insights is what one feedback round taught us.
type Insights struct {
	SimpleApproval bool
	AvoidPhrases   []string
	PreferPhrases  []string
	ToneRules      []string
	SkillMentions  []string
	Applied        []string
	Effectiveness  float64
}

// Analyzer extracts insights from feedback and writes them back through the
// store.
type Analyzer struct {
	store *memory.Store
}

func New(store *memory.Store) *Analyzer {
	return &Analyzer{store: store}
}

var simpleApprovalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(approved|accepted|perfect|good|fine|ok|okay)!?\.?$`),
	regexp.MustCompile(`(?i)^(looks good|this is great|love it)!?\.?$`),
}

var (
	avoidPattern   = regexp.MustCompile(`(?i)(?:don't say|do not say|avoid|stop using|never use|remove)\s+["“]([^"”\n]+)["”]`)
	preferPattern  = regexp.MustCompile(`(?i)(?:\buse|\bprefer|replace with|instead say)\s+["“]([^"”\n]+)["”]`)
	mentionPattern = regexp.MustCompile(`(?i)(?:mention|highlight|emphasize|include)\s+(?:my\s+)?([^".,\n]+)`)
	tonePattern    = regexp.MustCompile(`(?i)(?:too|more|less)\s+(formal|casual|stiff|wordy|enthusiastic|generic|robotic)`)
)

// meaningful feedback contains at least one of these; anything shorter and
// blander is treated as a plain approval or rejection.
var contentKeywords = []string{
	"skill", "experience", "mention", "change", "add", "remove",
	"tone", "style", "rewrite", "improve", "instead", "prefer",
}

// Analyze processes one feedback round, updates memory, and records the
// feedback entry. The caller saves the store.
func (a *Analyzer) Analyze(feedbackText, letterContext, outcome string) Insights {
	trimmed := strings.TrimSpace(feedbackText)

	if isSimpleApproval(trimmed, outcome) {
		a.store.AddFeedback(memory.FeedbackEntry{
			Text:          "Simple approval - cover letter accepted",
			LetterSnippet: snippet(letterContext, 200),
			Outcome:       outcome,
			Insights:      []string{"User approved cover letter without specific feedback"},
			Effectiveness: 0.9,
		})
		return Insights{SimpleApproval: true, Effectiveness: 0.9}
	}

	ins := extractInsights(trimmed)
	ins.Effectiveness = effectiveness(outcome, ins)

	now := time.Now()
	for _, phrase := range ins.AvoidPhrases {
		a.store.UpsertStyle(memory.StylePreference{
			Category:    memory.StyleAvoidPhrases,
			Rule:        phrase,
			SuccessRate: 1.0,
			LastApplied: now,
			Context:     "extracted from feedback",
		})
		ins.Applied = append(ins.Applied, "avoid: "+phrase)
	}
	for _, phrase := range ins.PreferPhrases {
		a.store.UpsertStyle(memory.StylePreference{
			Category:    memory.StylePreferPhrases,
			Rule:        phrase,
			SuccessRate: 1.0,
			LastApplied: now,
			Context:     "extracted from feedback",
		})
		ins.Applied = append(ins.Applied, "prefer: "+phrase)
	}
	for _, rule := range ins.ToneRules {
		a.store.UpsertStyle(memory.StylePreference{
			Category:    memory.StyleTone,
			Rule:        rule,
			SuccessRate: 1.0,
			LastApplied: now,
			Context:     "extracted from feedback",
		})
		ins.Applied = append(ins.Applied, "tone: "+rule)
	}
	for _, skill := range ins.SkillMentions {
		existing, ok := a.store.Skill(skill)
		if ok {
			existing.LastUpdated = now
			if existing.Context == "" {
				existing.Context = "reinforced by feedback"
			}
			a.store.UpsertSkill(existing)
		} else {
			a.store.UpsertSkill(memory.Skill{
				Name:        skill,
				Proficiency: "Mentioned in feedback",
				Context:     "inferred from feedback",
				LastUpdated: now,
			})
		}
		ins.Applied = append(ins.Applied, "skill: "+skill)
	}

	a.store.AddFeedback(memory.FeedbackEntry{
		Text:          trimmed,
		LetterSnippet: snippet(letterContext, 200),
		Outcome:       outcome,
		Insights:      describe(ins),
		Applied:       ins.Applied,
		Effectiveness: ins.Effectiveness,
	})
	return ins
}

func isSimpleApproval(text, outcome string) bool {
	if outcome != "accepted" {
		return false
	}
	for _, re := range simpleApprovalPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	if len(text) < 20 {
		lower := strings.ToLower(text)
		for _, kw := range contentKeywords {
			if strings.Contains(lower, kw) {
				return false
			}
		}
		return true
	}
	return false
}

func extractInsights(text string) Insights {
	var ins Insights

	for _, m := range avoidPattern.FindAllStringSubmatch(text, -1) {
		if phrase := cleanPhrase(m[1]); phrase != "" {
			ins.AvoidPhrases = append(ins.AvoidPhrases, phrase)
		}
	}
	for _, m := range preferPattern.FindAllStringSubmatch(text, -1) {
		if phrase := cleanPhrase(m[1]); phrase != "" {
			ins.PreferPhrases = append(ins.PreferPhrases, phrase)
		}
	}
	for _, m := range tonePattern.FindAllStringSubmatch(text, -1) {
		ins.ToneRules = append(ins.ToneRules, strings.ToLower(strings.TrimSpace(m[0])))
	}
	for _, m := range mentionPattern.FindAllStringSubmatch(text, -1) {
		if skill := cleanPhrase(m[1]); skill != "" && len(skill) < 60 {
			ins.SkillMentions = append(ins.SkillMentions, skill)
		}
	}
	return ins
}

func cleanPhrase(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'“”`)
	// Drop trailing connectives left over from the clause capture.
	for _, suffix := range []string{" instead", " please", " in the letter"} {
		s = strings.TrimSuffix(s, suffix)
	}
	return strings.TrimSpace(s)
}

func effectiveness(outcome string, ins Insights) float64 {
	base := 0.5
	switch outcome {
	case "accepted":
		base = 0.8
	case "revised":
		base = 0.6
	case "rejected":
		base = 0.3
	}
	if len(ins.AvoidPhrases)+len(ins.PreferPhrases)+len(ins.ToneRules)+len(ins.SkillMentions) > 0 {
		base += 0.1
	}
	if base > 1 {
		base = 1
	}
	return base
}

func describe(ins Insights) []string {
	var out []string
	for _, p := range ins.AvoidPhrases {
		out = append(out, "avoid phrase: "+p)
	}
	for _, p := range ins.PreferPhrases {
		out = append(out, "prefer phrase: "+p)
	}
	for _, r := range ins.ToneRules {
		out = append(out, "tone: "+r)
	}
	for _, s := range ins.SkillMentions {
		out = append(out, "skill mention: "+s)
	}
	return out
}

func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
