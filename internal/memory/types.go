package memory

import "time"

// Skill is a remembered technical or business ability. Skills are keyed in
// the store by a normalized form of Name, so re-adding the same skill
// updates the existing record.
type Skill struct {
	Name        string    `json:"skill_name"`
	Proficiency string    `json:"proficiency"`
	Context     string    `json:"context"`
	Examples    []string  `json:"examples,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}

// StyleCategory classifies a writing-style preference.
type StyleCategory string

const (
	StyleAvoidPhrases  StyleCategory = "avoid_phrases"
	StylePreferPhrases StyleCategory = "prefer_phrases"
	StyleTone          StyleCategory = "tone"
	StyleStructure     StyleCategory = "structure"
)

// StyleCategories lists the known categories in display order.
var StyleCategories = []StyleCategory{
	StyleAvoidPhrases,
	StylePreferPhrases,
	StyleTone,
	StyleStructure,
}

// StylePreference is a learned writing rule. Within a category the Rule text
// is unique; re-adding an existing rule updates it in place.
type StylePreference struct {
	Category    StyleCategory `json:"category"`
	Rule        string        `json:"rule"`
	Examples    []string      `json:"examples,omitempty"`
	SuccessRate float64       `json:"success_rate"`
	LastApplied time.Time     `json:"last_applied"`
	Context     string        `json:"context,omitempty"`
}

// EventStatus is the lifecycle state of a temporal event. The temporal
// manager recomputes it from the event dates on every sweep; nothing else
// writes it.
type EventStatus string

const (
	StatusUpcoming          EventStatus = "upcoming"
	StatusStartingSoon      EventStatus = "starting_soon"
	StatusCurrent           EventStatus = "current"
	StatusRecentlyCompleted EventStatus = "recently_completed"
	StatusCompleted         EventStatus = "completed"
)

// Active reports whether the status still matters for personal context.
// Fully completed events drop out of generated digests.
func (s EventStatus) Active() bool {
	return s != StatusCompleted && s != ""
}

// UpdateRules is the per-event auto-update policy.
type UpdateRules struct {
	Cadence             string `json:"cadence"` // weekly or monthly
	RewriteDescriptions bool   `json:"rewrite_descriptions"`
	Precision           string `json:"precision"` // month, season, year, unknown
}

// Event is a time-scoped personal-history fact such as starting a degree.
type Event struct {
	Type        string      `json:"event_type"` // education, employment, project, certification
	Description string      `json:"description"`
	Start       *time.Time  `json:"start_date,omitempty"`
	End         *time.Time  `json:"end_date,omitempty"`
	Status      EventStatus `json:"status"`
	AutoUpdate  UpdateRules `json:"auto_update_rules"`
}

// FeedbackEntry records one round of user feedback on a generated letter.
type FeedbackEntry struct {
	Text          string    `json:"feedback_text"`
	LetterSnippet string    `json:"letter_snippet"`
	Outcome       string    `json:"outcome"` // accepted, rejected, revised
	Insights      []string  `json:"extracted_insights,omitempty"`
	Applied       []string  `json:"applied_changes,omitempty"`
	Effectiveness float64   `json:"effectiveness_score"`
	Timestamp     time.Time `json:"timestamp"`
}

// Metadata carries store-level counters.
type Metadata struct {
	Created               time.Time `json:"created"`
	LastUpdated           time.Time `json:"last_updated"`
	TotalInteractions     int       `json:"total_interactions"`
	SuccessfulGenerations int       `json:"successful_generations"`
}

// Profile groups the per-user sections of the document.
type Profile struct {
	Skills map[string]Skill `json:"skills"`
}

// Document is the full persisted memory file.
type Document struct {
	Profile  Profile                             `json:"user_profile"`
	Styles   map[StyleCategory][]StylePreference `json:"style_preferences"`
	Events   []Event                             `json:"temporal_events"`
	Feedback []FeedbackEntry                     `json:"feedback_history"`
	Meta     Metadata                            `json:"metadata"`
}

// SkillSource is the read capability the analyzer, scorer and selector
// depend on. Only the store implements it.
type SkillSource interface {
	Skills() []Skill
}

// StyleSource exposes stored style preferences grouped by category.
type StyleSource interface {
	Styles() map[StyleCategory][]StylePreference
}

// EventSource exposes temporal events for sweeping and selection.
type EventSource interface {
	Events() []Event
	ReplaceEvents(events []Event)
}
