package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Store owns the persisted user memory. It is the only writer of the
// document; everything else reads through the capability interfaces.
// Single process, single user: no locking, whole-file overwrite on save.
type Store struct {
	path  string
	doc   Document
	dirty bool
}

var keyPattern = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeKey collapses a skill name to its store key: lower-cased,
// punctuation and whitespace runs replaced by a single underscore.
func NormalizeKey(name string) string {
	key := keyPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	return strings.Trim(key, "_")
}

// Load reads the memory document from path. A missing or corrupt file is
// not an error: the store starts empty and the loss shows up only as empty
// sections.
func Load(path string) (*Store, error) {
	s := &Store{path: path, doc: emptyDocument()}

	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read memory file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		// Corrupt document: reinitialize rather than fail.
		return s, nil
	}
	if doc.Profile.Skills == nil {
		doc.Profile.Skills = map[string]Skill{}
	}
	if doc.Styles == nil {
		doc.Styles = map[StyleCategory][]StylePreference{}
	}
	s.doc = doc
	return s, nil
}

func emptyDocument() Document {
	now := time.Now()
	return Document{
		Profile: Profile{Skills: map[string]Skill{}},
		Styles:  map[StyleCategory][]StylePreference{},
		Meta:    Metadata{Created: now, LastUpdated: now},
	}
}

// Save writes the whole document back to disk. Last writer wins.
func (s *Store) Save() error {
	s.doc.Meta.LastUpdated = time.Now()

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create memory directory: %w", err)
	}

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal memory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write memory file: %w", err)
	}
	s.dirty = false
	return nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Dirty reports whether there are unsaved changes.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Skills returns all skill records sorted by key for deterministic output.
func (s *Store) Skills() []Skill {
	keys := make([]string, 0, len(s.doc.Profile.Skills))
	for k := range s.doc.Profile.Skills {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Skill, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.doc.Profile.Skills[k])
	}
	return out
}

// Skill looks up a record by name or normalized key.
func (s *Store) Skill(name string) (Skill, bool) {
	sk, ok := s.doc.Profile.Skills[NormalizeKey(name)]
	return sk, ok
}

// UpsertSkill adds a skill or updates the record stored under the same
// normalized key. The key set never grows for a re-mention.
func (s *Store) UpsertSkill(skill Skill) {
	key := NormalizeKey(skill.Name)
	if key == "" {
		return
	}
	if skill.LastUpdated.IsZero() {
		skill.LastUpdated = time.Now()
	}
	s.doc.Profile.Skills[key] = skill
	s.dirty = true
}

// RemoveSkill deletes a record by name or key. Returns true if it existed.
func (s *Store) RemoveSkill(name string) bool {
	key := NormalizeKey(name)
	if _, ok := s.doc.Profile.Skills[key]; !ok {
		return false
	}
	delete(s.doc.Profile.Skills, key)
	s.dirty = true
	return true
}

// SkillCount reports the number of stored skills.
func (s *Store) SkillCount() int {
	return len(s.doc.Profile.Skills)
}

// Styles returns the style preferences grouped by category.
func (s *Store) Styles() map[StyleCategory][]StylePreference {
	return s.doc.Styles
}

// UpsertStyle adds a style rule, or updates the entry with the same rule
// text within the category.
func (s *Store) UpsertStyle(pref StylePreference) {
	if pref.Rule == "" {
		return
	}
	if pref.LastApplied.IsZero() {
		pref.LastApplied = time.Now()
	}
	prefs := s.doc.Styles[pref.Category]
	for i, existing := range prefs {
		if existing.Rule == pref.Rule {
			prefs[i] = pref
			s.dirty = true
			return
		}
	}
	s.doc.Styles[pref.Category] = append(prefs, pref)
	s.dirty = true
}

// Events returns the temporal events.
func (s *Store) Events() []Event {
	return s.doc.Events
}

// AddEvent appends a temporal event.
func (s *Store) AddEvent(ev Event) {
	s.doc.Events = append(s.doc.Events, ev)
	s.dirty = true
}

// ReplaceEvents swaps the full event list. The temporal manager uses this
// after a sweep so status stays a pure function of the dates.
func (s *Store) ReplaceEvents(events []Event) {
	s.doc.Events = events
	s.dirty = true
}

// AddFeedback appends a feedback entry and advances the counters.
func (s *Store) AddFeedback(entry FeedbackEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	s.doc.Feedback = append(s.doc.Feedback, entry)
	s.doc.Meta.TotalInteractions++
	if entry.Outcome == "accepted" {
		s.doc.Meta.SuccessfulGenerations++
	}
	s.dirty = true
}

// Feedback returns the feedback history.
func (s *Store) Feedback() []FeedbackEntry {
	return s.doc.Feedback
}

// Meta returns the store counters.
func (s *Store) Meta() Metadata {
	return s.doc.Meta
}

// SuccessRate is the accepted fraction over all interactions.
func (s *Store) SuccessRate() float64 {
	if s.doc.Meta.TotalInteractions == 0 {
		return 0
	}
	return float64(s.doc.Meta.SuccessfulGenerations) / float64(s.doc.Meta.TotalInteractions)
}
