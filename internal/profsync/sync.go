// Package profsync keeps the memory store aligned with the user-maintained
// profile files: a skillset CSV and a criteria text file. Changes are
// detected by checksum so unchanged files cost nothing, and skill records
// imported from the CSV are removed again when their line disappears.
package profsync

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lettersmith/lettersmith/internal/memory"
)

const (
	checksumFile    = ".file_checksums.json"
	skillProvenance = "skillset.csv"

	// Entries longer than this are artifacts, not skills.
	maxSkillNameLen = 60
)

// Result summarizes one sync pass.
type Result struct {
	SkillsAdded     int
	SkillsUpdated   int
	SkillsRemoved   int
	InvalidRemoved  int
	CriteriaChanged bool
	SkillsChanged   bool
}

// Syncer imports profile files from a directory into the store.
type Syncer struct {
	store *memory.Store
	dir   string
}

func New(store *memory.Store, dir string) *Syncer {
	return &Syncer{store: store, dir: dir}
}

// Sync detects changed profile files and folds them into memory. Missing
// files are not errors; the corresponding section simply stays untouched.
func (s *Syncer) Sync() (Result, error) {
	var res Result

	skillPath, err := s.findFile("skillset*.csv")
	if err != nil {
		return res, err
	}
	criteriaPath, err := s.findFile("criteria*.txt")
	if err != nil {
		return res, err
	}

	stored := s.loadChecksums()
	current := map[string]string{}

	if skillPath != "" {
		sum, err := fileChecksum(skillPath)
		if err != nil {
			return res, err
		}
		current["skillset.csv"] = sum
		if sum != stored["skillset.csv"] {
			res.SkillsChanged = true
			added, updated, removed, err := s.importSkills(skillPath)
			if err != nil {
				return res, err
			}
			res.SkillsAdded, res.SkillsUpdated, res.SkillsRemoved = added, updated, removed
		}
	}

	if criteriaPath != "" {
		sum, err := fileChecksum(criteriaPath)
		if err != nil {
			return res, err
		}
		current["criteria.txt"] = sum
		res.CriteriaChanged = sum != stored["criteria.txt"]
	}

	res.InvalidRemoved = s.CleanupPolluted()

	if err := s.saveChecksums(current); err != nil {
		return res, err
	}
	return res, nil
}

// CriteriaPath returns the criteria file location, or empty when absent.
func (s *Syncer) CriteriaPath() (string, error) {
	return s.findFile("criteria*.txt")
}

// importSkills reads the CSV and upserts one record per skill name. Records
// previously imported from the CSV that no longer appear are removed;
// records from other sources are left alone.
func (s *Syncer) importSkills(path string) (added, updated, removed int, err error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to open skillset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	imported := map[string]bool{}
	now := time.Now()

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Tolerate ragged lines; a single bad row should not abort the
			// import.
			continue
		}
		if len(record) == 0 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" || strings.EqualFold(name, "skill") || strings.EqualFold(name, "name") {
			continue
		}
		if !validSkillName(name) {
			continue
		}

		key := memory.NormalizeKey(name)
		imported[key] = true

		if existing, ok := s.store.Skill(name); ok {
			if strings.Contains(existing.Context, skillProvenance) {
				existing.LastUpdated = now
				s.store.UpsertSkill(existing)
				updated++
			}
			continue
		}

		proficiency := "Listed in skillset"
		if len(record) > 1 && strings.TrimSpace(record[1]) != "" {
			proficiency = strings.TrimSpace(record[1])
		}
		s.store.UpsertSkill(memory.Skill{
			Name:        name,
			Proficiency: proficiency,
			Context:     "User-maintained skill list (skillset.csv)",
			LastUpdated: now,
		})
		added++
	}

	for _, skill := range s.store.Skills() {
		key := memory.NormalizeKey(skill.Name)
		if strings.Contains(skill.Context, skillProvenance) && !imported[key] {
			if s.store.RemoveSkill(skill.Name) {
				removed++
			}
		}
	}

	return added, updated, removed, nil
}

// CleanupPolluted removes skill entries that are clearly not skills:
// oversized names, embedded newlines, or whole sentences that leaked in
// from feedback text.
func (s *Syncer) CleanupPolluted() int {
	removed := 0
	for _, skill := range s.store.Skills() {
		if !validSkillName(skill.Name) {
			if s.store.RemoveSkill(skill.Name) {
				removed++
			}
		}
	}
	return removed
}

func validSkillName(name string) bool {
	if name == "" || len(name) > maxSkillNameLen {
		return false
	}
	if strings.ContainsAny(name, "\n\r\t") {
		return false
	}
	if strings.Count(name, " ") > 7 {
		return false
	}
	// Markdown and bullet artifacts from pasted text.
	if strings.HasPrefix(name, "#") || strings.HasPrefix(name, "-") || strings.HasPrefix(name, "*") {
		return false
	}
	return true
}

// findFile locates the newest file matching the glob in the profile dir.
func (s *Syncer) findFile(pattern string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(s.dir), pattern)
	if err != nil {
		return "", fmt.Errorf("bad profile glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", nil
	}

	best, bestTime := "", time.Time{}
	for _, m := range matches {
		full := filepath.Join(s.dir, m)
		info, err := os.Stat(full)
		if err != nil {
			continue
		}
		if best == "" || info.ModTime().After(bestTime) {
			best, bestTime = full, info.ModTime()
		}
	}
	return best, nil
}

func fileChecksum(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func (s *Syncer) loadChecksums() map[string]string {
	data, err := os.ReadFile(filepath.Join(s.dir, checksumFile)) // #nosec G304
	if err != nil {
		return map[string]string{}
	}
	var sums map[string]string
	if err := json.Unmarshal(data, &sums); err != nil {
		return map[string]string{}
	}
	return sums
}

func (s *Syncer) saveChecksums(sums map[string]string) error {
	data, err := json.MarshalIndent(sums, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checksums: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, checksumFile), data, 0600); err != nil {
		return fmt.Errorf("failed to write checksums: %w", err)
	}
	return nil
}
