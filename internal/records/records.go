// Package records keeps a local log of every generation run: which job,
// which provider, what was selected from memory, and how the user reacted.
// The memory store answers "what do I know"; records answer "what happened".
package records

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one generation run.
type Record struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Provider       string    `json:"provider"`
	Model          string    `json:"model"`
	RoleType       string    `json:"role_type"`
	Industry       string    `json:"industry"`
	SkillsSelected []string  `json:"skills_selected"`
	Outcome        string    `json:"outcome"`
	PromptTokens   int       `json:"prompt_tokens"`
	TotalTokens    int       `json:"total_tokens"`
	LetterPath     string    `json:"letter_path"`
}

// Log is a SQLite-backed record log.
type Log struct {
	db *sql.DB
}

func Open(dbPath string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	l := &Log{db: db}
	if err := l.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Log) initSchema() error {
	query := `CREATE TABLE IF NOT EXISTS generations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME,
		provider TEXT,
		model TEXT,
		role_type TEXT,
		industry TEXT,
		skills_selected TEXT,
		outcome TEXT,
		prompt_tokens INTEGER,
		total_tokens INTEGER,
		letter_path TEXT
	);`
	if _, err := l.db.Exec(query); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

func (l *Log) Close() error {
	return l.db.Close()
}

// Add inserts a record and returns its assigned id.
func (l *Log) Add(r *Record) (int64, error) {
	skillsJSON, err := json.Marshal(r.SkillsSelected)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal skills: %w", err)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	query := `INSERT INTO generations
		(created_at, provider, model, role_type, industry, skills_selected, outcome, prompt_tokens, total_tokens, letter_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := l.db.Exec(query,
		r.CreatedAt, r.Provider, r.Model, r.RoleType, r.Industry,
		string(skillsJSON), r.Outcome, r.PromptTokens, r.TotalTokens, r.LetterPath)
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	r.ID = id
	return id, nil
}

// SetOutcome updates the outcome of an existing record after review.
func (l *Log) SetOutcome(id int64, outcome string) error {
	res, err := l.db.Exec(`UPDATE generations SET outcome = ? WHERE id = ?`, outcome, id)
	if err != nil {
		return fmt.Errorf("failed to update outcome: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("record not found: %d", id)
	}
	return nil
}

// Recent returns the newest records, most recent first.
func (l *Log) Recent(limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, created_at, provider, model, role_type, industry, skills_selected, outcome, prompt_tokens, total_tokens, letter_path
		FROM generations ORDER BY id DESC LIMIT ?`
	rows, err := l.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ByOutcome returns all records with the given outcome, most recent first.
func (l *Log) ByOutcome(outcome string) ([]*Record, error) {
	query := `SELECT id, created_at, provider, model, role_type, industry, skills_selected, outcome, prompt_tokens, total_tokens, letter_path
		FROM generations WHERE outcome = ? ORDER BY id DESC`
	rows, err := l.db.Query(query, outcome)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Stats summarizes outcomes across all records.
type Stats struct {
	Total    int
	Accepted int
	Revised  int
	Rejected int
}

func (s Stats) AcceptRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Total)
}

func (l *Log) Stats() (Stats, error) {
	var st Stats
	rows, err := l.db.Query(`SELECT outcome, COUNT(*) FROM generations GROUP BY outcome`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return st, err
		}
		st.Total += count
		switch outcome {
		case "accepted":
			st.Accepted += count
		case "revised":
			st.Revised += count
		case "rejected":
			st.Rejected += count
		}
	}
	return st, rows.Err()
}

func scanRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		var r Record
		var skillsJSON string
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Provider, &r.Model, &r.RoleType, &r.Industry,
			&skillsJSON, &r.Outcome, &r.PromptTokens, &r.TotalTokens, &r.LetterPath); err != nil {
			return nil, err
		}
		if skillsJSON != "" {
			if err := json.Unmarshal([]byte(skillsJSON), &r.SkillsSelected); err != nil {
				return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
			}
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}
