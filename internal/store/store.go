// Package store persists completed verifications in SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/truthpulse/truthpulse/internal/model"
)

// ErrNotFound is returned when a verification id has no record
var ErrNotFound = errors.New("verification not found")

// Record is one persisted verification
type Record struct {
	ID         string               `json:"id"`
	UserID     string               `json:"user_id,omitempty"`
	Claim      string               `json:"claim"`
	Verdict    model.VerdictLabel   `json:"verdict"`
	Confidence float64              `json:"confidence"`
	Rationale  string               `json:"rationale"`
	Evidence   []model.EvidenceItem `json:"evidence"`
	Notes      string               `json:"notes,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// Store handles verification persistence
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// New opens (or creates) the database at path and applies the schema
func New(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	log.Info("database initialized", zap.String("path", path))
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS verifications (
		id TEXT PRIMARY KEY,
		user_id TEXT,
		claim TEXT NOT NULL,
		verdict TEXT NOT NULL,
		confidence REAL NOT NULL,
		rationale TEXT,
		evidence TEXT,
		notes TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_verifications_created ON verifications(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_verifications_user ON verifications(user_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save persists one verification record
func (s *Store) Save(record Record) error {
	evidence, err := json.Marshal(record.Evidence)
	if err != nil {
		return fmt.Errorf("encode evidence: %w", err)
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO verifications
			(id, user_id, claim, verdict, confidence, rationale, evidence, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.UserID, record.Claim, string(record.Verdict),
		record.Confidence, record.Rationale, string(evidence), record.Notes,
		record.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save verification: %w", err)
	}

	s.log.Debug("verification saved", zap.String("id", record.ID))
	return nil
}

// Get returns the verification with the given id
func (s *Store) Get(id string) (Record, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, claim, verdict, confidence, rationale, evidence, notes, created_at
		FROM verifications WHERE id = ?`, id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return record, err
}

// List returns the most recent verifications, newest first
func (s *Store) List(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, user_id, claim, verdict, confidence, rationale, evidence, notes, created_at
		FROM verifications ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list verifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var record Record
	var verdict, evidence, createdAt string

	err := row.Scan(&record.ID, &record.UserID, &record.Claim, &verdict,
		&record.Confidence, &record.Rationale, &evidence, &record.Notes, &createdAt)
	if err != nil {
		return Record{}, err
	}

	record.Verdict = model.VerdictLabel(verdict)
	if evidence != "" {
		if err := json.Unmarshal([]byte(evidence), &record.Evidence); err != nil {
			return Record{}, fmt.Errorf("decode evidence: %w", err)
		}
	}
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		record.CreatedAt = parsed
	}

	return record, nil
}
