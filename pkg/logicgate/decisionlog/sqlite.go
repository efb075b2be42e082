package decisionlog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/randalmurphal/logicgate/pkg/logicgate"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists decision records to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite decision log.
// The path should be a file path (e.g., "./decisions.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS decisions (
			decision_id TEXT NOT NULL PRIMARY KEY,
			expression TEXT NOT NULL,
			allowed INTEGER NOT NULL,
			truths TEXT NOT NULL,
			duration_us INTEGER NOT NULL,
			decided_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_decisions_expression
		ON decisions(expression)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	truths, err := json.Marshal(rec.Truths)
	if err != nil {
		return fmt.Errorf("encode truths: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO decisions (decision_id, expression, allowed, truths, duration_us, decided_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(decision_id) DO UPDATE SET
			expression = excluded.expression,
			allowed = excluded.allowed,
			truths = excluded.truths,
			duration_us = excluded.duration_us,
			decided_at = excluded.decided_at
	`, rec.DecisionID, rec.Expression, boolToInt(rec.Allowed), string(truths),
		rec.Duration.Microseconds(), rec.DecidedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append decision: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(decisionID string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Record{}, ErrStoreClosed
	}

	row := s.db.QueryRow(`
		SELECT decision_id, expression, allowed, truths, duration_us, decided_at
		FROM decisions
		WHERE decision_id = ?
	`, decisionID)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get decision: %w", err)
	}
	return rec, nil
}

// List implements Store.
func (s *SQLiteStore) List(expression string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT decision_id, expression, allowed, truths, duration_us, decided_at
		FROM decisions
		WHERE expression = ?
		ORDER BY decided_at
	`, expression)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return records, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(decisionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`DELETE FROM decisions WHERE decision_id = ?`, decisionID)
	if err != nil {
		return fmt.Errorf("delete decision: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// scanRecord decodes one decisions row via the given Scan function.
func scanRecord(scan func(...any) error) (Record, error) {
	var (
		rec        Record
		allowed    int
		truths     string
		durationUs int64
		decidedAt  string
	)
	if err := scan(&rec.DecisionID, &rec.Expression, &allowed, &truths, &durationUs, &decidedAt); err != nil {
		return Record{}, err
	}

	rec.Allowed = allowed != 0
	rec.Duration = time.Duration(durationUs) * time.Microsecond
	rec.DecidedAt, _ = time.Parse(time.RFC3339Nano, decidedAt)

	rec.Truths = make(logicgate.Truths)
	if err := json.Unmarshal([]byte(truths), &rec.Truths); err != nil {
		return Record{}, fmt.Errorf("decode truths: %w", err)
	}
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
