package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"

	_ "modernc.org/sqlite"
)

// fmtTime renders a timestamp as an ISO 8601 string for storage.
func fmtTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

// parseTime reads a stored ISO 8601 timestamp back. A stored row that no
// longer parses counts as corruption, like any other payload damage.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad created_at %q: %w", s, ErrCorrupt)
	}
	return t, nil
}

// SqlStore implements Store with SQLite.
type SqlStore struct {
	db *sql.DB
}

// Open opens or creates a SQLite DB at path and runs migrations.
// Creates the parent directory (e.g. .nexus) if it does not exist.
func Open(path string) (*SqlStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &SqlStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SqlStore) migrate() error {
	// Check if schema_version table exists to detect database state.
	var tableCount int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableCount == 0 {
		// Fresh database.
		if _, err := s.db.Exec(schemaV1); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", currentSchemaVersion); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		return nil
	}

	var v int
	err = s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		// schema_version exists but is empty. Stamp it with the current
		// version; the DDL above is idempotent.
		if _, err := s.db.Exec("INSERT INTO schema_version(version) VALUES(?)", currentSchemaVersion); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
		v = currentSchemaVersion
	}

	switch v {
	case currentSchemaVersion:
		return nil
	default:
		return fmt.Errorf("unknown schema version %d", v)
	}
}

// Close closes the database connection.
func (s *SqlStore) Close() error {
	return s.db.Close()
}

// Save writes one immutable assessment version inside a transaction.
// The assessment is validated before it touches the database, and the
// (id, version) pair is checked so stored history is never rewritten.
func (s *SqlStore) Save(a *htc.Assessment) error {
	if a == nil {
		return fmt.Errorf("save: nil assessment")
	}
	if err := a.Validate(); err != nil {
		return fmt.Errorf("save %s v%d: %w", htc.ShortID(a.ID), a.Version, err)
	}
	payload, err := json.Marshal(a.Document())
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRow(
		"SELECT COUNT(*) FROM assessments WHERE id = ? AND version = ?",
		a.ID.String(), a.Version,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check version: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("save %s v%d: %w", htc.ShortID(a.ID), a.Version, ErrVersionExists)
	}

	_, err = tx.Exec(
		`INSERT INTO assessments(id, version, name, vectors, hypotheses, signals, payload, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.Version, a.Name,
		len(a.Vectors), len(a.Hypotheses), len(a.Signals),
		string(payload), fmtTime(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save tx: %w", err)
	}
	return nil
}

// Get loads one exact version and re-validates it on the way out.
func (s *SqlStore) Get(id uuid.UUID, version int) (*htc.Assessment, error) {
	var payload string
	err := s.db.QueryRow(
		"SELECT payload FROM assessments WHERE id = ? AND version = ?",
		id.String(), version,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s v%d: %w", htc.ShortID(id), version, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	return decodePayload(id, version, payload)
}

// Latest loads the highest stored version of the chain.
func (s *SqlStore) Latest(id uuid.UUID) (*htc.Assessment, error) {
	var (
		payload string
		version int
	)
	err := s.db.QueryRow(
		"SELECT version, payload FROM assessments WHERE id = ? ORDER BY version DESC LIMIT 1",
		id.String(),
	).Scan(&version, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("latest %s: %w", htc.ShortID(id), ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("latest assessment: %w", err)
	}
	return decodePayload(id, version, payload)
}

// List returns the latest version of every chain, newest first.
func (s *SqlStore) List() ([]Meta, error) {
	rows, err := s.db.Query(
		`SELECT a.id, a.name, a.version, a.vectors, a.hypotheses, a.signals, a.created_at
		 FROM assessments a
		 JOIN (SELECT id, MAX(version) AS version FROM assessments GROUP BY id) latest
		   ON a.id = latest.id AND a.version = latest.version
		 ORDER BY a.created_at DESC, a.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()
	return scanMetas(rows)
}

// Versions returns every stored version of one chain, oldest first.
func (s *SqlStore) Versions(id uuid.UUID) ([]Meta, error) {
	rows, err := s.db.Query(
		`SELECT id, name, version, vectors, hypotheses, signals, created_at
		 FROM assessments WHERE id = ? ORDER BY version`,
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()
	metas, err := scanMetas(rows)
	if err != nil {
		return nil, err
	}
	if len(metas) == 0 {
		return nil, fmt.Errorf("versions %s: %w", htc.ShortID(id), ErrNotFound)
	}
	return metas, nil
}

func scanMetas(rows *sql.Rows) ([]Meta, error) {
	var list []Meta
	for rows.Next() {
		var (
			m       Meta
			rawID   string
			rawTime string
		)
		if err := rows.Scan(&rawID, &m.Name, &m.Version, &m.Vectors, &m.Hypotheses, &m.Signals, &rawTime); err != nil {
			return nil, fmt.Errorf("scan meta: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("bad stored id %q: %w", rawID, ErrCorrupt)
		}
		ts, err := parseTime(rawTime)
		if err != nil {
			return nil, err
		}
		m.ID = id
		m.CreatedAt = ts
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan metas: %w", err)
	}
	return list, nil
}

// decodePayload turns a stored document back into a validated assessment.
// Any decode or validation failure is surfaced as ErrCorrupt: the row was
// valid when written, so damage happened at rest.
func decodePayload(id uuid.UUID, version int, payload string) (*htc.Assessment, error) {
	var doc htc.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("decode %s v%d: %v: %w", htc.ShortID(id), version, err, ErrCorrupt)
	}
	a, err := htc.FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("revalidate %s v%d: %v: %w", htc.ShortID(id), version, err, ErrCorrupt)
	}
	return a, nil
}
