package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/katyrose28/workoutsched/internal/telemetry/tracing"
)

var _ Store = (*SQLiteStore)(nil)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer at a time, sqlite locks the whole file anyway
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS workout_document (
  owner TEXT NOT NULL,
  doc_type TEXT NOT NULL,
  data TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (owner, doc_type)
);
CREATE INDEX IF NOT EXISTS idx_workout_document_type ON workout_document(doc_type, owner);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create workout_document table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, owner string, doc DocType) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.sqlite.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var data string
	err = s.db.QueryRowContext(ctx, `
SELECT data FROM workout_document WHERE owner = ? AND doc_type = ?;
`, owner, string(doc)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", doc, err)
	}
	return []byte(data), nil
}

func (s *SQLiteStore) Save(ctx context.Context, owner string, doc DocType, data []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.sqlite.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	const stmt = `
INSERT INTO workout_document (owner, doc_type, data, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(owner, doc_type) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at;
`
	if _, err := s.db.ExecContext(ctx, stmt, owner, string(doc), string(data)); err != nil {
		return fmt.Errorf("upsert %s: %w", doc, err)
	}
	return nil
}

func (s *SQLiteStore) Owners(ctx context.Context, doc DocType) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.sqlite.owners")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.QueryContext(ctx, `
SELECT owner FROM workout_document WHERE doc_type = ? ORDER BY owner ASC;
`, string(doc))
	if err != nil {
		return nil, fmt.Errorf("select owners: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owners: %w", err)
	}
	return owners, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
