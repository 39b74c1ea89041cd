package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/katyrose28/workoutsched/internal/db"
	"github.com/katyrose28/workoutsched/internal/telemetry/tracing"
)

var _ Store = (*PostgresStore)(nil)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dbPool *pgxpool.Pool) (*PostgresStore, error) {
	if err := db.EnsureSchema(ctx, dbPool); err != nil {
		return nil, err
	}
	return &PostgresStore{db: dbPool}, nil
}

func (s *PostgresStore) Load(ctx context.Context, owner string, doc DocType) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.postgres.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var data []byte
	err = s.db.QueryRow(ctx, `
		SELECT data FROM workout_document
		WHERE owner = $1 AND doc_type = $2;
	`, owner, string(doc)).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", doc, err)
	}
	return data, nil
}

func (s *PostgresStore) Save(ctx context.Context, owner string, doc DocType, data []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.postgres.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err := s.db.Exec(ctx, `
		INSERT INTO workout_document (owner, doc_type, data, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (owner, doc_type)
		DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at;
	`, owner, string(doc), string(data)); err != nil {
		return fmt.Errorf("upsert %s: %w", doc, err)
	}
	return nil
}

func (s *PostgresStore) Owners(ctx context.Context, doc DocType) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.postgres.owners")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := s.db.Query(ctx, `
		SELECT owner FROM workout_document
		WHERE doc_type = $1
		ORDER BY owner;
	`, string(doc))
	if err != nil {
		return nil, fmt.Errorf("select owners: %w", err)
	}
	owners, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect owners: %w", err)
	}
	return owners, nil
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
