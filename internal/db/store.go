package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the Postgres archive.
type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS phases (
		round_id UUID PRIMARY KEY,
		phase TEXT NOT NULL,
		scenario TEXT,
		resolved_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reports (
		round_id UUID NOT NULL REFERENCES phases(round_id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		template_id INTEGER NOT NULL,
		subject_id INTEGER NOT NULL,
		indent INTEGER NOT NULL,
		params BYTEA,
		PRIMARY KEY (round_id, seq)
	)`,
}

// Migrate creates the archive tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	for _, ddl := range postgresSchema {
		if _, err := s.Pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

func (s *Store) InsertPhase(ctx context.Context, tx pgx.Tx, rec PhaseRecord) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO phases (round_id, phase, scenario, resolved_at)
		 VALUES ($1, $2, $3, $4)`,
		rec.RoundID, rec.Phase, rec.Scenario, rec.Resolved,
	)
	return err
}

// InsertReports copies the phase's reports in emission order.
func (s *Store) InsertReports(ctx context.Context, tx pgx.Tx, rec PhaseRecord) error {
	rows := make([][]any, 0, len(rec.Reports))
	for i, r := range rec.Reports {
		params, err := encodeParams(r.Params)
		if err != nil {
			return fmt.Errorf("report %d: %w", i, err)
		}
		rows = append(rows, []any{rec.RoundID, i, r.TemplateID, r.SubjectID, r.Indent, params})
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"reports"},
		[]string{"round_id", "seq", "template_id", "subject_id", "indent", "params"},
		pgx.CopyFromRows(rows),
	)
	return err
}

func (s *Store) SavePhase(ctx context.Context, rec PhaseRecord) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.InsertPhase(ctx, tx, rec); err != nil {
		return fmt.Errorf("insert phase %s: %w", rec.RoundID, err)
	}
	if err := s.InsertReports(ctx, tx, rec); err != nil {
		return fmt.Errorf("insert reports for %s: %w", rec.RoundID, err)
	}

	return tx.Commit(ctx)
}

func (s *Store) LoadPhase(ctx context.Context, id uuid.UUID) (PhaseRecord, error) {
	rec := PhaseRecord{RoundID: id}
	var scenario *string
	err := s.Pool.QueryRow(ctx,
		`SELECT phase, scenario, resolved_at FROM phases WHERE round_id = $1`, id,
	).Scan(&rec.Phase, &scenario, &rec.Resolved)
	if errors.Is(err, pgx.ErrNoRows) {
		return PhaseRecord{}, fmt.Errorf("%s: %w", id, ErrRoundNotFound)
	}
	if err != nil {
		return PhaseRecord{}, fmt.Errorf("select phase %s: %w", id, err)
	}
	if scenario != nil {
		rec.Scenario = *scenario
	}

	rows, err := s.Pool.Query(ctx,
		`SELECT template_id, subject_id, indent, params FROM reports WHERE round_id = $1 ORDER BY seq`, id)
	if err != nil {
		return PhaseRecord{}, fmt.Errorf("select reports %s: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return PhaseRecord{}, err
		}
		rec.Reports = append(rec.Reports, r)
	}
	return rec, rows.Err()
}

func (s *Store) Close() error {
	s.Pool.Close()
	return nil
}
