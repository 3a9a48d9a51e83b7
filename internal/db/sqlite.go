package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteArchive stores phases in a local SQLite file.
type SQLiteArchive struct {
	DB *sql.DB
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS phases (
		round_id TEXT PRIMARY KEY,
		phase TEXT NOT NULL,
		scenario TEXT,
		resolved_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reports (
		round_id TEXT NOT NULL REFERENCES phases(round_id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		template_id INTEGER NOT NULL,
		subject_id INTEGER NOT NULL,
		indent INTEGER NOT NULL,
		params BLOB,
		PRIMARY KEY (round_id, seq)
	)`,
}

// OpenSQLite opens (creating if needed) an archive file.
func OpenSQLite(path string) (*SQLiteArchive, error) {
	db, err := ConnectSQLite(path)
	if err != nil {
		return nil, err
	}
	for _, ddl := range sqliteSchema {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create table: %w", err)
		}
	}
	return &SQLiteArchive{DB: db}, nil
}

func ConnectSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

func (a *SQLiteArchive) SavePhase(ctx context.Context, rec PhaseRecord) error {
	tx, err := a.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO phases (round_id, phase, scenario, resolved_at) VALUES (?, ?, ?, ?)`,
		rec.RoundID.String(), rec.Phase, rec.Scenario, rec.Resolved.UTC()); err != nil {
		return fmt.Errorf("insert phase %s: %w", rec.RoundID, err)
	}
	for i, r := range rec.Reports {
		params, err := encodeParams(r.Params)
		if err != nil {
			return fmt.Errorf("report %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reports (round_id, seq, template_id, subject_id, indent, params) VALUES (?, ?, ?, ?, ?, ?)`,
			rec.RoundID.String(), i, r.TemplateID, r.SubjectID, r.Indent, params); err != nil {
			return fmt.Errorf("insert report %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (a *SQLiteArchive) LoadPhase(ctx context.Context, id uuid.UUID) (PhaseRecord, error) {
	rec := PhaseRecord{RoundID: id}
	var scenario sql.NullString
	var resolved time.Time
	err := a.DB.QueryRowContext(ctx,
		`SELECT phase, scenario, resolved_at FROM phases WHERE round_id = ?`, id.String(),
	).Scan(&rec.Phase, &scenario, &resolved)
	if errors.Is(err, sql.ErrNoRows) {
		return PhaseRecord{}, fmt.Errorf("%s: %w", id, ErrRoundNotFound)
	}
	if err != nil {
		return PhaseRecord{}, fmt.Errorf("select phase %s: %w", id, err)
	}
	rec.Scenario = scenario.String
	rec.Resolved = resolved

	rows, err := a.DB.QueryContext(ctx,
		`SELECT template_id, subject_id, indent, params FROM reports WHERE round_id = ? ORDER BY seq`, id.String())
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

func (a *SQLiteArchive) Close() error { return a.DB.Close() }
