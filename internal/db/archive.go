// Package db archives resolved phases and their reports.
package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/JustinWhittecar/physcombat/internal/config"
	"github.com/JustinWhittecar/physcombat/internal/report"
)

// ErrRoundNotFound is returned when no phase is stored under a round id.
var ErrRoundNotFound = errors.New("round not found")

// PhaseRecord is one resolved phase as it is stored.
type PhaseRecord struct {
	RoundID  uuid.UUID
	Phase    string
	Scenario string
	Resolved time.Time
	Reports  []report.Report
}

// Archive stores phase records.
type Archive interface {
	SavePhase(ctx context.Context, rec PhaseRecord) error
	LoadPhase(ctx context.Context, id uuid.UUID) (PhaseRecord, error)
	Close() error
}

// Open connects to the archive cfg names. An empty sqlite DSN falls back to
// PHYSRES_DB_PATH, then to physres.db in the working directory.
func Open(ctx context.Context, cfg config.Archive) (Archive, error) {
	switch cfg.Driver {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		s := NewStore(pool)
		if err := s.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil
	case "sqlite", "":
		path := cfg.DSN
		if path == "" {
			path = os.Getenv("PHYSRES_DB_PATH")
		}
		if path == "" {
			path = "physres.db"
		}
		return OpenSQLite(path)
	}
	return nil, fmt.Errorf("%q: %w", cfg.Driver, config.ErrUnknownDriver)
}

// encodeParams packs report parameters into one blob.
func encodeParams(params []any) ([]byte, error) {
	if len(params) == 0 {
		return nil, nil
	}
	b, err := msgpack.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}
	return b, nil
}

func decodeParams(b []byte) ([]any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var params []any
	if err := msgpack.Unmarshal(b, &params); err != nil {
		return nil, fmt.Errorf("decode params: %w", err)
	}
	return params, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (report.Report, error) {
	var r report.Report
	var blob []byte
	if err := row.Scan(&r.TemplateID, &r.SubjectID, &r.Indent, &blob); err != nil {
		return report.Report{}, fmt.Errorf("scan report: %w", err)
	}
	params, err := decodeParams(blob)
	if err != nil {
		return report.Report{}, err
	}
	r.Params = params
	return r, nil
}
