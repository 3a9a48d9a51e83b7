package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinWhittecar/physcombat/internal/config"
	"github.com/JustinWhittecar/physcombat/internal/report"
)

func sampleRecord() PhaseRecord {
	return PhaseRecord{
		RoundID:  uuid.New(),
		Phase:    "physical",
		Scenario: "duel.yaml",
		Resolved: time.Date(3025, 3, 1, 12, 0, 0, 0, time.UTC),
		Reports: []report.Report{
			report.New(report.AttackerHeader).Subject(1).Add("Centurion"),
			report.New(report.AttackRoll).Subject(1).Indented(2).Add("punch", "Jenner", 8, 11),
			report.New(report.AttackMisses).Subject(1).Indented(2),
		},
	}
}

func checkRoundTrip(t *testing.T, a Archive) {
	t.Helper()
	ctx := context.Background()
	rec := sampleRecord()
	require.NoError(t, a.SavePhase(ctx, rec))

	got, err := a.LoadPhase(ctx, rec.RoundID)
	require.NoError(t, err)
	assert.Equal(t, rec.Phase, got.Phase)
	assert.Equal(t, rec.Scenario, got.Scenario)
	assert.True(t, rec.Resolved.Equal(got.Resolved), "resolved %v != %v", got.Resolved, rec.Resolved)
	require.Len(t, got.Reports, len(rec.Reports))
	for i, want := range rec.Reports {
		r := got.Reports[i]
		assert.Equal(t, want.TemplateID, r.TemplateID)
		assert.Equal(t, want.SubjectID, r.SubjectID)
		assert.Equal(t, want.Indent, r.Indent)
		require.Len(t, r.Params, len(want.Params))
		for j := range want.Params {
			assert.EqualValues(t, want.Params[j], r.Params[j])
		}
	}

	_, err = a.LoadPhase(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

func TestSQLiteArchiveRoundTrip(t *testing.T) {
	a, err := OpenSQLite(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	defer a.Close()
	checkRoundTrip(t, a)
}

func TestSQLiteRejectsDuplicateRound(t *testing.T) {
	a, err := OpenSQLite(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	defer a.Close()

	rec := sampleRecord()
	require.NoError(t, a.SavePhase(context.Background(), rec))
	assert.Error(t, a.SavePhase(context.Background(), rec))
}

func TestOpenFallsBackToDBPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.db")
	t.Setenv("PHYSRES_DB_PATH", path)

	a, err := Open(context.Background(), config.Archive{Driver: "sqlite"})
	require.NoError(t, err)
	defer a.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Archive{Driver: "mongo"})
	assert.ErrorIs(t, err, config.ErrUnknownDriver)
}

func TestParamsRoundTrip(t *testing.T) {
	b, err := encodeParams([]any{"LA", 5, true})
	require.NoError(t, err)
	got, err := decodeParams(b)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "LA", got[0])
	assert.EqualValues(t, 5, got[1])
	assert.Equal(t, true, got[2])

	b, err = encodeParams(nil)
	require.NoError(t, err)
	assert.Nil(t, b)
}

// TestPostgresArchiveRoundTrip needs a live server.
func TestPostgresArchiveRoundTrip(t *testing.T) {
	dsn := os.Getenv("PHYSRES_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PHYSRES_TEST_POSTGRES_DSN not set")
	}
	a, err := Open(context.Background(), config.Archive{Driver: "postgres", DSN: dsn})
	require.NoError(t, err)
	defer a.Close()
	checkRoundTrip(t, a)
}
