package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinWhittecar/physcombat/internal/dice"
)

func TestParseArchiveDefaults(t *testing.T) {
	t.Setenv("PHYSRES_ARCHIVE_DRIVER", "")
	t.Setenv("PHYSRES_ARCHIVE_DSN", "")
	os.Unsetenv("PHYSRES_ARCHIVE_DRIVER")

	a, err := ParseArchive()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", a.Driver)
	assert.Empty(t, a.DSN)
}

func TestParseArchivePostgres(t *testing.T) {
	t.Setenv("PHYSRES_ARCHIVE_DRIVER", "Postgres")
	t.Setenv("PHYSRES_ARCHIVE_DSN", "postgres://localhost/physres")

	a, err := ParseArchive()
	require.NoError(t, err)
	assert.Equal(t, "postgres", a.Driver)
	assert.Equal(t, "postgres://localhost/physres", a.DSN)
}

func TestParseArchiveUnknownDriver(t *testing.T) {
	t.Setenv("PHYSRES_ARCHIVE_DRIVER", "mongo")

	_, err := ParseArchive()
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestLoadEngineDefaults(t *testing.T) {
	e, err := LoadEngine(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, string(dice.GeneratorPCG), e.Generator)
	assert.True(t, e.Options.AutoEject)
	assert.False(t, e.Options.DirectBlows)
	assert.Equal(t, "console", e.LogFormat)
}

func TestLoadEngineFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physres.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
generator: chacha8
seed: 42
options:
  direct_blows: true
  glancing_blows: true
  manual_ams: true
`), 0o644))

	e, err := LoadEngine(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "chacha8", e.Generator)
	assert.Equal(t, uint64(42), e.Seed)
	assert.True(t, e.Options.DirectBlows)
	assert.True(t, e.Options.GlancingBlows)
	assert.True(t, e.Options.ManualAMS)
	assert.True(t, e.Options.AutoEject, "unset keys keep their defaults")
}

func TestLoadEngineRejectsGenerator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physres.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator: mersenne\n"), 0o644))

	_, err := LoadEngine(viper.New(), path)
	assert.ErrorIs(t, err, dice.ErrUnknownGenerator)
}

func TestLoadEngineMissingFile(t *testing.T) {
	_, err := LoadEngine(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
