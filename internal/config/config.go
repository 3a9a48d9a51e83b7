// Package config loads engine and archive settings.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"

	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/round"
)

// ErrUnknownDriver is returned for an archive driver other than sqlite or
// postgres.
var ErrUnknownDriver = errors.New("unknown archive driver")

// Archive selects where resolved phases are stored.
type Archive struct {
	Driver string `env:"PHYSRES_ARCHIVE_DRIVER" envDefault:"sqlite"`
	DSN    string `env:"PHYSRES_ARCHIVE_DSN"`
}

// ParseArchive reads archive settings from the environment.
func ParseArchive() (Archive, error) {
	var a Archive
	if err := env.Parse(&a); err != nil {
		return Archive{}, fmt.Errorf("parse env: %w", err)
	}
	a.Driver = strings.ToLower(strings.TrimSpace(a.Driver))
	switch a.Driver {
	case "sqlite", "postgres":
	default:
		return Archive{}, fmt.Errorf("%q: %w", a.Driver, ErrUnknownDriver)
	}
	return a, nil
}

// Engine is the rule and dice configuration for a resolution run.
type Engine struct {
	Options   round.Options `mapstructure:"options"`
	Generator string        `mapstructure:"generator"`
	Seed      uint64        `mapstructure:"seed"`
	LogFormat string        `mapstructure:"log_format"`
}

// Defaults registers the default engine settings on v.
func Defaults(v *viper.Viper) {
	v.SetDefault("generator", string(dice.GeneratorPCG))
	v.SetDefault("seed", 0)
	v.SetDefault("log_format", "console")
	v.SetDefault("options.glancing_blows", false)
	v.SetDefault("options.direct_blows", false)
	v.SetDefault("options.engine_explosions", false)
	v.SetDefault("options.auto_eject", true)
	v.SetDefault("options.manual_ams", false)
	v.SetDefault("options.falling_ends_elevation", false)
}

// LoadEngine unmarshals engine settings from v, reading a config file first
// when path is set. Environment variables prefixed PHYSRES_ override both.
func LoadEngine(v *viper.Viper, path string) (Engine, error) {
	Defaults(v)
	v.SetEnvPrefix("physres")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Engine{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var e Engine
	if err := v.Unmarshal(&e); err != nil {
		return Engine{}, fmt.Errorf("unmarshal config: %w", err)
	}
	switch dice.Generator(e.Generator) {
	case dice.GeneratorPCG, dice.GeneratorChaCha8, dice.GeneratorCrypto:
	default:
		return Engine{}, fmt.Errorf("%w: %q", dice.ErrUnknownGenerator, e.Generator)
	}
	return e, nil
}
