package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/JustinWhittecar/physcombat/internal/config"
)

var (
	cfgFile string
	engine  config.Engine
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "physres",
	Short:         "Resolve BattleTech physical attack phases",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		var err error
		if engine, err = config.LoadEngine(v, cfgFile); err != nil {
			return err
		}
		logger, err = newLogger(engine.LogFormat, v.GetBool("verbose"))
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	pf.String("log_format", "console", "log encoding: console or json")
	pf.Bool("verbose", false, "log at debug level")
}

// newLogger builds the diagnostics logger. Logs go to stderr; reports go to
// stdout.
func newLogger(format string, verbose bool) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(format) {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
