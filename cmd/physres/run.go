package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JustinWhittecar/physcombat/internal/config"
	"github.com/JustinWhittecar/physcombat/internal/db"
	"github.com/JustinWhittecar/physcombat/internal/dice"
	"github.com/JustinWhittecar/physcombat/internal/physical"
	"github.com/JustinWhittecar/physcombat/internal/report"
	"github.com/JustinWhittecar/physcombat/internal/round"
	"github.com/JustinWhittecar/physcombat/internal/scenario"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Resolve a scenario's declared physical attacks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()

		archive, _ := cmd.Flags().GetBool("archive")
		asJSON, _ := cmd.Flags().GetBool("json")
		prompt, _ := cmd.Flags().GetBool("interactive")
		return runScenario(ctx, args[0], runSettings{
			archive: archive, json: asJSON, interactive: prompt,
		}, cmd.OutOrStdout(), cmd.InOrStdin())
	},
}

func init() {
	f := runCmd.Flags()
	f.Bool("archive", false, "store the resolved phase in the report archive")
	f.Bool("json", false, "print reports as JSON lines")
	f.Bool("interactive", false, "answer domino and AMS questions on stdin")
	f.String("generator", string(dice.GeneratorPCG), "dice generator: pcg, chacha8 or crypto")
	f.Uint64("seed", 0, "dice seed; 0 picks one from the clock")
	rootCmd.AddCommand(runCmd)
}

type runSettings struct {
	archive     bool
	json        bool
	interactive bool
}

func runScenario(ctx context.Context, path string, rs runSettings, out io.Writer, in io.Reader) error {
	s, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}
	s.Options = s.Overrides.Apply(engine.Options)

	if err := dice.SetGenerator(dice.Generator(engine.Generator)); err != nil {
		return err
	}
	seed := engine.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	p, err := s.Phase(dice.NewSource(seed), logger)
	if err != nil {
		return err
	}
	rc := p.Context()
	logger.Info("resolving phase",
		zap.String("scenario", s.Name),
		zap.Stringer("round", rc.ID),
		zap.Int("attacks", len(p.Results())),
		zap.String("generator", engine.Generator),
		zap.Uint64("seed", seed))

	var decider round.Decider = round.AutoDecider{}
	if rs.interactive {
		decider = newPromptDecider(in, out)
	}
	p.Run(ctx, decider)

	if err := printReports(out, rc.Reports.Reports(), rs.json); err != nil {
		return err
	}
	printSummary(out, p)

	if !rs.archive {
		return nil
	}
	cfg, err := config.ParseArchive()
	if err != nil {
		return err
	}
	a, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	rec := db.PhaseRecord{
		RoundID:  rc.ID,
		Phase:    "physical",
		Scenario: s.Name,
		Resolved: time.Now().UTC(),
		Reports:  rc.Reports.Reports(),
	}
	if err := a.SavePhase(ctx, rec); err != nil {
		return err
	}
	logger.Info("archived phase", zap.Stringer("round", rc.ID), zap.String("driver", cfg.Driver))
	fmt.Fprintf(out, "round %s archived\n", rc.ID)
	return nil
}

func printSummary(out io.Writer, p *physical.Phase) {
	fmt.Fprintln(out)
	for _, u := range p.Context().World.Units() {
		state := "operational"
		switch {
		case u.Destroyed:
			state = "destroyed"
		case u.Doomed:
			state = "doomed"
		case u.Prone:
			state = "prone"
		}
		fmt.Fprintf(out, "%-4d %-24s %-6s armor %-4d %s\n", u.ID, u.Name, u.Pos, u.TotalArmor(), state)
	}
}

func printReports(out io.Writer, rs []report.Report, asJSON bool) error {
	if asJSON {
		return writeJSON(out, rs)
	}
	for _, r := range rs {
		fmt.Fprintln(out, formatReport(r))
	}
	return nil
}
