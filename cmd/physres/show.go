package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JustinWhittecar/physcombat/internal/config"
	"github.com/JustinWhittecar/physcombat/internal/db"
)

var showCmd = &cobra.Command{
	Use:   "show <round-id>",
	Short: "Print an archived phase's reports",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("round id: %w", err)
		}
		cfg, err := config.ParseArchive()
		if err != nil {
			return err
		}
		a, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		rec, err := a.LoadPhase(cmd.Context(), id)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()
		if !asJSON {
			fmt.Fprintf(out, "%s %q resolved %s\n", rec.Phase, rec.Scenario, rec.Resolved.Format("2006-01-02 15:04:05"))
		}
		return printReports(out, rec.Reports, asJSON)
	},
}

func init() {
	showCmd.Flags().Bool("json", false, "print reports as JSON lines")
	rootCmd.AddCommand(showCmd)
}
