package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JustinWhittecar/physcombat/internal/ingestion"
	"github.com/JustinWhittecar/physcombat/internal/world"
)

var unitsCmd = &cobra.Command{
	Use:   "units <dir>",
	Short: "Check that MegaMek unit files load as combatants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, _ := cmd.Flags().GetBool("list")
		_, err := scanUnits(args[0], list, cmd.OutOrStdout())
		return err
	},
}

func init() {
	unitsCmd.Flags().Bool("list", false, "print each unit that loads")
	rootCmd.AddCommand(unitsCmd)
}

type unitScan struct {
	files, loaded, skipped int
	errors                 []string
}

// scanUnits loads every .mtf under dir. Non-biped files are counted as
// skipped rather than failed.
func scanUnits(dir string, list bool, out io.Writer) (unitScan, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".mtf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return unitScan{}, fmt.Errorf("walk %s: %w", dir, err)
	}

	s := unitScan{files: len(files)}
	for i, f := range files {
		data, err := ingestion.ParseMTFFile(f)
		if err == nil {
			var c *world.Combatant
			if c, err = data.Combatant(world.UnitID(i + 1)); err == nil {
				s.loaded++
				if list {
					fmt.Fprintf(out, "  %-40s %3dt  armor %3d  club %q\n", c.Name, c.Weight, c.TotalArmor(), c.Club)
				}
				continue
			}
		}
		if errors.Is(err, ingestion.ErrNotBiped) {
			s.skipped++
			continue
		}
		s.errors = append(s.errors, fmt.Sprintf("  %s: %v", filepath.Base(f), err))
		logger.Debug("unit file rejected", zap.String("file", f), zap.Error(err))
	}

	fmt.Fprintf(out, "\nFound %d .mtf files\n", s.files)
	if s.files > 0 {
		fmt.Fprintf(out, "  Loaded:  %d (%.1f%%)\n", s.loaded, float64(s.loaded)/float64(s.files)*100)
	}
	fmt.Fprintf(out, "  Skipped: %d (not biped)\n", s.skipped)
	fmt.Fprintf(out, "  Failed:  %d\n", len(s.errors))
	for i, e := range s.errors {
		if i >= 20 {
			fmt.Fprintf(out, "  ... and %d more\n", len(s.errors)-20)
			break
		}
		fmt.Fprintln(out, e)
	}
	return s, nil
}
