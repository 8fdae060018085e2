package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lawnchairsociety/encounter/internal/encounter"
	"github.com/lawnchairsociety/encounter/internal/logger"
	"github.com/lawnchairsociety/encounter/utilities/balance"
)

var (
	balanceLevels     []int
	balanceDifficulty string
	balanceIterations int
	balanceTop        int
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Monte Carlo check of the encounter builder",
	Long: `Generates many encounters for one party and reports how often the
builder lands inside each difficulty band, how large the encounters get and
which monsters it favours.`,
	Example: `  encounter balance --levels 5,5,5,5
  encounter balance --levels 1,2 --difficulty deadly --iterations 5000`,
	Args: cobra.NoArgs,
	RunE: runBalance,
}

func init() {
	balanceCmd.Flags().IntSliceVar(&balanceLevels, "levels", []int{5, 5, 5, 5}, "Character level of every player")
	balanceCmd.Flags().StringVar(&balanceDifficulty, "difficulty", "", "Only this difficulty tier (default: all tiers)")
	balanceCmd.Flags().IntVar(&balanceIterations, "iterations", 1000, "Encounters to generate per tier")
	balanceCmd.Flags().IntVar(&balanceTop, "top", 5, "Most picked monsters to list per tier")
	rootCmd.AddCommand(balanceCmd)
}

func runBalance(cmd *cobra.Command, _ []string) error {
	party, err := encounter.NewParty(balanceLevels)
	if err != nil {
		return err
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Encounter Builder Balance ===")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Party: %v (avg level %.1f)\n", party.Levels(), party.Average())
	fmt.Fprintf(out, "Catalog: %d monsters\n", a.catalog.Len())
	fmt.Fprintf(out, "Iterations: %d\n", balanceIterations)
	fmt.Fprintln(out)

	var results []balance.SimulationResult
	if balanceDifficulty != "" {
		d, err := encounter.ParseDifficulty(balanceDifficulty)
		if err != nil {
			return err
		}
		res, err := balance.RunSimulation(cmd.Context(), a.builder, party, d, balanceIterations)
		if err != nil {
			return err
		}
		results = append(results, res)
	} else if results, err = balance.RunSweep(cmd.Context(), a.builder, party, balanceIterations); err != nil {
		return err
	}

	for _, r := range results {
		printSimulationResult(out, r, balanceTop)
	}
	return nil
}

func printSimulationResult(out io.Writer, r balance.SimulationResult, top int) {
	fmt.Fprintf(out, "--- %s (target %d-%.0f XP) ---\n", r.Difficulty, r.Floor, r.Ceiling)
	fmt.Fprintf(out, "  In band:       %.1f%% (%d of %d) %s\n", r.SatisfiedRate, r.Satisfied, r.Simulations, assess(r.SatisfiedRate))
	fmt.Fprintf(out, "  Avg XP:        %.0f (min: %.0f, max: %.0f)\n", r.AvgXP, r.MinXP, r.MaxXP)
	fmt.Fprintf(out, "  Avg Monsters:  %.1f (min: %d, max: %d)\n", r.AvgMonsters, r.MinMonsters, r.MaxMonsters)
	fmt.Fprintf(out, "  Avg Groups:    %.1f\n", r.AvgGroups)
	for i, t := range r.TopTemplates {
		if i >= top {
			break
		}
		fmt.Fprintf(out, "  %2d. %-24s %d\n", i+1, t.Name, t.Picks)
	}
	fmt.Fprintln(out)
}

func assess(rate float64) string {
	switch {
	case rate >= 99:
		return "OK"
	case rate >= 90:
		return "MOSTLY"
	default:
		return "UNRELIABLE"
	}
}
