package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lawnchairsociety/encounter/internal/encounter"
	"github.com/lawnchairsociety/encounter/internal/logger"
	"github.com/lawnchairsociety/encounter/internal/roster"
)

var (
	buildLevels     []int
	buildDifficulty string
	buildSave       string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate one random encounter without prompting",
	Example: `  encounter build --levels 5,5,5,5 --difficulty hard
  encounter build --levels 3,3 --difficulty deadly --base Orc --save ambush`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().IntSliceVar(&buildLevels, "levels", []int{5, 5, 5, 5}, "Character level of every player")
	buildCmd.Flags().StringVar(&buildDifficulty, "difficulty", "hard", "Difficulty tier (easy, med, hard, deadly, hell)")
	buildCmd.Flags().StringVar(&buildSave, "save", "", "Save the roster under this name so 'load' can resume it")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	party, err := encounter.NewParty(buildLevels)
	if err != nil {
		return err
	}
	d, err := encounter.ParseDifficulty(buildDifficulty)
	if err != nil {
		return err
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	res, err := a.builder.Build(cmd.Context(), party, d)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := message.NewPrinter(language.English)
	for _, note := range res.Diagnostics {
		fmt.Fprintln(out, note)
	}
	for _, g := range res.Groups {
		fmt.Fprintf(out, "%s x%d\n", g.Template.Name, g.Count)
	}
	p.Fprintf(out, "\n%d XP (target %d-%.0f)\n", res.XP(), res.Floor, res.Ceiling)

	if buildSave == "" {
		return nil
	}

	// Players have not rolled yet, so they act after every monster.
	players := make([]roster.PlayerInitiative, party.Size())
	for i := range players {
		players[i] = roster.PlayerInitiative{Name: roster.PlayerName(i + 1), Roll: -100}
	}
	sp := roster.Spawner{Status: a.status, Rand: a.rand}
	path, err := a.store.Save(buildSave, roster.Assemble(players, res.Groups, res.XP(), sp))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved to %s\n", path)
	return nil
}
