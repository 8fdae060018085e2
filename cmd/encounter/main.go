// Package main is the entry point for the encounter tool.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lawnchairsociety/encounter/internal/logger"
	"github.com/lawnchairsociety/encounter/internal/prompt"
	"github.com/lawnchairsociety/encounter/internal/session"
)

// flags holds command-line overrides; zero values leave the config alone.
type flags struct {
	configPath  string
	envFile     string
	monsterData string
	settings    string
	maxPerGroup int
	useZero     bool
	base        string
	envs        []string
	seed        int64
}

var opts flags

var rootCmd = &cobra.Command{
	Use:   "encounter",
	Short: "Solo D&D encounter builder and combat tracker",
	Long: `Encounter builds a random (or hand-picked) group of monsters sized to
your party, then tracks their hit points, saving throws and status while
you play through the fight.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Build an encounter and run the combat prompt",
	RunE:  runPlay,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "data/encounter.yaml", "Path to config YAML file")
	pf.StringVar(&opts.envFile, "env-file", ".env", "Dotenv file with ENCOUNTER_* overrides")
	pf.StringVar(&opts.monsterData, "monster-data", "", "Path to monster data (CSV or YAML)")
	pf.StringVar(&opts.settings, "settings", "", "Path to builder settings file")
	pf.IntVarP(&opts.maxPerGroup, "max-per-group", "m", 4, "Most copies of one monster the builder adds at once")
	pf.BoolVar(&opts.useZero, "use-zero", false, "Let the builder pick CR 0 monsters from the start")
	pf.StringVar(&opts.base, "base", "", "Monster that always leads a random encounter (e.g. Orc)")
	pf.StringSliceVar(&opts.envs, "env", nil, "Only pick monsters from these environments")
	pf.Int64Var(&opts.seed, "seed", 0, "Random seed (default: based on current time)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(buildCmd)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	sess := session.New(session.Deps{
		Catalog: a.catalog,
		Status:  a.status,
		Help:    a.help,
		Store:   a.store,
		Rand:    a.rand,
		Settings: session.Settings{
			Debug:          a.cfg.Display.Debug,
			ShowStatus:     a.cfg.Display.ShowStatus,
			ShowSpeed:      a.cfg.Display.ShowSpeed,
			ShowDead:       a.cfg.Display.ShowDead,
			DefaultMagical: a.cfg.Display.DefaultMagical,
		},
	})

	in := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
	setup := &prompt.Setup{
		Prompter: in,
		Catalog:  a.catalog,
		Builder:  a.builder,
		Store:    a.store,
		Spawner:  sess.Spawner(),
		Debug:    a.cfg.Display.Debug,
	}

	stop := quitOnSignal(sess, cmd.OutOrStdout())
	defer stop()

	logger.Info("Starting encounter session", "monsters", a.catalog.Len(), "save_dir", a.store.Dir())
	return sess.Run(cmd.Context(), in, cmd.OutOrStdout(), setup.NewEncounter)
}

// quitOnSignal saves the roster the way "quit" does and exits when the
// process is interrupted. The prompt blocks on stdin, so the exit cannot wait
// for the loop to notice.
func quitOnSignal(sess *session.Session, out io.Writer) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received shutdown signal", "signal", sig.String())
			if !sess.Empty() {
				fmt.Fprintf(out, "\n\n%s\n", sess.Execute("quit"))
			}
			logger.Close()
			os.Exit(0)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
