package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lawnchairsociety/encounter/internal/config"
	"github.com/lawnchairsociety/encounter/internal/encounter"
	"github.com/lawnchairsociety/encounter/internal/help"
	"github.com/lawnchairsociety/encounter/internal/logger"
	"github.com/lawnchairsociety/encounter/internal/monster"
	"github.com/lawnchairsociety/encounter/internal/roster"
	"github.com/lawnchairsociety/encounter/internal/stats"
	"github.com/lawnchairsociety/encounter/internal/text"
)

// app is everything loaded at startup.
type app struct {
	cfg      *config.Config
	settings config.Settings
	catalog  *monster.Catalog
	status   *text.StatusTable
	help     *help.Help
	store    *roster.Store
	rand     stats.Roller
	builder  *encounter.Builder
}

// loadApp reads config, applies flag overrides, starts logging and loads
// every data file. Missing monster, status or settings data is fatal;
// missing help only disables the help command.
func loadApp(cmd *cobra.Command) (*app, error) {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)

	logConfig, err := logger.LoadConfig(cfg.Data.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to load logging config: %w", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		return nil, fmt.Errorf("failed to start logging: %w", err)
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Info("Random seed selected", "seed", seed, "random", true)
	} else {
		logger.Info("Random seed selected", "seed", seed, "random", false)
	}
	a := &app{cfg: cfg, rand: stats.NewRoller(seed), store: roster.NewStore(cfg.Data.SaveDir)}

	if a.settings, err = config.LoadSettings(cfg.Data.Settings); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if a.catalog, err = monster.LoadCatalog(cfg.Data.Monsters); err != nil {
		return nil, fmt.Errorf("failed to load monster data: %w", err)
	}
	logger.Info("Monsters loaded", "path", cfg.Data.Monsters, "count", a.catalog.Len())

	thresholds := encounter.DefaultThresholds()
	if cfg.Data.Thresholds != "" {
		if thresholds, err = encounter.LoadThresholds(cfg.Data.Thresholds); err != nil {
			return nil, fmt.Errorf("failed to load thresholds: %w", err)
		}
	}

	if a.status, err = text.LoadStatus(cfg.Data.Status); err != nil {
		return nil, fmt.Errorf("failed to load status messages: %w", err)
	}

	if a.help, err = help.Load(cfg.Data.Help); err != nil {
		logger.Warning("Failed to load help config, help disabled", "path", cfg.Data.Help, "error", err)
		a.help = nil
	}

	var base *monster.Template
	if cfg.Builder.Base != "" {
		if base, err = a.catalog.MustFind(cfg.Builder.Base); err != nil {
			return nil, fmt.Errorf("base monster: %w", err)
		}
	}

	a.builder = encounter.NewBuilder(a.catalog, thresholds, a.rand, encounter.Options{
		MaxPerGroup:  cfg.Builder.MaxPerGroup,
		UseZero:      cfg.Builder.UseZero,
		Base:         base,
		Environments: cfg.Builder.Environments,
		InitialFloor: a.settings.InitialFilterFloor,
		NextFloor:    a.settings.NextFilterFloor,
	})

	return a, nil
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("monster-data") {
		cfg.Data.Monsters = opts.monsterData
	}
	if changed("settings") {
		cfg.Data.Settings = opts.settings
	}
	if changed("max-per-group") {
		cfg.Builder.MaxPerGroup = opts.maxPerGroup
	}
	if changed("use-zero") {
		cfg.Builder.UseZero = opts.useZero
	}
	if changed("base") {
		cfg.Builder.Base = opts.base
	}
	if changed("env") {
		cfg.Builder.Environments = opts.envs
	}
}
