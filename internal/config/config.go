package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application-wide configuration: where data lives, what the
// roster display shows at startup, and the builder's defaults.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Display DisplayConfig `yaml:"display"`
	Builder BuilderConfig `yaml:"builder"`
}

// DataConfig holds the paths of every data file the tool reads.
type DataConfig struct {
	Monsters   string `yaml:"monsters" env:"ENCOUNTER_MONSTER_DATA"`
	Thresholds string `yaml:"thresholds" env:"ENCOUNTER_THRESHOLDS"` // empty = built-in table
	Status     string `yaml:"status" env:"ENCOUNTER_STATUS"`
	Help       string `yaml:"help" env:"ENCOUNTER_HELP"`
	Settings   string `yaml:"settings" env:"ENCOUNTER_SETTINGS"`
	Logging    string `yaml:"logging" env:"ENCOUNTER_LOGGING"`
	SaveDir    string `yaml:"save_dir" env:"ENCOUNTER_SAVE_DIR"`
}

// DisplayConfig holds the initial state of the session toggles.
type DisplayConfig struct {
	Debug      bool `yaml:"debug" env:"ENCOUNTER_DEBUG"`
	ShowStatus bool `yaml:"show_status" env:"ENCOUNTER_SHOW_STATUS"`
	ShowSpeed  bool `yaml:"show_speed" env:"ENCOUNTER_SHOW_SPEED"`
	ShowDead   bool `yaml:"show_dead" env:"ENCOUNTER_SHOW_DEAD"`

	// DefaultMagical treats unprefixed physical damage as magical.
	DefaultMagical bool `yaml:"default_magical" env:"ENCOUNTER_DEFAULT_MAGICAL"`
}

// BuilderConfig holds encounter builder defaults; CLI flags override them.
type BuilderConfig struct {
	MaxPerGroup  int      `yaml:"max_per_group" env:"ENCOUNTER_MAX_PER_GROUP"`
	UseZero      bool     `yaml:"use_zero" env:"ENCOUNTER_USE_ZERO"`
	Base         string   `yaml:"base" env:"ENCOUNTER_BASE"`
	Environments []string `yaml:"environments" env:"ENCOUNTER_ENVIRONMENTS" envSeparator:","`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Monsters: "data/srd.csv",
			Status:   "data/status.yaml",
			Help:     "data/help.yaml",
			Settings: "data/settings.txt",
			Logging:  "data/logging.yaml",
			SaveDir:  "saves",
		},
		Display: DisplayConfig{
			ShowStatus: true,
		},
		Builder: BuilderConfig{
			MaxPerGroup: 4,
		},
	}
}

// LoadConfig loads configuration from a YAML file, then applies ENCOUNTER_*
// environment overrides. A missing file means defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return config, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := env.Parse(config); err != nil {
		return config, fmt.Errorf("parse env: %w", err)
	}

	if config.Builder.MaxPerGroup < 1 {
		return config, fmt.Errorf("max_per_group must be at least 1, got %d", config.Builder.MaxPerGroup)
	}

	return config, nil
}

// LoadEnvFile exports the variables in a dotenv file so ENCOUNTER_* overrides
// can live next to the data. Variables already set in the environment win.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
