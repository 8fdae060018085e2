package logger

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// LoggingConfig wraps the Config for YAML parsing
type LoggingConfig struct {
	Logging Config `yaml:"logging"`
}

// DefaultConfig keeps the terminal quiet: stdout belongs to the game, so
// logs go to a rotating file unless the console sink is switched on.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: false,
		ConsoleFormat:  "text",
		FileEnabled:    true,
		FilePath:       "logs/encounter.log",
		FileFormat:     "text",
		FileMaxSizeMB:  5,
		FileMaxBackups: 3,
		FileMaxAgeDays: 30,
	}
}

// LoadConfig loads logging configuration from a YAML file
// and applies environment variable overrides
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			var loggingConfig LoggingConfig
			if err := yaml.Unmarshal(data, &loggingConfig); err != nil {
				return config, err
			}
			config.merge(loggingConfig.Logging)
		case !os.IsNotExist(err):
			return config, err
		}
		// Missing file: defaults
	}

	// Apply environment variable overrides
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.Level = logLevel
	}

	if consoleEnabled := os.Getenv("LOG_CONSOLE_ENABLED"); consoleEnabled != "" {
		if enabled, err := strconv.ParseBool(consoleEnabled); err == nil {
			config.ConsoleEnabled = enabled
		}
	}

	if fileEnabled := os.Getenv("LOG_FILE_ENABLED"); fileEnabled != "" {
		if enabled, err := strconv.ParseBool(fileEnabled); err == nil {
			config.FileEnabled = enabled
		}
	}

	if filePath := os.Getenv("LOG_FILE_PATH"); filePath != "" {
		config.FilePath = filePath
	}

	return config, nil
}

// merge copies the values a YAML file set over the defaults.
func (c *Config) merge(loaded Config) {
	if loaded.Level != "" {
		c.Level = loaded.Level
	}
	// Bools are taken as written
	c.ConsoleEnabled = loaded.ConsoleEnabled
	c.FileEnabled = loaded.FileEnabled
	if loaded.ConsoleFormat != "" {
		c.ConsoleFormat = loaded.ConsoleFormat
	}
	if loaded.FilePath != "" {
		c.FilePath = loaded.FilePath
	}
	if loaded.FileFormat != "" {
		c.FileFormat = loaded.FileFormat
	}
	if loaded.FileMaxSizeMB > 0 {
		c.FileMaxSizeMB = loaded.FileMaxSizeMB
	}
	if loaded.FileMaxBackups > 0 {
		c.FileMaxBackups = loaded.FileMaxBackups
	}
	if loaded.FileMaxAgeDays > 0 {
		c.FileMaxAgeDays = loaded.FileMaxAgeDays
	}
}
