package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "INFO", config.Level)
	assert.False(t, config.ConsoleEnabled, "stdout belongs to the game")
	assert.True(t, config.FileEnabled)
	assert.Equal(t, "logs/encounter.log", config.FilePath)
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	yamlContent := `logging:
  level: DEBUG
  console_enabled: true
  console_format: json
  file_enabled: false
  file_path: test.log
  file_max_size_mb: 20
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", config.Level)
	assert.True(t, config.ConsoleEnabled)
	assert.Equal(t, "json", config.ConsoleFormat)
	assert.False(t, config.FileEnabled)
	assert.Equal(t, "test.log", config.FilePath)
	assert.Equal(t, 20, config.FileMaxSizeMB)
	assert.Equal(t, 3, config.FileMaxBackups, "unset values keep defaults")
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [unclosed"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestEnvVarOverride(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_CONSOLE_ENABLED", "true")
	t.Setenv("LOG_FILE_ENABLED", "false")
	t.Setenv("LOG_FILE_PATH", "/custom/path.log")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "ERROR", config.Level)
	assert.True(t, config.ConsoleEnabled)
	assert.False(t, config.FileEnabled)
	assert.Equal(t, "/custom/path.log", config.FilePath)
}

func TestInitializeConsole(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.ConsoleEnabled = true
	config.FileEnabled = false

	require.NoError(t, InitializeWithConsole(config, &buf))
	t.Cleanup(Close)

	Info("Roster built", "count", 3)
	Debug("This should not appear")

	output := buf.String()
	assert.Contains(t, output, "Roster built")
	assert.Contains(t, output, "count=3")
	assert.NotContains(t, output, "This should not appear")
}

func TestInitializeFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "encounter.log")
	config := DefaultConfig()
	config.FilePath = path
	config.FileFormat = "json"

	require.NoError(t, InitializeWithConsole(config, &bytes.Buffer{}))
	t.Cleanup(func() { logger = nil })
	Warning("Catalog warning", "name", "Orc")
	Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Catalog warning"`)
	assert.Contains(t, string(data), `"name":"Orc"`)
}

func TestInitializeFileWithoutPath(t *testing.T) {
	config := DefaultConfig()
	config.FilePath = ""
	assert.Error(t, InitializeWithConsole(config, &bytes.Buffer{}))
}

func TestMultiHandler(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	handler1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelError})
	logger = slog.New(newMultiHandler(handler1, handler2))
	t.Cleanup(func() { logger = nil })

	Info("Multi-handler test", "field", "value")
	Error("Both see this")

	assert.Contains(t, buf1.String(), "Multi-handler test")
	assert.Contains(t, buf1.String(), "field=value")
	assert.NotContains(t, buf2.String(), "Multi-handler test")
	assert.Contains(t, buf2.String(), "Both see this")
}

func TestNilLogger(t *testing.T) {
	logger = nil

	assert.NotPanics(t, func() {
		Debug("debug")
		Info("info")
		Warning("warning")
		Error("error")
	})
}
