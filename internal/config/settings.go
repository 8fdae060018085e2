package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMissingSetting is returned when the settings file leaves a required entry out.
var ErrMissingSetting = errors.New("setting not initialized")

// Settings are the builder's tunable floors, read once at startup.
type Settings struct {
	// InitialFilterFloor is the share of the remaining XP budget the first
	// pick must contribute.
	InitialFilterFloor float64
	// NextFilterFloor applies to every pick after the first.
	NextFilterFloor float64
}

// settingFields maps settings-file names onto the record.
var settingFields = map[string]func(*Settings) *float64{
	"INIT_FILTER_FLOOR": func(s *Settings) *float64 { return &s.InitialFilterFloor },
	"NEXT_FILTER_FLOOR": func(s *Settings) *float64 { return &s.NextFilterFloor },
}

// LoadSettings reads a settings file.
func LoadSettings(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	defer f.Close()
	return ParseSettings(f)
}

// ParseSettings reads "<NAME> <float>" lines. Lines that do not have that
// shape and names it does not know are skipped; every known name must appear
// and lie in [0, 1].
func ParseSettings(r io.Reader) (Settings, error) {
	var settings Settings
	seen := make(map[string]bool, len(settingFields))

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		field, ok := settingFields[fields[0]]
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		if value < 0 || value > 1 {
			return Settings{}, fmt.Errorf("setting %s must be between 0 and 1, got %g", fields[0], value)
		}
		*field(&settings) = value
		seen[fields[0]] = true
	}
	if err := scanner.Err(); err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	for _, name := range []string{"INIT_FILTER_FLOOR", "NEXT_FILTER_FLOOR"} {
		if !seen[name] {
			return Settings{}, fmt.Errorf("setting %s: %w", name, ErrMissingSetting)
		}
	}
	return settings, nil
}
