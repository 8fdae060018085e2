package encounter

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/encounter/internal/monster"
)

// MinLevel and MaxLevel bound character levels.
const (
	MinLevel = 1
	MaxLevel = 20
)

//go:embed thresholds.yaml
var defaultThresholds []byte

// Row is one level of the threshold table.
type Row struct {
	Level  int                     `yaml:"level"`
	Easy   int                     `yaml:"easy"`
	Medium int                     `yaml:"med"`
	Hard   int                     `yaml:"hard"`
	Deadly int                     `yaml:"deadly"`
	Hell   int                     `yaml:"hell"`
	MinCR  monster.ChallengeRating `yaml:"min_cr"`
}

// XP returns the row's threshold for a tier.
func (r Row) XP(d Difficulty) int {
	switch d {
	case Easy:
		return r.Easy
	case Medium:
		return r.Medium
	case Hard:
		return r.Hard
	case Deadly:
		return r.Deadly
	default:
		return r.Hell
	}
}

// ThresholdFile represents the structure of thresholds.yaml.
type ThresholdFile struct {
	Levels []Row `yaml:"levels"`
}

// Thresholds is a complete per-level table for levels 1 to 20.
type Thresholds struct {
	rows [MaxLevel + 1]Row
}

// DefaultThresholds returns the built-in table.
func DefaultThresholds() *Thresholds {
	t, err := ParseThresholds(defaultThresholds)
	if err != nil {
		panic(fmt.Sprintf("built-in threshold table: %v", err))
	}
	return t
}

// LoadThresholds reads a threshold table from a YAML file.
func LoadThresholds(path string) (*Thresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read thresholds: %w", err)
	}
	return ParseThresholds(data)
}

// ParseThresholds parses a table; every level must appear exactly once and
// tiers must not decrease.
func ParseThresholds(data []byte) (*Thresholds, error) {
	var file ThresholdFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse thresholds: %w", err)
	}

	t := &Thresholds{}
	seen := make(map[int]bool, MaxLevel)
	for _, row := range file.Levels {
		if row.Level < MinLevel || row.Level > MaxLevel {
			return nil, fmt.Errorf("threshold level %d out of range", row.Level)
		}
		if seen[row.Level] {
			return nil, fmt.Errorf("threshold level %d listed twice", row.Level)
		}
		prev := 0
		for _, d := range Difficulties() {
			if row.XP(d) < prev {
				return nil, fmt.Errorf("threshold level %d: %s is below the tier before it", row.Level, d)
			}
			prev = row.XP(d)
		}
		seen[row.Level] = true
		t.rows[row.Level] = row
	}
	for level := MinLevel; level <= MaxLevel; level++ {
		if !seen[level] {
			return nil, fmt.Errorf("threshold level %d missing", level)
		}
	}
	return t, nil
}

// Row returns the row for a level, clamped to the table.
func (t *Thresholds) Row(level int) Row {
	level = max(MinLevel, min(MaxLevel, level))
	return t.rows[level]
}

// XP returns the threshold for one character.
func (t *Thresholds) XP(level int, d Difficulty) int {
	return t.Row(level).XP(d)
}

// MinCR returns the lowest challenge rating counted toward the group-size
// multiplier at the given level.
func (t *Thresholds) MinCR(level int) monster.ChallengeRating {
	return t.Row(level).MinCR
}
