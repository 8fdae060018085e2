// Package text provides loading and lookup for externalized text blocks:
// the tiers of flavour messages that describe how hurt an enemy looks.
package text

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/encounter/internal/stats"
)

// Tier is a set of status messages used while the HP fraction exceeds Floor.
type Tier struct {
	Floor    float64  `yaml:"floor"`
	Messages []string `yaml:"messages"`
}

// StatusData represents the structure of the status.yaml file.
type StatusData struct {
	Tiers []Tier `yaml:"tiers"`
}

// StatusTable holds tiers ordered by descending floor.
type StatusTable struct {
	tiers []Tier
}

// NewStatusTable validates and orders tiers.
func NewStatusTable(tiers []Tier) (*StatusTable, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("status table has no tiers")
	}
	ordered := make([]Tier, 0, len(tiers))
	for i, tier := range tiers {
		if len(tier.Messages) == 0 {
			return nil, fmt.Errorf("status tier %d (floor %g) has no messages", i, tier.Floor)
		}
		ordered = append(ordered, Tier{Floor: tier.Floor, Messages: append([]string(nil), tier.Messages...)})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Floor > ordered[j].Floor
	})
	return &StatusTable{tiers: ordered}, nil
}

// LoadStatus reads a status table. YAML files use the tiers layout; anything
// else is read as the flat format (see ParseLegacyStatus).
func LoadStatus(path string) (*StatusTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read status file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseStatusYAML(data)
	default:
		return ParseLegacyStatus(bytes.NewReader(data))
	}
}

// ParseStatusYAML parses the tiers layout.
func ParseStatusYAML(data []byte) (*StatusTable, error) {
	var statusData StatusData
	if err := yaml.Unmarshal(data, &statusData); err != nil {
		return nil, fmt.Errorf("failed to parse status file: %w", err)
	}
	return NewStatusTable(statusData.Tiers)
}

var floorLine = regexp.MustCompile(`^[0-9.]+$`)

// ParseLegacyStatus reads message lines followed by a numeric floor line that
// closes the block. Messages left after the last floor form a tier at 0.
func ParseLegacyStatus(r io.Reader) (*StatusTable, error) {
	var (
		tiers   []Tier
		pending []string
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if floorLine.MatchString(line) {
			floor, err := strconv.ParseFloat(line, 64)
			if err != nil {
				return nil, fmt.Errorf("bad status floor %q: %w", line, err)
			}
			tiers = append(tiers, Tier{Floor: floor, Messages: pending})
			pending = nil
			continue
		}
		pending = append(pending, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read status file: %w", err)
	}
	if len(pending) > 0 {
		tiers = append(tiers, Tier{Floor: 0, Messages: pending})
	}

	return NewStatusTable(tiers)
}

// Tiers returns a copy of the ordered tiers.
func (t *StatusTable) Tiers() []Tier {
	return append([]Tier(nil), t.tiers...)
}

// Message picks a random message from the first tier whose floor the fraction
// exceeds. It reports false when no tier applies.
func (t *StatusTable) Message(fraction float64, r stats.Roller) (string, bool) {
	for _, tier := range t.tiers {
		if fraction > tier.Floor {
			return tier.Messages[r.Intn(len(tier.Messages))], true
		}
	}
	return "", false
}
