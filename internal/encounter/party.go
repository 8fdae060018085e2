package encounter

import (
	"fmt"
	"math"
)

// Party is the ordered list of player character levels.
type Party struct {
	levels []int
}

// NewParty validates levels; a party needs at least one member and every
// level must be within 1 to 20.
func NewParty(levels []int) (Party, error) {
	if len(levels) == 0 {
		return Party{}, fmt.Errorf("party has no players")
	}
	for i, level := range levels {
		if level < MinLevel || level > MaxLevel {
			return Party{}, fmt.Errorf("player %d level %d must be between %d and %d", i+1, level, MinLevel, MaxLevel)
		}
	}
	return Party{levels: append([]int(nil), levels...)}, nil
}

// Levels returns a copy of the levels.
func (p Party) Levels() []int {
	return append([]int(nil), p.levels...)
}

// Size returns the number of players.
func (p Party) Size() int {
	return len(p.levels)
}

// Average returns the mean level.
func (p Party) Average() float64 {
	if len(p.levels) == 0 {
		return 0
	}
	total := 0
	for _, level := range p.levels {
		total += level
	}
	return float64(total) / float64(len(p.levels))
}

// Target returns the XP band for a difficulty: the floor is the sum of each
// player's threshold and the ceiling is 10% above it.
func (p Party) Target(t *Thresholds, d Difficulty) (floor int, ceiling float64) {
	for _, level := range p.levels {
		floor += t.XP(level, d)
	}
	return floor, float64(floor) * 1.1
}

// countLevel is the table row used for the multiplier's CR cut-off.
func (p Party) countLevel() int {
	return int(math.Floor(p.Average()))
}
