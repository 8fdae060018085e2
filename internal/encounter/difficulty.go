package encounter

import (
	"fmt"
	"strings"
)

// Difficulty is an ordered target-XP band.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Deadly
	Hell
)

var difficultyNames = []string{"easy", "med", "hard", "deadly", "hell"}

// Difficulties returns every tier in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard, Deadly, Hell}
}

// DifficultyNames returns the tier names in ascending order.
func DifficultyNames() []string {
	return append([]string(nil), difficultyNames...)
}

// ParseDifficulty accepts a tier name, case-insensitively. "medium" is
// accepted for "med".
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "medium" {
		return Medium, nil
	}
	for i, name := range difficultyNames {
		if s == name {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q (want one of %s)", s, strings.Join(difficultyNames, ", "))
}

func (d Difficulty) String() string {
	if d < Easy || d > Hell {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}
