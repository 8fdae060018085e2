package roster

import (
	"strings"

	"github.com/lawnchairsociety/encounter/internal/stats"
)

// Sex is an enemy's gender tag, used for pronouns in status text.
type Sex int

const (
	Male Sex = iota
	Female
)

// ParseSex accepts "m" or "f" (or the full words).
func ParseSex(s string) (Sex, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return Male, true
	case "f", "female":
		return Female, true
	default:
		return 0, false
	}
}

// RandomSex picks either tag with equal chance.
func RandomSex(r stats.Roller) Sex {
	return Sex(r.Intn(2))
}

// String returns the save-file code.
func (s Sex) String() string {
	if s == Female {
		return "f"
	}
	return "m"
}

// Word returns "male" or "female".
func (s Sex) Word() string {
	if s == Female {
		return "female"
	}
	return "male"
}

type pronoun struct {
	placeholder  string
	male, female string
}

// pronouns is ordered longest placeholder first so "_hishers" is replaced
// before "_hisher".
var pronouns = []pronoun{
	{"_hishers", "his", "hers"},
	{"_hisher", "his", "her"},
	{"_heshe", "he", "she"},
	{"_himher", "him", "her"},
}

// Substitute replaces pronoun placeholders in status text.
func (s Sex) Substitute(text string) string {
	for _, p := range pronouns {
		word := p.male
		if s == Female {
			word = p.female
		}
		text = strings.ReplaceAll(text, p.placeholder, word)
	}
	return text
}
