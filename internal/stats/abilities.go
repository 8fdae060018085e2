package stats

import "strings"

// Ability identifies one of the six core ability scores.
type Ability int

const (
	Strength Ability = iota
	Dexterity
	Constitution
	Intelligence
	Wisdom
	Charisma
)

// AbilityCodes are the three-letter codes accepted on the command line, in ability order.
var AbilityCodes = []string{"str", "dex", "con", "int", "wis", "cha"}

// AbilityNames in ability order
var AbilityNames = []string{"Strength", "Dexterity", "Constitution", "Intelligence", "Wisdom", "Charisma"}

// ParseAbility resolves a three-letter ability code (case-insensitive).
func ParseAbility(code string) (Ability, bool) {
	code = strings.ToLower(code)
	for i, c := range AbilityCodes {
		if c == code {
			return Ability(i), true
		}
	}
	return 0, false
}

// Code returns the three-letter code, e.g. "dex".
func (a Ability) Code() string {
	if a < Strength || a > Charisma {
		return "???"
	}
	return AbilityCodes[a]
}

// String returns the full ability name.
func (a Ability) String() string {
	if a < Strength || a > Charisma {
		return "Unknown"
	}
	return AbilityNames[a]
}

// AbilityScores holds the six core D&D-style ability scores
type AbilityScores struct {
	Strength     int `yaml:"str"`
	Dexterity    int `yaml:"dex"`
	Constitution int `yaml:"con"`
	Intelligence int `yaml:"int"`
	Wisdom       int `yaml:"wis"`
	Charisma     int `yaml:"cha"`
}

// NewScores creates ability scores from individual values
func NewScores(str, dex, con, int_, wis, cha int) AbilityScores {
	return AbilityScores{
		Strength:     str,
		Dexterity:    dex,
		Constitution: con,
		Intelligence: int_,
		Wisdom:       wis,
		Charisma:     cha,
	}
}

// Score returns the raw score for an ability.
func (a AbilityScores) Score(ability Ability) int {
	switch ability {
	case Strength:
		return a.Strength
	case Dexterity:
		return a.Dexterity
	case Constitution:
		return a.Constitution
	case Intelligence:
		return a.Intelligence
	case Wisdom:
		return a.Wisdom
	case Charisma:
		return a.Charisma
	default:
		return 10
	}
}

// Mod returns the modifier for an ability.
func (a AbilityScores) Mod(ability Ability) int {
	return Modifier(a.Score(ability))
}

// Modifier calculates the D&D-style modifier using floor division
// Formula: floor((score - 10) / 2)
// Examples: 8=-1, 9=-1, 10=0, 11=0, 12=+1, 14=+2, 16=+3, 18=+4
func Modifier(score int) int {
	diff := score - 10
	if diff >= 0 {
		return diff / 2
	}
	// Floor division for negative numbers
	return (diff - 1) / 2
}
