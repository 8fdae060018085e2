package monster

import (
	"sort"
	"strings"

	"github.com/lawnchairsociety/encounter/internal/stats"
)

// Environments are the habitat tags recognized in catalog data.
var Environments = []string{
	"arctic", "coastal", "desert", "forest", "grassland", "hill",
	"mountain", "swamp", "underdark", "underwater", "urban",
}

// Template is an immutable monster stat block from the catalog.
type Template struct {
	Name         string
	Rating       ChallengeRating
	AC           int
	HP           int
	Speed        string
	Abilities    stats.AbilityScores
	Modifiers    map[string]ModifierClass // normalized key -> class
	Environments map[string]bool
}

// XP returns the template's base experience value.
func (t *Template) XP() int {
	return t.Rating.XP()
}

// HasEnvironment reports whether the template shares a tag with envs.
// An empty restriction matches everything.
func (t *Template) HasEnvironment(envs []string) bool {
	if len(envs) == 0 {
		return true
	}
	for _, env := range envs {
		if t.Environments[strings.ToLower(env)] {
			return true
		}
	}
	return false
}

// DamageModifiers returns the entries that apply to a hit of the given damage
// type and quality. Unqualified entries always apply; qualified ones apply
// unless the quality bypasses them. Qualities are ignored for non-physical damage.
func (t *Template) DamageModifiers(damageType string, q Quality) []Applied {
	var applied []Applied
	for _, key := range t.sortedKeys() {
		name, qualifier := splitKey(key)
		if name != damageType {
			continue
		}
		if qualifier != "" && (!IsPhysical(name) || q.bypasses(qualifier)) {
			continue
		}
		applied = append(applied, Applied{Key: key, Class: t.Modifiers[key]})
	}
	return applied
}

// ModifiersFor returns every entry naming the given damage type or condition,
// qualified or not.
func (t *Template) ModifiersFor(name string) []Applied {
	var applied []Applied
	for _, key := range t.sortedKeys() {
		if base, _ := splitKey(key); base == name {
			applied = append(applied, Applied{Key: key, Class: t.Modifiers[key]})
		}
	}
	return applied
}

func (t *Template) sortedKeys() []string {
	keys := make([]string, 0, len(t.Modifiers))
	for k := range t.Modifiers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DescribeKey renders "bludgeoning(nonmagical)" as "bludgeoning (nonmagical)".
func DescribeKey(key string) string {
	name, qualifier := splitKey(key)
	if qualifier == "" {
		return name
	}
	return name + " (" + qualifier + ")"
}
