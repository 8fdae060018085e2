package monster

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

var (
	// ErrUnknown is returned when a token matches nothing in a vocabulary.
	ErrUnknown = errors.New("unknown")
	// ErrAmbiguous is returned when a token is a prefix of several entries.
	ErrAmbiguous = errors.New("ambiguous")
)

// DamageTypes is the fixed damage-type vocabulary.
var DamageTypes = []string{
	"acid", "bludgeoning", "cold", "fire", "force", "lightning", "necrotic",
	"piercing", "poison", "psychic", "radiant", "slashing", "thunder",
}

// Conditions is the fixed condition vocabulary.
var Conditions = []string{
	"blinded", "charmed", "deafened", "exhaustion", "frightened", "grappled",
	"incapacitated", "invisible", "paralyzed", "petrified", "poisoned", "prone",
	"restrained", "stunned", "unconscious",
}

// CheckVocabulary is the combined vocabulary searched by resistance checks.
var CheckVocabulary = append(append([]string{}, DamageTypes...), Conditions...)

// physical damage types can be qualified by the quality of the hit.
var physical = map[string]bool{
	"bludgeoning": true,
	"piercing":    true,
	"slashing":    true,
}

// IsPhysical reports whether a damage type is bludgeoning, piercing or slashing.
func IsPhysical(damageType string) bool {
	return physical[damageType]
}

// Resolve matches token against vocab case-insensitively. An exact match wins
// even when the token is also a prefix of longer entries ("poison" vs
// "poisoned"); otherwise the token must be a prefix of exactly one entry.
func Resolve(vocab []string, token string) (string, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return "", fmt.Errorf("empty token: %w", ErrUnknown)
	}

	var matches []string
	for _, entry := range vocab {
		if entry == token {
			return entry, nil
		}
		if strings.HasPrefix(entry, token) {
			matches = append(matches, entry)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%q: %w", token, ErrUnknown)
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("%q could be %s: %w", token, strings.Join(matches, ", "), ErrAmbiguous)
	}
}

// ModifierClass is how a creature reacts to a damage type or condition.
type ModifierClass int

const (
	Immune ModifierClass = iota + 1
	Resistant
	Vulnerable
)

// ParseModifierClass accepts the long and short spellings used in data files.
func ParseModifierClass(s string) (ModifierClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "immune", "immunity", "imm":
		return Immune, nil
	case "resist", "resistant", "resistance", "res":
		return Resistant, nil
	case "vuln", "vulnerable", "vulnerability":
		return Vulnerable, nil
	default:
		return 0, fmt.Errorf("unknown modifier class %q", s)
	}
}

// String returns the adjective used in narration.
func (m ModifierClass) String() string {
	switch m {
	case Immune:
		return "immune"
	case Resistant:
		return "resistant"
	case Vulnerable:
		return "vulnerable"
	default:
		return "unaffected"
	}
}

// Factor is the damage multiplier for the class.
func (m ModifierClass) Factor() float64 {
	switch m {
	case Immune:
		return 0
	case Resistant:
		return 0.5
	case Vulnerable:
		return 2
	default:
		return 1
	}
}

// Quality describes what kind of weapon delivered physical damage.
type Quality int

const (
	Nonmagical Quality = iota
	Magical
	Silvered
	Adamantine
)

// qualifier names used in modifier keys, e.g. "bludgeoning(nonmagical)".
const (
	qualNonmagical    = "nonmagical"
	qualNonsilvered   = "nonsilvered"
	qualNonadamantine = "nonadamantine"
)

// ParseQualityPrefix maps a leading "+", "-", "$" or "@" to a quality.
func ParseQualityPrefix(c byte) (Quality, bool) {
	switch c {
	case '+':
		return Magical, true
	case '-':
		return Nonmagical, true
	case '$':
		return Silvered, true
	case '@':
		return Adamantine, true
	default:
		return 0, false
	}
}

// String returns the quality's name.
func (q Quality) String() string {
	switch q {
	case Magical:
		return "magical"
	case Silvered:
		return "silvered"
	case Adamantine:
		return "adamantine"
	default:
		return "nonmagical"
	}
}

// bypasses reports whether a hit of quality q gets past a qualified modifier.
// Magical hits bypass all of them; silvered and adamantine hits are still
// nonmagical but bypass their own qualifier.
func (q Quality) bypasses(qualifier string) bool {
	switch q {
	case Magical:
		return true
	case Silvered:
		return qualifier == qualNonsilvered
	case Adamantine:
		return qualifier == qualNonadamantine
	default:
		return false
	}
}

// Applied is one modifier entry that matched a damage type or condition.
type Applied struct {
	Key   string
	Class ModifierClass
}

// Factor combines matched entries: any immunity zeroes the damage, otherwise
// each resistance halves and each vulnerability doubles.
func Factor(applied []Applied) float64 {
	factor := 1.0
	seen := map[ModifierClass]bool{}
	for _, a := range applied {
		if a.Class == Immune {
			return 0
		}
		if seen[a.Class] {
			continue
		}
		seen[a.Class] = true
		factor *= a.Class.Factor()
	}
	return factor
}

// NormalizeKey lower-cases and strips whitespace so "Bludgeoning (Nonmagical)"
// and "bludgeoning(nonmagical)" are the same key.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}

// splitKey separates "slashing(nonsilvered)" into its name and qualifier.
func splitKey(key string) (name, qualifier string) {
	open := strings.IndexByte(key, '(')
	if open < 0 || !strings.HasSuffix(key, ")") {
		return key, ""
	}
	return key[:open], key[open+1 : len(key)-1]
}

// ParseModifiers reads the catalog's modifier column: comma-separated
// "name+class" tokens, case- and space-insensitive.
func ParseModifiers(s string) (map[string]ModifierClass, error) {
	mods := make(map[string]ModifierClass)
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		idx := strings.LastIndex(token, "+")
		if idx <= 0 {
			return nil, fmt.Errorf("modifier %q is not name+class", token)
		}
		class, err := ParseModifierClass(token[idx+1:])
		if err != nil {
			return nil, fmt.Errorf("modifier %q: %w", token, err)
		}
		key, err := validateKey(token[:idx])
		if err != nil {
			return nil, err
		}
		mods[key] = class
	}
	return mods, nil
}

// validateKey normalizes a modifier key and checks its name and qualifier.
func validateKey(raw string) (string, error) {
	key := NormalizeKey(raw)
	name, qualifier := splitKey(key)
	if !slices.Contains(CheckVocabulary, name) {
		return "", fmt.Errorf("modifier %q: %q is not a damage type or condition", raw, name)
	}
	switch qualifier {
	case "":
	case qualNonmagical, qualNonsilvered, qualNonadamantine:
		if !IsPhysical(name) {
			return "", fmt.Errorf("modifier %q: only physical damage can be qualified", raw)
		}
	default:
		return "", fmt.Errorf("modifier %q: unknown qualifier %q", raw, qualifier)
	}
	return key, nil
}
