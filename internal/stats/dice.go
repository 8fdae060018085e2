package stats

import "math/rand"

// Roller is the random source dice are rolled against.
// *rand.Rand satisfies it; tests substitute scripted rollers.
type Roller interface {
	Intn(n int) int
}

// NewRoller returns a Roller seeded with seed.
func NewRoller(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// D20 rolls a 20-sided die (1-20)
func D20(r Roller) int {
	return r.Intn(20) + 1
}

// Between returns a uniform integer in [lo, hi].
func Between(r Roller, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Advantage describes how a d20 test is rolled.
type Advantage int

const (
	Normal Advantage = iota
	WithAdvantage
	WithDisadvantage
)

// ParseAdvantage maps the "+" and "-" prefixes to advantage and disadvantage.
func ParseAdvantage(prefix string) Advantage {
	switch prefix {
	case "+":
		return WithAdvantage
	case "-":
		return WithDisadvantage
	default:
		return Normal
	}
}

// String returns the advantage's display name.
func (a Advantage) String() string {
	switch a {
	case WithAdvantage:
		return "advantage"
	case WithDisadvantage:
		return "disadvantage"
	default:
		return "normal"
	}
}

// D20Test is the outcome of a two-dice d20 roll.
type D20Test struct {
	Rolls [2]int
	Kept  int
}

// RollD20Test always rolls two d20 so the dice consumed do not depend on advantage.
// Advantage keeps the higher, disadvantage the lower, otherwise the first.
func RollD20Test(r Roller, adv Advantage) D20Test {
	first, second := D20(r), D20(r)
	kept := first
	switch adv {
	case WithAdvantage:
		kept = max(first, second)
	case WithDisadvantage:
		kept = min(first, second)
	}
	return D20Test{Rolls: [2]int{first, second}, Kept: kept}
}
