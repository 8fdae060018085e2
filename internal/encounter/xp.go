package encounter

import "github.com/lawnchairsociety/encounter/internal/monster"

// Group is a batch of copies of one template.
type Group struct {
	Template *monster.Template
	Count    int
}

// multipliers is addressed at step+1 so small and large parties can shift
// one place either way.
var multipliers = []float64{0.5, 1, 1.5, 2, 2.5, 3, 4}

// Tally is the result of an adjusted XP computation.
type Tally struct {
	Raw        int
	Counted    int
	Multiplier float64
	Adjusted   float64
}

// countStep maps the number of counted monsters to a multiplier step.
func countStep(counted int) int {
	switch {
	case counted <= 1:
		return 0
	case counted == 2:
		return 1
	case counted < 7:
		return 2
	case counted < 11:
		return 3
	case counted < 15:
		return 4
	default:
		return 5
	}
}

// Multiplier returns the group-size multiplier for counted monsters facing a
// party of partySize players.
func Multiplier(counted, partySize int) float64 {
	i := countStep(counted) + 1
	switch {
	case partySize <= 2:
		i++
	case partySize >= 6:
		i--
	}
	i = max(0, min(len(multipliers)-1, i))
	return multipliers[i]
}

// AdjustedXP sums the XP of every member, plus any extra hypothetical
// members, and scales it by the group-size multiplier. Only members at or
// above the party's count cut-off contribute to the count. HP never matters.
func AdjustedXP(party Party, t *Thresholds, groups []Group, extra ...*monster.Template) Tally {
	minCR := t.MinCR(party.countLevel())

	var tally Tally
	members := 0
	add := func(tmpl *monster.Template, n int) {
		if n <= 0 {
			return
		}
		members += n
		tally.Raw += tmpl.XP() * n
		if tmpl.Rating >= minCR {
			tally.Counted += n
		}
	}
	for _, g := range groups {
		add(g.Template, g.Count)
	}
	for _, tmpl := range extra {
		add(tmpl, 1)
	}

	if members == 0 {
		return Tally{}
	}
	tally.Multiplier = Multiplier(tally.Counted, party.Size())
	tally.Adjusted = float64(tally.Raw) * tally.Multiplier
	return tally
}
