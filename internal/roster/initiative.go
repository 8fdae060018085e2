package roster

import (
	"fmt"
	"sort"

	"github.com/lawnchairsociety/encounter/internal/encounter"
	"github.com/lawnchairsociety/encounter/internal/stats"
)

// colours tell copies of one template apart. Copies past the last colour
// keep the plain name.
var colours = []string{"red", "blue", "green", "orange", "purple", "pink", "yellow"}

// PlayerInitiative is a player's name and rolled initiative.
type PlayerInitiative struct {
	Name string
	Roll int
}

// PlayerName is the placeholder name of the n-th player (1-based).
func PlayerName(n int) string {
	return fmt.Sprintf("Player %d", n)
}

type turn struct {
	player *PlayerSlot
	group  encounter.Group
	roll   int
}

// Assemble builds a roster in initiative order. Each template group rolls
// once (d20 + DEX modifier) and its copies act together; ties keep players
// ahead of monsters and otherwise keep input order.
func Assemble(players []PlayerInitiative, groups []encounter.Group, xp int, sp Spawner) *Roster {
	turns := make([]turn, 0, len(players)+len(groups))
	for _, p := range players {
		turns = append(turns, turn{player: &PlayerSlot{Name: p.Name}, roll: p.Roll})
	}
	for _, g := range groups {
		if g.Count <= 0 {
			continue
		}
		roll := stats.D20(sp.Rand) + g.Template.Abilities.Mod(stats.Dexterity)
		turns = append(turns, turn{group: g, roll: roll})
	}

	sort.SliceStable(turns, func(i, j int) bool {
		return turns[i].roll > turns[j].roll
	})

	r := &Roster{XP: xp}
	for _, t := range turns {
		if t.player != nil {
			r.Entries = append(r.Entries, t.player)
			continue
		}
		for i := 0; i < t.group.Count; i++ {
			nickname := t.group.Template.Name
			if t.group.Count > 1 && i < len(colours) {
				nickname = fmt.Sprintf("%s [%s]", nickname, colours[i])
			}
			r.Entries = append(r.Entries, sp.Spawn(t.group.Template, nickname))
		}
	}
	return r
}
