// Package roster holds the combatants of one encounter: player slots and
// enemy instances, their numbering, and the save-file format.
package roster

import (
	"fmt"

	"github.com/lawnchairsociety/encounter/internal/monster"
	"github.com/lawnchairsociety/encounter/internal/stats"
	"github.com/lawnchairsociety/encounter/internal/text"
)

// DeadStatus is the status of an enemy at or below 0 HP.
const DeadStatus = "is dead!"

// Entry is a roster member: a *PlayerSlot or an *Enemy.
type Entry interface {
	rosterEntry()
}

// PlayerSlot is an opaque player placeholder such as "Player 1".
type PlayerSlot struct {
	Name string
}

func (*PlayerSlot) rosterEntry() {}

// Enemy is a live monster instance.
type Enemy struct {
	Template *monster.Template
	Nickname string
	Sex      Sex
	HP       int
	Status   string
}

func (*Enemy) rosterEntry() {}

// MaxHP is the template's hit points.
func (e *Enemy) MaxHP() int {
	return e.Template.HP
}

// Dead reports whether HP has dropped to 0 or below.
func (e *Enemy) Dead() bool {
	return e.HP <= 0
}

// HPInfo renders "cur/max HP".
func (e *Enemy) HPInfo() string {
	return fmt.Sprintf("%d/%d HP", e.HP, e.MaxHP())
}

// RefreshStatus picks a new status message for the current HP fraction.
// When no tier applies the previous status is kept.
func (e *Enemy) RefreshStatus(table *text.StatusTable, r stats.Roller) {
	if e.Dead() {
		e.Status = DeadStatus
		return
	}
	if e.MaxHP() <= 0 {
		return
	}
	fraction := float64(e.HP) / float64(e.MaxHP())
	if msg, ok := table.Message(fraction, r); ok {
		e.Status = e.Sex.Substitute(msg)
	}
}

// Spawner creates enemies with a random sex and a fresh status.
type Spawner struct {
	Status *text.StatusTable
	Rand   stats.Roller
}

// Spawn creates a full-health enemy.
func (s Spawner) Spawn(t *monster.Template, nickname string) *Enemy {
	e := &Enemy{
		Template: t,
		Nickname: nickname,
		Sex:      RandomSex(s.Rand),
		HP:       t.HP,
	}
	e.RefreshStatus(s.Status, s.Rand)
	return e
}

// Roster is the ordered list of combatants plus the cached encounter XP.
type Roster struct {
	Entries []Entry
	XP      int
}

// Enemies returns the enemy entries in roster order.
func (r *Roster) Enemies() []*Enemy {
	var enemies []*Enemy
	for _, entry := range r.Entries {
		if e, ok := entry.(*Enemy); ok {
			enemies = append(enemies, e)
		}
	}
	return enemies
}

// Empty reports whether the roster has no entries.
func (r *Roster) Empty() bool {
	return r == nil || len(r.Entries) == 0
}

// Index numbers enemies from 1 in roster order. Numbers stay fixed for the
// life of a roster; dead enemies keep theirs.
type Index struct {
	byID map[int]*Enemy
	ids  map[*Enemy]int
}

// NewIndex numbers the enemies of a roster.
func NewIndex(r *Roster) *Index {
	ix := &Index{byID: map[int]*Enemy{}, ids: map[*Enemy]int{}}
	if r == nil {
		return ix
	}
	for i, e := range r.Enemies() {
		ix.byID[i+1] = e
		ix.ids[e] = i + 1
	}
	return ix
}

// Get returns the enemy with the given number.
func (ix *Index) Get(id int) (*Enemy, bool) {
	e, ok := ix.byID[id]
	return e, ok
}

// ID returns an enemy's number, or 0 if it is not indexed.
func (ix *Index) ID(e *Enemy) int {
	return ix.ids[e]
}

// Len returns the number of indexed enemies.
func (ix *Index) Len() int {
	return len(ix.byID)
}
