// Package command parses combat-session input into typed commands.
package command

import (
	"strings"

	"github.com/lawnchairsociety/encounter/internal/monster"
	"github.com/lawnchairsociety/encounter/internal/roster"
	"github.com/lawnchairsociety/encounter/internal/stats"
)

// RawCommand is a tokenized input line: a lower-cased command word and its
// arguments as typed.
type RawCommand struct {
	Name string
	Args []string
}

// ParseCommand splits input on whitespace.
func ParseCommand(input string) *RawCommand {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &RawCommand{Name: "", Args: []string{}}
	}

	return &RawCommand{
		Name: strings.ToLower(parts[0]),
		Args: parts[1:],
	}
}

// Command is one parsed session command.
type Command interface {
	command()
}

// Attack compares an attack total against an enemy's AC.
type Attack struct {
	ID    int
	Total int
}

// Damage applies signed damage of an optional type. Quality matters only for
// physical types; QualityGiven is false when the player used no prefix.
type Damage struct {
	ID           int
	Amount       int
	Type         string
	Quality      monster.Quality
	QualityGiven bool
}

// SetHP overwrites an enemy's HP.
type SetHP struct {
	ID    int
	Value int
}

// Check reports an enemy's modifiers for a damage type or condition.
type Check struct {
	ID   int
	Name string
}

// SaveTerm is one ability of a saving throw with an optional flat bonus that
// replaces the ability modifier.
type SaveTerm struct {
	Ability     stats.Ability
	Override    int
	HasOverride bool
}

// SavingThrow rolls the best of its terms against a DC.
type SavingThrow struct {
	ID        int
	Advantage stats.Advantage
	Terms     []SaveTerm
	DC        int
}

// Gender optionally reassigns an enemy's sex and refreshes its status.
type Gender struct {
	ID  int
	Sex *roster.Sex
}

// Save writes the roster under Name.
type Save struct{ Name string }

// Load replaces the roster with a saved one.
type Load struct{ Path string }

// Quit saves and ends the session.
type Quit struct{}

// Bail ends the session without saving.
type Bail struct{}

// Setting is a display toggle.
type Setting int

const (
	Debug Setting = iota
	How
	Speed
	Dead
)

func (s Setting) String() string {
	switch s {
	case Debug:
		return "Debug"
	case How:
		return "Status"
	case Speed:
		return "Speed"
	case Dead:
		return "Show dead"
	default:
		return "Unknown"
	}
}

// Toggle flips a display setting.
type Toggle struct{ Setting Setting }

// XP prints the encounter XP.
type XP struct{}

// NewGame clears the roster so a new encounter is built.
type NewGame struct{}

// Restart heals every enemy to full.
type Restart struct{}

// Repeat re-runs the previous line.
type Repeat struct{}

// Help prints the command reference, or one topic of it.
type Help struct{ Topic string }

func (Attack) command()      {}
func (Damage) command()      {}
func (SetHP) command()       {}
func (Check) command()       {}
func (SavingThrow) command() {}
func (Gender) command()      {}
func (Save) command()        {}
func (Load) command()        {}
func (Quit) command()        {}
func (Bail) command()        {}
func (Toggle) command()      {}
func (XP) command()          {}
func (NewGame) command()     {}
func (Restart) command()     {}
func (Repeat) command()      {}
func (Help) command()        {}
