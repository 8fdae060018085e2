package prompt

import (
	"context"
	"strings"

	"github.com/lawnchairsociety/encounter/internal/encounter"
	"github.com/lawnchairsociety/encounter/internal/logger"
	"github.com/lawnchairsociety/encounter/internal/monster"
	"github.com/lawnchairsociety/encounter/internal/roster"
	"github.com/lawnchairsociety/encounter/internal/session"
)

// Mode is a startup menu choice.
type Mode int

const (
	ModeRandom Mode = iota
	ModeChoose
	ModeLoad
	ModeQuit
)

var modeWords = map[string]Mode{
	"r": ModeRandom, "random": ModeRandom, "randomize": ModeRandom,
	"c": ModeChoose, "choose": ModeChoose,
	"l": ModeLoad, "load": ModeLoad,
	"q": ModeQuit, "quit": ModeQuit, "exit": ModeQuit,
}

// StartMenu greets the player and asks how to build the next encounter.
func (p *Prompter) StartMenu() (Mode, error) {
	p.Println()
	p.Println("~~~ Welcome to Encounter! ~~~")
	p.Println()
	for {
		line, err := p.ReadLine("(R)andomize monsters, (C)hoose your own, or (L)oad a save file? ")
		if err != nil {
			return 0, err
		}
		line = strings.ToLower(line)
		if line == "" {
			continue
		}
		if mode, ok := modeWords[line]; ok {
			return mode, nil
		}
		p.Println("I did not recognize that.")
	}
}

// Setup builds the roster for each new encounter.
type Setup struct {
	Prompter *Prompter
	Catalog  *monster.Catalog
	Builder  *encounter.Builder
	Store    *roster.Store
	Spawner  roster.Spawner
	Debug    bool
}

// NewEncounter runs the startup menu and returns the assembled roster.
// Choosing quit returns session.ErrQuit.
func (s *Setup) NewEncounter(ctx context.Context) (*roster.Roster, error) {
	mode, err := s.Prompter.StartMenu()
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeRandom:
		return s.random(ctx)
	case ModeChoose:
		return s.choose()
	case ModeLoad:
		return s.load()
	default:
		return nil, session.ErrQuit
	}
}

func (s *Setup) random(ctx context.Context) (*roster.Roster, error) {
	p := s.Prompter
	party, err := p.Party()
	if err != nil {
		return nil, err
	}
	d, err := p.Difficulty()
	if err != nil {
		return nil, err
	}

	result, err := s.Builder.Build(ctx, party, d)
	if err != nil {
		return nil, err
	}
	for _, note := range result.Diagnostics {
		p.Println(note)
	}

	p.Println()
	for _, g := range result.Groups {
		p.Printf("%s x%d\n", g.Template.Name, g.Count)
	}
	p.Println()
	p.Printf("%g XP\n", result.Tally.Adjusted)
	if s.Debug {
		p.Printf("%d XP <-- target\n", result.Floor)
		p.Printf("%g XP <-- target\n", result.Ceiling)
	}

	return s.assemble(party.Size(), result.Groups, result.XP())
}

func (s *Setup) choose() (*roster.Roster, error) {
	p := s.Prompter
	party, err := p.Party()
	if err != nil {
		return nil, err
	}

	groups, err := s.selectMonsters()
	if err != nil {
		return nil, err
	}
	tally := encounter.AdjustedXP(party, s.Builder.Thresholds(), groups)
	logger.Debug("Manual encounter chosen",
		"groups", len(groups),
		"adjusted_xp", tally.Adjusted)

	return s.assemble(party.Size(), groups, int(tally.Adjusted))
}

func (s *Setup) selectMonsters() ([]encounter.Group, error) {
	p := s.Prompter
	sel := encounter.NewSelection()
	for {
		p.Println()
		for i, g := range sel.Groups() {
			p.Printf("%d) %s x%d\n", i+1, g.Template.Name, g.Count)
		}
		p.Println()
		p.Println("Commands:")
		p.Println("  set   (set the amount of a monster; add to list if necessary)")
		p.Println("  del   (delete this entry from list)")
		p.Println("  clear (clears all monsters from list, be careful!)")
		p.Println("  done")
		p.Println()

		cmd, err := p.ReadLine("What would you like to do? ")
		if err != nil {
			return nil, err
		}
		p.Println()

		switch strings.ToLower(cmd) {
		case "set":
			t, err := p.Template(s.Catalog, "Which monster? ")
			if err != nil {
				return nil, err
			}
			if t == nil {
				p.Println("I couldn't find that monster")
				continue
			}
			n, err := p.Int("How many? ", false)
			if err != nil {
				return nil, err
			}
			sel.Set(t, n)
		case "del":
			if sel.Empty() {
				p.Println("No monsters to delete!")
				continue
			}
			n, err := p.Int("Which monster to delete (use number)? ", false)
			if err != nil {
				return nil, err
			}
			if err := sel.Delete(n); err != nil {
				p.Println("That number is out of bounds!")
			}
		case "clear":
			sel.Clear()
		case "done":
			if sel.Empty() {
				p.Println("No monsters added! Add a monster first.")
				continue
			}
			return sel.Groups(), nil
		}
	}
}

func (s *Setup) load() (*roster.Roster, error) {
	p := s.Prompter
	for {
		name, err := p.ReadLine("Enter file to load: ")
		if err != nil {
			return nil, err
		}
		if name == "" || !s.Store.Exists(name) {
			p.Println("Cannot open file")
			continue
		}
		r, err := s.Store.Load(name, s.Catalog, s.Spawner)
		if err != nil {
			logger.Warning("Failed to load save file", "name", name, "error", err)
			p.Printf("Cannot open file (%v)\n", err)
			continue
		}
		return r, nil
	}
}

func (s *Setup) assemble(players int, groups []encounter.Group, xp int) (*roster.Roster, error) {
	initiative, err := s.Prompter.Initiative(players)
	if err != nil {
		return nil, err
	}
	return roster.Assemble(initiative, groups, xp, s.Spawner), nil
}
