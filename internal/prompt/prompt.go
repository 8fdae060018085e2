// Package prompt asks the player questions on a line-oriented terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/lawnchairsociety/encounter/internal/encounter"
	"github.com/lawnchairsociety/encounter/internal/monster"
	"github.com/lawnchairsociety/encounter/internal/roster"
)

var (
	unsignedInt = regexp.MustCompile(`^\d+$`)
	signedInt   = regexp.MustCompile(`^[+-]?\d+$`)
)

// Prompter reads answers from one input and writes questions to one output.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Println writes a line of output.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Printf writes formatted output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// ReadLine prints prompt and returns the next line, trimmed. It returns
// io.EOF once input is exhausted.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Int asks until the answer is a whole number; signed allows a leading + or -.
func (p *Prompter) Int(prompt string, signed bool) (int, error) {
	pattern := unsignedInt
	if signed {
		pattern = signedInt
	}
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		if !pattern.MatchString(line) {
			continue
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			continue
		}
		return n, nil
	}
}

// IntBetween asks until the answer is within [lo, hi].
func (p *Prompter) IntBetween(prompt string, lo, hi int) (int, error) {
	for {
		n, err := p.Int(prompt, false)
		if err != nil {
			return 0, err
		}
		if n >= lo && n <= hi {
			return n, nil
		}
	}
}

// PlayerCount asks how many players there are.
func (p *Prompter) PlayerCount() (int, error) {
	for {
		n, err := p.Int("How many players are there? ", false)
		if err != nil {
			return 0, err
		}
		if n >= 1 {
			return n, nil
		}
	}
}

// Party asks for the player count and each player's level.
func (p *Prompter) Party() (encounter.Party, error) {
	count, err := p.PlayerCount()
	if err != nil {
		return encounter.Party{}, err
	}
	levels := make([]int, count)
	for i := range levels {
		prompt := fmt.Sprintf("What is %s's level (%d-%d)? ", roster.PlayerName(i+1), encounter.MinLevel, encounter.MaxLevel)
		if levels[i], err = p.IntBetween(prompt, encounter.MinLevel, encounter.MaxLevel); err != nil {
			return encounter.Party{}, err
		}
	}
	return encounter.NewParty(levels)
}

// Difficulty asks for a difficulty tier.
func (p *Prompter) Difficulty() (encounter.Difficulty, error) {
	prompt := fmt.Sprintf("Choose a difficulty (%s): ", strings.Join(encounter.DifficultyNames(), ", "))
	for {
		line, err := p.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		if d, err := encounter.ParseDifficulty(line); err == nil {
			return d, nil
		}
	}
}

// Initiative asks each player for their initiative roll.
func (p *Prompter) Initiative(players int) ([]roster.PlayerInitiative, error) {
	p.Println()
	p.Println()
	p.Println("Roll for initiative!")
	out := make([]roster.PlayerInitiative, players)
	for i := range out {
		name := roster.PlayerName(i + 1)
		roll, err := p.Int(fmt.Sprintf("What is %s's initiative? ", name), true)
		if err != nil {
			return nil, err
		}
		out[i] = roster.PlayerInitiative{Name: name, Roll: roll}
	}
	return out, nil
}

// Template asks for a monster name, resolving unique prefixes and offering
// a numbered choice when several templates match. It returns nil when
// nothing matches.
func (p *Prompter) Template(catalog *monster.Catalog, prompt string) (*monster.Template, error) {
	name, err := p.ReadLine(prompt)
	if err != nil {
		return nil, err
	}
	t, candidates := catalog.Find(name)
	if t != nil || len(candidates) == 0 {
		return t, nil
	}

	p.Printf("%q matches several monsters:\n", name)
	for i, c := range candidates {
		p.Printf("  %d) %s\n", i+1, c.Name)
	}
	n, err := p.IntBetween("Which one? ", 1, len(candidates))
	if err != nil {
		return nil, err
	}
	return candidates[n-1], nil
}
