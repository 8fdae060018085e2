// Package session runs the combat tracker: one parsed command per input line
// against a live roster.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lawnchairsociety/encounter/internal/command"
	"github.com/lawnchairsociety/encounter/internal/help"
	"github.com/lawnchairsociety/encounter/internal/logger"
	"github.com/lawnchairsociety/encounter/internal/monster"
	"github.com/lawnchairsociety/encounter/internal/roster"
	"github.com/lawnchairsociety/encounter/internal/stats"
	"github.com/lawnchairsociety/encounter/internal/text"
)

// ErrQuit is returned by an EncounterFunc when the player leaves before a
// roster exists.
var ErrQuit = errors.New("quit")

// Settings are the display toggles and damage defaults of one session.
type Settings struct {
	Debug      bool
	ShowStatus bool
	ShowSpeed  bool
	ShowDead   bool

	// DefaultMagical is the quality of physical damage typed without a prefix.
	DefaultMagical bool
}

// Deps are the collaborators a session needs.
type Deps struct {
	Catalog  *monster.Catalog
	Status   *text.StatusTable
	Help     *help.Help
	Store    *roster.Store
	Rand     stats.Roller
	Settings Settings
}

// Result is the outcome of one command.
type Result struct {
	Lines []string
	// Done ends the session.
	Done bool
}

// String joins the output lines.
func (r Result) String() string {
	return strings.Join(r.Lines, "\n")
}

func (r *Result) say(format string, args ...any) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

// Session is the state of one combat: roster, enemy numbering, the previous
// command and the display settings. Commands are serialized.
type Session struct {
	mu       sync.Mutex
	roster   *roster.Roster
	index    *roster.Index
	last     string
	settings Settings

	catalog *monster.Catalog
	status  *text.StatusTable
	help    *help.Help
	store   *roster.Store
	rand    stats.Roller
	printer *message.Printer
}

// New creates a session with an empty roster.
func New(deps Deps) *Session {
	s := &Session{
		settings: deps.Settings,
		catalog:  deps.Catalog,
		status:   deps.Status,
		help:     deps.Help,
		store:    deps.Store,
		rand:     deps.Rand,
		printer:  message.NewPrinter(language.English),
	}
	s.replace(nil)
	return s
}

// SetRoster replaces the roster and renumbers its enemies.
func (s *Session) SetRoster(r *roster.Roster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(r)
}

func (s *Session) replace(r *roster.Roster) {
	if r == nil {
		r = &roster.Roster{}
	}
	s.roster = r
	s.index = roster.NewIndex(r)
}

// Roster returns the current roster.
func (s *Session) Roster() *roster.Roster {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster
}

// Settings returns the current toggles.
func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Empty reports whether the roster has no entries.
func (s *Session) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Empty()
}

// Spawner returns the enemy factory bound to this session's status table.
func (s *Session) Spawner() roster.Spawner {
	return roster.Spawner{Status: s.status, Rand: s.rand}
}

// Listing renders the roster: numbered living enemies and player slots.
func (s *Session) Listing() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	for _, entry := range s.roster.Entries {
		switch e := entry.(type) {
		case *roster.PlayerSlot:
			fmt.Fprintf(&b, " -) %s\n", e.Name)
		case *roster.Enemy:
			if e.Dead() && !s.settings.ShowDead {
				continue
			}
			speed, how := "", ""
			if s.settings.ShowSpeed {
				speed = fmt.Sprintf(" (%s)", e.Template.Speed)
			}
			if s.settings.ShowStatus {
				how = " ... " + e.Status
			}
			fmt.Fprintf(&b, "%2d) %s%s%s\n", s.index.ID(e), e.Nickname, speed, how)
			if s.settings.Debug {
				fmt.Fprintf(&b, "    %s\n", e.HPInfo())
			}
		}
	}
	return b.String()
}

// Execute runs one line of input.
func (s *Session) Execute(line string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res Result
	line = strings.TrimSpace(line)
	if line == "" {
		return res
	}

	cmd, err := command.Parse(line)
	if _, repeat := cmd.(command.Repeat); err == nil && repeat {
		if s.last == "" {
			res.say("No previous command to re-run!")
			return res
		}
		line = s.last
		res.say("Re-running: %s", line)
		cmd, err = command.Parse(line)
	}
	s.last = line

	if err != nil {
		res.say("%s", err)
		return res
	}

	logger.Debug("Session command", "line", line, "command", fmt.Sprintf("%T", cmd))
	s.dispatch(cmd, &res)
	return res
}

// enemy looks up an enemy number, reporting when it does not exist.
func (s *Session) enemy(id int, res *Result) (*roster.Enemy, bool) {
	e, ok := s.index.Get(id)
	if !ok {
		res.say("Enemy #%d does not exist!", id)
	}
	return e, ok
}

func (s *Session) autosave() {
	if _, err := s.store.Save(roster.AutoSave, s.roster); err != nil {
		logger.Error("Autosave failed", "error", err)
	}
}

func (s *Session) save(name string, res *Result) {
	path, err := s.store.Save(name, s.roster)
	res.say("Saving to %s...", path)
	if err != nil {
		res.say("Could not save: %v", err)
		return
	}
	logger.Info("Saved roster", "path", path)
}
