package session

import (
	"github.com/lawnchairsociety/encounter/internal/command"
	"github.com/lawnchairsociety/encounter/internal/logger"
	"github.com/lawnchairsociety/encounter/internal/monster"
	"github.com/lawnchairsociety/encounter/internal/roster"
	"github.com/lawnchairsociety/encounter/internal/stats"
)

func (s *Session) dispatch(cmd command.Command, res *Result) {
	switch c := cmd.(type) {
	case command.Attack:
		s.attack(c, res)
	case command.Damage:
		s.damage(c, res)
	case command.SetHP:
		s.setHP(c, res)
	case command.Check:
		s.check(c, res)
	case command.SavingThrow:
		s.savingThrow(c, res)
	case command.Gender:
		s.gender(c, res)
	case command.Save:
		s.save(c.Name, res)
	case command.Load:
		s.load(c, res)
	case command.Quit:
		s.save(roster.QuitSave, res)
		res.say("Quitting...")
		res.Done = true
	case command.Bail:
		res.say("Quitting without saving...")
		res.Done = true
	case command.Toggle:
		s.toggle(c, res)
	case command.XP:
		res.Lines = append(res.Lines, s.printer.Sprintf("Encounter XP: %d", s.roster.XP))
	case command.NewGame:
		s.autosave()
		s.replace(nil)
		logger.Info("Roster cleared for a new game")
		res.say("Starting a new game...")
	case command.Restart:
		s.autosave()
		for _, e := range s.roster.Enemies() {
			e.HP = e.MaxHP()
			e.RefreshStatus(s.status, s.rand)
		}
		res.say("All enemies are back to full health!")
	case command.Help:
		if s.help == nil {
			res.say("No help available.")
			return
		}
		res.say("%s", s.help.GetHelpText(c.Topic))
	}
}

func (s *Session) attack(c command.Attack, res *Result) {
	e, ok := s.enemy(c.ID, res)
	if !ok {
		return
	}
	if c.Total >= e.Template.AC {
		res.say("=== Hit! ===")
	} else {
		res.say("=== Miss! ===")
	}
}

// damageFactor combines the enemy's modifiers for a typed hit.
func (s *Session) damageFactor(e *roster.Enemy, c command.Damage) float64 {
	if c.Type == "" {
		return 1
	}
	quality := c.Quality
	if !c.QualityGiven {
		quality = monster.Nonmagical
		if s.settings.DefaultMagical {
			quality = monster.Magical
		}
	}
	return monster.Factor(e.Template.DamageModifiers(c.Type, quality))
}

func (s *Session) damage(c command.Damage, res *Result) {
	e, ok := s.enemy(c.ID, res)
	if !ok {
		return
	}

	factor := s.damageFactor(e, c)
	delta := int(float64(c.Amount) * factor)
	if s.settings.Debug {
		res.say("%d x %g = %d", c.Amount, factor, delta)
	}
	switch {
	case factor == 0:
		res.say("It had no effect!")
	case factor < 1:
		res.say("It didn't seem very effective")
	case factor > 1:
		res.say("It was super effective!")
	}

	e.HP = min(e.HP-delta, e.MaxHP())
	e.RefreshStatus(s.status, s.rand)

	switch {
	case e.Dead():
		res.say("  %s is dead!", e.Nickname)
	case delta > 0:
		res.say("  %s took %d damage!", e.Nickname, delta)
	case delta < 0:
		res.say("  %s recovered %d HP!", e.Nickname, -delta)
	default:
		res.say("  %s took...no damage?", e.Nickname)
	}
	logger.Debug("Damage applied", "enemy", e.Nickname, "amount", c.Amount, "type", c.Type, "delta", delta, "hp", e.HP)
	s.autosave()
}

func (s *Session) setHP(c command.SetHP, res *Result) {
	e, ok := s.enemy(c.ID, res)
	if !ok {
		return
	}
	e.HP = c.Value
	e.RefreshStatus(s.status, s.rand)
	res.say("  %d HP set!", c.Value)
	s.autosave()
}

func (s *Session) check(c command.Check, res *Result) {
	e, ok := s.enemy(c.ID, res)
	if !ok {
		return
	}
	applied := e.Template.ModifiersFor(c.Name)
	if len(applied) == 0 {
		res.say("No info on %s for %s", c.Name, e.Nickname)
		return
	}
	for _, a := range applied {
		res.say("%s is %s to %s", e.Nickname, a.Class, monster.DescribeKey(a.Key))
	}
}

func (s *Session) savingThrow(c command.SavingThrow, res *Result) {
	e, ok := s.enemy(c.ID, res)
	if !ok {
		return
	}

	bonus := 0
	for i, term := range c.Terms {
		b := term.Override
		if !term.HasOverride {
			b = e.Template.Abilities.Mod(term.Ability)
		}
		if i == 0 || b > bonus {
			bonus = b
		}
	}

	roll := stats.RollD20Test(s.rand, c.Advantage)
	total := roll.Kept + bonus
	if s.settings.Debug {
		res.say("Rolls: %d, %d", roll.Rolls[0], roll.Rolls[1])
		res.say("%d = %d + %d", total, roll.Kept, bonus)
	}
	if total >= c.DC {
		res.say("=== Saved! ===")
	} else {
		res.say("=== Failed! ===")
	}
}

func (s *Session) gender(c command.Gender, res *Result) {
	e, ok := s.enemy(c.ID, res)
	if !ok {
		return
	}
	if c.Sex != nil {
		e.Sex = *c.Sex
		res.say("%s is now %s", e.Nickname, e.Sex.Word())
	}
	e.RefreshStatus(s.status, s.rand)
	res.say("%s %s", e.Nickname, e.Status)
	s.autosave()
}

func (s *Session) load(c command.Load, res *Result) {
	if !s.store.Exists(c.Path) {
		res.say("Cannot load file: %s", c.Path)
		return
	}
	loaded, err := s.store.Load(c.Path, s.catalog, roster.Spawner{Status: s.status, Rand: s.rand})
	if err != nil {
		logger.Warning("Load failed", "path", c.Path, "error", err)
		res.say("Cannot load file: %s (%v)", c.Path, err)
		return
	}
	s.save(roster.LoadBackup, res)
	s.replace(loaded)
}

func (s *Session) toggle(c command.Toggle, res *Result) {
	var flag *bool
	switch c.Setting {
	case command.Debug:
		flag = &s.settings.Debug
	case command.How:
		flag = &s.settings.ShowStatus
	case command.Speed:
		flag = &s.settings.ShowSpeed
	case command.Dead:
		flag = &s.settings.ShowDead
	default:
		return
	}
	*flag = !*flag
	state := "off"
	if *flag {
		state = "on"
	}
	res.say("%s is now %s", c.Setting, state)
}
