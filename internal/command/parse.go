package command

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lawnchairsociety/encounter/internal/monster"
	"github.com/lawnchairsociety/encounter/internal/roster"
	"github.com/lawnchairsociety/encounter/internal/stats"
)

// ErrUnrecognized is returned for input that matches no command.
var ErrUnrecognized = errors.New("Command not recognized. Type 'help' for info.")

// Usage lines, printed when a command word is recognized but its arguments
// are not.
const (
	usageAttack = "Usage: atk <enemy id> <attack total>"
	usageDamage = "Usage: dmg <enemy id> <damage total> [+|-|$|@][damage type]"
	usageHP     = "Usage: hp <enemy id> <value>"
	usageCheck  = "Usage: check <enemy id> <damage type or condition>"
	usageSave   = "Usage: <enemy id> sav [+|-]<ability>[+/-bonus][/<ability>...] <dc>"
	usageGender = "Usage: mf <enemy id> [m|f]"
	usageLoad   = "Usage: load <filename>"
)

var (
	idPattern     = regexp.MustCompile(`^\d+$`)
	signedPattern = regexp.MustCompile(`^[+-]?\d+$`)
	termPattern   = regexp.MustCompile(`^([a-z]+)([+-]\d+)?$`)
)

// Parse turns one line of input into a command. Forms are tried in a fixed
// priority order: atk, dmg, hp, check, "<id> sav", mf, then the whole-line
// keywords.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	raw := ParseCommand(line)
	if raw.Name == "" {
		return nil, ErrUnrecognized
	}

	switch raw.Name {
	case "atk":
		id, total, err := idAndValue(raw, usageAttack)
		if err != nil {
			return nil, err
		}
		return Attack{ID: id, Total: total}, nil
	case "dmg":
		return parseDamage(raw)
	case "hp":
		id, value, err := idAndValue(raw, usageHP)
		if err != nil {
			return nil, err
		}
		return SetHP{ID: id, Value: value}, nil
	case "check":
		return parseCheck(raw)
	}

	if len(raw.Args) > 0 && strings.ToLower(raw.Args[0]) == "sav" && idPattern.MatchString(raw.Name) {
		return parseSavingThrow(raw)
	}

	if raw.Name == "mf" {
		return parseGender(raw)
	}

	return parseKeyword(line, raw)
}

func parseID(s string) (int, bool) {
	if !idPattern.MatchString(s) {
		return 0, false
	}
	id, err := strconv.Atoi(s)
	return id, err == nil
}

func parseSigned(s string) (int, bool) {
	if !signedPattern.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// idAndValue parses "<id> <signed int>".
func idAndValue(raw *RawCommand, usage string) (int, int, error) {
	if len(raw.Args) != 2 {
		return 0, 0, errors.New(usage)
	}
	id, ok := parseID(raw.Args[0])
	if !ok {
		return 0, 0, errors.New(usage)
	}
	value, ok := parseSigned(raw.Args[1])
	if !ok {
		return 0, 0, errors.New(usage)
	}
	return id, value, nil
}

func parseDamage(raw *RawCommand) (Command, error) {
	if len(raw.Args) < 2 || len(raw.Args) > 3 {
		return nil, errors.New(usageDamage)
	}
	id, amount, err := idAndValue(&RawCommand{Name: raw.Name, Args: raw.Args[:2]}, usageDamage)
	if err != nil {
		return nil, err
	}
	cmd := Damage{ID: id, Amount: amount}
	if len(raw.Args) == 2 {
		return cmd, nil
	}

	token := strings.ToLower(raw.Args[2])
	if q, ok := monster.ParseQualityPrefix(token[0]); ok {
		cmd.Quality = q
		cmd.QualityGiven = true
		token = token[1:]
		if token == "" {
			return nil, errors.New(usageDamage)
		}
	}
	damageType, err := monster.Resolve(monster.DamageTypes, token)
	if err != nil {
		return nil, fmt.Errorf("Damage type %w", err)
	}
	cmd.Type = damageType
	return cmd, nil
}

func parseCheck(raw *RawCommand) (Command, error) {
	if len(raw.Args) != 2 {
		return nil, errors.New(usageCheck)
	}
	id, ok := parseID(raw.Args[0])
	if !ok {
		return nil, errors.New(usageCheck)
	}
	name, err := monster.Resolve(monster.CheckVocabulary, raw.Args[1])
	if err != nil {
		return nil, fmt.Errorf("Cannot check %w", err)
	}
	return Check{ID: id, Name: name}, nil
}

// parseSavingThrow accepts "<id> sav <spec> <dc>" and, for old habits,
// "<id> sav <dc> <spec>".
func parseSavingThrow(raw *RawCommand) (Command, error) {
	if len(raw.Args) != 3 {
		return nil, errors.New(usageSave)
	}
	id, ok := parseID(raw.Name)
	if !ok {
		return nil, errors.New(usageSave)
	}

	spec, dcText := raw.Args[1], raw.Args[2]
	dc, ok := parseSigned(dcText)
	if !ok {
		spec, dcText = raw.Args[2], raw.Args[1]
		if dc, ok = parseSigned(dcText); !ok {
			return nil, errors.New(usageSave)
		}
	}

	cmd := SavingThrow{ID: id, DC: dc}
	spec = strings.ToLower(spec)
	if spec != "" && (spec[0] == '+' || spec[0] == '-') {
		cmd.Advantage = stats.ParseAdvantage(spec[:1])
		spec = spec[1:]
	}
	if spec == "" {
		return nil, errors.New(usageSave)
	}

	var errs []error
	for _, part := range strings.Split(spec, "/") {
		m := termPattern.FindStringSubmatch(part)
		if m == nil {
			errs = append(errs, fmt.Errorf("Ability %s not formatted correctly!", part))
			continue
		}
		ability, ok := stats.ParseAbility(m[1])
		if !ok {
			errs = append(errs, fmt.Errorf("Ability %s not recognized!", m[1]))
			continue
		}
		term := SaveTerm{Ability: ability}
		if m[2] != "" {
			term.Override, _ = strconv.Atoi(m[2])
			term.HasOverride = true
		}
		cmd.Terms = append(cmd.Terms, term)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cmd, nil
}

func parseGender(raw *RawCommand) (Command, error) {
	if len(raw.Args) < 1 || len(raw.Args) > 2 {
		return nil, errors.New(usageGender)
	}
	id, ok := parseID(raw.Args[0])
	if !ok {
		return nil, errors.New(usageGender)
	}
	cmd := Gender{ID: id}
	if len(raw.Args) == 2 {
		sex, ok := roster.ParseSex(raw.Args[1])
		if !ok {
			return nil, errors.New(usageGender)
		}
		cmd.Sex = &sex
	}
	return cmd, nil
}

// parseKeyword handles the whole-line commands. File names keep their case.
func parseKeyword(line string, raw *RawCommand) (Command, error) {
	rest := strings.TrimSpace(line[len(strings.Fields(line)[0]):])

	switch raw.Name {
	case "save":
		if rest == "" {
			return Save{Name: roster.ManualSave}, nil
		}
		return Save{Name: rest}, nil
	case "load":
		if rest == "" {
			return nil, errors.New(usageLoad)
		}
		return Load{Path: rest}, nil
	case "help":
		return Help{Topic: strings.ToLower(rest)}, nil
	}

	if len(raw.Args) > 0 {
		return nil, ErrUnrecognized
	}

	switch raw.Name {
	case "quit":
		return Quit{}, nil
	case "bail":
		return Bail{}, nil
	case "debug":
		return Toggle{Setting: Debug}, nil
	case "how":
		return Toggle{Setting: How}, nil
	case "speed", "spd":
		return Toggle{Setting: Speed}, nil
	case "dead":
		return Toggle{Setting: Dead}, nil
	case "xp":
		return XP{}, nil
	case "newgame":
		return NewGame{}, nil
	case "restart":
		return Restart{}, nil
	case "last", ".":
		return Repeat{}, nil
	}
	return nil, ErrUnrecognized
}
