package roster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lawnchairsociety/encounter/internal/monster"
)

// ErrUnknownTemplate is returned when a save names a monster the catalog lacks.
var ErrUnknownTemplate = errors.New("unknown monster template")

// Save-file line prefixes.
const (
	xpPrefix       = "XP:"
	playerPrefix   = "#:"
	templatePrefix = "Template:"
	nicknamePrefix = "Nickname:"
	sexPrefix      = "Sex:"
	hpPrefix       = "HP:"
	statusPrefix   = "Status:"
)

// Encode writes a roster in the save-file format: an XP header, then one
// blank-line separated block per entry.
func Encode(w io.Writer, r *Roster) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %d\n\n", xpPrefix, r.XP)
	for _, entry := range r.Entries {
		switch e := entry.(type) {
		case *PlayerSlot:
			fmt.Fprintf(bw, "%s%s\n\n", playerPrefix, e.Name)
		case *Enemy:
			fmt.Fprintf(bw, "%s %s\n", templatePrefix, e.Template.Name)
			fmt.Fprintf(bw, "%s %s\n", nicknamePrefix, e.Nickname)
			fmt.Fprintf(bw, "%s %s\n", sexPrefix, e.Sex)
			fmt.Fprintf(bw, "%s %d\n", hpPrefix, e.HP)
			fmt.Fprintf(bw, "%s %s\n\n", statusPrefix, e.Status)
		}
	}
	return bw.Flush()
}

// Decode reads a save file. Templates are looked up by exact name. Files
// without an XP header load with XP 0; enemies without a Sex line get a
// random one and enemies without an HP line start at full health.
func Decode(rd io.Reader, catalog *monster.Catalog, sp Spawner) (*Roster, error) {
	r := &Roster{}
	var pending *Enemy
	hasSex := false

	scanner := bufio.NewScanner(rd)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, playerPrefix) {
			if pending != nil {
				return nil, fmt.Errorf("line %d: enemy %q has no status line", lineNo, pending.Nickname)
			}
			r.Entries = append(r.Entries, &PlayerSlot{Name: line[len(playerPrefix):]})
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: unrecognized line %q", lineNo, line)
		}
		value = strings.TrimSpace(value)

		switch key + ":" {
		case xpPrefix:
			xp, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad XP %q", lineNo, value)
			}
			r.XP = xp
		case templatePrefix:
			if pending != nil {
				return nil, fmt.Errorf("line %d: enemy %q has no status line", lineNo, pending.Nickname)
			}
			t, ok := catalog.Get(value)
			if !ok || t.Name != value {
				return nil, fmt.Errorf("line %d: %w: %s", lineNo, ErrUnknownTemplate, value)
			}
			pending = &Enemy{Template: t, Nickname: t.Name, HP: t.HP}
			hasSex = false
		case nicknamePrefix, sexPrefix, hpPrefix, statusPrefix:
			if pending == nil {
				return nil, fmt.Errorf("line %d: %s outside an enemy block", lineNo, key)
			}
			switch key + ":" {
			case nicknamePrefix:
				pending.Nickname = value
			case sexPrefix:
				sex, ok := ParseSex(value)
				if !ok {
					return nil, fmt.Errorf("line %d: bad sex %q", lineNo, value)
				}
				pending.Sex = sex
				hasSex = true
			case hpPrefix:
				hp, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad HP %q", lineNo, value)
				}
				pending.HP = hp
			case statusPrefix:
				if !hasSex {
					pending.Sex = RandomSex(sp.Rand)
				}
				pending.Status = value
				r.Entries = append(r.Entries, pending)
				pending = nil
			}
		default:
			return nil, fmt.Errorf("line %d: unrecognized line %q", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, fmt.Errorf("enemy %q has no status line", pending.Nickname)
	}
	return r, nil
}
