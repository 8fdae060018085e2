package session

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawnchairsociety/encounter/internal/help"
	"github.com/lawnchairsociety/encounter/internal/monster"
	"github.com/lawnchairsociety/encounter/internal/roster"
	"github.com/lawnchairsociety/encounter/internal/stats"
	"github.com/lawnchairsociety/encounter/internal/text"
)

// scriptedRoller returns queued values from Intn, then zeros.
type scriptedRoller struct {
	values []int
}

func (s *scriptedRoller) Intn(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v % n
}

// queueD20 makes the next d20 rolls come up as faces.
func (s *scriptedRoller) queueD20(faces ...int) {
	for _, f := range faces {
		s.values = append(s.values, f-1)
	}
}

type fixture struct {
	session *Session
	roller  *scriptedRoller
	store   *roster.Store
	catalog *monster.Catalog
	dir     string
}

func mustModifiers(t *testing.T, s string) map[string]monster.ModifierClass {
	t.Helper()
	m, err := monster.ParseModifiers(s)
	require.NoError(t, err)
	return m
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	catalog := monster.NewCatalog([]*monster.Template{
		{Name: "Orc", Rating: 0.5, AC: 13, HP: 15, Speed: "30 ft.",
			Abilities: stats.NewScores(16, 12, 16, 7, 11, 10)},
		{Name: "Imp", Rating: 1, AC: 13, HP: 30, Speed: "20 ft., fly 40 ft.",
			Abilities: stats.NewScores(6, 17, 13, 11, 12, 14),
			Modifiers: mustModifiers(t, "fire+resist, poison+immune, cold+vulnerable, bludgeoning (nonsilvered)+resist")},
		{Name: "Werewolf", Rating: 3, AC: 12, HP: 58, Speed: "30 ft.",
			Abilities: stats.NewScores(15, 13, 14, 10, 11, 10),
			Modifiers: mustModifiers(t, "bludgeoning (nonmagical)+immune, slashing (nonadamantine)+immune, piercing+resist")},
	})
	status, err := text.NewStatusTable([]text.Tier{
		{Floor: 0.5, Messages: []string{"looks eager to fight"}},
		{Floor: 0, Messages: []string{"is nursing _hisher wounds"}},
	})
	require.NoError(t, err)
	helpText, err := help.Parse([]byte("general_help: |\n  Useful commands\ntopics:\n  dmg:\n    text: DMG help\n"))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "saves")
	store := roster.NewStore(dir)
	roller := &scriptedRoller{}

	s := New(Deps{
		Catalog:  catalog,
		Status:   status,
		Help:     helpText,
		Store:    store,
		Rand:     roller,
		Settings: Settings{ShowStatus: true},
	})

	orc, _ := catalog.Get("Orc")
	imp, _ := catalog.Get("Imp")
	wolf, _ := catalog.Get("Werewolf")
	s.SetRoster(&roster.Roster{
		XP: 1350,
		Entries: []roster.Entry{
			&roster.PlayerSlot{Name: "Player 1"},
			&roster.Enemy{Template: orc, Nickname: "Orc", Sex: roster.Male, HP: 15, Status: "looks eager to fight"},
			&roster.Enemy{Template: imp, Nickname: "Imp", Sex: roster.Female, HP: 30, Status: "looks eager to fight"},
			&roster.Enemy{Template: wolf, Nickname: "Werewolf", Sex: roster.Male, HP: 58, Status: "looks eager to fight"},
		},
	})

	return &fixture{session: s, roller: roller, store: store, catalog: catalog, dir: dir}
}

func (f *fixture) enemy(t *testing.T, id int) *roster.Enemy {
	t.Helper()
	e, ok := f.session.index.Get(id)
	require.True(t, ok)
	return e
}

func encoded(t *testing.T, r *roster.Roster) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, roster.Encode(&buf, r))
	return buf.String()
}

func TestSavingThrowScenario(t *testing.T) {
	f := newFixture(t)
	f.roller.queueD20(9, 14)

	res := f.session.Execute("1 sav +str 15")
	assert.Equal(t, []string{"=== Saved! ==="}, res.Lines)
}

func TestSavingThrowDebug(t *testing.T) {
	f := newFixture(t)
	f.session.Execute("debug")

	f.roller.queueD20(9, 14)
	res := f.session.Execute("1 sav -str 15")
	assert.Equal(t, []string{"Rolls: 9, 14", "12 = 9 + 3", "=== Failed! ==="}, res.Lines)

	f.roller.queueD20(2, 19)
	res = f.session.Execute("1 sav str+1/dex+4 6")
	assert.Equal(t, []string{"Rolls: 2, 19", "6 = 2 + 4", "=== Saved! ==="}, res.Lines,
		"best term wins and no advantage keeps the first die")

	res = f.session.Execute("1 sav 12 foo")
	assert.Equal(t, []string{"Ability foo not recognized!"}, res.Lines)
}

func TestDamageScenario(t *testing.T) {
	f := newFixture(t)

	res := f.session.Execute("dmg 2 20 fire")
	assert.Equal(t, []string{"It didn't seem very effective", "  Imp took 10 damage!"}, res.Lines)
	assert.Equal(t, 20, f.enemy(t, 2).HP)
	assert.FileExists(t, filepath.Join(f.dir, "_auto.sav"), "damage autosaves")
}

func TestDamageOutcomes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
		hp    int
	}{
		{"immune", "dmg 2 12 pois", []string{"It had no effect!", "  Imp took...no damage?"}, 30},
		{"vulnerable", "dmg 2 7 cold", []string{"It was super effective!", "  Imp took 14 damage!"}, 16},
		{"untyped", "dmg 2 7", []string{"  Imp took 7 damage!"}, 23},
		{"odd resisted rounds toward zero", "dmg 2 7 fire", []string{"It didn't seem very effective", "  Imp took 3 damage!"}, 27},
		{"heal capped at max", "dmg 2 -5", []string{"  Imp recovered 5 HP!"}, 30},
		{"killing blow", "dmg 2 45 acid", []string{"  Imp is dead!"}, -15},
		{"unknown enemy", "dmg 9 5", []string{"Enemy #9 does not exist!"}, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			res := f.session.Execute(tt.input)
			assert.Equal(t, tt.want, res.Lines)
			assert.Equal(t, tt.hp, f.enemy(t, 2).HP)
		})
	}
}

func TestPhysicalDamageQualities(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		magical  bool
		expected int
	}{
		{"nonmagical bludgeoning is immune", "dmg 3 10 bludg", false, 0},
		{"explicit nonmagical", "dmg 3 10 -bludg", false, 0},
		{"magical bypasses", "dmg 3 10 +bludg", false, 10},
		{"default magical bypasses", "dmg 3 10 bludg", true, 10},
		{"explicit nonmagical beats default", "dmg 3 10 -bludg", true, 0},
		{"silver does not bypass nonmagical", "dmg 3 10 $bludg", false, 0},
		{"adamantine bypasses nonadamantine", "dmg 3 10 @slash", false, 10},
		{"silver does not bypass nonadamantine", "dmg 3 10 $slash", false, 0},
		{"unqualified resistance applies to magic", "dmg 3 10 +pierc", false, 5},
		{"silver bypasses nonsilvered", "dmg 2 10 $bludg", false, 10},
		{"nonsilvered applies to nonmagical", "dmg 2 10 bludg", false, 5},
		{"adamantine does not bypass nonsilvered", "dmg 2 10 @bludg", false, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.session.settings.DefaultMagical = tt.magical
			id := 3
			if tt.input[4] == '2' {
				id = 2
			}
			before := f.enemy(t, id).HP
			f.session.Execute(tt.input)
			assert.Equal(t, tt.expected, before-f.enemy(t, id).HP)
		})
	}
}

func TestCheckIsPure(t *testing.T) {
	f := newFixture(t)
	before := encoded(t, f.session.Roster())

	first := f.session.Execute("check 2 fir")
	second := f.session.Execute("check 2 fir")
	assert.Equal(t, []string{"Imp is resistant to fire"}, first.Lines)
	assert.Equal(t, first, second)
	assert.Equal(t, before, encoded(t, f.session.Roster()))
	assert.NoFileExists(t, filepath.Join(f.dir, "_auto.sav"))

	res := f.session.Execute("check 3 bludgeoning")
	assert.Equal(t, []string{"Werewolf is immune to bludgeoning (nonmagical)"}, res.Lines)

	res = f.session.Execute("check 1 poisoned")
	assert.Equal(t, []string{"No info on poisoned for Orc"}, res.Lines)

	res = f.session.Execute("check 1 pois")
	require.Len(t, res.Lines, 1)
	assert.Contains(t, res.Lines[0], "could be poison, poisoned")
}

func TestAttack(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{"=== Hit! ==="}, f.session.Execute("atk 1 13").Lines)
	assert.Equal(t, []string{"=== Miss! ==="}, f.session.Execute("atk 1 12").Lines)
	assert.Equal(t, []string{"Enemy #4 does not exist!"}, f.session.Execute("atk 4 20").Lines)
}

func TestSetHPAndDeadListing(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"  -4 HP set!"}, f.session.Execute("hp 1 -4").Lines)
	orc := f.enemy(t, 1)
	assert.Equal(t, -4, orc.HP)
	assert.Equal(t, roster.DeadStatus, orc.Status)

	listing := f.session.Listing()
	assert.NotContains(t, listing, "Orc")
	assert.Contains(t, listing, " -) Player 1\n")
	assert.Contains(t, listing, " 2) Imp ... looks eager to fight\n")

	assert.Equal(t, []string{"Show dead is now on"}, f.session.Execute("dead").Lines)
	assert.Contains(t, f.session.Listing(), " 1) Orc ... is dead!\n")

	assert.Equal(t, []string{"=== Hit! ==="}, f.session.Execute("atk 1 20").Lines, "dead enemies stay addressable")

	assert.Equal(t, []string{"  25 HP set!"}, f.session.Execute("hp 1 25").Lines, "no clamping")
	assert.Equal(t, 25, orc.HP)
}

func TestToggles(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"Status is now off"}, f.session.Execute("how").Lines)
	assert.Equal(t, []string{"Speed is now on"}, f.session.Execute("spd").Lines)
	assert.Equal(t, []string{"Debug is now on"}, f.session.Execute("debug").Lines)

	listing := f.session.Listing()
	assert.Contains(t, listing, " 2) Imp (20 ft., fly 40 ft.)\n    30/30 HP\n")
	assert.NotContains(t, listing, "eager")

	settings := f.session.Settings()
	assert.False(t, settings.ShowStatus)
	assert.True(t, settings.ShowSpeed)
	assert.True(t, settings.Debug)
}

func TestGender(t *testing.T) {
	f := newFixture(t)
	f.enemy(t, 1).HP = 3

	res := f.session.Execute("mf 1 f")
	assert.Equal(t, []string{"Orc is now female", "Orc is nursing her wounds"}, res.Lines)
	assert.Equal(t, roster.Female, f.enemy(t, 1).Sex)

	res = f.session.Execute("mf 1")
	assert.Equal(t, []string{"Orc is nursing her wounds"}, res.Lines)
}

func TestRepeat(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"No previous command to re-run!"}, f.session.Execute("last").Lines)

	f.session.Execute("dmg 1 2")
	res := f.session.Execute(".")
	assert.Equal(t, []string{"Re-running: dmg 1 2", "  Orc took 2 damage!"}, res.Lines)
	res = f.session.Execute("last")
	assert.Equal(t, "Re-running: dmg 1 2", res.Lines[0])
	assert.Equal(t, 9, f.enemy(t, 1).HP)
}

func TestUnrecognized(t *testing.T) {
	f := newFixture(t)
	before := encoded(t, f.session.Roster())

	res := f.session.Execute("fireball everyone")
	assert.Equal(t, []string{"Command not recognized. Type 'help' for info."}, res.Lines)
	assert.False(t, res.Done)
	assert.Equal(t, before, encoded(t, f.session.Roster()))

	assert.Empty(t, f.session.Execute("   ").Lines)
}

func TestSaveAndLoad(t *testing.T) {
	f := newFixture(t)

	res := f.session.Execute("save MyGame")
	assert.Equal(t, []string{"Saving to " + filepath.Join(f.dir, "MyGame.sav") + "..."}, res.Lines)

	f.session.Execute("dmg 1 10")
	require.Equal(t, 5, f.enemy(t, 1).HP)

	res = f.session.Execute("LOAD MyGame")
	assert.Equal(t, []string{"Saving to " + filepath.Join(f.dir, "_load.sav") + "..."}, res.Lines)
	assert.Equal(t, 15, f.enemy(t, 1).HP, "roster replaced and renumbered")
	assert.Equal(t, 1350, f.session.Roster().XP)

	backup, err := f.store.Load(roster.LoadBackup, f.catalog, f.session.Spawner())
	require.NoError(t, err)
	assert.Equal(t, 5, backup.Enemies()[0].HP, "load backs up the roster it replaces")

	res = f.session.Execute("load nope")
	assert.Equal(t, []string{"Cannot load file: nope"}, res.Lines)
	assert.Equal(t, 15, f.enemy(t, 1).HP)
}

func TestLoadBadFileKeepsRoster(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.MkdirAll(f.dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, "broken.sav"), []byte("Template: Beholder\n"), 0644))

	res := f.session.Execute("load broken")
	require.Len(t, res.Lines, 1)
	assert.Contains(t, res.Lines[0], "Cannot load file: broken")
	assert.Equal(t, 15, f.enemy(t, 1).HP)
	assert.NoFileExists(t, filepath.Join(f.dir, "_load.sav"))
}

func TestSaveDefaultName(t *testing.T) {
	f := newFixture(t)
	f.session.Execute("save")
	assert.FileExists(t, filepath.Join(f.dir, "_save.sav"))
}

func TestQuitAndBail(t *testing.T) {
	f := newFixture(t)
	res := f.session.Execute("bail")
	assert.True(t, res.Done)
	assert.Equal(t, []string{"Quitting without saving..."}, res.Lines)
	assert.NoDirExists(t, f.dir)

	res = f.session.Execute("quit")
	assert.True(t, res.Done)
	assert.Equal(t, "Quitting...", res.Lines[len(res.Lines)-1])
	assert.FileExists(t, filepath.Join(f.dir, "_quit.sav"))
}

func TestXPNewGameRestart(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"Encounter XP: 1,350"}, f.session.Execute("xp").Lines)

	f.session.Execute("dmg 1 10")
	f.session.Execute("hp 2 1")
	res := f.session.Execute("restart")
	assert.Equal(t, []string{"All enemies are back to full health!"}, res.Lines)
	assert.Equal(t, 15, f.enemy(t, 1).HP)
	assert.Equal(t, 30, f.enemy(t, 2).HP)
	assert.Equal(t, "looks eager to fight", f.enemy(t, 2).Status)

	f.session.Execute("newgame")
	assert.True(t, f.session.Empty())
	assert.Equal(t, []string{"Enemy #1 does not exist!"}, f.session.Execute("atk 1 10").Lines)
	assert.FileExists(t, filepath.Join(f.dir, "_auto.sav"))
}

func TestHelp(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{"Useful commands"}, f.session.Execute("help").Lines)
	assert.Equal(t, []string{"DMG help"}, f.session.Execute("help dmg").Lines)
}
