package monster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `Name,CR,AC,HP,Speeds,STR,DEX,CON,INT,WIS,CHA,Modifiers,Forest,Hill,Underdark
Orc,1/2,13,15,30 ft.,16,12,16,7,11,10,,1,1,
Orc War Chief,4,16,93,30 ft.,18,12,18,11,11,16,,,1,
Goblin,1/4,15,7,30 ft.,8,14,10,10,8,8,,1,,
Fire Elemental,5,13,102,50 ft.,10,17,16,6,10,7,"fire+immune, poison+immune, bludgeoning(nonmagical)+resist, cold+vuln",,,
Rat,0,10,1,20 ft.,2,11,9,2,10,4,,,,1
`

func TestReadCSV(t *testing.T) {
	templates, err := ReadCSV(strings.NewReader(testCSV))
	require.NoError(t, err)
	require.Len(t, templates, 5)

	orc := templates[0]
	assert.Equal(t, "Orc", orc.Name)
	assert.Equal(t, ChallengeRating(0.5), orc.Rating)
	assert.Equal(t, 100, orc.XP())
	assert.Equal(t, 13, orc.AC)
	assert.Equal(t, 15, orc.HP)
	assert.Equal(t, "30 ft.", orc.Speed)
	assert.Equal(t, 16, orc.Abilities.Strength)
	assert.Equal(t, 10, orc.Abilities.Charisma)
	assert.Equal(t, map[string]bool{"forest": true, "hill": true}, orc.Environments)

	elemental := templates[3]
	assert.Equal(t, Immune, elemental.Modifiers["fire"])
	assert.Equal(t, Resistant, elemental.Modifiers["bludgeoning(nonmagical)"])
	assert.Equal(t, Vulnerable, elemental.Modifiers["cold"])

	assert.Equal(t, ChallengeRating(0), templates[4].Rating)
	assert.Equal(t, 10, templates[4].XP())
}

func TestReadCSVErrors(t *testing.T) {
	tests := map[string]string{
		"missing column": "Name,CR,AC\nOrc,1,13\n",
		"bad cr":         "Name,CR,AC,HP,Speeds,STR,DEX,CON,INT,WIS,CHA\nOrc,1/3,13,15,30 ft.,1,1,1,1,1,1\n",
		"bad number":     "Name,CR,AC,HP,Speeds,STR,DEX,CON,INT,WIS,CHA\nOrc,1,x,15,30 ft.,1,1,1,1,1,1\n",
		"zero hp":        "Name,CR,AC,HP,Speeds,STR,DEX,CON,INT,WIS,CHA\nOrc,1,13,0,30 ft.,1,1,1,1,1,1\n",
		"bad modifier":   "Name,CR,AC,HP,Speeds,STR,DEX,CON,INT,WIS,CHA,Modifiers\nOrc,1,13,15,30 ft.,1,1,1,1,1,1,fire\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestReadYAML(t *testing.T) {
	content := `
monsters:
  - name: Salamander
    cr: 5
    ac: 15
    hp: 90
    speed: 30 ft.
    abilities: {str: 18, dex: 14, con: 15, int: 11, wis: 10, cha: 12}
    modifiers:
      fire: immune
      cold: vulnerable
      "Bludgeoning (nonmagical)": resist
    environments: [Underdark]
  - name: Kobold
    cr: "1/8"
    ac: 12
    hp: 5
    speed: 30 ft.
    abilities: {str: 7, dex: 15, con: 9, int: 8, wis: 7, cha: 8}
`
	templates, err := ReadYAML(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, templates, 2)

	s := templates[0]
	assert.Equal(t, ChallengeRating(5), s.Rating)
	assert.Equal(t, 18, s.Abilities.Strength)
	assert.Equal(t, Immune, s.Modifiers["fire"])
	assert.Equal(t, Resistant, s.Modifiers["bludgeoning(nonmagical)"])
	assert.True(t, s.Environments["underdark"])

	assert.Equal(t, ChallengeRating(0.125), templates[1].Rating)
	assert.Equal(t, 25, templates[1].XP())
}

func TestLoadCatalogByExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "srd.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testCSV), 0644))

	catalog, err := LoadCatalog(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 5, catalog.Len())

	_, err = LoadCatalog(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestCatalogFind(t *testing.T) {
	templates, err := ReadCSV(strings.NewReader(testCSV))
	require.NoError(t, err)
	catalog := NewCatalog(templates)

	// Exact match wins even though "Orc" prefixes "Orc War Chief".
	found, matches := catalog.Find("orc")
	require.NotNil(t, found)
	assert.Equal(t, "Orc", found.Name)
	assert.Nil(t, matches)

	found, _ = catalog.Find("gob")
	require.NotNil(t, found)
	assert.Equal(t, "Goblin", found.Name)

	found, _ = catalog.Find("orc w")
	require.NotNil(t, found)
	assert.Equal(t, "Orc War Chief", found.Name)

	found, matches = catalog.Find("o")
	assert.Nil(t, found)
	assert.Len(t, matches, 2)

	found, matches = catalog.Find("dragon")
	assert.Nil(t, found)
	assert.Empty(t, matches)
}

func TestCatalogMustFind(t *testing.T) {
	templates, err := ReadCSV(strings.NewReader(testCSV))
	require.NoError(t, err)
	catalog := NewCatalog(templates)

	orc, err := catalog.MustFind("Orc")
	require.NoError(t, err)
	assert.Equal(t, "Orc", orc.Name)

	_, err = catalog.MustFind("dragon")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = catalog.MustFind("o")
	assert.ErrorIs(t, err, ErrAmbiguous)
}

func TestNewCatalogDropsDuplicates(t *testing.T) {
	a := &Template{Name: "Orc", HP: 15}
	b := &Template{Name: "orc", HP: 20}
	catalog := NewCatalog([]*Template{a, b})

	assert.Equal(t, 1, catalog.Len())
	got, ok := catalog.Get("ORC")
	require.True(t, ok)
	assert.Same(t, a, got)
}
