package text

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStatusYAML(t *testing.T) {
	content := `
tiers:
  - floor: 0.2
    messages:
      - "is a bit roughed up"
  - floor: 0.6
    messages:
      - "looks eager to fight"
      - "beams at _hisher foes"
  - floor: 0
    messages:
      - "is near death"
`
	path := filepath.Join(t.TempDir(), "status.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := LoadStatus(path)
	require.NoError(t, err)

	tiers := table.Tiers()
	require.Len(t, tiers, 3)
	assert.Equal(t, []float64{0.6, 0.2, 0}, []float64{tiers[0].Floor, tiers[1].Floor, tiers[2].Floor},
		"tiers are ordered by descending floor")
}

func TestParseLegacyStatus(t *testing.T) {
	content := `looks eager to fight
looks pretty healthy
0.6
is a bit roughed up
0.2

is near death
`
	table, err := ParseLegacyStatus(strings.NewReader(content))
	require.NoError(t, err)

	tiers := table.Tiers()
	require.Len(t, tiers, 3)
	assert.Equal(t, 0.6, tiers[0].Floor)
	assert.Equal(t, []string{"looks eager to fight", "looks pretty healthy"}, tiers[0].Messages)
	assert.Equal(t, 0.2, tiers[1].Floor)
	assert.Equal(t, 0.0, tiers[2].Floor, "trailing block gets floor 0")
	assert.Equal(t, []string{"is near death"}, tiers[2].Messages)
}

func TestStatusMessage(t *testing.T) {
	table, err := NewStatusTable([]Tier{
		{Floor: 0.6, Messages: []string{"healthy"}},
		{Floor: 0.2, Messages: []string{"hurt"}},
		{Floor: 0, Messages: []string{"dying"}},
	})
	require.NoError(t, err)
	r := rand.New(rand.NewSource(1))

	tests := []struct {
		fraction float64
		want     string
		ok       bool
	}{
		{1.0, "healthy", true},
		{0.61, "healthy", true},
		{0.6, "hurt", true},
		{0.05, "dying", true},
		{0, "", false},
		{-0.5, "", false},
	}
	for _, tt := range tests {
		msg, ok := table.Message(tt.fraction, r)
		assert.Equal(t, tt.ok, ok, "fraction %v", tt.fraction)
		assert.Equal(t, tt.want, msg, "fraction %v", tt.fraction)
	}
}

func TestNewStatusTableErrors(t *testing.T) {
	_, err := NewStatusTable(nil)
	assert.Error(t, err)

	_, err = NewStatusTable([]Tier{{Floor: 0.5}})
	assert.ErrorContains(t, err, "no messages")
}

func TestLoadStatusMissingFile(t *testing.T) {
	_, err := LoadStatus(filepath.Join(t.TempDir(), "status.yaml"))
	assert.Error(t, err)
}
