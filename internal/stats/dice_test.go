package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRoller returns preset die faces (1-based) in order.
type scriptedRoller struct {
	faces []int
}

func (s *scriptedRoller) Intn(n int) int {
	if len(s.faces) == 0 {
		panic("scriptedRoller exhausted")
	}
	face := s.faces[0]
	s.faces = s.faces[1:]
	return face - 1
}

func TestD20(t *testing.T) {
	r := NewRoller(1)
	// Roll many times and verify results are in range
	for i := 0; i < 100; i++ {
		result := D20(r)
		require.GreaterOrEqual(t, result, 1)
		require.LessOrEqual(t, result, 20)
	}
}

func TestBetween(t *testing.T) {
	r := NewRoller(7)
	for i := 0; i < 200; i++ {
		result := Between(r, 2, 8)
		require.GreaterOrEqual(t, result, 2)
		require.LessOrEqual(t, result, 8)
	}

	assert.Equal(t, 4, Between(r, 4, 4))
	assert.Equal(t, 5, Between(r, 5, 1), "inverted bounds collapse to lo")
}

func TestRollD20Test(t *testing.T) {
	tests := []struct {
		name string
		adv  Advantage
		want int
	}{
		{"normal keeps first", Normal, 9},
		{"advantage keeps higher", WithAdvantage, 14},
		{"disadvantage keeps lower", WithDisadvantage, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RollD20Test(&scriptedRoller{faces: []int{9, 14}}, tt.adv)
			assert.Equal(t, [2]int{9, 14}, result.Rolls)
			assert.Equal(t, tt.want, result.Kept)
		})
	}
}

func TestParseAdvantage(t *testing.T) {
	assert.Equal(t, WithAdvantage, ParseAdvantage("+"))
	assert.Equal(t, WithDisadvantage, ParseAdvantage("-"))
	assert.Equal(t, Normal, ParseAdvantage(""))
	assert.Equal(t, "advantage", WithAdvantage.String())
}
