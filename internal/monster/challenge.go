package monster

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ChallengeRating is a monster's difficulty rating. Fractional ratings
// (1/8, 1/4, 1/2) are stored as their decimal value.
type ChallengeRating float64

// crToXP maps every challenge rating to the XP it is worth.
var crToXP = map[ChallengeRating]int{
	0:     10,
	0.125: 25,
	0.25:  50,
	0.5:   100,
	1:     200,
	2:     450,
	3:     700,
	4:     1100,
	5:     1800,
	6:     2300,
	7:     2900,
	8:     3900,
	9:     5000,
	10:    5900,
	11:    7200,
	12:    8400,
	13:    10000,
	14:    11500,
	15:    13300,
	16:    15000,
	17:    18000,
	18:    20000,
	19:    22000,
	20:    25000,
	21:    33000,
	22:    41000,
	23:    50000,
	24:    62000,
	25:    75000,
	26:    90000,
	27:    105000,
	28:    120000,
	29:    135000,
	30:    155000,
}

// ParseChallengeRating accepts "1/4", "0.25", "2" and similar forms.
func ParseChallengeRating(s string) (ChallengeRating, error) {
	s = strings.TrimSpace(s)
	var value float64
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.Atoi(strings.TrimSpace(num))
		d, err2 := strconv.Atoi(strings.TrimSpace(den))
		if err1 != nil || err2 != nil || d == 0 {
			return 0, fmt.Errorf("invalid challenge rating %q", s)
		}
		value = float64(n) / float64(d)
	} else {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid challenge rating %q", s)
		}
		value = f
	}

	cr := ChallengeRating(value)
	if _, ok := crToXP[cr]; !ok {
		return 0, fmt.Errorf("unsupported challenge rating %q", s)
	}
	return cr, nil
}

// XP returns the experience value of the rating.
func (c ChallengeRating) XP() int {
	return crToXP[c]
}

// String renders fractional ratings as fractions.
func (c ChallengeRating) String() string {
	switch c {
	case 0.125:
		return "1/8"
	case 0.25:
		return "1/4"
	case 0.5:
		return "1/2"
	}
	return strconv.FormatFloat(float64(c), 'f', -1, 64)
}

// UnmarshalYAML lets data files write ratings as either numbers or fractions.
func (c *ChallengeRating) UnmarshalYAML(value *yaml.Node) error {
	cr, err := ParseChallengeRating(value.Value)
	if err != nil {
		return err
	}
	*c = cr
	return nil
}
