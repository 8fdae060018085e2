// Package balance provides Monte Carlo simulation tools for checking how the
// encounter builder behaves across parties and difficulty tiers.
package balance

import (
	"context"
	"sort"

	"github.com/lawnchairsociety/encounter/internal/encounter"
)

// TemplateCount is how often a template appeared across simulated encounters.
type TemplateCount struct {
	Name  string
	Picks int
}

// SimulationResult holds aggregated results from many generated encounters
type SimulationResult struct {
	Difficulty    encounter.Difficulty
	Simulations   int
	Satisfied     int // landed inside the difficulty band
	SatisfiedRate float64
	Floor         int
	Ceiling       float64
	AvgXP         float64
	MinXP         float64
	MaxXP         float64
	AvgMonsters   float64
	MinMonsters   int
	MaxMonsters   int
	AvgGroups     float64
	TopTemplates  []TemplateCount // most picked first
}

// RunSimulation builds iterations encounters for one party and difficulty
// and aggregates the outcomes.
func RunSimulation(ctx context.Context, b *encounter.Builder, party encounter.Party, d encounter.Difficulty, iterations int) (SimulationResult, error) {
	result := SimulationResult{
		Difficulty:  d,
		Simulations: iterations,
		MinMonsters: 999999,
	}
	if iterations <= 0 {
		result.MinMonsters = 0
		return result, nil
	}

	totalXP := 0.0
	totalMonsters := 0
	totalGroups := 0
	picks := make(map[string]int)

	for i := 0; i < iterations; i++ {
		res, err := b.Build(ctx, party, d)
		if err != nil {
			return result, err
		}
		result.Floor, result.Ceiling = res.Floor, res.Ceiling

		if res.Satisfied() {
			result.Satisfied++
		}

		xp := res.Tally.Adjusted
		totalXP += xp
		if i == 0 || xp < result.MinXP {
			result.MinXP = xp
		}
		if xp > result.MaxXP {
			result.MaxXP = xp
		}

		size := res.Size()
		totalMonsters += size
		totalGroups += len(res.Groups)
		if size < result.MinMonsters {
			result.MinMonsters = size
		}
		if size > result.MaxMonsters {
			result.MaxMonsters = size
		}

		for _, g := range res.Groups {
			picks[g.Template.Name]++
		}
	}

	n := float64(iterations)
	result.SatisfiedRate = float64(result.Satisfied) / n * 100
	result.AvgXP = totalXP / n
	result.AvgMonsters = float64(totalMonsters) / n
	result.AvgGroups = float64(totalGroups) / n
	result.TopTemplates = rankPicks(picks)

	return result, nil
}

// RunSweep runs RunSimulation for every difficulty tier.
func RunSweep(ctx context.Context, b *encounter.Builder, party encounter.Party, iterations int) ([]SimulationResult, error) {
	var results []SimulationResult
	for _, d := range encounter.Difficulties() {
		res, err := RunSimulation(ctx, b, party, d, iterations)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func rankPicks(picks map[string]int) []TemplateCount {
	ranked := make([]TemplateCount, 0, len(picks))
	for name, n := range picks {
		ranked = append(ranked, TemplateCount{Name: name, Picks: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Picks != ranked[j].Picks {
			return ranked[i].Picks > ranked[j].Picks
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}
