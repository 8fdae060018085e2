package encounter

import (
	"context"
	"fmt"

	"github.com/lawnchairsociety/encounter/internal/logger"
	"github.com/lawnchairsociety/encounter/internal/monster"
	"github.com/lawnchairsociety/encounter/internal/stats"
)

// Base monster batches are always between these sizes.
const (
	minBaseBatch = 2
	maxBaseBatch = 8
)

// slackStep is the share of the ceiling the candidate minimum is relaxed by
// each time no template qualifies.
const slackStep = 0.1

// Options tune a Builder.
type Options struct {
	// MaxPerGroup caps the copies in one randomly sized batch.
	MaxPerGroup int
	// UseZero admits CR 0 templates from the start.
	UseZero bool
	// Base, when set, is always the first batch.
	Base *monster.Template
	// Environments restricts candidates to templates sharing one of these tags.
	Environments []string
	// InitialFloor and NextFloor are the share of the remaining budget the
	// first pick and every later pick must contribute.
	InitialFloor float64
	NextFloor    float64
}

// Result is a generated encounter.
type Result struct {
	Groups      []Group // in pick order
	Floor       int
	Ceiling     float64
	Tally       Tally
	Diagnostics []string
}

// Satisfied reports whether the adjusted XP landed in (Floor, Ceiling].
func (r *Result) Satisfied() bool {
	return float64(r.Floor) < r.Tally.Adjusted && r.Tally.Adjusted <= r.Ceiling
}

// XP is the adjusted XP truncated to a whole number.
func (r *Result) XP() int {
	return int(r.Tally.Adjusted)
}

// Size returns the total number of monsters.
func (r *Result) Size() int {
	n := 0
	for _, g := range r.Groups {
		n += g.Count
	}
	return n
}

func (r *Result) note(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Diagnostics = append(r.Diagnostics, msg)
	logger.Info("Encounter builder", "note", msg)
}

// Builder assembles random encounters from a catalog.
type Builder struct {
	catalog *monster.Catalog
	table   *Thresholds
	rand    stats.Roller
	opts    Options
}

// NewBuilder creates a Builder. A nil table means DefaultThresholds.
func NewBuilder(catalog *monster.Catalog, table *Thresholds, r stats.Roller, opts Options) *Builder {
	if table == nil {
		table = DefaultThresholds()
	}
	if opts.MaxPerGroup < 1 {
		opts.MaxPerGroup = 1
	}
	return &Builder{catalog: catalog, table: table, rand: r, opts: opts}
}

// Thresholds returns the table the builder targets.
func (b *Builder) Thresholds() *Thresholds {
	return b.table
}

// Build picks batches of monsters until the adjusted XP lands in the
// difficulty's band. Unsatisfiable inputs end with a diagnostic rather than
// an error; only cancellation returns one.
func (b *Builder) Build(ctx context.Context, party Party, d Difficulty) (*Result, error) {
	floor, ceiling := party.Target(b.table, d)
	res := &Result{Floor: floor, Ceiling: ceiling}

	pool := b.catalog.Templates()
	useZero := b.opts.UseZero
	fraction := b.opts.InitialFloor
	slack := 0.0

	logger.Debug("Building encounter",
		"party", party.Levels(),
		"difficulty", d.String(),
		"floor", floor,
		"ceiling", ceiling,
		"pool", len(pool))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res.Tally = AdjustedXP(party, b.table, res.Groups)
		if res.Satisfied() {
			break
		}

		var winner *monster.Template
		var amount int

		if len(res.Groups) == 0 && b.opts.Base != nil {
			winner = b.opts.Base
			amount = stats.Between(b.rand, minBaseBatch, maxBaseBatch)
			if float64(winner.XP()) > ceiling {
				res.note("WARNING: %s too difficult for this group", winner.Name)
			}
		} else {
			minimum := (ceiling-res.Tally.Adjusted)*fraction - slack
			candidates := b.candidates(pool, party, res.Groups, res.Tally.Adjusted, ceiling, minimum, useZero)
			if len(candidates) == 0 {
				if minimum > 0 {
					slack += ceiling * slackStep
					logger.Debug("Relaxing candidate minimum", "minimum", minimum, "slack", slack)
					continue
				}
				if !useZero {
					useZero = true
					res.note("Adding 0 CR monsters to pool")
					continue
				}
				res.note("No more candidates - stopping at %.0f XP", res.Tally.Adjusted)
				break
			}
			winner = candidates[b.rand.Intn(len(candidates))]
			amount = stats.Between(b.rand, 1, b.opts.MaxPerGroup)
		}

		pool = without(pool, winner)
		res.Groups = append(res.Groups, Group{Template: winner})
		group := &res.Groups[len(res.Groups)-1]
		for amount > 0 {
			group.Count++
			amount--
			if AdjustedXP(party, b.table, res.Groups, winner).Adjusted > ceiling {
				break
			}
		}

		logger.Debug("Picked monsters", "name", winner.Name, "count", group.Count)
		slack = 0
		fraction = b.opts.NextFloor
	}

	logger.Info("Encounter built",
		"difficulty", d.String(),
		"groups", len(res.Groups),
		"monsters", res.Size(),
		"xp", res.Tally.Adjusted,
		"satisfied", res.Satisfied())
	return res, nil
}

// candidates filters the pool against the remaining budget.
func (b *Builder) candidates(pool []*monster.Template, party Party, groups []Group, current, ceiling, minimum float64, useZero bool) []*monster.Template {
	average := party.Average()
	var out []*monster.Template
	for _, tmpl := range pool {
		if float64(tmpl.Rating) > average {
			continue
		}
		if tmpl.Rating == 0 && !useZero {
			continue
		}
		if !tmpl.HasEnvironment(b.opts.Environments) {
			continue
		}
		with := AdjustedXP(party, b.table, groups, tmpl).Adjusted
		if with > ceiling || with-current < minimum {
			continue
		}
		out = append(out, tmpl)
	}
	return out
}

func without(pool []*monster.Template, t *monster.Template) []*monster.Template {
	out := pool[:0:0]
	for _, p := range pool {
		if p != t {
			out = append(out, p)
		}
	}
	return out
}
