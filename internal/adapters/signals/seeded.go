// Package signals provides signal provider adapters.
// SeededProvider implements ports.SignalProvider with synthetic values.
// The values carry no market meaning; they stand in for a real analytics feed
// and are only guaranteed to be repeatable for a given seed and fund order.
package signals

import (
	"context"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

// DefaultSeed is the seed used when none is configured.
const DefaultSeed int64 = 42

// Range is a closed-open interval [Min, Max).
type Range struct {
	Min, Max float64
}

// Ranges holds the uniform range for every signal field.
type Ranges struct {
	OneDay, OneWeek, OneMonth, SixMonth, OneYear, ThreeYear, Volatility Range
}

// DefaultRanges are the signal ranges, in percent.
var DefaultRanges = Ranges{
	OneDay:     Range{-1, 1},
	OneWeek:    Range{-3, 3},
	OneMonth:   Range{-8, 8},
	SixMonth:   Range{-15, 20},
	OneYear:    Range{-25, 30},
	ThreeYear:  Range{-40, 60},
	Volatility: Range{1, 5},
}

// SeededProvider draws uniform signals from a generator seeded on every call.
type SeededProvider struct {
	seed   int64
	ranges Ranges
}

// NewSeededProvider creates a provider with DefaultRanges.
func NewSeededProvider(seed int64) *SeededProvider {
	return &SeededProvider{seed: seed, ranges: DefaultRanges}
}

// Signals draws one column at a time (all 1D values, then all 1W values, ...)
// so that adding a field never shifts the earlier columns.
func (p *SeededProvider) Signals(ctx context.Context, funds []entities.FundRecord) ([]entities.Signals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(p.seed))
	out := make([]entities.Signals, len(funds))

	columns := []struct {
		r   Range
		set func(s *entities.Signals, v float64)
	}{
		{p.ranges.OneDay, func(s *entities.Signals, v float64) { s.OneDay = v }},
		{p.ranges.OneWeek, func(s *entities.Signals, v float64) { s.OneWeek = v }},
		{p.ranges.OneMonth, func(s *entities.Signals, v float64) { s.OneMonth = v }},
		{p.ranges.SixMonth, func(s *entities.Signals, v float64) { s.SixMonth = v }},
		{p.ranges.OneYear, func(s *entities.Signals, v float64) { s.OneYear = v }},
		{p.ranges.ThreeYear, func(s *entities.Signals, v float64) { s.ThreeYear = v }},
		{p.ranges.Volatility, func(s *entities.Signals, v float64) { s.Volatility = v }},
	}

	for _, col := range columns {
		for i := range out {
			v := col.r.Min + rng.Float64()*(col.r.Max-col.r.Min)
			col.set(&out[i], round2(v))
		}
	}

	return out, nil
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
