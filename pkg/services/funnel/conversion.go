package funnel

import (
	"github.com/de-tools/umami-atlas/pkg/models/domain"
	"github.com/de-tools/umami-atlas/pkg/models/store"
)

// Conversion aggregates the computed steps of one funnel execution.
type Conversion struct {
	Steps         []domain.FunnelStep
	StartVisitors int
	FinalVisitors int
	Rate          *float64
}

// ComputeConversion derives per-step and overall rates from raw step rows.
// A rate is nil whenever its denominator is zero; quotients are reported
// as-is even when inconsistent upstream counts push them above 1.
func ComputeConversion(rows []store.FunnelRow) Conversion {
	steps := make([]domain.FunnelStep, 0, len(rows))
	prev := 0
	for i, row := range rows {
		step := domain.FunnelStep{
			Index:    i + 1,
			Type:     row.Type,
			Value:    row.Value,
			Visitors: row.Visitors,
			Dropoff:  row.Dropoff,
		}
		if i > 0 && prev != 0 {
			rate := float64(row.Visitors) / float64(prev)
			step.RateFromPrevious = &rate
		}
		steps = append(steps, step)
		prev = row.Visitors
	}

	conv := Conversion{Steps: steps}
	if len(steps) == 0 {
		return conv
	}

	conv.StartVisitors = steps[0].Visitors
	conv.FinalVisitors = steps[len(steps)-1].Visitors
	if conv.StartVisitors != 0 {
		rate := float64(conv.FinalVisitors) / float64(conv.StartVisitors)
		conv.Rate = &rate
	}
	return conv
}
