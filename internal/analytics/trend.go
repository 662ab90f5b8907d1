package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashflow/internal/model"
)

const (
	trendWindow = 3
	// stableThreshold is the relative change below which spending is "stable".
	stableThreshold = 0.05
)

// Trend compares expenses across the last three periods. The projection adds
// the average step change to the last value and never goes below zero.
func Trend(periods []model.PeriodAnalytics) model.TrendAnalysis {
	if len(periods) == 0 {
		return model.TrendAnalysis{Direction: model.DirectionStable, ProjectedNextValue: decimal.Zero}
	}

	recent := periods[max(0, len(periods)-trendWindow):]
	first := recent[0].Expenses
	last := recent[len(recent)-1].Expenses
	if len(recent) == 1 {
		return model.TrendAnalysis{Direction: model.DirectionStable, ProjectedNextValue: last}
	}

	change := last.Sub(first)
	rate := 0.0
	if !first.IsZero() {
		rate = change.Div(first).InexactFloat64()
	}

	direction := model.DirectionStable
	switch {
	case math.Abs(rate) < stableThreshold:
	case rate > 0:
		direction = model.DirectionIncreasing
	default:
		direction = model.DirectionDecreasing
	}

	step := change.Div(decimal.NewFromInt(int64(len(recent) - 1)))
	projected := decimal.Max(decimal.Zero, last.Add(step)).Round(2)

	return model.TrendAnalysis{
		Direction:          direction,
		PercentChange:      rate * 100,
		ProjectedNextValue: projected,
	}
}
