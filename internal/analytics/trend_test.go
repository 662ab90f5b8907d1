package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/cashflow/internal/model"
)

func expensePeriods(values ...string) []model.PeriodAnalytics {
	out := make([]model.PeriodAnalytics, len(values))
	for i, v := range values {
		out[i] = model.PeriodAnalytics{Expenses: decimal.RequireFromString(v)}
	}
	return out
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name      string
		expenses  []string
		direction model.Direction
		percent   float64
		projected string
	}{
		{"none", nil, model.DirectionStable, 0, "0.00"},
		{"single", []string{"80"}, model.DirectionStable, 0, "80.00"},
		{"uses last three", []string{"100", "110", "120", "200"}, model.DirectionIncreasing, 81.818, "245.00"},
		{"decreasing floors at zero", []string{"200", "100"}, model.DirectionDecreasing, -50, "0.00"},
		{"under five percent is stable", []string{"100", "104"}, model.DirectionStable, 4, "108.00"},
		{"zero first value", []string{"0", "50"}, model.DirectionStable, 0, "100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trend(expensePeriods(tt.expenses...))
			assert.Equal(t, tt.direction, got.Direction)
			assert.InDelta(t, tt.percent, got.PercentChange, 0.001)
			assert.Equal(t, tt.projected, got.ProjectedNextValue.StringFixed(2))
		})
	}
}
