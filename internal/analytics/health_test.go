package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cashflow/internal/model"
)

func period(income, expenses string, top ...model.CategoryShare) model.PeriodAnalytics {
	in := decimal.RequireFromString(income)
	ex := decimal.RequireFromString(expenses)
	net := in.Sub(ex)
	return model.PeriodAnalytics{
		Income:        in,
		Expenses:      ex,
		NetFlow:       net,
		SavingsRate:   percentOf(net, in),
		TopCategories: top,
	}
}

func share(category string, percent float64) model.CategoryShare {
	return model.CategoryShare{Category: category, Percent: percent}
}

func TestHealth_NoData(t *testing.T) {
	h := Health(nil)
	assert.Equal(t, 50, h.Score)
	assert.Equal(t, map[string]int{
		model.FactorSavingsRate:     50,
		model.FactorSpendingControl: 50,
		model.FactorIncomeStability: 50,
		model.FactorDebtManagement:  50,
	}, h.Factors)
	assert.Equal(t, []string{NotEnoughData}, h.Recommendations)
}

func TestHealth_SinglePeriodHasNoVariance(t *testing.T) {
	h := Health([]model.PeriodAnalytics{period("1000", "800")})
	assert.Equal(t, 40, h.Factors[model.FactorSavingsRate])
	assert.Equal(t, 100, h.Factors[model.FactorSpendingControl])
	assert.Equal(t, 100, h.Factors[model.FactorIncomeStability])
	assert.Equal(t, 100, h.Factors[model.FactorDebtManagement])
	assert.Equal(t, 85, h.Score)
	assert.Equal(t, []string{"Increase savings rate by reducing discretionary spending"}, h.Recommendations)
}

func TestHealth_Factors(t *testing.T) {
	periods := []model.PeriodAnalytics{
		period("1000", "900"),
		period("1000", "1200", share("Housing", 50), share("Food & Dining", 35), share("Other", 15)),
	}

	h := Health(periods)
	assert.Equal(t, 0, h.Factors[model.FactorSavingsRate], "negative average savings clamps to 0")
	assert.Equal(t, 99, h.Factors[model.FactorSpendingControl])
	assert.Equal(t, 100, h.Factors[model.FactorIncomeStability])
	assert.Equal(t, 50, h.Factors[model.FactorDebtManagement])
	assert.Equal(t, 62, h.Score)

	assert.Equal(t, []string{
		"Increase savings rate by reducing discretionary spending",
		"Consider reducing Housing spending (currently 50.0% of expenses)",
		"Consider reducing Food & Dining spending (currently 35.0% of expenses)",
	}, h.Recommendations)
}

func TestHealth_RecommendationsCappedBySeverity(t *testing.T) {
	periods := []model.PeriodAnalytics{
		period("100", "300", share("Housing", 65), share("Food & Dining", 31)),
	}

	h := Health(periods)
	assert.Equal(t, 0, h.Factors[model.FactorDebtManagement])
	require.Len(t, h.Recommendations, 3)
	assert.Equal(t, "Increase savings rate by reducing discretionary spending", h.Recommendations[0])
	assert.Equal(t, "Focus on reducing expenses to avoid negative cash flow", h.Recommendations[1])
	assert.Contains(t, h.Recommendations[2], "Housing")
}

func TestHealth_UsesLastSixPeriods(t *testing.T) {
	periods := []model.PeriodAnalytics{
		period("100", "500"),
		period("100", "500"),
	}
	for range 6 {
		periods = append(periods, period("1000", "500"))
	}

	h := Health(periods)
	assert.Equal(t, 100, h.Factors[model.FactorDebtManagement])
	assert.Equal(t, 100, h.Factors[model.FactorSpendingControl])
	assert.Equal(t, 100, h.Score)
	assert.Empty(t, h.Recommendations)
}

func TestHealth_ScoreInRange(t *testing.T) {
	periods := []model.PeriodAnalytics{
		period("0", "5000"),
		period("10000", "1"),
		period("0", "9000"),
	}

	h := Health(periods)
	assert.GreaterOrEqual(t, h.Score, 0)
	assert.LessOrEqual(t, h.Score, 100)
	for name, f := range h.Factors {
		assert.GreaterOrEqual(t, f, 0, name)
		assert.LessOrEqual(t, f, 100, name)
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	assert.Zero(t, coefficientOfVariation(nil))
	assert.Zero(t, coefficientOfVariation([]float64{42}))
	assert.Zero(t, coefficientOfVariation([]float64{0, 0}))
	assert.InDelta(t, 0.5, coefficientOfVariation([]float64{100, 300}), 1e-9)
}
