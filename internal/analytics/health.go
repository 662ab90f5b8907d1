package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/cleared-dev/cashflow/internal/model"
)

const (
	healthWindow       = 6
	neutralScore       = 50
	maxRecommendations = 3
	// categoryShareLimit is the percent of a period's expenses that triggers
	// a reduction recommendation for that category.
	categoryShareLimit = 30.0
)

// NotEnoughData is the only recommendation when there are no periods.
const NotEnoughData = "Not enough data for comprehensive analysis"

var factorAdvice = map[string]string{
	model.FactorSavingsRate:     "Increase savings rate by reducing discretionary spending",
	model.FactorSpendingControl: "Stabilize monthly expenses to improve budget predictability",
	model.FactorIncomeStability: "Consider diversifying income sources for stability",
	model.FactorDebtManagement:  "Focus on reducing expenses to avoid negative cash flow",
}

var factorOrder = []string{
	model.FactorSavingsRate,
	model.FactorSpendingControl,
	model.FactorIncomeStability,
	model.FactorDebtManagement,
}

// Health scores the last six periods on four 0-100 factors and averages them.
// With no periods every factor is a neutral 50.
func Health(periods []model.PeriodAnalytics) model.FinancialHealth {
	if len(periods) == 0 {
		factors := make(map[string]int, len(factorOrder))
		for _, f := range factorOrder {
			factors[f] = neutralScore
		}
		return model.FinancialHealth{
			Score:           neutralScore,
			Factors:         factors,
			Recommendations: []string{NotEnoughData},
		}
	}

	recent := periods[max(0, len(periods)-healthWindow):]
	n := float64(len(recent))

	var savingsSum float64
	expenses := make([]float64, len(recent))
	income := make([]float64, len(recent))
	negative := 0
	for i, p := range recent {
		savingsSum += p.SavingsRate
		expenses[i] = p.Expenses.InexactFloat64()
		income[i] = p.Income.InexactFloat64()
		if p.NetFlow.IsNegative() {
			negative++
		}
	}

	raw := map[string]float64{
		model.FactorSavingsRate:     clamp(savingsSum/n*2, 0, 100),
		model.FactorSpendingControl: clamp(100-coefficientOfVariation(expenses)*10, 0, 100),
		model.FactorIncomeStability: clamp(100-coefficientOfVariation(income)*5, 0, 100),
		model.FactorDebtManagement:  clamp(100-float64(negative)/n*100, 0, 100),
	}

	factors := make(map[string]int, len(raw))
	var total float64
	for _, f := range factorOrder {
		factors[f] = int(math.Round(raw[f]))
		total += raw[f]
	}

	return model.FinancialHealth{
		Score:           int(clamp(math.Round(total/float64(len(factorOrder))), 0, 100)),
		Factors:         factors,
		Recommendations: recommend(raw, recent[len(recent)-1]),
	}
}

type recommendation struct {
	text     string
	severity float64
}

// recommend collects threshold breaches, most severe first, capped at three.
func recommend(factors map[string]float64, last model.PeriodAnalytics) []string {
	var recs []recommendation
	for _, f := range factorOrder {
		if score := factors[f]; score < neutralScore {
			recs = append(recs, recommendation{
				text:     factorAdvice[f],
				severity: (neutralScore - score) / neutralScore,
			})
		}
	}
	for _, share := range last.TopCategories {
		if share.Percent > categoryShareLimit {
			recs = append(recs, recommendation{
				text: fmt.Sprintf("Consider reducing %s spending (currently %.1f%% of expenses)",
					share.Category, share.Percent),
				severity: (share.Percent - categoryShareLimit) / (100 - categoryShareLimit),
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].severity > recs[j].severity })
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.text
	}
	return out
}

// coefficientOfVariation is the population stddev over the mean, or 0 with
// fewer than two values or a zero mean.
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq/float64(len(values))) / mean
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
