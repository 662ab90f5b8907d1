package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashflow/internal/analytics"
	"github.com/cleared-dev/cashflow/internal/model"
)

// DefaultBaselineMonths is the trailing window used by Baseline.
const DefaultBaselineMonths = 3

// ScenarioSummary holds the comparison metrics for one projected scenario.
type ScenarioSummary struct {
	ScenarioID          string
	Name                string
	TotalSaved          decimal.Decimal // cumulative balance at the horizon
	MonthlyAverage      decimal.Decimal
	EmergencyFundMonths float64 // months of baseline expenses covered by TotalSaved
	ImpactPercent       float64 // relative to the first no-change scenario
}

// Summarize computes per-scenario metrics from Project output. Scenarios
// without points are skipped.
func Summarize(points []model.ForecastPoint, scenarios []model.Scenario, horizon int, expenses decimal.Decimal) []ScenarioSummary {
	final := make(map[string]decimal.Decimal, len(scenarios))
	for _, p := range points {
		if p.PeriodIndex == horizon {
			final[p.ScenarioID] = p.CumulativeBalance
		}
	}

	var anchor *decimal.Decimal
	for _, s := range scenarios {
		if total, ok := final[s.ID]; ok && s.IsBaseline() {
			anchor = &total
			break
		}
	}

	out := make([]ScenarioSummary, 0, len(scenarios))
	for _, s := range scenarios {
		total, ok := final[s.ID]
		if !ok {
			continue
		}
		sum := ScenarioSummary{
			ScenarioID:     s.ID,
			Name:           s.Name,
			TotalSaved:     total,
			MonthlyAverage: decimal.Zero,
		}
		if horizon > 0 {
			sum.MonthlyAverage = total.Div(decimal.NewFromInt(int64(horizon))).Round(2)
		}
		if expenses.IsPositive() {
			sum.EmergencyFundMonths = total.Div(expenses).InexactFloat64()
		}
		if anchor != nil && !anchor.IsZero() {
			sum.ImpactPercent = total.Sub(*anchor).Div(anchor.Abs()).Mul(hundred).InexactFloat64()
		}
		out = append(out, sum)
	}
	return out
}

// Baseline averages income and expenses over the last months periods
// (DefaultBaselineMonths when months <= 0). Both are zero with no periods.
func Baseline(periods []model.PeriodAnalytics, months int) (income, expenses decimal.Decimal) {
	if months <= 0 {
		months = DefaultBaselineMonths
	}
	if len(periods) == 0 {
		return decimal.Zero, decimal.Zero
	}

	recent := periods[max(0, len(periods)-months):]
	income, expenses = decimal.Zero, decimal.Zero
	for _, p := range recent {
		income = income.Add(p.Income)
		expenses = expenses.Add(p.Expenses)
	}
	n := decimal.NewFromInt(int64(len(recent)))
	return income.Div(n).Round(2), expenses.Div(n).Round(2)
}

// BaselineFromTransactions aggregates txns by month and returns Baseline.
func BaselineFromTransactions(txns []model.CategorizedTransaction, months int) (income, expenses decimal.Decimal) {
	a := analytics.Aggregate(txns, model.GranularityMonth)
	return Baseline(a.Periods, months)
}
