// Package forecast projects monthly cash flow under what-if scenarios.
package forecast

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashflow/internal/model"
)

// categoryWeight is the assumed share of total expenses in any one category.
var categoryWeight = decimal.RequireFromString("0.15")

var hundred = decimal.NewFromInt(100)

// InvalidHorizonError is returned for a projection horizon of zero or less.
type InvalidHorizonError struct {
	ScenarioID string
	Horizon    int
}

func (e *InvalidHorizonError) Error() string {
	if e.ScenarioID == "" {
		return fmt.Sprintf("invalid forecast horizon %d: must be at least 1 month", e.Horizon)
	}
	return fmt.Sprintf("scenario %s: invalid forecast horizon %d: must be at least 1 month", e.ScenarioID, e.Horizon)
}

// Project returns horizon+1 points per scenario, scenario by scenario in input
// order. Point 0 is the unadjusted baseline with a zero cumulative balance.
func Project(income, expenses decimal.Decimal, scenarios []model.Scenario, horizon int) ([]model.ForecastPoint, error) {
	if horizon <= 0 {
		id := ""
		if len(scenarios) > 0 {
			id = scenarios[0].ID
		}
		return nil, &InvalidHorizonError{ScenarioID: id, Horizon: horizon}
	}

	points := make([]model.ForecastPoint, 0, len(scenarios)*(horizon+1))
	for _, s := range scenarios {
		ps, err := ProjectScenario(income, expenses, s, horizon)
		if err != nil {
			return nil, err
		}
		points = append(points, ps...)
	}
	return points, nil
}

// ProjectScenario projects a single scenario. See Project.
func ProjectScenario(income, expenses decimal.Decimal, s model.Scenario, horizon int) ([]model.ForecastPoint, error) {
	if horizon <= 0 {
		return nil, &InvalidHorizonError{ScenarioID: s.ID, Horizon: horizon}
	}

	adjIncome, adjExpenses := Adjust(income, expenses, s.Changes)
	monthly := adjIncome.Sub(adjExpenses)

	points := make([]model.ForecastPoint, 0, horizon+1)
	points = append(points, model.ForecastPoint{
		PeriodIndex:       0,
		ScenarioID:        s.ID,
		NetFlow:           income.Sub(expenses),
		CumulativeBalance: decimal.Zero,
	})
	cumulative := decimal.Zero
	for month := 1; month <= horizon; month++ {
		cumulative = cumulative.Add(monthly)
		points = append(points, model.ForecastPoint{
			PeriodIndex:       month,
			ScenarioID:        s.ID,
			NetFlow:           monthly,
			CumulativeBalance: cumulative,
		})
	}
	return points, nil
}

// Adjust applies scenario changes to one month of baseline income and expenses.
//
// Income changes add changeAmount, or scale by changePercent when no amount
// is given. Other categories move expenses by changePercent of an assumed 15%
// category share, or by a flat changeAmount when no percent is given.
func Adjust(income, expenses decimal.Decimal, changes []model.ScenarioChange) (decimal.Decimal, decimal.Decimal) {
	categoryShare := expenses.Mul(categoryWeight)
	for _, c := range changes {
		if strings.EqualFold(c.Category, model.CategoryIncome) {
			switch {
			case c.ChangeAmount != nil:
				income = income.Add(*c.ChangeAmount)
			case c.ChangePercent != nil:
				income = income.Add(income.Mul(decimal.NewFromFloat(*c.ChangePercent)).Div(hundred))
			}
			continue
		}
		switch {
		case c.ChangePercent != nil:
			expenses = expenses.Add(categoryShare.Mul(decimal.NewFromFloat(*c.ChangePercent)).Div(hundred))
		case c.ChangeAmount != nil:
			expenses = expenses.Add(*c.ChangeAmount)
		}
	}
	return income, expenses
}
