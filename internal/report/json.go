package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashflow/internal/analytics"
	"github.com/cleared-dev/cashflow/internal/forecast"
	"github.com/cleared-dev/cashflow/internal/model"
)

// AnalyticsJSON is the --json shape of an analyze run.
type AnalyticsJSON struct {
	Granularity string       `json:"granularity"`
	Periods     []PeriodJSON `json:"periods"`
	Trend       TrendJSON    `json:"trend"`
	Health      HealthJSON   `json:"health"`
	Insights    InsightsJSON `json:"insights"`
}

// PeriodJSON is one bucket.
type PeriodJSON struct {
	PeriodKey        string                     `json:"periodKey"`
	Income           decimal.Decimal            `json:"income"`
	Expenses         decimal.Decimal            `json:"expenses"`
	NetFlow          decimal.Decimal            `json:"netFlow"`
	CategoryTotals   map[string]decimal.Decimal `json:"categoryTotals"`
	TopCategories    []ShareJSON                `json:"topCategories"`
	SavingsRate      float64                    `json:"savingsRate"`
	TransactionCount int                        `json:"transactionCount"`
}

type ShareJSON struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  float64         `json:"percentage"`
}

type TrendJSON struct {
	Direction          string          `json:"direction"`
	PercentChange      float64         `json:"percentChange"`
	ProjectedNextValue decimal.Decimal `json:"projectedNextValue"`
}

type HealthJSON struct {
	Score           int            `json:"score"`
	Factors         map[string]int `json:"factors"`
	Recommendations []string       `json:"recommendations"`
}

type InsightsJSON struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	Alerts          []string `json:"alerts"`
}

// ForecastJSON is the --json shape of a forecast run.
type ForecastJSON struct {
	Horizon   int                   `json:"horizon"`
	Income    decimal.Decimal       `json:"baselineIncome"`
	Expenses  decimal.Decimal       `json:"baselineExpenses"`
	Points    []PointJSON           `json:"points"`
	Scenarios []ScenarioSummaryJSON `json:"scenarios"`
}

type PointJSON struct {
	PeriodIndex       int             `json:"periodIndex"`
	ScenarioID        string          `json:"scenarioId"`
	NetFlow           decimal.Decimal `json:"netFlow"`
	CumulativeBalance decimal.Decimal `json:"cumulativeBalance"`
}

type ScenarioSummaryJSON struct {
	ScenarioID          string          `json:"scenarioId"`
	Name                string          `json:"name"`
	TotalSaved          decimal.Decimal `json:"totalSaved"`
	MonthlyAverage      decimal.Decimal `json:"monthlyAverage"`
	EmergencyFundMonths float64         `json:"emergencyFundMonths"`
	ImpactPercent       float64         `json:"impactPercent"`
}

// NewAnalyticsJSON converts an analytics run and its insights.
func NewAnalyticsJSON(a model.Analytics, in analytics.Insights) AnalyticsJSON {
	out := AnalyticsJSON{
		Granularity: string(a.Granularity),
		Periods:     make([]PeriodJSON, 0, len(a.Periods)),
		Trend: TrendJSON{
			Direction:          string(a.Trend.Direction),
			PercentChange:      a.Trend.PercentChange,
			ProjectedNextValue: a.Trend.ProjectedNextValue,
		},
		Health: HealthJSON{
			Score:           a.Health.Score,
			Factors:         a.Health.Factors,
			Recommendations: nonNil(a.Health.Recommendations),
		},
		Insights: InsightsJSON{
			Summary:         in.Summary,
			Recommendations: nonNil(in.Recommendations),
			Alerts:          nonNil(in.Alerts),
		},
	}
	for _, p := range a.Periods {
		shares := make([]ShareJSON, 0, len(p.TopCategories))
		for _, s := range p.TopCategories {
			shares = append(shares, ShareJSON{Category: s.Category, Amount: s.Amount, Percent: s.Percent})
		}
		out.Periods = append(out.Periods, PeriodJSON{
			PeriodKey:        p.PeriodKey,
			Income:           p.Income,
			Expenses:         p.Expenses,
			NetFlow:          p.NetFlow,
			CategoryTotals:   p.CategoryTotals,
			TopCategories:    shares,
			SavingsRate:      p.SavingsRate,
			TransactionCount: p.TransactionCount,
		})
	}
	return out
}

// NewForecastJSON converts projected points and their summaries.
func NewForecastJSON(income, expenses decimal.Decimal, horizon int, points []model.ForecastPoint, summaries []forecast.ScenarioSummary) ForecastJSON {
	out := ForecastJSON{
		Horizon:   horizon,
		Income:    income,
		Expenses:  expenses,
		Points:    make([]PointJSON, 0, len(points)),
		Scenarios: make([]ScenarioSummaryJSON, 0, len(summaries)),
	}
	for _, p := range points {
		out.Points = append(out.Points, PointJSON{
			PeriodIndex:       p.PeriodIndex,
			ScenarioID:        p.ScenarioID,
			NetFlow:           p.NetFlow,
			CumulativeBalance: p.CumulativeBalance,
		})
	}
	for _, s := range summaries {
		out.Scenarios = append(out.Scenarios, ScenarioSummaryJSON{
			ScenarioID:          s.ScenarioID,
			Name:                s.Name,
			TotalSaved:          s.TotalSaved,
			MonthlyAverage:      s.MonthlyAverage,
			EmergencyFundMonths: s.EmergencyFundMonths,
			ImpactPercent:       s.ImpactPercent,
		})
	}
	return out
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
