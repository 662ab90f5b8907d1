package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Granularity selects the calendar bucket used for aggregation.
type Granularity string

const (
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// ParseGranularity converts a flag or config value to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case GranularityMonth, GranularityQuarter, GranularityYear:
		return g, nil
	case "":
		return GranularityMonth, nil
	default:
		return "", fmt.Errorf("unknown granularity %q (want month, quarter or year)", s)
	}
}

// CategoryShare is one entry of a period's top spending list.
type CategoryShare struct {
	Category string
	Amount   decimal.Decimal
	Percent  float64 // share of the period's total expenses
}

// PeriodAnalytics summarizes one calendar bucket.
type PeriodAnalytics struct {
	PeriodKey        string // "2024-01", "2024-Q1" or "2024"
	Income           decimal.Decimal
	Expenses         decimal.Decimal // absolute value of outflows
	NetFlow          decimal.Decimal
	CategoryTotals   map[string]decimal.Decimal // expense side only
	TopCategories    []CategoryShare
	SavingsRate      float64 // percent; 0 when income is 0
	TransactionCount int
}

// Direction is the sign of a spending trend.
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
	DirectionStable     Direction = "stable"
)

// TrendAnalysis describes recent expense movement.
type TrendAnalysis struct {
	Direction          Direction
	PercentChange      float64
	ProjectedNextValue decimal.Decimal
}

// Health factor names.
const (
	FactorSavingsRate     = "savingsRate"
	FactorSpendingControl = "spendingControl"
	FactorIncomeStability = "incomeStability"
	FactorDebtManagement  = "debtManagement"
)

// FinancialHealth is the composite health score.
type FinancialHealth struct {
	Score           int
	Factors         map[string]int
	Recommendations []string
}

// Analytics is the full output of an aggregation run.
type Analytics struct {
	Granularity Granularity
	Periods     []PeriodAnalytics
	Trend       TrendAnalysis
	Health      FinancialHealth
}
