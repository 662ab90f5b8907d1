package model

import "github.com/shopspring/decimal"

// ScenarioChange adjusts one category of the baseline.
type ScenarioChange struct {
	Category      string           `yaml:"category"`
	ChangePercent *float64         `yaml:"change_percent,omitempty"`
	ChangeAmount  *decimal.Decimal `yaml:"change_amount,omitempty"`
}

// Scenario is a named set of hypothetical changes. No changes = baseline.
type Scenario struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description,omitempty"`
	Changes     []ScenarioChange `yaml:"changes"`
}

// IsBaseline reports whether the scenario leaves the baseline untouched.
func (s Scenario) IsBaseline() bool {
	return len(s.Changes) == 0
}

// ForecastPoint is one projected month for one scenario.
type ForecastPoint struct {
	PeriodIndex       int
	ScenarioID        string
	NetFlow           decimal.Decimal
	CumulativeBalance decimal.Decimal
}
