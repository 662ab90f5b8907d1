package forecast

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/cashflow/internal/model"
)

// PercentChange builds a percentage change for category.
func PercentChange(category string, percent float64) model.ScenarioChange {
	return model.ScenarioChange{Category: category, ChangePercent: &percent}
}

// AmountChange builds a flat monthly change for category.
func AmountChange(category string, amount decimal.Decimal) model.ScenarioChange {
	return model.ScenarioChange{Category: category, ChangeAmount: &amount}
}

// DefaultScenarios returns the built-in comparison set. The first entry is
// the no-change baseline.
func DefaultScenarios() []model.Scenario {
	return []model.Scenario{
		{
			ID:          "baseline",
			Name:        "Current Trajectory",
			Description: "Continue with current spending patterns",
		},
		{
			ID:          "optimized",
			Name:        "Optimized",
			Description: "Trim the categories where spending usually runs high",
			Changes: []model.ScenarioChange{
				PercentChange("Food & Dining", -40),
				PercentChange("Entertainment", -25),
				PercentChange("Shopping", -20),
				PercentChange("Subscriptions", -30),
			},
		},
		{
			ID:          "aggressive-saving",
			Name:        "Aggressive Saving",
			Description: "Maximum savings through disciplined spending",
			Changes: []model.ScenarioChange{
				PercentChange("Food & Dining", -50),
				PercentChange("Entertainment", -60),
				PercentChange("Shopping", -40),
				PercentChange("Travel", -70),
			},
		},
		{
			ID:          "income-boost",
			Name:        "Income Boost",
			Description: "Increase earnings through additional income streams",
			Changes: []model.ScenarioChange{
				AmountChange(model.CategoryIncome, decimal.NewFromInt(1500)),
			},
		},
	}
}

type scenarioFile struct {
	Scenarios []model.Scenario `yaml:"scenarios"`
}

// LoadScenarios reads a YAML scenario file. A missing file yields
// DefaultScenarios. Scenarios without an id get a generated one.
func LoadScenarios(path string) ([]model.Scenario, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultScenarios(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading scenarios: %w", err)
	}

	var sf scenarioFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing scenarios: %w", err)
	}
	if err := normalizeScenarios(sf.Scenarios); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return sf.Scenarios, nil
}

// SaveScenarios writes scenarios as YAML, creating parent directories.
func SaveScenarios(path string, scenarios []model.Scenario) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating scenarios dir: %w", err)
	}
	data, err := yaml.Marshal(scenarioFile{Scenarios: scenarios})
	if err != nil {
		return fmt.Errorf("marshaling scenarios: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing scenarios: %w", err)
	}
	return nil
}

func normalizeScenarios(scenarios []model.Scenario) error {
	seen := make(map[string]bool, len(scenarios))
	for i := range scenarios {
		s := &scenarios[i]
		s.ID = strings.TrimSpace(s.ID)
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate scenario id %q", s.ID)
		}
		seen[s.ID] = true
		if strings.TrimSpace(s.Name) == "" {
			s.Name = s.ID
		}
		for j, c := range s.Changes {
			if strings.TrimSpace(c.Category) == "" {
				return fmt.Errorf("scenario %s: change %d has no category", s.ID, j+1)
			}
			if c.ChangePercent == nil && c.ChangeAmount == nil {
				return fmt.Errorf("scenario %s: change %d (%s) sets neither change_percent nor change_amount", s.ID, j+1, c.Category)
			}
		}
	}
	return nil
}
