package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/cashflow/internal/analytics"
	"github.com/cleared-dev/cashflow/internal/forecast"
	"github.com/cleared-dev/cashflow/internal/importlog"
	"github.com/cleared-dev/cashflow/internal/model"
	"github.com/cleared-dev/cashflow/internal/pipeline"
)

func txn(date, desc, amount, category string) model.CategorizedTransaction {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return model.CategorizedTransaction{
		RawTransaction: model.RawTransaction{
			Date:        d,
			Description: desc,
			Amount:      decimal.RequireFromString(amount),
		},
		Category: category,
	}
}

func sampleAnalytics() model.Analytics {
	return analytics.Aggregate([]model.CategorizedTransaction{
		txn("2024-01-15", "Starbucks Coffee", "-5.50", "Food & Dining"),
		txn("2024-01-16", "Salary Deposit", "3500.00", "Income"),
		txn("2024-01-17", "Amazon Purchase", "-125.99", "Shopping"),
		txn("2024-02-02", "Rent", "-1200.00", "Housing"),
		txn("2024-02-16", "Salary Deposit", "3500.00", "Income"),
	}, model.GranularityMonth)
}

func TestAnalytics(t *testing.T) {
	a := sampleAnalytics()
	var buf bytes.Buffer
	require.NoError(t, Analytics(&buf, a, analytics.BuildInsights(a)))

	out := buf.String()
	assert.Contains(t, out, "Cash flow by month")
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "2024-02")
	assert.Contains(t, out, "3500.00")
	assert.Contains(t, out, "131.49")
	assert.Contains(t, out, "Housing (100.0%)")
	assert.Contains(t, out, "Savings rate")
	assert.Contains(t, out, "Your financial health score is")
}

func TestAnalytics_Empty(t *testing.T) {
	a := analytics.Aggregate(nil, model.GranularityQuarter)
	var buf bytes.Buffer
	require.NoError(t, Analytics(&buf, a, analytics.BuildInsights(a)))

	assert.Contains(t, buf.String(), "Cash flow by quarter")
	assert.Contains(t, buf.String(), analytics.NoDataSummary)
}

func TestForecast(t *testing.T) {
	income, expenses := decimal.RequireFromString("5000"), decimal.RequireFromString("3000")
	scenarios := forecast.DefaultScenarios()
	points, err := forecast.Project(income, expenses, scenarios, 12)
	require.NoError(t, err)
	summaries := forecast.Summarize(points, scenarios, 12, expenses)

	var buf bytes.Buffer
	require.NoError(t, Forecast(&buf, income, expenses, 12, summaries))

	out := buf.String()
	assert.Contains(t, out, "Forecast over 12 months")
	assert.Contains(t, out, "income 5000.00, expenses 3000.00")
	assert.Contains(t, out, "Current Trajectory")
	assert.Contains(t, out, "24000.00")
}

func TestCategorizations(t *testing.T) {
	var buf bytes.Buffer
	err := Categorizations(&buf, []string{"Starbucks Coffee"}, []model.Categorization{
		{Category: "Food & Dining", Confidence: 0.8, Tags: []string{"starbucks", "coffee"}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Starbucks Coffee")
	assert.Contains(t, out, "Food & Dining")
	assert.Contains(t, out, "0.80")
	assert.Contains(t, out, "starbucks, coffee")
}

func TestImports(t *testing.T) {
	var buf bytes.Buffer
	err := Imports(&buf, "run-1", []ImportRow{
		{
			Summary: pipeline.Summary{
				File: "jan.csv", Format: "tabular", Count: 3,
				Income:   decimal.RequireFromString("3500"),
				Expenses: decimal.RequireFromString("131.49"),
				From:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				To:       time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
			},
			Duplicates: 1,
			Stored:     2,
		},
		{Summary: pipeline.Summary{File: "bad.csv"}, Err: errors.New("format error")},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Import run-1")
	assert.Contains(t, out, "jan.csv")
	assert.Contains(t, out, "2024-01-15 to 2024-01-17")
	assert.Contains(t, out, "format error")
}

func TestImports_None(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Imports(&buf, "run-2", nil))
	assert.Contains(t, buf.String(), "No statement files to import.")
}

func TestWriteJSON_Analytics(t *testing.T) {
	a := sampleAnalytics()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewAnalyticsJSON(a, analytics.BuildInsights(a))))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "month", got["granularity"])

	periods := got["periods"].([]any)
	require.Len(t, periods, 2)
	first := periods[0].(map[string]any)
	assert.Equal(t, "2024-01", first["periodKey"])
	assert.Equal(t, "3500", first["income"])
	assert.EqualValues(t, 3, first["transactionCount"])

	insights := got["insights"].(map[string]any)
	assert.NotNil(t, insights["alerts"])
}

func TestWriteJSON_Forecast(t *testing.T) {
	income, expenses := decimal.RequireFromString("4000"), decimal.RequireFromString("3000")
	scenarios := forecast.DefaultScenarios()[:1]
	points, err := forecast.Project(income, expenses, scenarios, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	doc := NewForecastJSON(income, expenses, 2, points, forecast.Summarize(points, scenarios, 2, expenses))
	require.NoError(t, WriteJSON(&buf, doc))

	var got ForecastJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2, got.Horizon)
	require.Len(t, got.Points, 3)
	assert.True(t, got.Points[2].CumulativeBalance.Equal(decimal.RequireFromString("2000")))
	require.Len(t, got.Scenarios, 1)
	assert.Equal(t, "baseline", got.Scenarios[0].ScenarioID)
}

func TestImportTotals(t *testing.T) {
	var buf bytes.Buffer
	err := ImportTotals(&buf, []importlog.Entry{
		{File: "jan.csv", Parsed: 5, Duplicates: 1, Stored: 4},
		{File: "feb.txt", Parsed: 3, Stored: 3},
		{File: "bad.csv", Error: "format error in bad.csv: missing required columns: amount"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "3 files: 8 parsed, 1 duplicates, 7 stored, 1 failed")
}
