// Package report renders analytics, forecasts and import results for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashflow/internal/analytics"
	"github.com/cleared-dev/cashflow/internal/forecast"
	"github.com/cleared-dev/cashflow/internal/importlog"
	"github.com/cleared-dev/cashflow/internal/model"
	"github.com/cleared-dev/cashflow/internal/pipeline"
)

// factorOrder fixes the display order of health factors.
var factorOrder = []string{
	model.FactorSavingsRate,
	model.FactorSpendingControl,
	model.FactorIncomeStability,
	model.FactorDebtManagement,
}

var factorLabels = map[string]string{
	model.FactorSavingsRate:     "Savings rate",
	model.FactorSpendingControl: "Spending control",
	model.FactorIncomeStability: "Income stability",
	model.FactorDebtManagement:  "Debt management",
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func pct(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64) + "%"
}

// Analytics writes the period table, trend, health breakdown and insights.
func Analytics(w io.Writer, a model.Analytics, in analytics.Insights) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Cash flow by %s", a.Granularity)) + "\n")
	if len(a.Periods) == 0 {
		b.WriteString(in.Summary + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	rows := make([][]string, 0, len(a.Periods))
	for _, p := range a.Periods {
		top := "-"
		if len(p.TopCategories) > 0 {
			top = fmt.Sprintf("%s (%s)", p.TopCategories[0].Category, pct(p.TopCategories[0].Percent))
		}
		rows = append(rows, []string{
			p.PeriodKey,
			money(p.Income),
			money(p.Expenses),
			money(p.NetFlow),
			pct(p.SavingsRate),
			strconv.Itoa(p.TransactionCount),
			top,
		})
	}
	b.WriteString(newTable(
		[]string{"Period", "Income", "Expenses", "Net", "Savings", "Txns", "Top category"},
		rows, 1, 2, 3, 4, 5,
	).String() + "\n\n")

	b.WriteString(labelStyle.Render("Trend: "))
	b.WriteString(fmt.Sprintf("%s (%s), projected next %s\n",
		a.Trend.Direction, pct(a.Trend.PercentChange), money(a.Trend.ProjectedNextValue)))

	b.WriteString(labelStyle.Render("Health: "))
	b.WriteString(scoreStyle(a.Health.Score).Render(fmt.Sprintf("%d/100", a.Health.Score)) + "\n")
	for _, f := range factorOrder {
		if s, ok := a.Health.Factors[f]; ok {
			b.WriteString(fmt.Sprintf("  %-18s %3d\n", factorLabels[f], s))
		}
	}

	b.WriteString("\n" + in.Summary + "\n")
	for _, r := range in.Recommendations {
		b.WriteString("  - " + r + "\n")
	}
	for _, al := range in.Alerts {
		b.WriteString(alertStyle.Render("! "+al) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Forecast writes the baseline and one row per scenario summary.
func Forecast(w io.Writer, income, expenses decimal.Decimal, horizon int, summaries []forecast.ScenarioSummary) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Forecast over %d months", horizon)) + "\n")
	b.WriteString(labelStyle.Render("Baseline: "))
	b.WriteString(fmt.Sprintf("income %s, expenses %s per month\n", money(income), money(expenses)))

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Name,
			money(s.TotalSaved),
			money(s.MonthlyAverage),
			strconv.FormatFloat(s.EmergencyFundMonths, 'f', 1, 64),
			pct(s.ImpactPercent),
		})
	}
	b.WriteString(newTable(
		[]string{"Scenario", "Total saved", "Monthly avg", "Fund months", "Impact"},
		rows, 1, 2, 3, 4,
	).String() + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Categorizations writes one row per description with its category, confidence and tags.
func Categorizations(w io.Writer, descriptions []string, results []model.Categorization) error {
	rows := make([][]string, 0, len(results))
	for i, c := range results {
		rows = append(rows, []string{
			descriptions[i],
			c.Category,
			strconv.FormatFloat(c.Confidence, 'f', 2, 64),
			strings.Join(c.Tags, ", "),
		})
	}
	_, err := io.WriteString(w, newTable(
		[]string{"Description", "Category", "Confidence", "Tags"},
		rows, 2,
	).String()+"\n")
	return err
}

// ImportRow is one file's outcome in an import run.
type ImportRow struct {
	Summary    pipeline.Summary
	Duplicates int
	Stored     int
	Err        error
}

// Imports writes the per-file results of an import run.
func Imports(w io.Writer, runID string, results []ImportRow) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Import "+runID) + "\n")
	if len(results) == 0 {
		b.WriteString("No statement files to import.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := goodStyle.Render("ok")
		if r.Err != nil {
			status = badStyle.Render(r.Err.Error())
		}
		span := "-"
		if r.Summary.Count > 0 {
			span = r.Summary.From.Format("2006-01-02") + " to " + r.Summary.To.Format("2006-01-02")
		}
		rows = append(rows, []string{
			r.Summary.File,
			r.Summary.Format,
			strconv.Itoa(r.Summary.Count),
			strconv.Itoa(r.Duplicates),
			strconv.Itoa(r.Stored),
			money(r.Summary.Income),
			money(r.Summary.Expenses),
			span,
			status,
		})
	}
	b.WriteString(newTable(
		[]string{"File", "Format", "Parsed", "Dupes", "Stored", "Income", "Expenses", "Dates", "Status"},
		rows, 2, 3, 4, 5, 6,
	).String() + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ImportTotals writes one line totalling a run's import log entries.
func ImportTotals(w io.Writer, entries []importlog.Entry) error {
	var parsed, dupes, stored, failed int
	for _, e := range entries {
		parsed += e.Parsed
		dupes += e.Duplicates
		stored += e.Stored
		if e.Error != "" {
			failed++
		}
	}
	line := fmt.Sprintf("%d files: %d parsed, %d duplicates, %d stored, %d failed",
		len(entries), parsed, dupes, stored, failed)
	_, err := io.WriteString(w, labelStyle.Render(line)+"\n")
	return err
}
