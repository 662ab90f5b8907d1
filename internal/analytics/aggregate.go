// Package analytics buckets categorized transactions into calendar periods
// and derives trend, health and insight summaries from them.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashflow/internal/model"
)

// maxTopCategories bounds PeriodAnalytics.TopCategories.
const maxTopCategories = 5

var hundred = decimal.NewFromInt(100)

// PeriodKey returns the bucket key for t: "2024-01", "2024-Q1" or "2024".
func PeriodKey(t time.Time, g model.Granularity) string {
	switch g {
	case model.GranularityQuarter:
		return fmt.Sprintf("%04d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	case model.GranularityYear:
		return fmt.Sprintf("%04d", t.Year())
	default:
		return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
	}
}

// Aggregate buckets txns by period and computes per-period totals, the recent
// expense trend and the health score. Empty buckets are never synthesized.
func Aggregate(txns []model.CategorizedTransaction, g model.Granularity) model.Analytics {
	if g == "" {
		g = model.GranularityMonth
	}

	grouped := make(map[string][]model.CategorizedTransaction)
	for _, txn := range txns {
		key := PeriodKey(txn.Date, g)
		grouped[key] = append(grouped[key], txn)
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	periods := make([]model.PeriodAnalytics, 0, len(keys))
	for _, k := range keys {
		periods = append(periods, summarizePeriod(k, grouped[k]))
	}

	return model.Analytics{
		Granularity: g,
		Periods:     periods,
		Trend:       Trend(periods),
		Health:      Health(periods),
	}
}

func summarizePeriod(key string, txns []model.CategorizedTransaction) model.PeriodAnalytics {
	p := model.PeriodAnalytics{
		PeriodKey:        key,
		Income:           decimal.Zero,
		Expenses:         decimal.Zero,
		CategoryTotals:   make(map[string]decimal.Decimal),
		TransactionCount: len(txns),
	}

	for _, txn := range txns {
		switch {
		case txn.IsIncome():
			p.Income = p.Income.Add(txn.Amount)
		case txn.IsExpense():
			spent := txn.Amount.Abs()
			p.Expenses = p.Expenses.Add(spent)
			category := strings.TrimSpace(txn.Category)
			if category == "" {
				category = model.CategoryUncategorized
			}
			p.CategoryTotals[category] = p.CategoryTotals[category].Add(spent)
		}
	}

	p.NetFlow = p.Income.Sub(p.Expenses)
	p.SavingsRate = percentOf(p.NetFlow, p.Income)
	p.TopCategories = topCategories(p.CategoryTotals, p.Expenses)
	return p
}

// topCategories sorts by amount descending, then name, and keeps the first five.
func topCategories(totals map[string]decimal.Decimal, expenses decimal.Decimal) []model.CategoryShare {
	shares := make([]model.CategoryShare, 0, len(totals))
	for category, amount := range totals {
		shares = append(shares, model.CategoryShare{
			Category: category,
			Amount:   amount,
			Percent:  percentOf(amount, expenses),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if c := shares[i].Amount.Cmp(shares[j].Amount); c != 0 {
			return c > 0
		}
		return shares[i].Category < shares[j].Category
	})
	if len(shares) > maxTopCategories {
		shares = shares[:maxTopCategories]
	}
	return shares
}

// percentOf returns part/whole*100, or 0 when whole is not positive.
func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(hundred).InexactFloat64()
}
