package analytics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cleared-dev/cashflow/internal/model"
)

// lowSavingsRate is the savings percent below which an alert is raised.
const lowSavingsRate = 10.0

// Alert messages.
const (
	AlertLowSavings      = "Low savings rate detected"
	AlertNegativeCash    = "Negative cash flow this period"
	AlertHealthAttention = "Financial health needs attention"
)

// NoDataSummary is the summary when there are no periods.
const NoDataSummary = "No transaction data available for analysis."

// Insights is the human-readable view of an Analytics result.
type Insights struct {
	Summary         string
	Recommendations []string
	Alerts          []string
}

// BuildInsights derives the rule-based summary and alerts. It always
// returns a complete result.
func BuildInsights(a model.Analytics) Insights {
	in := Insights{
		Recommendations: append([]string(nil), a.Health.Recommendations...),
		Alerts:          []string{},
	}
	if len(a.Periods) == 0 {
		in.Summary = NoDataSummary
		return in
	}

	last := a.Periods[len(a.Periods)-1]
	in.Summary = fmt.Sprintf(
		"Your financial health score is %d/100. Last period you had $%s in income and $%s in expenses. Your spending is %s.",
		a.Health.Score, last.Income.StringFixed(2), last.Expenses.StringFixed(2), trendPhrase(a.Trend))

	if last.SavingsRate < lowSavingsRate {
		in.Alerts = append(in.Alerts, AlertLowSavings)
	}
	if last.NetFlow.IsNegative() {
		in.Alerts = append(in.Alerts, AlertNegativeCash)
	}
	if a.Health.Score < neutralScore {
		in.Alerts = append(in.Alerts, AlertHealthAttention)
	}
	return in
}

func trendPhrase(t model.TrendAnalysis) string {
	switch t.Direction {
	case model.DirectionIncreasing:
		return fmt.Sprintf("increasing by %.1f%%", math.Abs(t.PercentChange))
	case model.DirectionDecreasing:
		return fmt.Sprintf("decreasing by %.1f%%", math.Abs(t.PercentChange))
	default:
		return "remaining stable"
	}
}

// Enricher rewrites the summary and recommendations, for example with a
// language model. Alerts and scores are never taken from it.
type Enricher interface {
	Enrich(ctx context.Context, a model.Analytics, base Insights) (Insights, error)
}

// ErrEmptyEnrichment is returned when an enricher produced no summary.
var ErrEmptyEnrichment = errors.New("enricher returned an empty summary")

// Enrich returns the rule-based insights, rewritten by e when it succeeds.
// The returned Insights are always usable; a non-nil error only reports why
// enrichment was skipped.
func Enrich(ctx context.Context, a model.Analytics, e Enricher) (Insights, error) {
	base := BuildInsights(a)
	if e == nil {
		return base, nil
	}

	got, err := e.Enrich(ctx, a, base)
	if err != nil {
		return base, fmt.Errorf("enriching insights: %w", err)
	}
	if strings.TrimSpace(got.Summary) == "" {
		return base, ErrEmptyEnrichment
	}

	out := base
	out.Summary = got.Summary
	if len(got.Recommendations) > 0 {
		out.Recommendations = append([]string(nil), got.Recommendations[:min(len(got.Recommendations), maxRecommendations)]...)
	}
	return out, nil
}
