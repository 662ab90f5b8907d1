// Package pipeline runs one statement file through parsing and categorization.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashflow/internal/categorize"
	"github.com/cleared-dev/cashflow/internal/importer"
	"github.com/cleared-dev/cashflow/internal/logger"
	"github.com/cleared-dev/cashflow/internal/model"
)

// Summary describes one processed file.
type Summary struct {
	File     string
	Format   string
	Count    int
	Income   decimal.Decimal
	Expenses decimal.Decimal // positive magnitude
	From     time.Time       // zero when Count is 0
	To       time.Time
}

// Result is the output of Process.
type Result struct {
	Transactions []model.CategorizedTransaction // parsed rows minus duplicates
	Duplicates   int
	Summary      Summary // covers every parsed row
}

// ExistingFunc returns stored transactions dated within [from, to].
type ExistingFunc func(from, to time.Time) ([]model.RawTransaction, error)

// dedupeSlack widens the lookup window so fuzzy matches near the edges are seen.
const dedupeSlack = 3 * 24 * time.Hour

// Processor ties a parser registry to a categorization engine.
type Processor struct {
	Registry *importer.Registry
	Engine   *categorize.Engine
	Workers  int
	// Existing, when set, is consulted to drop rows that are already stored.
	Existing ExistingFunc
}

// New creates a Processor. Nil arguments fall back to the built-in parsers and rules.
func New(reg *importer.Registry, eng *categorize.Engine, workers int) *Processor {
	if reg == nil {
		reg = importer.DefaultRegistry()
	}
	if eng == nil {
		eng = categorize.Default()
	}
	return &Processor{Registry: reg, Engine: eng, Workers: workers}
}

// Process parses the named file from r, drops already stored rows, categorizes
// the rest and summarizes the file. Transaction order follows the input.
func (p *Processor) Process(ctx context.Context, name string, r io.Reader) (*Result, error) {
	log := logger.FromContext(ctx)

	raw, parser, err := p.Registry.ParseFile(name, r)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", name).Str("format", parser.Format()).Int("parsed", len(raw)).Msg("parsed statement")

	sum := Summarize(raw)
	sum.File = name
	sum.Format = parser.Format()

	fresh, dupes := raw, 0
	if p.Existing != nil && len(raw) > 0 {
		stored, err := p.Existing(sum.From.Add(-dedupeSlack), sum.To.Add(dedupeSlack))
		if err != nil {
			return nil, fmt.Errorf("loading stored transactions for %s: %w", name, err)
		}
		fresh, dupes = importer.Deduplicate(raw, stored)
		if dupes > 0 {
			log.Debug().Str("file", name).Int("duplicates", dupes).Msg("dropped duplicate transactions")
		}
	}

	txns, err := p.Engine.CategorizeAll(ctx, fresh, p.Workers)
	if err != nil {
		return nil, fmt.Errorf("processing %s: %w", name, err)
	}

	log.Info().
		Str("file", name).
		Int("transactions", sum.Count).
		Int("duplicates", dupes).
		Str("income", sum.Income.StringFixed(2)).
		Str("expenses", sum.Expenses.StringFixed(2)).
		Msg("processed statement")

	return &Result{Transactions: txns, Duplicates: dupes, Summary: sum}, nil
}

// Summarize totals income and expenses and finds the date range.
func Summarize(txns []model.RawTransaction) Summary {
	s := Summary{
		Count:    len(txns),
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}
	for i, t := range txns {
		switch {
		case t.IsIncome():
			s.Income = s.Income.Add(t.Amount)
		case t.IsExpense():
			s.Expenses = s.Expenses.Add(t.Amount.Abs())
		}
		if i == 0 || t.Date.Before(s.From) {
			s.From = t.Date
		}
		if i == 0 || t.Date.After(s.To) {
			s.To = t.Date
		}
	}
	return s
}
