package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction is one parsed statement row, before categorization.
type RawTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = outflow, positive = inflow
	Account     string          // empty when the source has no account column
}

// IsIncome reports whether the transaction is an inflow.
func (t RawTransaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense reports whether the transaction is an outflow.
func (t RawTransaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// Categorization is the result of classifying a description.
type Categorization struct {
	Category   string
	Confidence float64 // in [0, 1]
	Tags       []string
}

// CategorizedTransaction is a RawTransaction with its assigned category.
type CategorizedTransaction struct {
	RawTransaction
	Category   string
	Confidence float64
	Tags       []string
}

// Categorize attaches a categorization result to a raw transaction.
func Categorize(raw RawTransaction, c Categorization) CategorizedTransaction {
	tags := make([]string, len(c.Tags))
	copy(tags, c.Tags)
	return CategorizedTransaction{
		RawTransaction: raw,
		Category:       c.Category,
		Confidence:     c.Confidence,
		Tags:           tags,
	}
}

// Well-known category names outside the rule table.
const (
	CategoryOther         = "Other"
	CategoryUncategorized = "Uncategorized"
	CategoryIncome        = "Income"
)

// MaxTags bounds the tag set of a categorized transaction.
const MaxTags = 5
