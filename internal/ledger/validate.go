package ledger

import (
	"fmt"

	"github.com/cleared-dev/cashflow/internal/id"
	"github.com/cleared-dev/cashflow/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	TxnID       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.TxnID, e.Description)
}

// CategoryChecker tests whether a category belongs to the taxonomy.
type CategoryChecker interface {
	Known(category string) bool
}

// ValidateRecords enforces 6 invariants on a month's ledger records.
func ValidateRecords(records []Record, categories CategoryChecker, year, month int) []ValidationError {
	var errs []ValidationError

	for _, rec := range records {
		// Invariant 1: Confidence within [0, 1].
		if rec.Confidence < 0 || rec.Confidence > 1 {
			errs = append(errs, ValidationError{
				Invariant:   1,
				TxnID:       rec.TxnID,
				Description: fmt.Sprintf("confidence %g outside [0, 1]", rec.Confidence),
			})
		}

		// Invariant 2: Category from the taxonomy.
		if !categories.Known(rec.Category) {
			errs = append(errs, ValidationError{
				Invariant:   2,
				TxnID:       rec.TxnID,
				Description: fmt.Sprintf("unknown category %q", rec.Category),
			})
		}

		// Invariant 3: Date within month.
		if rec.Date.Year() != year || int(rec.Date.Month()) != month {
			errs = append(errs, ValidationError{
				Invariant:   3,
				TxnID:       rec.TxnID,
				Description: fmt.Sprintf("date %s not in %04d-%02d", rec.Date.Format(dateFormat), year, month),
			})
		}

		// Invariant 4: Bounded tag set.
		if len(rec.Tags) > model.MaxTags {
			errs = append(errs, ValidationError{
				Invariant:   4,
				TxnID:       rec.TxnID,
				Description: fmt.Sprintf("%d tags, at most %d allowed", len(rec.Tags), model.MaxTags),
			})
		}

		// Invariant 5: Non-empty description.
		if rec.Description == "" {
			errs = append(errs, ValidationError{
				Invariant:   5,
				TxnID:       rec.TxnID,
				Description: "empty description",
			})
		}
	}

	// Invariant 6: Unique sequential IDs in this month, contiguous 1..N.
	seqSeen := make(map[int]bool)
	for _, rec := range records {
		y, m, seq, err := id.ParseTxnID(rec.TxnID)
		if err != nil {
			errs = append(errs, ValidationError{
				Invariant:   6,
				TxnID:       rec.TxnID,
				Description: fmt.Sprintf("invalid transaction ID: %v", err),
			})
			continue
		}
		if y != year || m != month {
			errs = append(errs, ValidationError{
				Invariant:   6,
				TxnID:       rec.TxnID,
				Description: fmt.Sprintf("ID belongs to %04d-%02d", y, m),
			})
			continue
		}
		if seqSeen[seq] {
			errs = append(errs, ValidationError{
				Invariant:   6,
				TxnID:       rec.TxnID,
				Description: fmt.Sprintf("duplicate sequence %d", seq),
			})
			continue
		}
		seqSeen[seq] = true
	}
	for i := 1; i <= len(seqSeen); i++ {
		if !seqSeen[i] {
			errs = append(errs, ValidationError{
				Invariant:   6,
				TxnID:       fmt.Sprintf("seq %d", i),
				Description: fmt.Sprintf("missing sequence %d in 1..%d", i, len(seqSeen)),
			})
		}
	}

	return errs
}
