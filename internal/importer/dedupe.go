package importer

import (
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/cleared-dev/cashflow/internal/model"
)

const (
	// fuzzyMaxDays bounds the date drift between two postings of one transaction.
	fuzzyMaxDays = 3
	// fuzzyMaxRatio is the largest edit distance / length still treated as the same payee.
	fuzzyMaxRatio = 0.4
)

// Deduplicate drops incoming transactions that already exist in stored.
// Repeats within incoming are kept: two identical coffees on one day are real.
// Input order is preserved. It returns the kept rows and the number dropped.
func Deduplicate(incoming, stored []model.RawTransaction) ([]model.RawTransaction, int) {
	kept := make([]model.RawTransaction, 0, len(incoming))
	dropped := 0
	for _, txn := range incoming {
		if IsDuplicate(txn, stored) {
			dropped++
			continue
		}
		kept = append(kept, txn)
	}
	return kept, dropped
}

// IsDuplicate reports whether txn matches any of seen exactly or fuzzily.
func IsDuplicate(txn model.RawTransaction, seen []model.RawTransaction) bool {
	for _, s := range seen {
		if matchExact(txn, s) || matchFuzzy(txn, s) {
			return true
		}
	}
	return false
}

func matchExact(a, b model.RawTransaction) bool {
	return a.Date.Equal(b.Date) &&
		a.Amount.Equal(b.Amount) &&
		normalizeDesc(a.Description) == normalizeDesc(b.Description)
}

func matchFuzzy(a, b model.RawTransaction) bool {
	if !a.Amount.Equal(b.Amount) {
		return false
	}
	if daysApart(a.Date, b.Date) > fuzzyMaxDays {
		return false
	}
	da, db := normalizeDesc(a.Description), normalizeDesc(b.Description)
	maxLen := max(len(da), len(db))
	if maxLen == 0 {
		return true
	}
	dist := levenshtein.ComputeDistance(da, db)
	return float64(dist)/float64(maxLen) < fuzzyMaxRatio
}

func normalizeDesc(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

func daysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
