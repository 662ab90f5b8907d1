// Package ledger stores categorized transactions as monthly CSV files under
// <root>/ledger/<user>/<YYYY>/<MM>/transactions.csv.
package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/cashflow/internal/id"
	"github.com/cleared-dev/cashflow/internal/model"
)

const (
	ledgerDir  = "ledger"
	ledgerFile = "transactions.csv"
)

// DefaultUser owns the ledger when no user is configured.
const DefaultUser = "default"

var validUser = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Service reads and appends ledger records.
type Service struct {
	repoRoot   string
	categories CategoryChecker
}

// NewService creates a ledger Service.
func NewService(repoRoot string, categories CategoryChecker) *Service {
	return &Service{repoRoot: repoRoot, categories: categories}
}

// YearMonth identifies one ledger file.
type YearMonth struct{ Year, Month int }

// Append assigns IDs, validates each affected month together with its
// existing rows, and appends to the month files. Nothing is written if any
// month fails validation. Returns the new IDs in input order.
func (s *Service) Append(user string, txns []model.CategorizedTransaction, source string) ([]string, error) {
	if err := checkUser(user); err != nil {
		return nil, err
	}

	byMonth := make(map[YearMonth][]Record)
	var order []YearMonth
	ids := make([]string, len(txns))
	next := make(map[YearMonth]int)

	for i, txn := range txns {
		k := YearMonth{txn.Date.Year(), int(txn.Date.Month())}
		if _, ok := next[k]; !ok {
			seq, err := s.NextSeq(user, k.Year, k.Month)
			if err != nil {
				return nil, err
			}
			next[k] = seq
			order = append(order, k)
		}
		txnID := id.FormatTxnID(k.Year, k.Month, next[k])
		next[k]++
		ids[i] = txnID
		byMonth[k] = append(byMonth[k], Record{TxnID: txnID, CategorizedTransaction: txn, Source: source})
	}

	for _, k := range order {
		existing, err := s.ReadMonth(user, k.Year, k.Month)
		if err != nil {
			return nil, err
		}
		all := append(existing, byMonth[k]...)
		if verrs := ValidateRecords(all, s.categories, k.Year, k.Month); len(verrs) > 0 {
			msgs := make([]string, len(verrs))
			for i, ve := range verrs {
				msgs[i] = ve.Error()
			}
			return nil, fmt.Errorf("validation failed for %04d-%02d: %s", k.Year, k.Month, strings.Join(msgs, "; "))
		}
	}

	for _, k := range order {
		if err := s.appendMonth(user, k, byMonth[k]); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

func (s *Service) appendMonth(user string, k YearMonth, records []Record) error {
	path := s.monthPath(user, k.Year, k.Month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if err := WriteRecords(f, records); err != nil {
			return fmt.Errorf("writing records: %w", err)
		}
		return nil
	}
	if err := AppendRecords(f, records); err != nil {
		return fmt.Errorf("appending records: %w", err)
	}
	return nil
}

// ReadMonth reads all records for a user's year/month.
func (s *Service) ReadMonth(user string, year, month int) ([]Record, error) {
	if err := checkUser(user); err != nil {
		return nil, err
	}
	path := s.monthPath(user, year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return records, nil
}

// ReadRange returns a user's records dated within [from, to], oldest month
// first. A zero from or to leaves that side unbounded.
func (s *Service) ReadRange(user string, from, to time.Time) ([]Record, error) {
	months, err := s.Months(user)
	if err != nil {
		return nil, err
	}

	var out []Record
	for _, k := range months {
		first := time.Date(k.Year, time.Month(k.Month), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		if (!from.IsZero() && last.Before(from)) || (!to.IsZero() && first.After(to)) {
			continue
		}
		records, err := s.ReadMonth(user, k.Year, k.Month)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if !from.IsZero() && rec.Date.Before(from) {
				continue
			}
			if !to.IsZero() && rec.Date.After(to) {
				continue
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

// Months lists the months that have a ledger file for user, in calendar order.
func (s *Service) Months(user string) ([]YearMonth, error) {
	if err := checkUser(user); err != nil {
		return nil, err
	}
	userDir := filepath.Join(s.repoRoot, ledgerDir, user)
	years, err := os.ReadDir(userDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger dir: %w", err)
	}

	var months []YearMonth
	for _, y := range years {
		year, err := strconv.Atoi(y.Name())
		if err != nil || !y.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(userDir, y.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading ledger dir %s: %w", y.Name(), err)
		}
		for _, m := range entries {
			month, err := strconv.Atoi(m.Name())
			if err != nil || !m.IsDir() || month < 1 || month > 12 {
				continue
			}
			months = append(months, YearMonth{year, month})
		}
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year < months[j].Year
		}
		return months[i].Month < months[j].Month
	})
	return months, nil
}

// NextSeq returns the next available sequence number for a month.
func (s *Service) NextSeq(user string, year, month int) (int, error) {
	records, err := s.ReadMonth(user, year, month)
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, rec := range records {
		_, _, seq, err := id.ParseTxnID(rec.TxnID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

func (s *Service) monthPath(user string, year, month int) string {
	return filepath.Join(s.repoRoot, ledgerDir, user, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), ledgerFile)
}

func checkUser(user string) error {
	if !validUser.MatchString(user) || strings.Contains(user, "..") {
		return fmt.Errorf("invalid user name %q", user)
	}
	return nil
}

// Transactions strips ledger metadata from records.
func Transactions(records []Record) []model.CategorizedTransaction {
	out := make([]model.CategorizedTransaction, len(records))
	for i, rec := range records {
		out[i] = rec.CategorizedTransaction
	}
	return out
}

// Raw returns the uncategorized view of records, for duplicate detection.
func Raw(records []Record) []model.RawTransaction {
	out := make([]model.RawTransaction, len(records))
	for i, rec := range records {
		out[i] = rec.RawTransaction
	}
	return out
}
