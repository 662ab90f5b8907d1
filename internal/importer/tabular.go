package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashflow/internal/model"
)

// Header synonyms per semantic column, in match priority order.
var (
	dateHeaders    = []string{"date", "transaction date", "posted date"}
	descHeaders    = []string{"description", "desc", "merchant", "payee"}
	amountHeaders  = []string{"amount", "debit", "credit", "value"}
	accountHeaders = []string{"account", "account number", "card"}
)

var lineSplit = regexp.MustCompile(`\r?\n`)

var errNoSplitAmount = errors.New("no debit or credit value")

// candidateDelimiters are considered when sniffing the header line.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// TabularParser parses delimited statement exports with heterogeneous headers.
type TabularParser struct{}

// Format returns the parser name.
func (p *TabularParser) Format() string { return "tabular" }

// Extensions returns the file extensions this parser handles.
func (p *TabularParser) Extensions() []string { return []string{".csv", ".tsv"} }

// columns holds resolved header indexes; -1 means absent.
type columns struct {
	date, desc, amount, account int
	// debit/credit are used only when no single amount column exists.
	debit, credit int
}

func (c columns) maxRequired() int {
	m := max(c.date, c.desc)
	if c.amount >= 0 {
		return max(m, c.amount)
	}
	return max(m, c.debit, c.credit)
}

// Parse reads every row it can. Rows with a bad date, non-numeric amount or
// too few fields are dropped; only a missing header or data fails the file.
func (p *TabularParser) Parse(r io.Reader) ([]model.RawTransaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading tabular input: %w", err)
	}

	var lines []string
	for _, l := range lineSplit.Split(string(data), -1) {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return nil, &FormatError{Reason: "file must contain a header and at least one data row"}
	}

	header := strings.TrimPrefix(lines[0], "\ufeff")
	delim := sniffDelimiter(header)
	headerFields, err := splitLine(header, delim)
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("unreadable header: %v", err)}
	}
	cols, err := resolveColumns(headerFields)
	if err != nil {
		return nil, err
	}

	var txns []model.RawTransaction
	for _, line := range lines[1:] {
		fields, err := splitLine(line, delim)
		if err != nil {
			continue
		}
		txn, ok := parseTabularRow(fields, cols)
		if !ok {
			continue
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseTabularRow(fields []string, cols columns) (model.RawTransaction, bool) {
	if len(fields) <= cols.maxRequired() {
		return model.RawTransaction{}, false
	}

	date, err := parseTabularDate(fields[cols.date])
	if err != nil {
		return model.RawTransaction{}, false
	}

	desc := strings.TrimSpace(fields[cols.desc])
	if desc == "" {
		return model.RawTransaction{}, false
	}

	var amount decimal.Decimal
	if cols.amount >= 0 {
		amount, err = ParseAmount(fields[cols.amount])
		if err != nil {
			return model.RawTransaction{}, false
		}
	} else {
		amount, err = splitAmount(fields[cols.debit], fields[cols.credit])
		if err != nil {
			return model.RawTransaction{}, false
		}
	}

	txn := model.RawTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
	}
	if cols.account >= 0 && cols.account < len(fields) {
		txn.Account = strings.TrimSpace(fields[cols.account])
	}
	return txn, true
}

// splitAmount combines separate debit/credit columns: credit - |debit|.
func splitAmount(debitRaw, creditRaw string) (decimal.Decimal, error) {
	debit, debitErr := ParseAmount(debitRaw)
	credit, creditErr := ParseAmount(creditRaw)
	switch {
	case debitErr != nil && creditErr != nil:
		return decimal.Zero, errNoSplitAmount
	case debitErr != nil:
		return credit.Abs(), nil
	case creditErr != nil:
		return debit.Abs().Neg(), nil
	default:
		return credit.Abs().Sub(debit.Abs()), nil
	}
}

func resolveColumns(header []string) (columns, error) {
	norm := make([]string, len(header))
	for i, h := range header {
		norm[i] = strings.ToLower(strings.TrimSpace(h))
	}

	cols := columns{
		date:    findColumn(norm, dateHeaders),
		desc:    findColumn(norm, descHeaders),
		amount:  findExact(norm, "amount", "value"),
		account: findColumn(norm, accountHeaders),
		debit:   findColumn(norm, []string{"debit"}),
		credit:  findColumn(norm, []string{"credit"}),
	}
	splitMode := cols.amount < 0 && cols.debit >= 0 && cols.credit >= 0 && cols.debit != cols.credit
	// A lone debit or credit column is the amount column; its values keep their printed sign.
	if cols.amount < 0 && !splitMode {
		cols.amount = findColumn(norm, amountHeaders)
	}
	// Avoid "account" matching the description or date column by substring.
	if cols.account == cols.desc || cols.account == cols.date {
		cols.account = -1
	}

	var missing []string
	if cols.date < 0 {
		missing = append(missing, "date")
	}
	if cols.desc < 0 {
		missing = append(missing, "description")
	}
	if cols.amount < 0 && !splitMode {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return columns{}, &FormatError{Reason: "missing required columns: " + strings.Join(missing, ", ")}
	}
	return cols, nil
}

func findExact(header []string, names ...string) int {
	for _, name := range names {
		for i, h := range header {
			if h == name {
				return i
			}
		}
	}
	return -1
}

// findColumn returns the first header matching a synonym, trying exact
// matches for every synonym before falling back to substring matches.
func findColumn(header []string, synonyms []string) int {
	for _, syn := range synonyms {
		for i, h := range header {
			if h == syn {
				return i
			}
		}
	}
	for _, syn := range synonyms {
		for i, h := range header {
			if strings.Contains(h, syn) {
				return i
			}
		}
	}
	return -1
}

// splitLine splits one line on delim, honoring quoted fields and "" escapes.
func splitLine(line string, delim rune) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	rec, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("splitting line: %w", err)
	}
	return rec, nil
}

// sniffDelimiter picks the candidate that occurs most often outside quotes.
func sniffDelimiter(header string) rune {
	counts := make(map[rune]int, len(candidateDelimiters))
	inQuotes := false
	for _, r := range header {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}
	best := ','
	for _, d := range candidateDelimiters {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}
