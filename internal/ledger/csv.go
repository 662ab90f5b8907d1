package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashflow/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "txn_id,date,description,amount,account,category,confidence,tags,source"

const (
	numFields     = 9
	dateFormat    = "2006-01-02"
	tagSeparator  = ";"
	colTxnID      = 0
	colDate       = 1
	colDesc       = 2
	colAmount     = 3
	colAccount    = 4
	colCategory   = 5
	colConfidence = 6
	colTags       = 7
	colSource     = 8
)

// Record is one stored, categorized transaction.
type Record struct {
	TxnID string
	model.CategorizedTransaction
	Source string // statement file the row was imported from
}

// ReadRecords reads all records from a transactions.csv reader.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	// Skip header row.
	var records []Record
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords writes records to a transactions.csv writer (including header).
func WriteRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendRecords appends records to an existing transactions.csv writer (no header).
func AppendRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRecord converts a Record to a CSV row.
func MarshalRecord(rec Record) []string {
	row := make([]string, numFields)
	row[colTxnID] = rec.TxnID
	row[colDate] = rec.Date.Format(dateFormat)
	row[colDesc] = rec.Description
	row[colAmount] = rec.Amount.StringFixed(2)
	row[colAccount] = rec.Account
	row[colCategory] = rec.Category
	row[colConfidence] = strconv.FormatFloat(rec.Confidence, 'f', -1, 64)
	row[colTags] = strings.Join(rec.Tags, tagSeparator)
	row[colSource] = rec.Source
	return row
}

// UnmarshalRecord converts a CSV row to a Record.
func UnmarshalRecord(row []string) (Record, error) {
	if len(row) != numFields {
		return Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	date, err := time.Parse(dateFormat, row[colDate])
	if err != nil {
		return Record{}, fmt.Errorf("parsing date %q: %w", row[colDate], err)
	}

	amount, err := decimal.NewFromString(row[colAmount])
	if err != nil {
		return Record{}, fmt.Errorf("parsing amount %q: %w", row[colAmount], err)
	}

	var confidence float64
	if row[colConfidence] != "" {
		confidence, err = strconv.ParseFloat(row[colConfidence], 64)
		if err != nil {
			return Record{}, fmt.Errorf("parsing confidence %q: %w", row[colConfidence], err)
		}
	}

	var tags []string
	if row[colTags] != "" {
		tags = strings.Split(row[colTags], tagSeparator)
	}

	return Record{
		TxnID: row[colTxnID],
		CategorizedTransaction: model.CategorizedTransaction{
			RawTransaction: model.RawTransaction{
				Date:        date,
				Description: row[colDesc],
				Amount:      amount,
				Account:     row[colAccount],
			},
			Category:   row[colCategory],
			Confidence: confidence,
			Tags:       tags,
		},
		Source: row[colSource],
	}, nil
}
