package importer

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/cashflow/internal/model"
)

// maxDescriptionLen caps cleaned descriptions.
const maxDescriptionLen = 200

// Line layouts, tried in order: date, description, trailing amount, optional marker.
var documentLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s+(.+?)\s+([-+(]?\$?-?[\d,]+(?:\.\d+)?\)?)\s*(CR|DR)?$`),
	regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(.+?)\s+([-+(]?\$?-?[\d,]+(?:\.\d+)?\)?)\s*(CR|DR)?$`),
	regexp.MustCompile(`^(\d{1,2}[/-]\d{1,2})\s+(.+?)\s+([-+(]?\$?-?[\d,]+\.\d{2}\)?)\s*(CR|DR)?$`),
	regexp.MustCompile(`^([A-Za-z]{3,9}\.?\s+\d{1,2}(?:,?\s+\d{4})?)\s+(.+?)\s+([-+(]?\$?-?[\d,]+(?:\.\d+)?\)?)\s*(CR|DR)?$`),
}

// Whole-text fallback patterns; \s+ may span line breaks.
var documentScanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})\s*(CR|DR)?`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})\s*(CR|DR)?`),
	regexp.MustCompile(`([A-Z][a-z]{2}\s+\d{1,2},?\s+\d{4})\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})\s*(CR|DR)?`),
}

// documentNoise matches page markers and lines that open with a balance
// summary label. Dated rows mentioning a balance transfer are kept.
var documentNoise = regexp.MustCompile(`(?i)\bpage\s+\d+|^\s*page\s*$|^\s*(opening|closing|beginning|ending|previous|new|available|current|statement)?\s*balance\b`)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	asteriskRun   = regexp.MustCompile(`\*+`)
)

// DocumentParser extracts transactions from text pulled out of a statement document.
// It never fails on an unmatched line.
type DocumentParser struct {
	// Now supplies the current year for dates printed without one. Defaults to time.Now.
	Now func() time.Time
}

// Format returns the parser name.
func (p *DocumentParser) Format() string { return "document" }

// Extensions returns the file extensions this parser handles.
func (p *DocumentParser) Extensions() []string { return []string{".txt", ".text"} }

// Parse returns every transaction-shaped line, or an empty slice when none match.
func (p *DocumentParser) Parse(r io.Reader) ([]model.RawTransaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ExtractionError{Reason: fmt.Sprintf("reading document: %v", err)}
	}
	if err := checkTextLayer(data); err != nil {
		return nil, err
	}

	year := p.currentYear()
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	txns := p.scanLines(text, year)
	if len(txns) == 0 {
		txns = p.scanText(text, year)
	}
	if txns == nil {
		txns = []model.RawTransaction{}
	}
	return txns, nil
}

func (p *DocumentParser) currentYear() int {
	if p.Now != nil {
		return p.Now().Year()
	}
	return time.Now().Year()
}

// checkTextLayer rejects input that is not extracted text.
func checkTextLayer(data []byte) error {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF-")):
		return &ExtractionError{Reason: "input is an unextracted PDF document"}
	case bytes.IndexByte(data, 0) >= 0:
		return &ExtractionError{Reason: "input contains binary data"}
	case !utf8.Valid(data):
		return &ExtractionError{Reason: "input is not valid UTF-8 text"}
	}
	return nil
}

func (p *DocumentParser) scanLines(text string, year int) []model.RawTransaction {
	var txns []model.RawTransaction
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || documentNoise.MatchString(line) {
			continue
		}
		for _, pattern := range documentLinePatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if txn, ok := buildDocumentTxn(m[1], m[2], m[3], m[4], year); ok {
				txns = append(txns, txn)
				break
			}
		}
	}
	return txns
}

func (p *DocumentParser) scanText(text string, year int) []model.RawTransaction {
	for _, pattern := range documentScanPatterns {
		var txns []model.RawTransaction
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if txn, ok := buildDocumentTxn(m[1], m[2], m[3], m[4], year); ok {
				txns = append(txns, txn)
			}
		}
		if len(txns) > 0 {
			return txns
		}
	}
	return nil
}

func buildDocumentTxn(dateRaw, descRaw, amountRaw, marker string, year int) (model.RawTransaction, bool) {
	date, err := parseDocumentDate(dateRaw, year)
	if err != nil {
		return model.RawTransaction{}, false
	}
	amount, err := ParseAmount(amountRaw)
	if err != nil {
		return model.RawTransaction{}, false
	}
	amount = applyMarker(amount, amountRaw, marker)

	desc := CleanDescription(descRaw)
	if desc == "" {
		return model.RawTransaction{}, false
	}
	return model.RawTransaction{Date: date, Description: desc, Amount: amount}, true
}

// applyMarker gives an unsigned amount the sign implied by a DR/CR marker.
func applyMarker(amount decimal.Decimal, raw, marker string) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	signed := strings.ContainsAny(trimmed, "-(") || strings.HasPrefix(trimmed, "+")
	if signed {
		return amount
	}
	switch marker {
	case "DR":
		return amount.Abs().Neg()
	case "CR":
		return amount.Abs()
	}
	return amount
}

// CleanDescription collapses whitespace, drops asterisks and caps the length.
func CleanDescription(s string) string {
	s = asteriskRun.ReplaceAllString(s, "")
	s = strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
	if utf8.RuneCountInString(s) > maxDescriptionLen {
		s = strings.TrimSpace(string([]rune(s)[:maxDescriptionLen]))
	}
	return s
}
