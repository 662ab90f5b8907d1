// Package id formats and parses ledger transaction IDs of the form "2024-01-007".
package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTxnID returns a transaction ID like "2024-01-001".
func FormatTxnID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ParseTxnID parses "2024-01-001" into year, month, seq.
func ParseTxnID(txnID string) (year, month, seq int, err error) {
	parts := strings.SplitN(txnID, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid transaction ID format: %q", txnID)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in transaction ID %q: %w", txnID, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in transaction ID %q: %w", txnID, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("invalid month in transaction ID %q: %d", txnID, month)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in transaction ID %q: %w", txnID, err)
	}
	if seq < 1 {
		return 0, 0, 0, fmt.Errorf("invalid sequence in transaction ID %q: %d", txnID, seq)
	}

	return year, month, seq, nil
}

// MonthPrefix returns the "YYYY-MM" part of a transaction ID, or "" if malformed.
// "2024-01-001" -> "2024-01"
func MonthPrefix(txnID string) string {
	year, month, _, err := ParseTxnID(txnID)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", year, month)
}
