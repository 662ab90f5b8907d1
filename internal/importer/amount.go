package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var errEmptyAmount = errors.New("empty amount")

// currencyStripper removes symbols, thousands separators and whitespace.
var currencyStripper = strings.NewReplacer(
	"$", "", "£", "", "€", "", "¥", "", "₹", "",
	",", "", " ", "", "\t", "", "\u00a0", "",
)

// ParseAmount converts a statement amount to a signed decimal.
// "(1,234.56)" is negative (accounting convention), as is "-1234.56".
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := currencyStripper.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, errEmptyAmount
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}
	// "-$5.00" leaves "-5.00" after stripping; "$-5.00" too.
	cleaned = strings.TrimPrefix(cleaned, "+")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if negative {
		d = d.Abs().Neg()
	}
	return d, nil
}
