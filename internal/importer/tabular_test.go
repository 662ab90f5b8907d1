package importer

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestTabularParser_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/statement.csv")
	require.NoError(t, err)

	p := &TabularParser{}
	txns, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, txns, 5, "bad date and bad amount rows are skipped")

	assert.Equal(t, "STARBUCKS COFFEE #1021", txns[0].Description)
	assert.Equal(t, "5.50", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "x1234", txns[0].Account)
	assert.True(t, txns[0].Date.Equal(date(2024, 1, 15)))

	assert.Equal(t, "ACME CORP PAYROLL, SALARY", txns[1].Description)
	assert.Equal(t, "3500.00", txns[1].Amount.StringFixed(2))

	assert.Equal(t, "-125.99", txns[2].Amount.StringFixed(2))
	assert.Equal(t, "NETFLIX MONTHLY SUBSCRIPTION", txns[3].Description)
	assert.True(t, txns[4].Date.Equal(date(2024, 2, 3)))
}

func TestTabularParser_EndToEndSample(t *testing.T) {
	input := "Date,Description,Amount\n2024-01-15,Starbucks Coffee,-5.50\n2024-01-16,Salary Deposit,3500.00\n2024-01-17,Amazon Purchase,-125.99"

	txns, err := (&TabularParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "Starbucks Coffee", txns[0].Description)
	assert.True(t, txns[0].Amount.Equal(dec("-5.50")))
	assert.True(t, txns[1].Amount.Equal(dec("3500")))
	assert.True(t, txns[2].Amount.Equal(dec("-125.99")))
	assert.Empty(t, txns[0].Account)
}

func TestTabularParser_PreservesInputOrder(t *testing.T) {
	input := "Date,Description,Amount\n2024-03-01,Third,-3\n2024-01-01,First,-1\n2024-02-01,Second,-2\n"

	txns, err := (&TabularParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, []string{"Third", "First", "Second"},
		[]string{txns[0].Description, txns[1].Description, txns[2].Description})
}

func TestTabularParser_HeaderSynonyms(t *testing.T) {
	tests := []struct {
		name   string
		header string
		row    string
	}{
		{"posted date and payee", "Posted Date,Payee,Value", "01-15-2024,Coffee,-4.00"},
		{"merchant and debit", "DATE,MERCHANT,DEBIT", "1/15/2024,Coffee,-4.00"},
		{"desc abbreviation", "date,desc,amount", "2024-01-15,Coffee,-4.00"},
		{"reordered columns", "Amount,Description,Date", "-4.00,Coffee,2024-01-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns, err := (&TabularParser{}).Parse(strings.NewReader(tt.header + "\n" + tt.row))
			require.NoError(t, err)
			require.Len(t, txns, 1)
			assert.Equal(t, "Coffee", txns[0].Description)
			assert.Equal(t, "-4.00", txns[0].Amount.StringFixed(2))
			assert.True(t, txns[0].Date.Equal(date(2024, 1, 15)))
		})
	}
}

func TestTabularParser_DebitCreditColumns(t *testing.T) {
	input := "Date,Description,Debit Amount,Credit Amount\n" +
		"2024-01-02,Coffee,4.50,\n" +
		"2024-01-03,Paycheck,,2000.00\n" +
		"2024-01-04,Nothing,,\n"

	txns, err := (&TabularParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "-4.50", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "2000.00", txns[1].Amount.StringFixed(2))
}

func TestTabularParser_QuotedFields(t *testing.T) {
	input := "Date,Description,Amount\n" + `2024-01-15,"Joe's ""Best"" Deli, Downtown","$1,234.56"`

	txns, err := (&TabularParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, `Joe's "Best" Deli, Downtown`, txns[0].Description)
	assert.Equal(t, "1234.56", txns[0].Amount.StringFixed(2))
}

func TestTabularParser_SemicolonDelimiter(t *testing.T) {
	input := "Date;Description;Amount\n2024-01-15;Bakery;-3,50\n2024-01-16;Rent;-1200.00\n"

	txns, err := (&TabularParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "Rent", txns[1].Description)
	assert.Equal(t, "-1200.00", txns[1].Amount.StringFixed(2))
}

func TestTabularParser_ShortRowSkipped(t *testing.T) {
	input := "Date,Description,Amount\n2024-01-15,Coffee\n2024-01-16,Tea,-2.00\n"

	txns, err := (&TabularParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Tea", txns[0].Description)
}

func TestTabularParser_FormatErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"empty", "", "header"},
		{"header only", "Date,Description,Amount\n\n  \n", "header"},
		{"missing amount", "Date,Description,Notes\n2024-01-01,x,y\n", "amount"},
		{"missing date and description", "When,What,Amount\n2024-01-01,x,1\n", "date, description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&TabularParser{}).Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Contains(t, fe.Reason, tt.reason)
		})
	}
}

func TestTabularParser_LoneDebitColumnKeepsSign(t *testing.T) {
	input := "Date,Description,Debit\n2024-01-05,Coffee,5.00\n2024-01-06,Refund,-2.00\n"

	txns, err := (&TabularParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "5.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "-2.00", txns[1].Amount.StringFixed(2))
}

func TestTabularParser_AllRowsBadIsNotAnError(t *testing.T) {
	input := "Date,Description,Amount\nyesterday,Coffee,-1\n"

	txns, err := (&TabularParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestParseTabularDate(t *testing.T) {
	for _, in := range []string{"2024-01-05", "01/05/2024", "1/5/2024", "01-05-2024", "2024/01/05", " 2024-01-05 "} {
		got, err := parseTabularDate(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(date(2024, 1, 5)), "%q -> %s", in, got)
	}
	_, err := parseTabularDate("13/45/2024")
	assert.Error(t, err)
}
