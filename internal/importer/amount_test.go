package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$1,234.56", "1234.56"},
		{"(1234.56)", "-1234.56"},
		{"-1234.56", "-1234.56"},
		{"($1,234.56)", "-1234.56"},
		{"-$5.00", "-5.00"},
		{"+12.00", "12.00"},
		{" 1 000.10 ", "1000.10"},
		{"€7.5", "7.50"},
		{"£0.99", "0.99"},
		{"0", "0.00"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, "ParseAmount(%q)", tt.in)
		assert.Equal(t, tt.want, got.StringFixed(2), "ParseAmount(%q)", tt.in)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, in := range []string{"", "  ", "abc", "$", "12.3.4"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, "ParseAmount(%q)", in)
	}
}
