package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// tabularDateLayouts are tried in order. "1/2/2006" also accepts zero-padded input.
var tabularDateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"1-2-2006",
	"2006/01/02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// parseTabularDate accepts ISO and US month-first forms.
func parseTabularDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range tabularDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q: unrecognized format", s)
}

var monthAbbrev = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// windowYear maps two-digit years: <30 is 20xx, otherwise 19xx.
func windowYear(y int) int {
	if y >= 100 {
		return y
	}
	if y < 30 {
		return 2000 + y
	}
	return 1900 + y
}

// civilDate builds a UTC date and rejects out-of-range components.
func civilDate(year int, month time.Month, day int) (time.Time, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid date %04d-%02d-%02d", year, int(month), day)
	}
	return t, nil
}

// parseDocumentDate handles "M/D/YYYY", "M/D/YY", "M-D", "YYYY-MM-DD",
// "Jan 5, 2024" and "Jan 5" (current year).
func parseDocumentDate(s string, currentYear int) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}

	if s != "" && s[0] >= '0' && s[0] <= '9' {
		parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' })
		if len(parts) < 2 || len(parts) > 3 {
			return time.Time{}, fmt.Errorf("parsing date %q: unrecognized format", s)
		}
		nums := make([]int, len(parts))
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
			}
			nums[i] = n
		}
		year := currentYear
		if len(nums) == 3 {
			year = windowYear(nums[2])
		}
		return civilDate(year, time.Month(nums[0]), nums[1])
	}

	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) < 2 || len(fields[0]) < 3 {
		return time.Time{}, fmt.Errorf("parsing date %q: unrecognized format", s)
	}
	month, ok := monthAbbrev[strings.ToLower(fields[0][:3])]
	if !ok {
		return time.Time{}, fmt.Errorf("parsing date %q: unknown month", s)
	}
	day, err := strconv.Atoi(fields[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	year := currentYear
	if len(fields) >= 3 {
		year, err = strconv.Atoi(fields[2])
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
		}
		year = windowYear(year)
	}
	return civilDate(year, month, day)
}
