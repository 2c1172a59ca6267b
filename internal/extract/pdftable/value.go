package pdftable

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// direction of a parsed money value, as far as the value itself tells us.
type direction int

const (
	directionUnknown direction = iota
	directionCredit
	directionDebit
)

// parseMoney parses a statement cell into a non-negative magnitude and a
// direction hint. It strips thousands separators, a leading currency symbol
// or INR marker, and resolves trailing Cr/Dr suffixes; the suffix is an
// explicit sign indicator and takes precedence over any column-derived
// direction. A leading minus also marks a debit.
func parseMoney(s string) (decimal.Decimal, direction, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, directionUnknown, false
	}

	dir := directionUnknown
	switch {
	case hasSuffixFold(s, "cr"):
		dir = directionCredit
		s = strings.TrimSpace(s[:len(s)-2])
	case hasSuffixFold(s, "dr"):
		dir = directionDebit
		s = strings.TrimSpace(s[:len(s)-2])
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "INR")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, directionUnknown, false
	}
	if d.IsNegative() {
		if dir == directionUnknown {
			dir = directionDebit
		}
		d = d.Abs()
	}
	if d.IsZero() {
		return decimal.Zero, dir, false
	}
	return d, dir, true
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) > len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

// Statement date layouts, tried in order after separator normalization.
// Day-first numeric dominates bank exports; ISO and month-name variants
// cover the rest, with US month-first as the last resort. Non-padded
// layouts accept both "01-08-2025" and "1-8-2025".
var dateLayouts = []string{
	"2-1-2006",
	"2006-1-2",
	"2-1-06",
	"2-Jan-2006",
	"2 Jan 2006",
	"1-2-2006",
}

// parseDate normalizes dot and slash separators to dashes and tries each
// layout in order. Returns "" when nothing parses.
func parseDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, "/", "-")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
