// Package receipt recovers a transaction from the OCR lines of a POS
// receipt. All matching is heuristic: a page with no recognizable amount
// yields no candidate, missing date or merchant degrade to defaults.
package receipt

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"finsight/internal/extract"
)

// DefaultCategory is a placeholder the user is expected to correct; the
// receipt path never attempts category inference.
const DefaultCategory = "Shopping"

// DefaultDescription is used when no line looks like a merchant name.
const DefaultDescription = "POS Receipt"

const maxDescriptionRunes = 80

var (
	// A date-shaped token: 1-2 digit day/month, 2 or 4 digit year, slash or
	// dash separated. Ordering ambiguity is resolved by the format ladder.
	datePat = regexp.MustCompile(`(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)

	// Keyword-anchored total: the label may be separated from the value by a
	// short run of non-digits (colons, currency symbols, dot leaders).
	totalPat = regexp.MustCompile(`(?i)(?:TOTAL|Amount Payable|Grand Total|Balance Due)\D{0,10}((?:\d{1,3}(?:,\d{3})+|\d+)[.,]\d{2})`)

	// Any two-decimal value, with optional thousands grouping.
	amountPat = regexp.MustCompile(`((?:\d{1,3}(?:,\d{3})+|\d+)\.\d{2})`)

	digitPat = regexp.MustCompile(`\d`)
)

// Day-first formats take priority; month-first variants are fallbacks for
// US-style receipts. Non-padded layouts accept both "03/09/2025" and
// "7/8/2023"; padded layouts would reject the single-digit form.
var dateFormats = []string{
	"2/1/2006",
	"2-1-2006",
	"1/2/2006",
	"1-2-2006",
	"2/1/06",
	"1/2/06",
}

// Parse applies the extraction cascade to one page of OCR lines. The second
// return value is false when neither the keyword total nor the fallback
// amount matched.
func Parse(lines []string) (extract.Candidate, bool) {
	amount, ok := ExtractTotal(lines)
	if !ok {
		amount, ok = LastAmount(lines)
	}
	if !ok {
		return extract.Candidate{}, false
	}

	return extract.Candidate{
		Date:        ExtractDate(lines),
		Type:        extract.TypeExpense,
		Category:    DefaultCategory,
		Description: GuessMerchant(lines),
		Amount:      amount,
	}, true
}

// ExtractDate scans top-down for the first date-shaped token that parses
// under the format ladder. Returns "" when nothing parses; the orchestration
// layer substitutes the current date in that case.
func ExtractDate(lines []string) string {
	for _, ln := range lines {
		m := datePat.FindStringSubmatch(ln)
		if m == nil {
			continue
		}
		for _, layout := range dateFormats {
			if t, err := time.Parse(layout, m[1]); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	return ""
}

// ExtractTotal scans bottom-up for a keyword-anchored total. Receipts place
// the total near the end, so the first match from the bottom wins.
func ExtractTotal(lines []string) (float64, bool) {
	for i := len(lines) - 1; i >= 0; i-- {
		if m := totalPat.FindStringSubmatch(lines[i]); m != nil {
			return parseAmount(m[1])
		}
	}
	return 0, false
}

// LastAmount is the fallback when no keyword total exists: the last line
// carrying any two-decimal value is treated as the total.
func LastAmount(lines []string) (float64, bool) {
	for i := len(lines) - 1; i >= 0; i-- {
		if m := amountPat.FindStringSubmatch(lines[i]); m != nil {
			return parseAmount(m[1])
		}
	}
	return 0, false
}

// GuessMerchant takes the first line with no digits and more than two
// runes as the merchant name, capped at 80 runes.
func GuessMerchant(lines []string) string {
	for _, ln := range lines {
		if utf8.RuneCountInString(ln) > 2 && !digitPat.MatchString(ln) {
			return truncate(ln, maxDescriptionRunes)
		}
	}
	return DefaultDescription
}

// parseAmount handles both "1,234.56" (comma groups, dot decimal) and the
// European-style "123,45" a noisy OCR pass sometimes produces.
func parseAmount(s string) (float64, bool) {
	if i := strings.LastIndexByte(s, ','); i >= 0 && !strings.Contains(s, ".") && len(s)-i == 3 {
		s = s[:i] + "." + s[i+1:]
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
