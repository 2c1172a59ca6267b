package pdftable

import (
	"regexp"
	"strings"
)

// Canonical fields a statement table can map onto. Order matters: fields are
// resolved in this order and the first matching column wins per field, so a
// header like "debit amount" binds to amount before debit can claim it,
// matching how banks label unified-amount exports.
var canonicalFields = []string{"date", "description", "category", "amount", "type", "debit", "credit"}

// Alias lists are matched as substrings of the normalized header cell.
var fieldAliases = map[string][]string{
	"date":        {"date", "txn date", "transaction date", "value date"},
	"description": {"description", "narration", "details", "particulars"},
	"category":    {"category", "title"},
	"amount":      {"amount", "txn amount", "amt"},
	"type":        {"type"},
	"debit":       {"debit", "withdrawal"},
	"credit":      {"credit", "deposit"},
}

var multiSpace = regexp.MustCompile(` {2,}`)

// normalizeHeader prepares a header cell for alias matching: trimmed,
// lowercased, embedded newlines and repeated spaces collapsed.
func normalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\n", " ")
	h = multiSpace.ReplaceAllString(h, " ")
	return strings.ToLower(strings.TrimSpace(h))
}

// mapHeader resolves each canonical field to a column index. Fields with no
// matching column are absent from the result.
func mapHeader(header []string) map[string]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	idx := make(map[string]int)
	for _, field := range canonicalFields {
		for i, h := range normalized {
			if h == "" {
				continue
			}
			if matchesField(field, h) {
				idx[field] = i
				break
			}
		}
	}
	return idx
}

func matchesField(field, header string) bool {
	for _, alias := range fieldAliases[field] {
		if strings.Contains(header, alias) {
			return true
		}
	}
	return false
}

// usable reports whether a mapped header is enough to interpret data rows:
// a date column plus either a unified amount column or a debit/credit pair.
func usable(idx map[string]int) bool {
	if _, ok := idx["date"]; !ok {
		return false
	}
	if _, ok := idx["amount"]; ok {
		return true
	}
	_, hasDebit := idx["debit"]
	_, hasCredit := idx["credit"]
	return hasDebit && hasCredit
}
