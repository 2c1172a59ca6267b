package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/extract"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"slash day-first", []string{"FreshMart", "Date: 03/09/2025"}, "2025-09-03"},
		{"dash day-first", []string{"03-09-2025"}, "2025-09-03"},
		{"two digit year", []string{"03/09/25"}, "2025-09-03"},
		{"single digit day and month", []string{"7/8/2023"}, "2023-08-07"},
		{"single digit dashed", []string{"1-2-2024"}, "2024-02-01"},
		{"month-first fallback", []string{"12/25/2024"}, "2024-12-25"},
		{"first match wins", []string{"01/02/2024", "03/04/2024"}, "2024-02-01"},
		{"embedded in noise", []string{"Inv#42 dt 7/8/2023 till 2"}, "2023-08-07"},
		{"no date", []string{"FreshMart", "TOTAL 12.00"}, ""},
		{"date-shaped but unparseable", []string{"99/99/9999"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDate(tt.lines))
		})
	}
}

func TestExtractTotalPrefersKeywordOverEarlierAmounts(t *testing.T) {
	lines := []string{
		"FreshMart Grocers",
		"Milk 2.50",
		"Bread 3.25",
		"TOTAL  1,234.56",
		"Thank you for shopping",
	}
	got, ok := ExtractTotal(lines)
	require.True(t, ok)
	assert.Equal(t, 1234.56, got)
}

func TestExtractTotalKeywordVariants(t *testing.T) {
	for _, line := range []string{
		"Amount Payable: 45.00",
		"grand total $45.00",
		"Balance Due.......45.00",
		"TOTAL 45.00",
	} {
		got, ok := ExtractTotal([]string{"Store", line})
		require.True(t, ok, line)
		assert.Equal(t, 45.0, got, line)
	}
}

func TestExtractTotalScansBottomUp(t *testing.T) {
	lines := []string{
		"SUBTOTAL 10.00",
		"TOTAL 12.00",
	}
	got, ok := ExtractTotal(lines)
	require.True(t, ok)
	assert.Equal(t, 12.0, got)
}

func TestLastAmountFallback(t *testing.T) {
	lines := []string{
		"FreshMart",
		"Qty 2   99.00",
		"Thank you",
	}
	got, ok := LastAmount(lines)
	require.True(t, ok)
	assert.Equal(t, 99.0, got)
}

func TestLastAmountCommaGrouped(t *testing.T) {
	got, ok := LastAmount([]string{"Net 12,345.67"})
	require.True(t, ok)
	assert.Equal(t, 12345.67, got)
}

func TestGuessMerchant(t *testing.T) {
	lines := []string{
		"#123",
		"FreshMart Grocers",
		"03/09/2025",
	}
	assert.Equal(t, "FreshMart Grocers", GuessMerchant(lines))
}

func TestGuessMerchantDefault(t *testing.T) {
	assert.Equal(t, DefaultDescription, GuessMerchant([]string{"123", "45.00"}))
}

func TestGuessMerchantCountsRunes(t *testing.T) {
	// Two runes must not pass the length gate even when they span more
	// than two bytes.
	assert.Equal(t, "FreshMart", GuessMerchant([]string{"日本", "FreshMart"}))
}

func TestGuessMerchantTruncates(t *testing.T) {
	long := ""
	for i := 0; i < 20; i++ {
		long += "merchant "
	}
	got := GuessMerchant([]string{long})
	assert.Len(t, []rune(got), 80)
}

func TestParseFullReceipt(t *testing.T) {
	lines := []string{
		"FreshMart Grocers",
		"03/09/2025 14:02",
		"Milk 2.50",
		"Bread 3.25",
		"TOTAL 5.75",
	}
	cand, ok := Parse(lines)
	require.True(t, ok)
	assert.Equal(t, "2025-09-03", cand.Date)
	assert.Equal(t, extract.TypeExpense, cand.Type)
	assert.Equal(t, DefaultCategory, cand.Category)
	assert.Equal(t, "FreshMart Grocers", cand.Description)
	assert.Equal(t, 5.75, cand.Amount)
}

func TestParseUsesFallbackAmount(t *testing.T) {
	lines := []string{
		"Corner Cafe",
		"Qty 2   99.00",
	}
	cand, ok := Parse(lines)
	require.True(t, ok)
	assert.Equal(t, 99.0, cand.Amount)
	assert.Empty(t, cand.Date)
}

func TestParseNoAmountYieldsNoCandidate(t *testing.T) {
	_, ok := Parse([]string{"Corner Cafe", "Thank you"})
	assert.False(t, ok)
}

func TestParseEmptyPage(t *testing.T) {
	_, ok := Parse(nil)
	assert.False(t, ok)
}
