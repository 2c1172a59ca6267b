package pdftable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapHeaderCommonStatements(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   map[string]int
	}{
		{
			name:   "unified amount",
			header: []string{"Date", "Description", "Category", "Amount", "Type"},
			want:   map[string]int{"date": 0, "description": 1, "category": 2, "amount": 3, "type": 4},
		},
		{
			name:   "debit credit pair",
			header: []string{"Txn Date", "Particulars", "Debit", "Credit"},
			want:   map[string]int{"date": 0, "description": 1, "debit": 2, "credit": 3},
		},
		{
			name:   "narration and deposits",
			header: []string{"Value Date", "Narration", "Withdrawal", "Deposit"},
			want:   map[string]int{"date": 0, "description": 1, "debit": 2, "credit": 3},
		},
		{
			name:   "wrapped header cell",
			header: []string{"Transaction\nDate", "Details", "Txn  Amount"},
			want:   map[string]int{"date": 0, "description": 1, "amount": 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapHeader(tt.header))
		})
	}
}

func TestMapHeaderAmountWinsOverDebit(t *testing.T) {
	// "Debit Amount" must bind to the unified amount field, not debit.
	idx := mapHeader([]string{"Date", "Debit Amount"})
	assert.Equal(t, 1, idx["amount"])
}

func TestMapHeaderFirstColumnWinsPerField(t *testing.T) {
	idx := mapHeader([]string{"Date", "Posting Date", "Amount"})
	assert.Equal(t, 0, idx["date"])
}

func TestUsable(t *testing.T) {
	tests := []struct {
		name string
		idx  map[string]int
		want bool
	}{
		{"date plus amount", map[string]int{"date": 0, "amount": 1}, true},
		{"date plus debit credit", map[string]int{"date": 0, "debit": 1, "credit": 2}, true},
		{"missing date", map[string]int{"amount": 0}, false},
		{"debit without credit", map[string]int{"date": 0, "debit": 1}, false},
		{"date only", map[string]int{"date": 0}, false},
		{"empty", map[string]int{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usable(tt.idx))
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "txn date", normalizeHeader("  Txn\nDate "))
	assert.Equal(t, "amount", normalizeHeader("AMOUNT"))
	assert.Equal(t, "", normalizeHeader("   "))
}
