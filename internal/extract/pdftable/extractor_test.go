package pdftable

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"finsight/internal/extract"
)

func TestRowsFromTableDebitCreditPair(t *testing.T) {
	tbl := [][]string{
		{"Txn Date", "Particulars", "Debit", "Credit"},
		{"01-08-2025", "Rent", "15000.00", ""},
		{"03-08-2025", "Salary", "", "85,000.00"},
	}

	rows := rowsFromTable(tbl)
	require.Len(t, rows, 2)

	assert.Equal(t, extract.Row{
		Date:        "2025-08-01",
		Description: "Rent",
		Amount:      15000.0,
		Type:        extract.TypeExpense,
	}, rows[0])
	assert.Equal(t, extract.Row{
		Date:        "2025-08-03",
		Description: "Salary",
		Amount:      85000.0,
		Type:        extract.TypeIncome,
	}, rows[1])
}

func TestRowsFromTableUnifiedAmount(t *testing.T) {
	tbl := [][]string{
		{"Date", "Narration", "Amount"},
		{"01-08-2025", "Coffee", "₹120.00"},
		{"02-08-2025", "Refund", "2,500.00Cr"},
		{"03-08-2025", "Fuel", "1,200.00 Dr"},
	}

	rows := rowsFromTable(tbl)
	require.Len(t, rows, 3)

	assert.Equal(t, extract.TypeExpense, rows[0].Type)
	assert.Equal(t, 120.0, rows[0].Amount)
	assert.Equal(t, extract.TypeIncome, rows[1].Type)
	assert.Equal(t, 2500.0, rows[1].Amount)
	assert.Equal(t, extract.TypeExpense, rows[2].Type)
	assert.Equal(t, 1200.0, rows[2].Amount)
}

func TestRowsFromTableTypeColumn(t *testing.T) {
	tbl := [][]string{
		{"Date", "Description", "Amount", "Type"},
		{"01-08-2025", "Salary", "85000.00", "Income"},
		{"02-08-2025", "Rent", "15000.00", "Expense"},
	}

	rows := rowsFromTable(tbl)
	require.Len(t, rows, 2)
	assert.Equal(t, extract.TypeIncome, rows[0].Type)
	assert.Equal(t, extract.TypeExpense, rows[1].Type)
}

func TestRowsFromTableSuffixOverridesTypeColumn(t *testing.T) {
	tbl := [][]string{
		{"Date", "Description", "Amount", "Type"},
		{"01-08-2025", "Reversal", "500.00Cr", "Expense"},
	}

	rows := rowsFromTable(tbl)
	require.Len(t, rows, 1)
	assert.Equal(t, extract.TypeIncome, rows[0].Type)
}

func TestRowsFromTableTypeColumnOverridesValueColumn(t *testing.T) {
	// An explicit type column outranks the direction implied by the
	// debit/credit column the value sits in; only a Cr/Dr suffix on the
	// value itself outranks the type column.
	tbl := [][]string{
		{"Date", "Description", "Debit", "Credit", "Type"},
		{"01-08-2025", "Reversal", "", "500.00", "Expense"},
		{"02-08-2025", "Refund", "250.00", "", "Income"},
		{"03-08-2025", "Adjustment", "", "100.00Dr", "Income"},
	}

	rows := rowsFromTable(tbl)
	require.Len(t, rows, 3)
	assert.Equal(t, extract.TypeExpense, rows[0].Type)
	assert.Equal(t, extract.TypeIncome, rows[1].Type)
	assert.Equal(t, extract.TypeExpense, rows[2].Type)
}

func TestRowsFromTableUnmappableHeaderSkipsTable(t *testing.T) {
	assert.Nil(t, rowsFromTable([][]string{
		{"Item", "Price"},
		{"Coffee", "120.00"},
	}))
	assert.Nil(t, rowsFromTable([][]string{
		{"Date", "Description"},
		{"01-08-2025", "Coffee"},
	}))
}

func TestRowsFromTableSkipsBadRows(t *testing.T) {
	tbl := [][]string{
		{"Date", "Description", "Amount"},
		{"", "", ""},
		{"01-08-2025", "Opening Balance", ""},
		{"02-08-2025", "Fee", "0.00"},
		{"03-08-2025", "Coffee", "120.00"},
	}

	rows := rowsFromTable(tbl)
	require.Len(t, rows, 1)
	assert.Equal(t, "Coffee", rows[0].Description)
}

func TestRowsFromTableKeepsUnparseableDateEmpty(t *testing.T) {
	tbl := [][]string{
		{"Date", "Description", "Amount"},
		{"sometime", "Coffee", "120.00"},
	}

	rows := rowsFromTable(tbl)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Date)
}

func text(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w, FontSize: 10}
}

func TestGroupRowsClustersByY(t *testing.T) {
	e := NewExtractor(DefaultConfig(), zap.NewNop())
	texts := []pdf.Text{
		text("Amount", 300, 700, 40),
		text("Date", 50, 701, 25),
		text("120.00", 300, 680, 35),
		text("01-08-2025", 50, 680.5, 55),
	}

	rows := e.groupRows(texts)
	require.Len(t, rows, 2)
	assert.Equal(t, "Date", rows[0][0].S)
	assert.Equal(t, "Amount", rows[0][1].S)
	assert.Equal(t, "01-08-2025", rows[1][0].S)
}

func TestMergeCellsSplitsOnColumnGaps(t *testing.T) {
	e := NewExtractor(DefaultConfig(), zap.NewNop())
	row := []pdf.Text{
		text("Txn", 50, 700, 20),
		text("Date", 75, 700, 22),
		text("Amount", 150, 700, 40),
	}

	cells := e.mergeCells(row)
	require.Len(t, cells, 2)
	assert.Equal(t, "Txn Date", cells[0].text)
	assert.Equal(t, "Amount", cells[1].text)
}

func TestDetectTablesEndToEnd(t *testing.T) {
	e := NewExtractor(DefaultConfig(), zap.NewNop())
	texts := []pdf.Text{
		text("Bank Statement", 50, 740, 90),
		text("Date", 50, 700, 25),
		text("Description", 150, 700, 60),
		text("Amount", 300, 700, 40),
		text("01-08-2025", 50, 680, 55),
		text("Coffee", 150, 680, 35),
		text("120.00", 300, 680, 35),
		text("02-08-2025", 50, 660, 55),
		text("Salary", 150, 660, 35),
		text("5,000.00Cr", 300, 660, 50),
	}

	rows := e.groupRows(texts)
	cellRows := make([][]cell, len(rows))
	for i, r := range rows {
		cellRows[i] = e.mergeCells(r)
	}
	tables := detectTables(cellRows)
	require.Len(t, tables, 1)

	out := rowsFromTable(tables[0])
	require.Len(t, out, 2)
	assert.Equal(t, "2025-08-01", out[0].Date)
	assert.Equal(t, "Coffee", out[0].Description)
	assert.Equal(t, 120.0, out[0].Amount)
	assert.Equal(t, extract.TypeIncome, out[1].Type)
	assert.Equal(t, 5000.0, out[1].Amount)
}

func TestDetectTablesIgnoresShortRuns(t *testing.T) {
	cellRows := [][]cell{
		{{left: 50, right: 140, text: "Bank Statement"}},
		{{left: 50, right: 75, text: "Date"}, {left: 300, right: 340, text: "Amount"}},
		{{left: 50, right: 140, text: "Page 1 of 1"}},
	}
	assert.Empty(t, detectTables(cellRows))
}
