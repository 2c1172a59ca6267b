// Package pdftable extracts bank-statement style tables from PDFs with
// machine-readable text. Tables are detected geometrically from text
// positions, headers are mapped onto a canonical schema through an alias
// list, and each data row becomes one normalized record.
package pdftable

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"finsight/internal/extract"
)

type Config struct {
	// RowTolerance is the Y distance (points) within which text fragments
	// belong to the same visual row.
	RowTolerance float64
	// CellGap is the minimum horizontal whitespace (points) separating two
	// cells; smaller gaps are treated as word spacing inside one cell.
	CellGap float64
}

func DefaultConfig() Config {
	return Config{
		RowTolerance: 3.0,
		CellGap:      15.0,
	}
}

type Extractor struct {
	cfg    Config
	logger *zap.Logger
}

func NewExtractor(cfg Config, logger *zap.Logger) *Extractor {
	if cfg.RowTolerance <= 0 {
		cfg.RowTolerance = DefaultConfig().RowTolerance
	}
	if cfg.CellGap <= 0 {
		cfg.CellGap = DefaultConfig().CellGap
	}
	return &Extractor{cfg: cfg, logger: logger}
}

// Rows extracts every usable table row across all pages, in page order.
// An empty result with a nil error means the PDF has no usable tables,
// which sends the caller down the OCR path.
func (e *Extractor) Rows(ctx context.Context, path string) ([]extract.Row, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var out []extract.Row
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tables := e.pageTables(r, pageNum, path)
		for _, tbl := range tables {
			out = append(out, rowsFromTable(tbl)...)
		}
	}
	return out, nil
}

// pageTables returns the cell grids detected on one page. The underlying
// parser panics on some malformed content streams; a bad page is logged and
// skipped rather than taking the whole file down.
func (e *Extractor) pageTables(r *pdf.Reader, pageNum int, path string) (tables [][][]string) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Warn("Skipping malformed PDF page",
				zap.String("file", path),
				zap.Int("page", pageNum),
				zap.Any("panic", rec),
			)
			tables = nil
		}
	}()

	page := r.Page(pageNum)
	if page.V.IsNull() {
		return nil
	}
	texts := filterTexts(page.Content().Text)
	if len(texts) == 0 {
		return nil
	}

	rows := e.groupRows(texts)
	cellRows := make([][]cell, len(rows))
	for i, row := range rows {
		cellRows[i] = e.mergeCells(row)
	}
	return detectTables(cellRows)
}

// cell is a run of text separated from its neighbors by column whitespace.
type cell struct {
	left, right float64
	text        string
}

func (c cell) center() float64 { return (c.left + c.right) / 2 }

func filterTexts(texts []pdf.Text) []pdf.Text {
	out := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			out = append(out, t)
		}
	}
	return out
}

// groupRows clusters fragments by Y coordinate, top of page first.
// PDF Y grows upward.
func (e *Extractor) groupRows(texts []pdf.Text) [][]pdf.Text {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]pdf.Text
	for _, t := range sorted {
		if n := len(rows); n > 0 && rows[n-1][0].Y-t.Y <= e.cfg.RowTolerance {
			rows[n-1] = append(rows[n-1], t)
			continue
		}
		rows = append(rows, []pdf.Text{t})
	}
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
	}
	return rows
}

// mergeCells joins adjacent fragments of one visual row into cells. A gap
// wider than CellGap starts a new cell; a gap wider than a fraction of the
// font size inserts a word space.
func (e *Extractor) mergeCells(row []pdf.Text) []cell {
	var cells []cell
	var b strings.Builder
	var left, right float64

	flush := func() {
		if b.Len() > 0 {
			cells = append(cells, cell{left: left, right: right, text: b.String()})
			b.Reset()
		}
	}

	for _, t := range row {
		end := t.X + t.W
		if b.Len() == 0 {
			left, right = t.X, end
			b.WriteString(t.S)
			continue
		}
		gap := t.X - right
		if gap > e.cfg.CellGap {
			flush()
			left, right = t.X, end
			b.WriteString(t.S)
			continue
		}
		if gap > wordGap(t.FontSize) {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		if end > right {
			right = end
		}
	}
	flush()
	return cells
}

func wordGap(fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = 10
	}
	return fontSize * 0.25
}

// detectTables finds runs of consecutive multi-cell rows and converts each
// run into a grid, using the run's first row as the header that defines
// column boundaries. Runs shorter than two rows (no header plus data) are
// discarded.
func detectTables(cellRows [][]cell) [][][]string {
	var tables [][][]string
	var block [][]cell

	flush := func() {
		if len(block) >= 2 {
			if grid := gridFromBlock(block); grid != nil {
				tables = append(tables, grid)
			}
		}
		block = nil
	}

	for _, row := range cellRows {
		if len(row) >= 2 {
			block = append(block, row)
			continue
		}
		flush()
	}
	flush()
	return tables
}

// gridFromBlock aligns every row of a block to the columns spanned by its
// header row. Column boundaries sit midway between adjacent header cell
// centers; data cells are assigned by their own center, and multiple cells
// falling into one column are joined with a space.
func gridFromBlock(block [][]cell) [][]string {
	header := block[0]
	ncols := len(header)
	if ncols < 2 {
		return nil
	}

	boundaries := make([]float64, ncols-1)
	for i := 0; i < ncols-1; i++ {
		boundaries[i] = (header[i].center() + header[i+1].center()) / 2
	}

	grid := make([][]string, 0, len(block))
	for _, row := range block {
		cols := make([]string, ncols)
		for _, c := range row {
			j := sort.SearchFloat64s(boundaries, c.center())
			if cols[j] != "" {
				cols[j] += " "
			}
			cols[j] += c.text
		}
		grid = append(grid, cols)
	}
	return grid
}

// rowsFromTable maps one detected grid onto canonical records. Tables whose
// header cannot be mapped to the required columns are skipped entirely;
// individual rows are dropped only when no amount resolves.
func rowsFromTable(tbl [][]string) []extract.Row {
	idx := mapHeader(tbl[0])
	if !usable(idx) {
		return nil
	}

	var out []extract.Row
	for _, row := range tbl[1:] {
		if allEmpty(row) {
			continue
		}

		amt, valueDir, columnDir, ok := resolveAmount(row, idx)
		if !ok {
			continue
		}

		out = append(out, extract.Row{
			Date:        parseDate(cellAt(row, idx, "date")),
			Description: strings.TrimSpace(cellAt(row, idx, "description")),
			Category:    strings.TrimSpace(cellAt(row, idx, "category")),
			Amount:      amt.InexactFloat64(),
			Type:        rowType(row, idx, valueDir, columnDir),
		})
	}
	return out
}

// resolveAmount prefers a unified amount column, else derives the magnitude
// from the debit/credit pair. The returned amount is always non-negative.
// The value's own sign indicator (Cr/Dr suffix or minus) and the direction
// implied by the source column travel separately, so precedence between
// them can be resolved downstream.
func resolveAmount(row []string, idx map[string]int) (decimal.Decimal, direction, direction, bool) {
	if _, ok := idx["amount"]; ok {
		amt, dir, ok := parseMoney(cellAt(row, idx, "amount"))
		return amt, dir, directionUnknown, ok
	}
	if amt, dir, ok := parseMoney(cellAt(row, idx, "credit")); ok {
		return amt, dir, directionCredit, true
	}
	if amt, dir, ok := parseMoney(cellAt(row, idx, "debit")); ok {
		return amt, dir, directionDebit, true
	}
	return decimal.Zero, directionUnknown, directionUnknown, false
}

// rowType decides the transaction direction, weakest signal first: the
// column the value came from, then an explicit type column, then a Cr/Dr
// suffix or leading minus on the value itself. Undetermined rows default
// to expense.
func rowType(row []string, idx map[string]int, valueDir, columnDir direction) extract.TxnType {
	t := extract.TypeExpense
	if columnDir == directionCredit {
		t = extract.TypeIncome
	}
	switch strings.ToLower(strings.TrimSpace(cellAt(row, idx, "type"))) {
	case "income", "credit", "cr", "deposit":
		t = extract.TypeIncome
	case "expense", "debit", "dr", "withdrawal":
		t = extract.TypeExpense
	}
	switch valueDir {
	case directionCredit:
		t = extract.TypeIncome
	case directionDebit:
		t = extract.TypeExpense
	}
	return t
}

func cellAt(row []string, idx map[string]int, field string) string {
	i, ok := idx[field]
	if !ok || i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func allEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
