// Package extract defines the candidate transaction schema shared by the
// receipt (OCR) and tabular (PDF) extraction paths, plus the engine
// interfaces the orchestration layer injects into them.
package extract

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// Mode tags which extraction path produced a candidate.
type Mode string

const (
	ModePDFTable Mode = "pdf_table"
	ModeOCRPDF   Mode = "ocr_pdf"
	ModeOCRImage Mode = "ocr_image"
)

// Transaction direction. Receipts are always expenses; tabular rows carry an
// explicit or column-inferred direction.
type TxnType string

const (
	TypeIncome  TxnType = "income"
	TypeExpense TxnType = "expense"
)

// Source records where a candidate came from, for auditability only.
type Source struct {
	File string `json:"file"`
	Mode Mode   `json:"mode"`
}

// Candidate is an unconfirmed extracted transaction. It is never persisted by
// this package; identity and ownership are assigned after user review.
//
// Amount is always a non-negative magnitude; direction lives in Type.
// Date is ISO YYYY-MM-DD, empty when undetectable.
type Candidate struct {
	Date        string  `json:"date"`
	Type        TxnType `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Source      Source  `json:"_source"`
}

// Valid reports whether the candidate should be returned to the caller.
// A missing or non-positive amount is disqualifying.
func (c Candidate) Valid() bool {
	return c.Amount > 0
}

// Row is a canonical record produced by the tabular path before it is shaped
// into a Candidate by the orchestration layer.
type Row struct {
	Date        string
	Description string
	Category    string
	Amount      float64
	Type        TxnType
}

// Recognizer converts a preprocessed raster image into ordered, trimmed,
// non-empty text lines.
type Recognizer interface {
	Lines(ctx context.Context, img image.Image) ([]string, error)
}

// TableExtractor detects embedded tables in a PDF and maps their rows onto
// the canonical schema. An empty slice with a nil error means no usable
// tables were found.
type TableExtractor interface {
	Rows(ctx context.Context, path string) ([]Row, error)
}

// Rasterizer renders PDF pages as images for the OCR path.
type Rasterizer interface {
	Pages(ctx context.Context, path string) ([]image.Image, error)
}

// ErrUnsupportedFileType marks an upload whose extension is not in the
// allow-list. Such files are skipped, never fatal for the batch.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ExtractionError wraps an OCR engine or PDF library failure for one file.
// The affected file's contribution is dropped; the batch continues.
type ExtractionError struct {
	File string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.File, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
