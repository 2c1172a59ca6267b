// Package ocr wraps the Tesseract engine behind the extract.Recognizer
// interface.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

type TesseractRecognizer struct {
	language string
	logger   *zap.Logger
}

func NewTesseractRecognizer(language string, logger *zap.Logger) *TesseractRecognizer {
	if language == "" {
		language = "eng"
	}
	return &TesseractRecognizer{
		language: language,
		logger:   logger,
	}
}

// Lines runs Tesseract over a single binarized page and returns its text
// split into trimmed, non-empty lines in reading order.
//
// A fresh client is created per call: gosseract clients are not safe for
// concurrent use, and per-call construction keeps the recognizer free of
// state between invocations.
func (r *TesseractRecognizer) Lines(ctx context.Context, img image.Image) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode page for ocr: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(r.language); err != nil {
		return nil, fmt.Errorf("set ocr language: %w", err)
	}
	// Receipts read as one uniform block of text.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return nil, fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set ocr image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("ocr recognition: %w", err)
	}

	lines := SplitLines(text)
	r.logger.Debug("OCR page recognized",
		zap.Int("lines", len(lines)),
		zap.Int("text_length", len(text)),
	)
	return lines, nil
}

// SplitLines trims every line and drops empty ones, preserving order.
func SplitLines(text string) []string {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}
