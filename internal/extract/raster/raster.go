// Package raster renders PDF pages as images for the OCR path, used when a
// PDF carries no machine-extractable tables.
package raster

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// DefaultDPI balances OCR legibility against render cost. Below ~200 DPI
// Tesseract starts dropping small receipt fonts.
const DefaultDPI = 220

type FitzRasterizer struct {
	dpi    float64
	logger *zap.Logger
}

func NewFitzRasterizer(dpi float64, logger *zap.Logger) *FitzRasterizer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &FitzRasterizer{dpi: dpi, logger: logger}
}

// Pages renders every page of the PDF at the configured DPI, in order.
// Pages that fail to render are skipped with a warning; an unopenable
// document is an error.
func (r *FitzRasterizer) Pages(ctx context.Context, path string) ([]image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf for rasterization: %w", err)
	}
	defer doc.Close()

	var pages []image.Image
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := doc.ImageDPI(i, r.dpi)
		if err != nil {
			r.logger.Warn("Failed to rasterize page",
				zap.String("file", path),
				zap.Int("page", i+1),
				zap.Error(err),
			)
			continue
		}
		pages = append(pages, img)
	}

	r.logger.Debug("PDF rasterized",
		zap.String("file", path),
		zap.Int("pages", len(pages)),
		zap.Float64("dpi", r.dpi),
	)
	return pages, nil
}
