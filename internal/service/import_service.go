package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finsight/internal/extract"
	"finsight/internal/extract/imageproc"
	"finsight/internal/extract/receipt"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNoFiles is a structural request error: nothing was uploaded.
	ErrNoFiles = errors.New("no files uploaded")
	// ErrNoSupportedFiles means files were uploaded but none carried an
	// allowed extension. Also a client error, unlike a per-file skip.
	ErrNoSupportedFiles = errors.New("no files with a supported extension")
)

// UploadedFile is one file from a multipart request.
type UploadedFile struct {
	Name string
	Data []byte
}

// ImportService decides, per uploaded file, whether to use the tabular PDF
// path or the OCR path, unifies both outputs into candidate transactions,
// and filters out invalid rows. Candidates are returned for user review and
// never persisted here.
type ImportService struct {
	tables      extract.TableExtractor
	rasterizer  extract.Rasterizer
	recognizer  extract.Recognizer
	uploadDir   string
	allowedExts map[string]struct{}
	logger      *zap.Logger
	now         func() time.Time
}

func NewImportService(
	tables extract.TableExtractor,
	rasterizer extract.Rasterizer,
	recognizer extract.Recognizer,
	uploadDir string,
	allowedExts []string,
	logger *zap.Logger,
) *ImportService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	allowed := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	return &ImportService{
		tables:      tables,
		rasterizer:  rasterizer,
		recognizer:  recognizer,
		uploadDir:   uploadDir,
		allowedExts: allowed,
		logger:      logger,
		now:         time.Now,
	}
}

// ParseUploads runs the extraction pipeline over a batch of uploads and
// returns the merged candidate list, order preserved as produced.
//
// Failures are recovered per file: one bad file never aborts the batch.
// Only structural errors (no files, none with an allowed extension) reach
// the caller.
func (s *ImportService) ParseUploads(ctx context.Context, files []UploadedFile) ([]extract.Candidate, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	var all []extract.Candidate
	accepted := 0
	for _, f := range files {
		ext, ok := s.allowedExt(f.Name)
		if !ok {
			s.logger.Debug("Skipping file with unsupported extension",
				zap.String("file", f.Name),
			)
			continue
		}
		accepted++

		candidates, err := s.parseFile(ctx, f, ext)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("File extraction failed, skipping",
				zap.String("file", f.Name),
				zap.Error(err),
			)
			continue
		}
		all = append(all, candidates...)
	}

	if accepted == 0 {
		return nil, ErrNoSupportedFiles
	}

	// Drop empties. An empty final list is still a successful outcome.
	valid := make([]extract.Candidate, 0, len(all))
	for _, c := range all {
		if c.Valid() {
			valid = append(valid, c)
		}
	}

	s.logger.Info("Upload batch parsed",
		zap.Int("files", len(files)),
		zap.Int("accepted", accepted),
		zap.Int("candidates", len(valid)),
	)
	return valid, nil
}

func (s *ImportService) allowedExt(name string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return "", false
	}
	_, ok := s.allowedExts[ext]
	return ext, ok
}

// parseFile stages the upload to a scoped temporary path and dispatches it
// to the tabular or OCR path. The staged file is removed on every exit
// path; removal failure is logged, never raised.
func (s *ImportService) parseFile(ctx context.Context, f UploadedFile, ext string) ([]extract.Candidate, error) {
	path := filepath.Join(s.uploadDir, uuid.New().String()+"."+ext)
	if err := os.WriteFile(path, f.Data, 0644); err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			s.logger.Warn("Failed to remove staged upload",
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}()

	if ext == "pdf" {
		return s.parsePDF(ctx, f.Name, path)
	}
	return s.parseImage(ctx, f.Name, path)
}

// parsePDF tries the tabular extractor first and falls back to rasterized
// OCR when the PDF yields no usable table rows.
func (s *ImportService) parsePDF(ctx context.Context, name, path string) ([]extract.Candidate, error) {
	rows, err := s.tables.Rows(ctx, path)
	if err != nil {
		return nil, &extract.ExtractionError{File: name, Err: err}
	}
	if len(rows) > 0 {
		candidates := make([]extract.Candidate, len(rows))
		for i, r := range rows {
			candidates[i] = extract.Candidate{
				Date:        r.Date,
				Type:        r.Type,
				Category:    r.Category,
				Description: r.Description,
				Amount:      r.Amount,
				Source:      extract.Source{File: name, Mode: extract.ModePDFTable},
			}
		}
		return candidates, nil
	}

	pages, err := s.rasterizer.Pages(ctx, path)
	if err != nil {
		return nil, &extract.ExtractionError{File: name, Err: err}
	}
	return s.recognizePages(ctx, name, pages, extract.ModeOCRPDF)
}

func (s *ImportService) parseImage(ctx context.Context, name, path string) ([]extract.Candidate, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &extract.ExtractionError{File: name, Err: err}
	}
	return s.recognizePages(ctx, name, []image.Image{img}, extract.ModeOCRImage)
}

// recognizePages runs the OCR path (preprocess, recognize, parse) over each
// page. Receipts missing a date get the current date; the tabular path never
// substitutes one.
func (s *ImportService) recognizePages(ctx context.Context, name string, pages []image.Image, mode extract.Mode) ([]extract.Candidate, error) {
	var candidates []extract.Candidate
	for _, page := range pages {
		lines, err := s.recognizer.Lines(ctx, imageproc.Binarize(page))
		if err != nil {
			return nil, &extract.ExtractionError{File: name, Err: err}
		}

		cand, ok := receipt.Parse(lines)
		if !ok {
			continue
		}
		if cand.Date == "" {
			cand.Date = s.now().UTC().Format("2006-01-02")
		}
		cand.Source = extract.Source{File: name, Mode: mode}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}
