package handlers

import (
	"errors"
	"io"

	"finsight/internal/dto"
	"finsight/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ImportHandler struct {
	importService *service.ImportService
	logger        *zap.Logger
}

func NewImportHandler(importService *service.ImportService, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		logger:        logger,
	}
}

// ParseUploads godoc
// @Summary Extract candidate transactions from uploaded documents
// @Description Accepts receipts (images/PDFs) and tabular bank statements (PDFs), auto-detects the extraction path per file, and returns uncommitted candidate transactions for review.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "One or more documents (png, jpg, jpeg, webp, pdf)"
// @Security Bearer
// @Success 200 {object} dto.ParseUploadsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/imports/parse [post]
func (h *ImportHandler) ParseUploads(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files field",
		})
	}

	headers := form.File["files"]
	files := make([]service.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			h.logger.Warn("Failed to open uploaded file",
				zap.String("file", fh.Filename),
				zap.Error(err),
			)
			continue
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			h.logger.Warn("Failed to read uploaded file",
				zap.String("file", fh.Filename),
				zap.Error(err),
			)
			continue
		}
		files = append(files, service.UploadedFile{Name: fh.Filename, Data: data})
	}

	candidates, err := h.importService.ParseUploads(c.Context(), files)
	if err != nil {
		if errors.Is(err, service.ErrNoFiles) || errors.Is(err, service.ErrNoSupportedFiles) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Upload parsing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to parse uploads",
		})
	}

	return c.JSON(dto.NewParseUploadsResponse(candidates))
}
