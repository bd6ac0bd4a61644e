package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"polydoc-api/internal/infrastructure/ocr"
	"polydoc-api/internal/interfaces/http/dto"
	"polydoc-api/pkg/logger"

	stderrors "errors"
)

// Recognizer extracts text from a page image.
type Recognizer interface {
	RecognizeImage(ctx context.Context, image io.Reader) (*ocr.Result, error)
}

// OCRHandler serves the /ocr route.
type OCRHandler struct {
	svc Recognizer
}

// NewOCRHandler creates the OCR handler.
func NewOCRHandler(svc Recognizer) *OCRHandler {
	return &OCRHandler{svc: svc}
}

// Recognize runs text recognition on an uploaded image.
// @Summary Recognize text in an image
// @Tags OCR
// @Accept mpfd
// @Produce json
// @Param image formData file true "page image"
// @Success 200 {object} dto.OCRResponse
// @Router /ocr [post]
func (h *OCRHandler) Recognize(c *gin.Context) {
	ctx := c.Request.Context()

	if h.svc == nil {
		dto.Error(c, http.StatusServiceUnavailable, "OCR engine not configured")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		dto.BadRequest(c, "image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		dto.BadRequest(c, "failed to read image file: "+err.Error())
		return
	}
	defer file.Close()

	result, err := h.svc.RecognizeImage(ctx, file)
	if err != nil {
		switch {
		case stderrors.Is(err, ocr.ErrImageTooLarge):
			dto.Error(c, http.StatusRequestEntityTooLarge, "image too large")
		case stderrors.Is(err, ocr.ErrNoText):
			dto.BadRequest(c, "image contains no readable text")
		default:
			logger.Error(ctx, "OCR recognition failed", err, "file", fileHeader.Filename)
			dto.InternalError(c, "text recognition failed")
		}
		return
	}

	dto.Success(c, dto.ToOCRResponse(result))
}
