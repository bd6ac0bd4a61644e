package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"polydoc-api/internal/application/translation"
	"polydoc-api/internal/interfaces/http/dto"
	"polydoc-api/pkg/errors"
	"polydoc-api/pkg/logger"
)

// Translator performs one translation call.
type Translator interface {
	Translate(ctx context.Context, req translation.Request) (*translation.Result, error)
}

// TranslateHandler serves the /translate route.
type TranslateHandler struct {
	svc Translator
}

// NewTranslateHandler creates the translate handler.
func NewTranslateHandler(svc Translator) *TranslateHandler {
	return &TranslateHandler{svc: svc}
}

// Translate forwards the text to the selected LLM provider.
// @Summary Translate text
// @Tags Translation
// @Accept json
// @Produce json
// @Param body body dto.TranslateRequest true "translation request"
// @Success 200 {object} translation.Result
// @Router /translate [post]
func (h *TranslateHandler) Translate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "text, sourceLanguage and targetLanguage are required")
		return
	}

	result, err := h.svc.Translate(ctx, req.ToRequest())
	if err != nil {
		if errors.IsAppError(err) && errors.AsAppError(err).HTTPStatus < http.StatusInternalServerError {
			dto.FromError(c, err)
			return
		}
		logger.Error(ctx, "translation failed", err,
			"source", req.SourceLanguage, "target", req.TargetLanguage, "model", req.Model)
		dto.InternalError(c, "translation failed")
		return
	}

	dto.Success(c, result)
}
