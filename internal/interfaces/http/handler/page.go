package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"polydoc-api/internal/application/catalog"
	"polydoc-api/internal/domain/entity"
	"polydoc-api/internal/interfaces/http/dto"
	"polydoc-api/pkg/errors"
	"polydoc-api/pkg/logger"
)

// PageCatalog is the slice of the catalog service the page handler needs.
type PageCatalog interface {
	CreatePage(ctx context.Context, in catalog.CreatePageInput) (*entity.Page, error)
	LoadPage(ctx context.Context, id string) (*entity.Page, error)
	UpdatePage(ctx context.Context, id string, in catalog.UpdatePageInput) (*entity.Page, error)
	DeletePage(ctx context.Context, id string) (bool, error)
	ListPages(ctx context.Context, language string) ([]*entity.Page, error)
	LinkPages(ctx context.Context, rootPageID, translationPageID string) error
	UnlinkPages(ctx context.Context, rootPageID, translationPageID string) error
}

// PageHandler serves the legacy /pages routes.
type PageHandler struct {
	svc PageCatalog
}

// NewPageHandler creates the page handler.
func NewPageHandler(svc PageCatalog) *PageHandler {
	return &PageHandler{svc: svc}
}

// CreatePage creates a page from a JSON body or a multipart form with an
// optional image file.
// @Summary Create a page
// @Tags Pages
// @Accept json,mpfd
// @Produce json
// @Success 201 {object} entity.Page
// @Router /pages [post]
func (h *PageHandler) CreatePage(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePageRequest
	var image *catalog.ImageUpload

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			dto.BadRequest(c, "invalid form data: "+err.Error())
			return
		}
		if fileHeader, err := c.FormFile("imageFile"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				dto.BadRequest(c, "failed to read image file: "+err.Error())
				return
			}
			defer file.Close()
			image = &catalog.ImageUpload{
				FileName:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
				Data:        file,
			}
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			dto.BadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}

	in := req.ToInput()
	in.Image = image

	page, err := h.svc.CreatePage(ctx, in)
	if err != nil {
		if errors.IsAppError(err) && errors.AsAppError(err).HTTPStatus < http.StatusInternalServerError {
			dto.FromError(c, err)
			return
		}
		logger.Error(ctx, "failed to create page", err)
		dto.InternalError(c, "failed to create page")
		return
	}

	dto.Created(c, page)
}

// ListPages returns the legacy page views, optionally for one language.
// @Summary List pages
// @Tags Pages
// @Produce json
// @Param language query string false "language filter"
// @Success 200 {array} entity.Page
// @Router /pages [get]
func (h *PageHandler) ListPages(c *gin.Context) {
	ctx := c.Request.Context()

	pages, err := h.svc.ListPages(ctx, c.Query("language"))
	if err != nil {
		logger.Error(ctx, "failed to list pages", err)
		dto.InternalError(c, "failed to list pages")
		return
	}

	dto.Success(c, pages)
}

// GetPage resolves a legacy page id, including synthetic translation ids.
// @Summary Get a page
// @Tags Pages
// @Produce json
// @Param id path string true "page id"
// @Success 200 {object} entity.Page
// @Router /pages/{id} [get]
func (h *PageHandler) GetPage(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	page, err := h.svc.LoadPage(ctx, id)
	if err != nil {
		logger.Error(ctx, "failed to get page", err, "page_id", id)
		dto.InternalError(c, "failed to get page")
		return
	}
	if page == nil {
		dto.NotFound(c, "page not found")
		return
	}

	dto.Success(c, page)
}

// UpdatePage applies a partial update to a root or translation page.
// @Summary Update a page
// @Tags Pages
// @Accept json
// @Produce json
// @Param id path string true "page id"
// @Param body body dto.UpdatePageRequest true "fields to update"
// @Success 200 {object} entity.Page
// @Router /pages/{id} [put]
func (h *PageHandler) UpdatePage(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req dto.UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	page, err := h.svc.UpdatePage(ctx, id, req.ToInput())
	if err != nil {
		if errors.IsAppError(err) && errors.AsAppError(err).HTTPStatus < http.StatusInternalServerError {
			dto.FromError(c, err)
			return
		}
		logger.Error(ctx, "failed to update page", err, "page_id", id)
		dto.InternalError(c, "failed to update page")
		return
	}
	if page == nil {
		dto.NotFound(c, "page not found")
		return
	}

	dto.Success(c, page)
}

// DeletePage removes a root page (the whole group) or one translation.
// @Summary Delete a page
// @Tags Pages
// @Produce json
// @Param id path string true "page id"
// @Success 200 {object} dto.SuccessResponse
// @Router /pages/{id} [delete]
func (h *PageHandler) DeletePage(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	deleted, err := h.svc.DeletePage(ctx, id)
	if err != nil {
		logger.Error(ctx, "failed to delete page", err, "page_id", id)
		dto.InternalError(c, "failed to delete page")
		return
	}
	if !deleted {
		dto.NotFound(c, "page not found")
		return
	}

	dto.Success(c, dto.SuccessResponse{Success: true})
}

// LinkPages attaches a translation page to a root page.
// @Summary Link a translation page to a root page
// @Tags Pages
// @Accept json
// @Produce json
// @Param body body dto.LinkPagesRequest true "page ids"
// @Success 200 {object} dto.SuccessResponse
// @Router /pages/link [post]
func (h *PageHandler) LinkPages(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LinkPagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.LinkPages(ctx, req.RootPageID, req.TranslationPageID); err != nil {
		h.writeLinkError(c, err, req)
		return
	}

	dto.Success(c, dto.SuccessResponse{Success: true})
}

// UnlinkPages removes the link between a translation page and a root page.
// @Summary Unlink a translation page from a root page
// @Tags Pages
// @Accept json
// @Produce json
// @Param body body dto.LinkPagesRequest true "page ids"
// @Success 200 {object} dto.SuccessResponse
// @Router /pages/link [delete]
func (h *PageHandler) UnlinkPages(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LinkPagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.UnlinkPages(ctx, req.RootPageID, req.TranslationPageID); err != nil {
		h.writeLinkError(c, err, req)
		return
	}

	dto.Success(c, dto.SuccessResponse{Success: true})
}

// writeLinkError maps link failures: bad or unknown page refs are client
// errors, everything else a 500.
func (h *PageHandler) writeLinkError(c *gin.Context, err error, req dto.LinkPagesRequest) {
	ctx := c.Request.Context()
	if errors.IsAppError(err) {
		appErr := errors.AsAppError(err)
		switch appErr.Code {
		case errors.CodeInvalidPageRef, errors.CodePageNotFound, errors.CodePageGroupNotFound:
			dto.BadRequest(c, appErr.Message)
			return
		}
		if appErr.HTTPStatus < http.StatusInternalServerError {
			dto.FromError(c, err)
			return
		}
	}
	logger.Error(ctx, "page link operation failed", err,
		"root_page_id", req.RootPageID, "translation_page_id", req.TranslationPageID)
	dto.InternalError(c, "failed to update page link")
}
