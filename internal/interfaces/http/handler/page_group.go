package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"polydoc-api/internal/application/catalog"
	"polydoc-api/internal/domain/entity"
	"polydoc-api/internal/interfaces/http/dto"
	"polydoc-api/pkg/errors"
	"polydoc-api/pkg/logger"
)

// PageGroupCatalog is the slice of the catalog service the page group
// handler needs.
type PageGroupCatalog interface {
	LoadPageGroup(ctx context.Context, id string) (*entity.PageGroup, error)
	ListPageGroups(ctx context.Context, language string) ([]*entity.PageGroup, error)
	UpdatePageGroup(ctx context.Context, id string, in catalog.UpdatePageGroupInput) (*entity.PageGroup, error)
	DeletePageGroup(ctx context.Context, id string) (bool, error)
	AddTranslationToPageGroup(ctx context.Context, id, language, text string) (*entity.PageGroup, error)
}

// PageGroupHandler serves the /page-groups routes.
type PageGroupHandler struct {
	svc PageGroupCatalog
}

// NewPageGroupHandler creates the page group handler.
func NewPageGroupHandler(svc PageGroupCatalog) *PageGroupHandler {
	return &PageGroupHandler{svc: svc}
}

// ListPageGroups returns page groups, optionally filtered by root language.
// @Summary List page groups
// @Tags PageGroups
// @Produce json
// @Param language query string false "root language filter"
// @Success 200 {array} entity.PageGroup
// @Router /page-groups [get]
func (h *PageGroupHandler) ListPageGroups(c *gin.Context) {
	ctx := c.Request.Context()

	groups, err := h.svc.ListPageGroups(ctx, c.Query("language"))
	if err != nil {
		logger.Error(ctx, "failed to list page groups", err)
		dto.InternalError(c, "failed to list page groups")
		return
	}

	dto.Success(c, groups)
}

// GetPageGroup returns one page group.
// @Summary Get a page group
// @Tags PageGroups
// @Produce json
// @Param id path string true "page group id"
// @Success 200 {object} entity.PageGroup
// @Router /page-groups/{id} [get]
func (h *PageGroupHandler) GetPageGroup(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	group, err := h.svc.LoadPageGroup(ctx, id)
	if err != nil {
		logger.Error(ctx, "failed to get page group", err, "page_group_id", id)
		dto.InternalError(c, "failed to get page group")
		return
	}
	if group == nil {
		dto.NotFound(c, "page group not found")
		return
	}

	dto.Success(c, group)
}

// UpdatePageGroup applies a partial update.
// @Summary Update a page group
// @Tags PageGroups
// @Accept json
// @Produce json
// @Param id path string true "page group id"
// @Param body body dto.UpdatePageGroupRequest true "fields to update"
// @Success 200 {object} entity.PageGroup
// @Router /page-groups/{id} [put]
func (h *PageGroupHandler) UpdatePageGroup(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req dto.UpdatePageGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	group, err := h.svc.UpdatePageGroup(ctx, id, req.ToInput())
	if err != nil {
		if errors.IsAppError(err) && errors.AsAppError(err).HTTPStatus < http.StatusInternalServerError {
			dto.FromError(c, err)
			return
		}
		logger.Error(ctx, "failed to update page group", err, "page_group_id", id)
		dto.InternalError(c, "failed to update page group")
		return
	}
	if group == nil {
		dto.NotFound(c, "page group not found")
		return
	}

	dto.Success(c, group)
}

// DeletePageGroup removes a page group and its stored image.
// @Summary Delete a page group
// @Tags PageGroups
// @Produce json
// @Param id path string true "page group id"
// @Success 200 {object} dto.SuccessResponse
// @Router /page-groups/{id} [delete]
func (h *PageGroupHandler) DeletePageGroup(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	deleted, err := h.svc.DeletePageGroup(ctx, id)
	if err != nil {
		logger.Error(ctx, "failed to delete page group", err, "page_group_id", id)
		dto.InternalError(c, "failed to delete page group")
		return
	}
	if !deleted {
		dto.NotFound(c, "page group not found")
		return
	}

	dto.Success(c, dto.SuccessResponse{Success: true})
}

// AddTranslation inserts or overwrites one translation of the page group.
// @Summary Add a translation to a page group
// @Tags PageGroups
// @Accept json
// @Produce json
// @Param id path string true "page group id"
// @Param body body dto.AddTranslationRequest true "language and text"
// @Success 200 {object} dto.PageGroupResponse
// @Router /page-groups/{id}/translations [post]
func (h *PageGroupHandler) AddTranslation(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req dto.AddTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	group, err := h.svc.AddTranslationToPageGroup(ctx, id, req.Language, req.Text)
	if err != nil {
		if errors.IsAppError(err) && errors.AsAppError(err).HTTPStatus < http.StatusInternalServerError {
			dto.FromError(c, err)
			return
		}
		logger.Error(ctx, "failed to add translation", err,
			"page_group_id", id, "language", req.Language)
		dto.InternalError(c, "failed to add translation")
		return
	}
	if group == nil {
		dto.NotFound(c, "page group not found")
		return
	}

	dto.Success(c, dto.PageGroupResponse{Success: true, PageGroup: group})
}
