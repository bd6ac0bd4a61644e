// Package handler provides the HTTP request handlers.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"polydoc-api/internal/application/catalog"
	"polydoc-api/internal/domain/entity"
	"polydoc-api/internal/domain/repository"
	"polydoc-api/internal/interfaces/http/dto"
	"polydoc-api/pkg/errors"
	"polydoc-api/pkg/logger"
)

// ProjectCatalog is the slice of the catalog service the project handler
// needs.
type ProjectCatalog interface {
	CreateProject(ctx context.Context, in catalog.CreateProjectInput) (*entity.Project, error)
	GetProjects(ctx context.Context, filter *repository.ProjectFilter) ([]*entity.Project, error)
	GetProjectWithPages(ctx context.Context, projectID string) (*catalog.ProjectWithPages, error)
	GetProjectWithLinkedPages(ctx context.Context, projectID string) (*catalog.ProjectWithLinkedPages, error)
	UpdateProject(ctx context.Context, id string, in catalog.UpdateProjectInput) (*entity.Project, error)
	DeleteProject(ctx context.Context, id string) (bool, error)
	AddPageToProject(ctx context.Context, projectID, pageID, language string) error
	RemovePageFromProject(ctx context.Context, projectID, pageID string) error
}

// ProjectHandler serves the /projects routes.
type ProjectHandler struct {
	svc ProjectCatalog
}

// NewProjectHandler creates the project handler.
func NewProjectHandler(svc ProjectCatalog) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// ListProjects returns all projects, newest first.
// @Summary List projects
// @Tags Projects
// @Produce json
// @Success 200 {array} entity.Project
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()

	var filter *repository.ProjectFilter
	if status := c.Query("status"); status != "" {
		filter = &repository.ProjectFilter{Status: entity.ProjectStatus(status)}
	}

	projects, err := h.svc.GetProjects(ctx, filter)
	if err != nil {
		logger.Error(ctx, "failed to list projects", err)
		dto.InternalError(c, "failed to list projects")
		return
	}

	dto.Success(c, projects)
}

// CreateProject creates a project.
// @Summary Create a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body dto.CreateProjectRequest true "project fields"
// @Success 201 {object} entity.Project
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	project, err := h.svc.CreateProject(ctx, req.ToInput())
	if err != nil {
		if errors.IsAppError(err) && errors.AsAppError(err).HTTPStatus < http.StatusInternalServerError {
			dto.FromError(c, err)
			return
		}
		logger.Error(ctx, "failed to create project", err)
		dto.InternalError(c, "failed to create project")
		return
	}

	dto.Created(c, project)
}

// GetProject returns one project with its pages bucketed by language.
// @Summary Get a project with its pages
// @Tags Projects
// @Produce json
// @Param id path string true "project id"
// @Success 200 {object} catalog.ProjectWithPages
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	result, err := h.svc.GetProjectWithPages(ctx, id)
	if err != nil {
		logger.Error(ctx, "failed to get project", err, "project_id", id)
		dto.InternalError(c, "failed to get project")
		return
	}
	if result == nil {
		dto.NotFound(c, "project not found")
		return
	}

	dto.Success(c, result)
}

// GetProjectLinked returns the alternate aggregate grouped by page group.
// @Summary Get a project with linked page sets
// @Tags Projects
// @Produce json
// @Param id path string true "project id"
// @Success 200 {object} catalog.ProjectWithLinkedPages
// @Router /projects/{id}/linked [get]
func (h *ProjectHandler) GetProjectLinked(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	result, err := h.svc.GetProjectWithLinkedPages(ctx, id)
	if err != nil {
		logger.Error(ctx, "failed to get project linked pages", err, "project_id", id)
		dto.InternalError(c, "failed to get project")
		return
	}
	if result == nil {
		dto.NotFound(c, "project not found")
		return
	}

	dto.Success(c, result)
}

// UpdateProject applies a partial update.
// @Summary Update a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "project id"
// @Param body body dto.UpdateProjectRequest true "fields to update"
// @Success 200 {object} entity.Project
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	project, err := h.svc.UpdateProject(ctx, id, req.ToInput())
	if err != nil {
		if errors.IsAppError(err) && errors.AsAppError(err).HTTPStatus < http.StatusInternalServerError {
			dto.FromError(c, err)
			return
		}
		logger.Error(ctx, "failed to update project", err, "project_id", id)
		dto.InternalError(c, "failed to update project")
		return
	}
	if project == nil {
		dto.NotFound(c, "project not found")
		return
	}

	dto.Success(c, project)
}

// DeleteProject removes a project and its linked page groups.
// @Summary Delete a project
// @Tags Projects
// @Produce json
// @Param id path string true "project id"
// @Success 200 {object} dto.SuccessResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	deleted, err := h.svc.DeleteProject(ctx, id)
	if err != nil {
		logger.Error(ctx, "failed to delete project", err, "project_id", id)
		dto.InternalError(c, "failed to delete project")
		return
	}
	if !deleted {
		dto.NotFound(c, "project not found")
		return
	}

	dto.Success(c, dto.SuccessResponse{Success: true})
}

// AddPage links a page group to the project.
// @Summary Link a page to a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "project id"
// @Param body body dto.ProjectPageRequest true "page id"
// @Success 200 {object} dto.SuccessResponse
// @Router /projects/{id}/pages [post]
func (h *ProjectHandler) AddPage(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req dto.ProjectPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.AddPageToProject(ctx, id, req.PageID, req.Language); err != nil {
		h.writeLinkError(c, err, id, req.PageID)
		return
	}

	dto.Success(c, dto.SuccessResponse{Success: true})
}

// RemovePage unlinks a page group from the project.
// @Summary Unlink a page from a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "project id"
// @Param body body dto.ProjectPageRequest true "page id"
// @Success 200 {object} dto.SuccessResponse
// @Router /projects/{id}/pages [delete]
func (h *ProjectHandler) RemovePage(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req dto.ProjectPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.svc.RemovePageFromProject(ctx, id, req.PageID); err != nil {
		h.writeLinkError(c, err, id, req.PageID)
		return
	}

	dto.Success(c, dto.SuccessResponse{Success: true})
}

// writeLinkError maps link failures: an unknown id on either side is a
// client error, everything else a 500.
func (h *ProjectHandler) writeLinkError(c *gin.Context, err error, projectID, pageID string) {
	ctx := c.Request.Context()
	if errors.IsAppError(err) {
		appErr := errors.AsAppError(err)
		switch appErr.Code {
		case errors.CodeProjectNotFound, errors.CodePageGroupNotFound, errors.CodePageNotFound:
			dto.BadRequest(c, appErr.Message)
			return
		}
		if appErr.HTTPStatus < http.StatusInternalServerError {
			dto.FromError(c, err)
			return
		}
	}
	logger.Error(ctx, "project page link operation failed", err,
		"project_id", projectID, "page_id", pageID)
	dto.InternalError(c, "failed to update project pages")
}
