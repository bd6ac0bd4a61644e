package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"polydoc-api/internal/interfaces/http/dto"
	"polydoc-api/pkg/logger"
)

// SchemaManager manages the service's database schema.
type SchemaManager interface {
	SchemaStatus(ctx context.Context) (map[string]bool, error)
	EnsureSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error
}

// BootstrapHandler serves the /init routes: GET reports the schema status,
// POST applies the schema, DELETE drops and recreates it.
type BootstrapHandler struct {
	schema SchemaManager
}

// NewBootstrapHandler creates the bootstrap handler.
func NewBootstrapHandler(schema SchemaManager) *BootstrapHandler {
	return &BootstrapHandler{schema: schema}
}

// InitStatusResponse reports the bootstrap state.
type InitStatusResponse struct {
	Status string          `json:"status"`
	Tables map[string]bool `json:"tables,omitempty"`
}

// Status reports which tables exist.
// @Summary Report schema status
// @Tags System
// @Produce json
// @Success 200 {object} InitStatusResponse
// @Router /init [get]
func (h *BootstrapHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	tables, err := h.schema.SchemaStatus(ctx)
	if err != nil {
		logger.Error(ctx, "failed to read schema status", err)
		dto.InternalError(c, "failed to read schema status")
		return
	}

	status := "ready"
	for _, exists := range tables {
		if !exists {
			status = "uninitialized"
			break
		}
	}

	dto.Success(c, InitStatusResponse{Status: status, Tables: tables})
}

// Apply creates the tables. Idempotent.
// @Summary Initialize the schema
// @Tags System
// @Produce json
// @Success 200 {object} InitStatusResponse
// @Router /init [post]
func (h *BootstrapHandler) Apply(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.schema.EnsureSchema(ctx); err != nil {
		logger.Error(ctx, "failed to apply schema", err)
		dto.InternalError(c, "failed to apply schema")
		return
	}

	logger.Info(ctx, "schema applied")
	dto.Success(c, InitStatusResponse{Status: "initialized"})
}

// Reset drops all tables and recreates them empty.
// @Summary Reset the schema
// @Tags System
// @Produce json
// @Success 200 {object} InitStatusResponse
// @Router /init [delete]
func (h *BootstrapHandler) Reset(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.schema.DropSchema(ctx); err != nil {
		logger.Error(ctx, "failed to drop schema", err)
		dto.InternalError(c, "failed to drop schema")
		return
	}
	if err := h.schema.EnsureSchema(ctx); err != nil {
		logger.Error(ctx, "failed to recreate schema", err)
		dto.InternalError(c, "failed to recreate schema")
		return
	}

	logger.Info(ctx, "schema reset")
	dto.Success(c, InitStatusResponse{Status: "reset"})
}
