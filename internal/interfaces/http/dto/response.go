// Package dto provides the HTTP layer request and response shapes.
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"polydoc-api/pkg/errors"
)

// Success writes the payload as-is with a 200.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created writes the payload as-is with a 201.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Error writes the uniform failure body {"error": message}.
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, gin.H{"error": message})
}

// BadRequest writes a 400 failure.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound writes a 404 failure.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError writes a 500 failure.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// FromError writes the failure body for an application error, using its
// mapped HTTP status. Unknown errors become a generic 500; the underlying
// cause stays server-side.
func FromError(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)
	message := appErr.Message
	if appErr.Detail != "" {
		message = appErr.Message + ": " + appErr.Detail
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		message = appErr.Message
	}
	Error(c, appErr.HTTPStatus, message)
}
