package router

import (
	"polydoc-api/internal/interfaces/http/handler"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes installs the API routes on the engine root.
func RegisterRoutes(
	root *gin.Engine,
	healthHandler *handler.HealthHandler,
	bootstrapHandler *handler.BootstrapHandler,
	projectHandler *handler.ProjectHandler,
	pageGroupHandler *handler.PageGroupHandler,
	pageHandler *handler.PageHandler,
	ocrHandler *handler.OCRHandler,
	translateHandler *handler.TranslateHandler,
) {
	// Probes
	root.GET("/health", healthHandler.Health)
	root.GET("/ready", healthHandler.Ready)

	// Service bootstrap
	root.GET("/init", bootstrapHandler.Status)
	root.POST("/init", bootstrapHandler.Apply)
	root.DELETE("/init", bootstrapHandler.Reset)

	// Projects
	projects := root.Group("/projects")
	{
		projects.GET("", projectHandler.ListProjects)
		projects.POST("", projectHandler.CreateProject)
		projects.GET("/:id", projectHandler.GetProject)
		projects.PUT("/:id", projectHandler.UpdateProject)
		projects.DELETE("/:id", projectHandler.DeleteProject)
		projects.GET("/:id/linked", projectHandler.GetProjectLinked)
		projects.POST("/:id/pages", projectHandler.AddPage)
		projects.DELETE("/:id/pages", projectHandler.RemovePage)
	}

	// Legacy pages
	pages := root.Group("/pages")
	{
		pages.GET("", pageHandler.ListPages)
		pages.POST("", pageHandler.CreatePage)
		pages.POST("/link", pageHandler.LinkPages)
		pages.DELETE("/link", pageHandler.UnlinkPages)
		pages.GET("/:id", pageHandler.GetPage)
		pages.PUT("/:id", pageHandler.UpdatePage)
		pages.DELETE("/:id", pageHandler.DeletePage)
	}

	// Page groups
	pageGroups := root.Group("/page-groups")
	{
		pageGroups.GET("", pageGroupHandler.ListPageGroups)
		pageGroups.GET("/:id", pageGroupHandler.GetPageGroup)
		pageGroups.PUT("/:id", pageGroupHandler.UpdatePageGroup)
		pageGroups.DELETE("/:id", pageGroupHandler.DeletePageGroup)
		pageGroups.POST("/:id/translations", pageGroupHandler.AddTranslation)
		pageGroups.PUT("/:id/translations", pageGroupHandler.AddTranslation)
	}

	// External engines
	root.POST("/ocr", ocrHandler.Recognize)
	root.POST("/translate", translateHandler.Translate)
}
