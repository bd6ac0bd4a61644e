// Package app assembles the service's components.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"polydoc-api/internal/application/catalog"
	"polydoc-api/internal/application/translation"
	"polydoc-api/internal/config"
	"polydoc-api/internal/infrastructure/llm"
	"polydoc-api/internal/infrastructure/ocr"
	"polydoc-api/internal/infrastructure/persistence/postgres"
	"polydoc-api/internal/infrastructure/persistence/redis"
	"polydoc-api/internal/infrastructure/storage"
	"polydoc-api/internal/interfaces/http/handler"
	"polydoc-api/internal/interfaces/http/router"
	"polydoc-api/pkg/logger"
)

// App holds the wired service. Postgres is required; redis, blob storage and
// the OCR engine are optional and the service degrades without them.
type App struct {
	cfg    *config.Config
	pg     *postgres.Client
	redis  *redis.Client
	vision *ocr.GoogleVisionService
	engine *gin.Engine
}

// New wires the application. The returned cleanup releases all held
// connections.
func New(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	pg, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: %w", err)
	}

	var redisClient *redis.Client
	var cache catalog.Cache
	if rc, err := redis.NewClient(&cfg.Cache.Redis); err != nil {
		logger.Warn(ctx, "redis unavailable, running uncached", "error", err)
	} else {
		redisClient = rc
		cache = redis.NewCache(rc)
	}

	var blobs storage.BlobStore
	if r2, err := storage.NewR2Store(ctx, &cfg.Storage.R2); err != nil {
		logger.Warn(ctx, "blob storage unavailable, images disabled", "error", err)
	} else {
		blobs = r2
	}

	var vision *ocr.GoogleVisionService
	if v, err := ocr.NewGoogleVisionService(ctx, cfg.OCR.Vision); err != nil {
		logger.Warn(ctx, "OCR engine unavailable", "error", err)
	} else {
		vision = v
	}

	projectRepo := postgres.NewProjectRepository(pg)
	pageGroupRepo := postgres.NewPageGroupRepository(pg)
	txManager := postgres.NewTxManager(pg)

	catalogSvc := catalog.NewService(
		projectRepo,
		pageGroupRepo,
		txManager,
		cache,
		blobs,
		cfg.Cache.EntityTTL,
	)

	llmFactory := llm.NewEinoFactory(cfg)
	translationSvc := translation.NewService(llmFactory)

	healthHandler := handler.NewHealthHandler(pg, redisClient)
	bootstrapHandler := handler.NewBootstrapHandler(pg)
	projectHandler := handler.NewProjectHandler(catalogSvc)
	pageGroupHandler := handler.NewPageGroupHandler(catalogSvc)
	pageHandler := handler.NewPageHandler(catalogSvc)
	translateHandler := handler.NewTranslateHandler(translationSvc)

	// A typed nil must not reach the interface field; the handler checks
	// for a missing engine.
	ocrHandler := handler.NewOCRHandler(nil)
	if vision != nil {
		ocrHandler = handler.NewOCRHandler(vision)
	}

	r := router.New(cfg)
	engine := r.Engine()
	if cfg.Server.HTTP.MaxUploadSize > 0 {
		engine.MaxMultipartMemory = cfg.Server.HTTP.MaxUploadSize
	}

	router.RegisterRoutes(
		engine,
		healthHandler,
		bootstrapHandler,
		projectHandler,
		pageGroupHandler,
		pageHandler,
		ocrHandler,
		translateHandler,
	)

	app := &App{
		cfg:    cfg,
		pg:     pg,
		redis:  redisClient,
		vision: vision,
		engine: engine,
	}

	cleanup := func() {
		if app.vision != nil {
			if err := app.vision.Close(); err != nil {
				logger.Warn(ctx, "failed to close vision client", "error", err)
			}
		}
		if app.redis != nil {
			if err := app.redis.Close(); err != nil {
				logger.Warn(ctx, "failed to close redis client", "error", err)
			}
		}
		if err := app.pg.Close(); err != nil {
			logger.Warn(ctx, "failed to close postgres client", "error", err)
		}
	}

	return app, cleanup, nil
}

// Engine returns the configured HTTP engine.
func (a *App) Engine() *gin.Engine {
	return a.engine
}

// DB returns the postgres client.
func (a *App) DB() *postgres.Client {
	return a.pg
}
