// Package main applies the database schema, probes the optional backends
// and exits. It covers deploys where the /init HTTP route is not reachable.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"polydoc-api/internal/config"
	"polydoc-api/internal/infrastructure/ocr"
	"polydoc-api/internal/infrastructure/persistence/postgres"
	"polydoc-api/internal/infrastructure/persistence/redis"
	"polydoc-api/internal/infrastructure/storage"
	"polydoc-api/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	reset := flag.Bool("reset", false, "drop all tables before applying the schema")
	timeout := flag.Duration("timeout", 30*time.Second, "overall operation timeout")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pg, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		logger.Fatal(ctx, "failed to connect to postgres", err)
	}
	defer pg.Close()

	if *reset {
		logger.Info(ctx, "dropping existing tables")
		if err := pg.DropSchema(ctx); err != nil {
			logger.Fatal(ctx, "failed to drop schema", err)
		}
	}

	if err := pg.EnsureSchema(ctx); err != nil {
		logger.Fatal(ctx, "failed to apply schema", err)
	}

	status, err := pg.SchemaStatus(ctx)
	if err != nil {
		logger.Fatal(ctx, "failed to verify schema", err)
	}
	for table, exists := range status {
		if !exists {
			logger.Fatal(ctx, "table missing after apply", fmt.Errorf("table %s not created", table))
		}
	}

	logger.Info(ctx, "schema ready", "tables", len(status))

	checkOptionalBackends(ctx, cfg)
}

// checkOptionalBackends probes the services the API degrades without, so a
// deploy can spot misconfiguration before starting the server.
func checkOptionalBackends(ctx context.Context, cfg *config.Config) {
	if rc, err := redis.NewClient(&cfg.Cache.Redis); err != nil {
		logger.Warn(ctx, "redis unreachable, API will run uncached", "error", err)
	} else {
		logger.Info(ctx, "redis reachable")
		rc.Close()
	}

	if blobs, err := storage.NewR2Store(ctx, &cfg.Storage.R2); err != nil {
		logger.Warn(ctx, "blob storage unavailable, image uploads will be skipped", "error", err)
	} else if err := blobs.HealthCheck(ctx); err != nil {
		logger.Warn(ctx, "blob storage bucket unreachable", "error", err)
	} else {
		logger.Info(ctx, "blob storage reachable")
	}

	if vision, err := ocr.NewGoogleVisionService(ctx, cfg.OCR.Vision); err != nil {
		logger.Warn(ctx, "OCR engine unavailable, /ocr will return 503", "error", err)
	} else {
		logger.Info(ctx, "OCR engine configured")
		vision.Close()
	}
}
