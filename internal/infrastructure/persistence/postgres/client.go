// Package postgres provides the PostgreSQL data-access implementation.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"polydoc-api/internal/config"
)

var tracer = otel.Tracer("postgres")

// Client wraps the database connection.
type Client struct {
	db     *gorm.DB
	sql    *sql.DB
	config *config.PostgresConfig
}

// NewClient opens a PostgreSQL connection pool.
func NewClient(cfg *config.PostgresConfig) (*Client, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{
		db:     db,
		sql:    sqlDB,
		config: cfg,
	}, nil
}

// DB returns the GORM handle.
func (c *Client) DB() *gorm.DB {
	return c.db
}

// SqlDB returns the underlying sql.DB.
func (c *Client) SqlDB() *sql.DB {
	return c.sql
}

// Close closes the connection pool.
func (c *Client) Close() error {
	return c.sql.Close()
}

// Ping checks the database connection.
func (c *Client) Ping(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.Ping")
	defer span.End()

	return c.sql.PingContext(ctx)
}

// HealthCheck runs a trivial query against the database.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.HealthCheck")
	defer span.End()

	var result int
	err := c.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// ApplySchema executes DDL statements.
func (c *Client) ApplySchema(ctx context.Context, ddl string) error {
	ctx, span := tracer.Start(ctx, "postgres.ApplySchema")
	defer span.End()

	if _, err := c.sql.ExecContext(ctx, ddl); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
