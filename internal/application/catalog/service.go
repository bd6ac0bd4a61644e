// Package catalog implements the document catalog: projects, page groups,
// their linking, and the legacy per-language page views.
package catalog

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"

	"polydoc-api/internal/domain/entity"
	"polydoc-api/internal/domain/repository"
	"polydoc-api/internal/infrastructure/storage"
	"polydoc-api/pkg/logger"
)

var tracer = otel.Tracer("application.catalog")

// Cache is the entity cache capability the service needs. Single-entity
// lookups go through GetOrLoadSafe so concurrent misses collapse into one
// database load; writes and invalidations that fail are logged and ignored,
// the database stays authoritative.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error)
}

// errMissingEntity keeps not-found lookups out of the cache.
var errMissingEntity = errors.New("entity missing")

const defaultCacheTTL = 10 * time.Minute

// Service is the single database-backed implementation of the catalog
// operations.
type Service struct {
	projects repository.ProjectRepository
	groups   repository.PageGroupRepository
	tx       repository.Transactor
	cache    Cache
	blobs    storage.BlobStore
	cacheTTL time.Duration
}

// NewService wires the catalog service. cache and blobs may be nil; the
// service then runs uncached and without image storage.
func NewService(
	projects repository.ProjectRepository,
	groups repository.PageGroupRepository,
	tx repository.Transactor,
	cache Cache,
	blobs storage.BlobStore,
	cacheTTL time.Duration,
) *Service {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &Service{
		projects: projects,
		groups:   groups,
		tx:       tx,
		cache:    cache,
		blobs:    blobs,
		cacheTTL: cacheTTL,
	}
}

func projectCacheKey(id string) string {
	return "project:" + id
}

func pageGroupCacheKey(id string) string {
	return "page_group:" + id
}

func (s *Service) cacheProject(ctx context.Context, project *entity.Project) {
	if s.cache == nil || project == nil {
		return
	}
	if err := s.cache.Set(ctx, projectCacheKey(project.ID), project, s.cacheTTL); err != nil {
		logger.Warn(ctx, "failed to cache project", "project_id", project.ID, "error", err)
	}
}

func (s *Service) cachePageGroup(ctx context.Context, group *entity.PageGroup) {
	if s.cache == nil || group == nil {
		return
	}
	if err := s.cache.Set(ctx, pageGroupCacheKey(group.ID), group, s.cacheTTL); err != nil {
		logger.Warn(ctx, "failed to cache page group", "page_group_id", group.ID, "error", err)
	}
}

func (s *Service) invalidateProject(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, projectCacheKey(id)); err != nil {
		logger.Warn(ctx, "failed to invalidate project cache", "project_id", id, "error", err)
	}
}

func (s *Service) invalidatePageGroup(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, pageGroupCacheKey(id)); err != nil {
		logger.Warn(ctx, "failed to invalidate page group cache", "page_group_id", id, "error", err)
	}
}

// deleteBlob removes a stored image, logging and continuing on failure.
func (s *Service) deleteBlob(ctx context.Context, blobID string) {
	if s.blobs == nil || blobID == "" {
		return
	}
	if err := s.blobs.Delete(ctx, blobID); err != nil {
		logger.Warn(ctx, "failed to delete image blob", "blob_id", blobID, "error", err)
	}
}
