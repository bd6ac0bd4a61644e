package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"polydoc-api/internal/domain/entity"
	"polydoc-api/internal/infrastructure/storage"
	apperrors "polydoc-api/pkg/errors"
	"polydoc-api/pkg/logger"
	"polydoc-api/pkg/metrics"
)

// ImageUpload is an optional scanned source image attached at creation.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        io.Reader
}

// CreatePageGroupInput carries the fields for creating a page group.
type CreatePageGroupInput struct {
	Title        string
	FileName     string
	RootLanguage string
	RootText     string
	Translations map[string]string
	Status       entity.PageGroupStatus
	Image        *ImageUpload
}

// CreatePageGroup persists a new page group, uploading the source image
// first when one is supplied. Upload failure does not fail the operation;
// the group is created without an image.
func (s *Service) CreatePageGroup(ctx context.Context, in CreatePageGroupInput) (*entity.PageGroup, error) {
	ctx, span := tracer.Start(ctx, "catalog.CreatePageGroup")
	defer span.End()

	group := entity.NewPageGroup(in.Title, in.FileName, in.RootLanguage, in.RootText)
	for lang, text := range in.Translations {
		group.Translations[lang] = text
	}
	if in.Status != "" {
		group.Status = in.Status
	}
	if err := group.Validate(); err != nil {
		return nil, apperrors.ErrValidationFailed.WithDetail(err.Error())
	}

	if in.Image != nil && s.blobs != nil {
		key := storage.BlobKey(group.FileName, in.Image.FileName, time.Now())
		url, err := s.blobs.Put(ctx, key, in.Image.ContentType, in.Image.Data)
		if err != nil {
			logger.Warn(ctx, "image upload failed, creating page group without image",
				"page_group_id", group.ID, "error", err)
		} else {
			group.ImageURL = url
			group.ImageBlobID = key
		}
	}

	if err := s.groups.Create(ctx, group); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "create page group")
	}
	span.SetAttributes(attribute.String("page_group.id", group.ID))

	s.cachePageGroup(ctx, group)
	logger.Info(ctx, "page group created", "page_group_id", group.ID, "root_language", group.RootLanguage)
	return group, nil
}

// LoadPageGroup returns the page group or (nil, nil) when it does not exist.
// Cache hits skip the database; concurrent misses for the same id collapse
// into a single load, and not-found results are never cached.
func (s *Service) LoadPageGroup(ctx context.Context, id string) (*entity.PageGroup, error) {
	ctx, span := tracer.Start(ctx, "catalog.LoadPageGroup")
	defer span.End()

	if s.cache == nil {
		return s.loadPageGroup(ctx, id)
	}

	loaded := false
	data, err := s.cache.GetOrLoadSafe(ctx, pageGroupCacheKey(id), s.cacheTTL, func() (interface{}, error) {
		loaded = true
		metrics.CacheMisses.WithLabelValues("page_group").Inc()
		group, err := s.loadPageGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, errMissingEntity
		}
		return group, nil
	})
	if err != nil {
		if errors.Is(err, errMissingEntity) {
			return nil, nil
		}
		return nil, err
	}
	if !loaded {
		metrics.CacheHits.WithLabelValues("page_group").Inc()
	}

	var group entity.PageGroup
	if err := json.Unmarshal(data, &group); err != nil {
		s.invalidatePageGroup(ctx, id)
		return s.loadPageGroup(ctx, id)
	}
	return &group, nil
}

func (s *Service) loadPageGroup(ctx context.Context, id string) (*entity.PageGroup, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "get page group")
	}
	return group, nil
}

// ListPageGroups returns page groups whose root language matches, newest
// first. An empty language returns all page groups.
func (s *Service) ListPageGroups(ctx context.Context, language string) ([]*entity.PageGroup, error) {
	ctx, span := tracer.Start(ctx, "catalog.ListPageGroups")
	defer span.End()

	groups, err := s.groups.ListByLanguage(ctx, language)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "list page groups")
	}
	return groups, nil
}

// UpdatePageGroupInput carries a partial page group update. Nil fields keep
// their stored values; a non-nil Translations map replaces the whole object.
type UpdatePageGroupInput struct {
	Title        *string
	RootText     *string
	Translations map[string]string
	Status       *entity.PageGroupStatus
}

// UpdatePageGroup applies the provided fields and invalidates the cache.
// Returns (nil, nil) when the page group does not exist.
func (s *Service) UpdatePageGroup(ctx context.Context, id string, in UpdatePageGroupInput) (*entity.PageGroup, error) {
	ctx, span := tracer.Start(ctx, "catalog.UpdatePageGroup")
	defer span.End()

	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "load page group for update")
	}
	if group == nil {
		return nil, nil
	}

	if in.Title != nil {
		group.Title = *in.Title
	}
	if in.RootText != nil {
		group.RootText = *in.RootText
	}
	if in.Translations != nil {
		// Whole-object replace, not a merge.
		group.Translations = in.Translations
	}
	if in.Status != nil {
		group.Status = *in.Status
	}

	if err := group.Validate(); err != nil {
		return nil, apperrors.ErrValidationFailed.WithDetail(err.Error())
	}

	if err := s.groups.Update(ctx, group); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "update page group")
	}

	s.invalidatePageGroup(ctx, id)

	fresh, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "reload page group")
	}
	return fresh, nil
}

// DeletePageGroup removes the page group row and, best-effort, its image
// blob. Returns false when the page group did not exist.
func (s *Service) DeletePageGroup(ctx context.Context, id string) (bool, error) {
	ctx, span := tracer.Start(ctx, "catalog.DeletePageGroup")
	defer span.End()

	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeDatabaseError, "load page group for delete")
	}
	if group == nil {
		return false, nil
	}

	if err := s.groups.Delete(ctx, id); err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeDatabaseError, "delete page group")
	}

	s.deleteBlob(ctx, group.ImageBlobID)
	s.invalidatePageGroup(ctx, id)

	logger.Info(ctx, "page group deleted", "page_group_id", id)
	return true, nil
}

// AddTranslationToPageGroup inserts or overwrites the translation for one
// language. Returns (nil, nil) when the page group does not exist.
func (s *Service) AddTranslationToPageGroup(ctx context.Context, id, language, text string) (*entity.PageGroup, error) {
	ctx, span := tracer.Start(ctx, "catalog.AddTranslationToPageGroup")
	defer span.End()

	if !entity.IsLanguageCode(language) {
		return nil, apperrors.ErrInvalidParam.WithDetail("invalid language code " + language)
	}

	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "load page group for translation")
	}
	if group == nil {
		return nil, nil
	}

	group.SetTranslation(language, text)
	if err := s.groups.Update(ctx, group); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "save translation")
	}

	s.invalidatePageGroup(ctx, id)
	return group, nil
}

// UpdatePageGroupRootText replaces the root text. Returns (nil, nil) when
// the page group does not exist.
func (s *Service) UpdatePageGroupRootText(ctx context.Context, id, text string) (*entity.PageGroup, error) {
	return s.UpdatePageGroup(ctx, id, UpdatePageGroupInput{RootText: &text})
}
