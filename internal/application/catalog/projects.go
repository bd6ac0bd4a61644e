package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"polydoc-api/internal/domain/entity"
	"polydoc-api/internal/domain/repository"
	apperrors "polydoc-api/pkg/errors"
	"polydoc-api/pkg/logger"
	"polydoc-api/pkg/metrics"
)

// CreateProjectInput carries the fields for creating a project.
type CreateProjectInput struct {
	Title                string
	Description          string
	FileName             string
	RootLanguage         string
	TranslationLanguages []string
}

// CreateProject validates the input, persists the project and seeds the
// cache.
func (s *Service) CreateProject(ctx context.Context, in CreateProjectInput) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "catalog.CreateProject")
	defer span.End()

	project := entity.NewProject(in.Title, in.Description, in.FileName, in.RootLanguage, in.TranslationLanguages)
	if err := project.Validate(); err != nil {
		return nil, apperrors.ErrValidationFailed.WithDetail(err.Error())
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "create project")
	}
	span.SetAttributes(attribute.String("project.id", project.ID))

	s.cacheProject(ctx, project)
	logger.Info(ctx, "project created", "project_id", project.ID, "title", project.Title)
	return project, nil
}

// GetProjects returns all projects, newest first, each annotated with its
// linked page group ids. Storage failures propagate; the cache is never used
// as a fallback for listings.
func (s *Service) GetProjects(ctx context.Context, filter *repository.ProjectFilter) ([]*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "catalog.GetProjects")
	defer span.End()

	projects, err := s.projects.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "list projects")
	}
	return projects, nil
}

// GetProject returns the project or (nil, nil) when it does not exist. Cache
// hits skip the database; concurrent misses for the same id collapse into a
// single load, and not-found results are never cached.
func (s *Service) GetProject(ctx context.Context, id string) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "catalog.GetProject")
	defer span.End()

	if s.cache == nil {
		return s.loadProject(ctx, id)
	}

	loaded := false
	data, err := s.cache.GetOrLoadSafe(ctx, projectCacheKey(id), s.cacheTTL, func() (interface{}, error) {
		loaded = true
		metrics.CacheMisses.WithLabelValues("project").Inc()
		project, err := s.loadProject(ctx, id)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, errMissingEntity
		}
		return project, nil
	})
	if err != nil {
		if errors.Is(err, errMissingEntity) {
			return nil, nil
		}
		return nil, err
	}
	if !loaded {
		metrics.CacheHits.WithLabelValues("project").Inc()
	}

	var project entity.Project
	if err := json.Unmarshal(data, &project); err != nil {
		// A corrupt entry would block the key until it expires; drop it.
		s.invalidateProject(ctx, id)
		return s.loadProject(ctx, id)
	}
	return &project, nil
}

func (s *Service) loadProject(ctx context.Context, id string) (*entity.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "get project")
	}
	return project, nil
}

// UpdateProjectInput carries a partial project update. Nil fields keep their
// stored values.
type UpdateProjectInput struct {
	Title                *string
	Description          *string
	RootLanguage         *string
	TranslationLanguages []string
	Status               *entity.ProjectStatus
}

// UpdateProject applies the provided fields, always refreshing updatedAt,
// and invalidates the cache. Returns (nil, nil) when the project does not
// exist.
func (s *Service) UpdateProject(ctx context.Context, id string, in UpdateProjectInput) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "catalog.UpdateProject")
	defer span.End()

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "load project for update")
	}
	if project == nil {
		return nil, nil
	}

	if in.Title != nil {
		project.Title = *in.Title
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.RootLanguage != nil {
		project.RootLanguage = *in.RootLanguage
	}
	if in.TranslationLanguages != nil {
		project.TranslationLanguages = in.TranslationLanguages
	}
	if in.Status != nil {
		project.Status = *in.Status
	}

	if err := project.Validate(); err != nil {
		return nil, apperrors.ErrValidationFailed.WithDetail(err.Error())
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "update project")
	}

	s.invalidateProject(ctx, id)
	return project, nil
}

// DeleteProject removes the project, its linked page groups, and their join
// rows in one transaction. Returns false when the project did not exist.
// Image blobs are removed best-effort after the commit.
func (s *Service) DeleteProject(ctx context.Context, id string) (bool, error) {
	ctx, span := tracer.Start(ctx, "catalog.DeleteProject")
	defer span.End()

	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeDatabaseError, "load project for delete")
	}
	if project == nil {
		return false, nil
	}

	var deleted []*entity.PageGroup
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		groups, err := s.groups.ListByProject(ctx, id)
		if err != nil {
			return err
		}
		for _, group := range groups {
			if err := s.groups.Delete(ctx, group.ID); err != nil {
				return err
			}
		}
		if err := s.projects.Delete(ctx, id); err != nil {
			return err
		}
		deleted = groups
		return nil
	})
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.CodeDatabaseError, "delete project cascade")
	}

	for _, group := range deleted {
		s.deleteBlob(ctx, group.ImageBlobID)
		s.invalidatePageGroup(ctx, group.ID)
	}
	s.invalidateProject(ctx, id)

	logger.Info(ctx, "project deleted", "project_id", id, "page_groups", len(deleted))
	return true, nil
}

// AddPageGroupToProject links a page group to a project. Both ids must
// exist; the link itself is idempotent.
func (s *Service) AddPageGroupToProject(ctx context.Context, projectID, pageGroupID string) error {
	ctx, span := tracer.Start(ctx, "catalog.AddPageGroupToProject")
	defer span.End()

	if err := s.requireProject(ctx, projectID); err != nil {
		return err
	}
	if err := s.requirePageGroup(ctx, pageGroupID); err != nil {
		return err
	}

	if err := s.projects.AddPageGroup(ctx, projectID, pageGroupID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "link page group")
	}
	s.invalidateProject(ctx, projectID)
	return nil
}

// RemovePageGroupFromProject unlinks a page group from a project. Both ids
// must exist; removal of an absent link is a no-op.
func (s *Service) RemovePageGroupFromProject(ctx context.Context, projectID, pageGroupID string) error {
	ctx, span := tracer.Start(ctx, "catalog.RemovePageGroupFromProject")
	defer span.End()

	if err := s.requireProject(ctx, projectID); err != nil {
		return err
	}
	if err := s.requirePageGroup(ctx, pageGroupID); err != nil {
		return err
	}

	if err := s.projects.RemovePageGroup(ctx, projectID, pageGroupID); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "unlink page group")
	}
	s.invalidateProject(ctx, projectID)
	return nil
}

func (s *Service) requireProject(ctx context.Context, id string) error {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "check project")
	}
	if project == nil {
		return apperrors.ErrProjectNotFound.WithDetail(id)
	}
	return nil
}

func (s *Service) requirePageGroup(ctx context.Context, id string) error {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "check page group")
	}
	if group == nil {
		return apperrors.ErrPageGroupNotFound.WithDetail(id)
	}
	return nil
}
