// Package repository defines the data-access layer interfaces.
package repository

import (
	"context"

	"polydoc-api/internal/domain/entity"
)

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Status entity.ProjectStatus
}

// ProjectRepository is the project persistence interface.
type ProjectRepository interface {
	// Create persists a project.
	Create(ctx context.Context, project *entity.Project) error

	// GetByID returns a project or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id string) (*entity.Project, error)

	// Update persists the given field values, refreshing updated_at.
	Update(ctx context.Context, project *entity.Project) error

	// Delete removes the project row. Join rows cascade.
	Delete(ctx context.Context, id string) error

	// List returns projects ordered newest created_at first, each annotated
	// with its linked page group ids.
	List(ctx context.Context, filter *ProjectFilter) ([]*entity.Project, error)

	// AddPageGroup links a page group to a project. Idempotent; touches the
	// project's updated_at.
	AddPageGroup(ctx context.Context, projectID, pageGroupID string) error

	// RemovePageGroup unlinks a page group from a project. Idempotent;
	// touches the project's updated_at.
	RemovePageGroup(ctx context.Context, projectID, pageGroupID string) error

	// ListPageGroupIDs returns the ids of page groups linked to a project,
	// in link order.
	ListPageGroupIDs(ctx context.Context, projectID string) ([]string, error)

	// HasPageGroup reports whether the link row exists.
	HasPageGroup(ctx context.Context, projectID, pageGroupID string) (bool, error)
}
