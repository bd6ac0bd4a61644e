// Package repository defines the data-access layer interfaces.
package repository

import (
	"context"

	"polydoc-api/internal/domain/entity"
)

// PageGroupRepository is the page group persistence interface.
type PageGroupRepository interface {
	// Create persists a page group.
	Create(ctx context.Context, group *entity.PageGroup) error

	// GetByID returns a page group or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id string) (*entity.PageGroup, error)

	// Update persists the given field values, refreshing updated_at.
	Update(ctx context.Context, group *entity.PageGroup) error

	// Delete removes the page group row. Join rows cascade.
	Delete(ctx context.Context, id string) error

	// ListByProject returns the page groups linked to a project, in link
	// order.
	ListByProject(ctx context.Context, projectID string) ([]*entity.PageGroup, error)

	// ListByLanguage returns page groups whose root language matches, newest
	// first. An empty language returns all page groups.
	ListByLanguage(ctx context.Context, language string) ([]*entity.PageGroup, error)
}
