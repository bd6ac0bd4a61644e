// Package postgres provides the PostgreSQL repository implementations.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"polydoc-api/internal/domain/entity"
	"polydoc-api/internal/domain/repository"
)

// ProjectRepository is the PostgreSQL project repository.
type ProjectRepository struct {
	client *Client
}

// NewProjectRepository creates a project repository.
func NewProjectRepository(client *Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// Create persists a project.
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	query := `
		INSERT INTO projects (id, title, description, file_name, root_language,
			translation_languages, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.ExecContext(ctx, query,
		project.ID, project.Title, project.Description, project.FileName,
		project.RootLanguage, pq.Array(project.TranslationLanguages),
		project.Status, project.CreatedAt, project.UpdatedAt,
	)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetByID returns a project by id, annotated with its linked page group
// ids, or (nil, nil) when it does not exist.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	query := `
		SELECT id, title, description, file_name, root_language,
			translation_languages, status, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var project entity.Project
	err := q.QueryRowContext(ctx, query, id).Scan(
		&project.ID, &project.Title, &project.Description, &project.FileName,
		&project.RootLanguage, pq.Array(&project.TranslationLanguages),
		&project.Status, &project.CreatedAt, &project.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	groupIDs, err := r.ListPageGroupIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	project.PageGroupIDs = groupIDs

	return &project, nil
}

// Update persists the project's current field values.
func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	query := `
		UPDATE projects
		SET title = $1, description = $2, file_name = $3, root_language = $4,
			translation_languages = $5, status = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		project.Title, project.Description, project.FileName, project.RootLanguage,
		pq.Array(project.TranslationLanguages), project.Status, project.ID,
	).Scan(&project.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// Delete removes the project row. Join rows cascade via the schema.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	query := `DELETE FROM projects WHERE id = $1`
	if _, err := q.ExecContext(ctx, query, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// List returns projects ordered newest created_at first, each annotated
// with its linked page group ids.
func (r *ProjectRepository) List(ctx context.Context, filter *repository.ProjectFilter) ([]*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	whereClause := "1=1"
	args := []interface{}{}
	if filter != nil && filter.Status != "" {
		whereClause += " AND status = $1"
		args = append(args, filter.Status)
	}

	query := fmt.Sprintf(`
		SELECT id, title, description, file_name, root_language,
			translation_languages, status, created_at, updated_at
		FROM projects
		WHERE %s
		ORDER BY created_at DESC
	`, whereClause)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []*entity.Project{}
	byID := map[string]*entity.Project{}
	for rows.Next() {
		var project entity.Project
		if err := rows.Scan(
			&project.ID, &project.Title, &project.Description, &project.FileName,
			&project.RootLanguage, pq.Array(&project.TranslationLanguages),
			&project.Status, &project.CreatedAt, &project.UpdatedAt,
		); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		project.PageGroupIDs = []string{}
		projects = append(projects, &project)
		byID[project.ID] = &project
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	if err := r.annotatePageGroupIDs(ctx, q, byID); err != nil {
		return nil, err
	}

	return projects, nil
}

// annotatePageGroupIDs fills PageGroupIDs for the given projects in one
// pass over the join table.
func (r *ProjectRepository) annotatePageGroupIDs(ctx context.Context, q Querier, byID map[string]*entity.Project) error {
	if len(byID) == 0 {
		return nil
	}

	query := `
		SELECT project_id, page_group_id
		FROM project_page_groups
		ORDER BY created_at ASC
	`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to list project page group links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var projectID, pageGroupID string
		if err := rows.Scan(&projectID, &pageGroupID); err != nil {
			return fmt.Errorf("failed to scan link row: %w", err)
		}
		if project, ok := byID[projectID]; ok {
			project.PageGroupIDs = append(project.PageGroupIDs, pageGroupID)
		}
	}
	return rows.Err()
}

// AddPageGroup links a page group to a project. Inserting an existing link
// is a no-op; the project's updated_at is touched either way.
func (r *ProjectRepository) AddPageGroup(ctx context.Context, projectID, pageGroupID string) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.AddPageGroup")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	query := `
		INSERT INTO project_page_groups (project_id, page_group_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (project_id, page_group_id) DO NOTHING
	`
	if _, err := q.ExecContext(ctx, query, projectID, pageGroupID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to link page group: %w", err)
	}

	return r.touch(ctx, q, projectID)
}

// RemovePageGroup unlinks a page group from a project. Removing an absent
// link is a no-op; the project's updated_at is touched either way.
func (r *ProjectRepository) RemovePageGroup(ctx context.Context, projectID, pageGroupID string) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.RemovePageGroup")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	query := `DELETE FROM project_page_groups WHERE project_id = $1 AND page_group_id = $2`
	if _, err := q.ExecContext(ctx, query, projectID, pageGroupID); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to unlink page group: %w", err)
	}

	return r.touch(ctx, q, projectID)
}

func (r *ProjectRepository) touch(ctx context.Context, q Querier, projectID string) error {
	query := `UPDATE projects SET updated_at = NOW() WHERE id = $1`
	if _, err := q.ExecContext(ctx, query, projectID); err != nil {
		return fmt.Errorf("failed to touch project: %w", err)
	}
	return nil
}

// ListPageGroupIDs returns the page group ids linked to a project, in link
// order.
func (r *ProjectRepository) ListPageGroupIDs(ctx context.Context, projectID string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.ListPageGroupIDs")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	query := `
		SELECT page_group_id
		FROM project_page_groups
		WHERE project_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.QueryContext(ctx, query, projectID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list page group ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan page group id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// HasPageGroup reports whether the link row exists.
func (r *ProjectRepository) HasPageGroup(ctx context.Context, projectID, pageGroupID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.HasPageGroup")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	query := `SELECT EXISTS(SELECT 1 FROM project_page_groups WHERE project_id = $1 AND page_group_id = $2)`

	var exists bool
	if err := q.QueryRowContext(ctx, query, projectID, pageGroupID).Scan(&exists); err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check page group link: %w", err)
	}
	return exists, nil
}
