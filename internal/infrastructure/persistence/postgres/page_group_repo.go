// Package postgres provides the PostgreSQL repository implementations.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"polydoc-api/internal/domain/entity"
)

// PageGroupRepository is the PostgreSQL page group repository.
type PageGroupRepository struct {
	client *Client
}

// NewPageGroupRepository creates a page group repository.
func NewPageGroupRepository(client *Client) *PageGroupRepository {
	return &PageGroupRepository{client: client}
}

// Create persists a page group. Translations serialize to jsonb.
func (r *PageGroupRepository) Create(ctx context.Context, group *entity.PageGroup) error {
	ctx, span := tracer.Start(ctx, "postgres.PageGroupRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	translationsJSON, err := json.Marshal(group.Translations)
	if err != nil {
		return fmt.Errorf("failed to marshal translations: %w", err)
	}

	query := `
		INSERT INTO page_groups (id, title, file_name, root_language, root_text,
			translations, image_url, image_blob_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = q.ExecContext(ctx, query,
		group.ID, group.Title, group.FileName, group.RootLanguage, group.RootText,
		translationsJSON, nullIfEmpty(group.ImageURL), nullIfEmpty(group.ImageBlobID),
		group.Status, group.CreatedAt, group.UpdatedAt,
	)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create page group: %w", err)
	}

	return nil
}

// GetByID returns a page group or (nil, nil) when it does not exist.
func (r *PageGroupRepository) GetByID(ctx context.Context, id string) (*entity.PageGroup, error) {
	ctx, span := tracer.Start(ctx, "postgres.PageGroupRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	query := `
		SELECT id, title, file_name, root_language, root_text, translations,
			image_url, image_blob_id, status, created_at, updated_at
		FROM page_groups
		WHERE id = $1
	`

	group, err := scanPageGroup(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get page group: %w", err)
	}

	return group, nil
}

// Update persists the page group's current field values.
func (r *PageGroupRepository) Update(ctx context.Context, group *entity.PageGroup) error {
	ctx, span := tracer.Start(ctx, "postgres.PageGroupRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	translationsJSON, err := json.Marshal(group.Translations)
	if err != nil {
		return fmt.Errorf("failed to marshal translations: %w", err)
	}

	query := `
		UPDATE page_groups
		SET title = $1, file_name = $2, root_language = $3, root_text = $4,
			translations = $5, image_url = $6, image_blob_id = $7, status = $8,
			updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	err = q.QueryRowContext(ctx, query,
		group.Title, group.FileName, group.RootLanguage, group.RootText,
		translationsJSON, nullIfEmpty(group.ImageURL), nullIfEmpty(group.ImageBlobID),
		group.Status, group.ID,
	).Scan(&group.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update page group: %w", err)
	}

	return nil
}

// Delete removes the page group row. Join rows cascade via the schema.
func (r *PageGroupRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.PageGroupRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	query := `DELETE FROM page_groups WHERE id = $1`
	if _, err := q.ExecContext(ctx, query, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete page group: %w", err)
	}

	return nil
}

// ListByProject returns the page groups linked to a project, in link order.
func (r *PageGroupRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.PageGroup, error) {
	ctx, span := tracer.Start(ctx, "postgres.PageGroupRepository.ListByProject")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	query := `
		SELECT g.id, g.title, g.file_name, g.root_language, g.root_text,
			g.translations, g.image_url, g.image_blob_id, g.status,
			g.created_at, g.updated_at
		FROM page_groups g
		JOIN project_page_groups l ON l.page_group_id = g.id
		WHERE l.project_id = $1
		ORDER BY l.created_at ASC
	`

	return r.queryGroups(ctx, q, query, projectID)
}

// ListByLanguage returns page groups whose root language matches, newest
// first. An empty language returns all page groups.
func (r *PageGroupRepository) ListByLanguage(ctx context.Context, language string) ([]*entity.PageGroup, error) {
	ctx, span := tracer.Start(ctx, "postgres.PageGroupRepository.ListByLanguage")
	defer span.End()

	q := getQuerier(ctx, r.client.sql)

	if language == "" {
		query := `
			SELECT id, title, file_name, root_language, root_text, translations,
				image_url, image_blob_id, status, created_at, updated_at
			FROM page_groups
			ORDER BY created_at DESC
		`
		return r.queryGroups(ctx, q, query)
	}

	query := `
		SELECT id, title, file_name, root_language, root_text, translations,
			image_url, image_blob_id, status, created_at, updated_at
		FROM page_groups
		WHERE root_language = $1
		ORDER BY created_at DESC
	`
	return r.queryGroups(ctx, q, query, language)
}

func (r *PageGroupRepository) queryGroups(ctx context.Context, q Querier, query string, args ...interface{}) ([]*entity.PageGroup, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list page groups: %w", err)
	}
	defer rows.Close()

	groups := []*entity.PageGroup{}
	for rows.Next() {
		group, err := scanPageGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page group: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPageGroup(row rowScanner) (*entity.PageGroup, error) {
	var group entity.PageGroup
	var translationsJSON []byte
	var imageURL, imageBlobID sql.NullString

	err := row.Scan(
		&group.ID, &group.Title, &group.FileName, &group.RootLanguage,
		&group.RootText, &translationsJSON, &imageURL, &imageBlobID,
		&group.Status, &group.CreatedAt, &group.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	group.Translations = map[string]string{}
	if len(translationsJSON) > 0 {
		if err := json.Unmarshal(translationsJSON, &group.Translations); err != nil {
			return nil, fmt.Errorf("failed to unmarshal translations: %w", err)
		}
	}
	group.ImageURL = imageURL.String
	group.ImageBlobID = imageBlobID.String

	return &group, nil
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
