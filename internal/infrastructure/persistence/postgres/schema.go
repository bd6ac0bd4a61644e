package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schemaDDL string

// catalogTables are the tables owned by this service, in dependency order.
var catalogTables = []string{"projects", "page_groups", "project_page_groups"}

// EnsureSchema applies the embedded DDL. All statements are idempotent.
func (c *Client) EnsureSchema(ctx context.Context) error {
	return c.ApplySchema(ctx, schemaDDL)
}

// DropSchema drops the service's tables. Join rows go first via the
// cascading foreign keys.
func (c *Client) DropSchema(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.DropSchema")
	defer span.End()

	for i := len(catalogTables) - 1; i >= 0; i-- {
		stmt := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", pq.QuoteIdentifier(catalogTables[i]))
		if _, err := c.sql.ExecContext(ctx, stmt); err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to drop table %s: %w", catalogTables[i], err)
		}
	}
	return nil
}

// SchemaStatus reports which of the service's tables exist.
func (c *Client) SchemaStatus(ctx context.Context) (map[string]bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.SchemaStatus")
	defer span.End()

	rows, err := c.sql.QueryContext(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = ANY($1)`,
		pq.Array(catalogTables),
	)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to query schema status: %w", err)
	}
	defer rows.Close()

	status := make(map[string]bool, len(catalogTables))
	for _, table := range catalogTables {
		status[table] = false
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		status[name] = true
	}
	return status, rows.Err()
}
