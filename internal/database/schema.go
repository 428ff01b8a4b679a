package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the full DDL for the service's tables and indexes. It is the
// single schema source: deployments apply it with psql or a migration
// runner, and the integration test harness applies it to fresh containers.
//
//go:embed schema.sql
var Schema string

// ApplySchema creates all tables and indexes. Statements are idempotent,
// so applying to an already-migrated database is a no-op.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
