package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/luca-drf/ensembl-metadata/pkg/config"
)

// Operator defines basic management operations on the metadata
// warehouse. It provides connection lifecycle management and exposes the
// pgxpool.Pool for higher-level components (schema manager, store) to
// execute their specialized SQL internally.
//
// Design rationale:
// - Keeps interface minimal to avoid bloat with mixed semantics
// - Pool() enables components to use pgx-specific features directly
// - Schema creation and migration are handled by GORM AutoMigrate
type Operator interface {
	// Connect establishes a connection pool to the warehouse.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool for high-level
	// components to execute specialized SQL operations.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the warehouse.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the warehouse has any tables in the public
	// schema. Used to decide whether schema creation should prompt
	// for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema. Used during
	// schema initialization when overwriting existing data.
	DropAllTables(ctx context.Context) error
}
