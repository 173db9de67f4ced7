// Package db defines the database access contracts the metadata
// pipeline relies on. Implementations live in internal/iodb (pgxpool)
// and internal/iotesting (SQLite fixtures).
package db

import (
	"context"
	"errors"
)

// ErrNoRows is returned by Scalar when a query yields no rows.
// Implementations map their driver-specific sentinel to this one.
var ErrNoRows = errors.New("db: no rows in result set")

// ScanFunc scans the current row into dest values, one per column.
type ScanFunc func(dest ...any) error

// RowFunc is invoked once per row during Each iteration.
type RowFunc func(scan ScanFunc) error

// Handle is one species database (or compara database) the pipeline can
// query. All queries are parameterized with $n placeholders, never
// string-interpolated.
type Handle interface {
	// Name returns the database name, e.g. "homo_sapiens_core_99_38".
	Name() string

	// Species returns the species production name this handle is bound
	// to, empty for databases without a species (compara).
	Species() string

	// SpeciesID returns the numeric species id within the database.
	SpeciesID() int64

	// Scalar runs a query expected to yield a single value and scans
	// it into dest. Returns ErrNoRows when the query yields nothing.
	Scalar(ctx context.Context, dest any, query string, args ...any) error

	// Strings runs a query yielding a single text column and returns
	// all values in row order.
	Strings(ctx context.Context, query string, args ...any) ([]string, error)

	// Each runs a query and invokes fn once per row. Iteration stops
	// on the first error returned by fn.
	Each(ctx context.Context, query string, fn RowFunc, args ...any) error
}
