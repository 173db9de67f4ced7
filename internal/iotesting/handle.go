// Package iotesting provides SQLite-backed test doubles for the db
// contracts. Fixture databases live in memory, carry the same table
// layout the pipeline queries against, and accept the same $n
// parameter placeholders.
package iotesting

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/luca-drf/ensembl-metadata/pkg/db"
)

// Handle is an in-memory SQLite implementation of db.Handle.
type Handle struct {
	conn      *sql.DB
	name      string
	species   string
	speciesID int64
}

// NewHandle creates an in-memory fixture database. The connection is
// closed automatically when the test finishes.
func NewHandle(t *testing.T, name, species string, speciesID int64) *Handle {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("cannot open fixture database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return &Handle{
		conn:      conn,
		name:      name,
		species:   species,
		speciesID: speciesID,
	}
}

// placeholderRx matches the $n placeholders the pipeline queries use.
var placeholderRx = regexp.MustCompile(`\$(\d+)`)

// rewrite converts $n placeholders to the ?n form SQLite binds
// positionally.
func rewrite(query string) string {
	return placeholderRx.ReplaceAllString(query, "?$1")
}

// Exec runs a DDL or fixture-insert statement, failing the test on
// error.
func (h *Handle) Exec(t *testing.T, query string, args ...any) {
	t.Helper()
	if _, err := h.conn.Exec(rewrite(query), args...); err != nil {
		t.Fatalf("fixture statement failed: %v\n%s", err, query)
	}
}

func (h *Handle) Name() string     { return h.name }
func (h *Handle) Species() string  { return h.species }
func (h *Handle) SpeciesID() int64 { return h.speciesID }

func (h *Handle) Scalar(
	ctx context.Context,
	dest any,
	query string,
	args ...any,
) error {
	err := h.conn.QueryRowContext(ctx, rewrite(query), args...).Scan(dest)
	if errors.Is(err, sql.ErrNoRows) {
		return db.ErrNoRows
	}
	return err
}

func (h *Handle) Strings(
	ctx context.Context,
	query string,
	args ...any,
) ([]string, error) {
	rows, err := h.conn.QueryContext(ctx, rewrite(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

func (h *Handle) Each(
	ctx context.Context,
	query string,
	fn db.RowFunc,
	args ...any,
) error {
	rows, err := h.conn.QueryContext(ctx, rewrite(query), args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows.Scan); err != nil {
			return err
		}
	}
	return rows.Err()
}

var _ db.Handle = (*Handle)(nil)
