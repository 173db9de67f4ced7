package iodb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/luca-drf/ensembl-metadata/pkg/db"
)

// pgxHandle implements db.Handle over a pgxpool.Pool connected to one
// genome database. Collection databases yield several handles sharing
// one pool, distinguished by species id.
type pgxHandle struct {
	name      string
	species   string
	speciesID int64
	pool      *pgxpool.Pool
}

// NewHandle wraps a connection pool as a db.Handle bound to one
// species. species is empty and speciesID zero for databases without a
// species (compara).
func NewHandle(
	name, species string,
	speciesID int64,
	pool *pgxpool.Pool,
) db.Handle {
	return &pgxHandle{
		name:      name,
		species:   species,
		speciesID: speciesID,
		pool:      pool,
	}
}

func (h *pgxHandle) Name() string {
	return h.name
}

func (h *pgxHandle) Species() string {
	return h.species
}

func (h *pgxHandle) SpeciesID() int64 {
	return h.speciesID
}

// Scalar runs a single-value query. pgx.ErrNoRows is mapped to
// db.ErrNoRows so callers stay driver-agnostic.
func (h *pgxHandle) Scalar(
	ctx context.Context,
	dest any,
	query string,
	args ...any,
) error {
	err := h.pool.QueryRow(ctx, query, args...).Scan(dest)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.ErrNoRows
	}
	if err != nil {
		return QueryError(query, err)
	}
	return nil
}

// Strings runs a query yielding a single text column.
func (h *pgxHandle) Strings(
	ctx context.Context,
	query string,
	args ...any,
) ([]string, error) {
	rows, err := h.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, QueryError(query, err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, ScanError(err)
		}
		res = append(res, s)
	}
	if err := rows.Err(); err != nil {
		return nil, ScanError(err)
	}
	return res, nil
}

// Each runs a query and invokes fn once per row.
func (h *pgxHandle) Each(
	ctx context.Context,
	query string,
	fn db.RowFunc,
	args ...any,
) error {
	rows, err := h.pool.Query(ctx, query, args...)
	if err != nil {
		return QueryError(query, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(func(dest ...any) error {
			return rows.Scan(dest...)
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return ScanError(err)
	}
	return nil
}
