package iodb

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/luca-drf/ensembl-metadata/pkg/config"
	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
	"golang.org/x/sync/errgroup"
)

// Connector discovers candidate genome databases on a server and opens
// db.Handle instances for them. Opening and probing happens
// concurrently (bounded by JobsNumber); the pipeline that consumes the
// handles stays strictly sequential.
type Connector struct {
	cfg *config.Config

	mu    sync.Mutex
	pools []*pgxpool.Pool
}

// NewConnector creates a Connector for the configured genome-database
// server.
func NewConnector(cfg *config.Config) *Connector {
	return &Connector{cfg: cfg}
}

// Discover lists candidate database names on the server: every
// non-template database whose name matches an Ensembl database marker
// (a kind tag, compara or ancestral).
func (c *Connector) Discover(ctx context.Context) ([]string, error) {
	pool, err := c.open(ctx, c.cfg.Server.Database)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT datname
		FROM pg_database
		WHERE NOT datistemplate
		ORDER BY datname
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, DiscoveryError(c.cfg.Server.Host, err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, ScanError(err)
		}
		if isCandidate(name) {
			res = append(res, name)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, ScanError(err)
	}

	slog.Info("Discovered candidate databases",
		"host", c.cfg.Server.Host,
		"count", len(res))
	return res, nil
}

// Handles opens one db.Handle per (database, species) for the named
// databases. Collection databases hosting several species yield one
// handle per species. Databases without species metadata (compara,
// ancestral) yield a single species-less handle.
func (c *Connector) Handles(
	ctx context.Context,
	names []string,
) ([]db.Handle, error) {
	results := make([][]db.Handle, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.jobs())

	for i, name := range names {
		g.Go(func() error {
			handles, err := c.openHandles(gctx, name)
			if err != nil {
				return err
			}
			results[i] = handles
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var res []db.Handle
	for _, handles := range results {
		res = append(res, handles...)
	}
	return res, nil
}

// Close releases every pool the connector opened.
func (c *Connector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, pool := range c.pools {
		pool.Close()
	}
	c.pools = nil
}

// openHandles connects to one database and creates a handle per
// species found in its meta table.
func (c *Connector) openHandles(
	ctx context.Context,
	name string,
) ([]db.Handle, error) {
	pool, err := c.open(ctx, name)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT species_id, meta_value
		FROM meta
		WHERE meta_key = 'species.production_name'
		ORDER BY species_id
	`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		if !isUndefinedTable(err) {
			return nil, QueryError(query, err)
		}
		// No meta table at all: a species-less handle (compara
		// databases fall out here).
		slog.Debug("No species metadata, using bare handle",
			"database", name)
		return []db.Handle{NewHandle(name, "", 0, pool)}, nil
	}
	defer rows.Close()

	var res []db.Handle
	for rows.Next() {
		var speciesID int64
		var species string
		if err := rows.Scan(&speciesID, &species); err != nil {
			return nil, ScanError(err)
		}
		res = append(res, NewHandle(name, species, speciesID, pool))
	}
	if err := rows.Err(); err != nil {
		if !isUndefinedTable(err) {
			return nil, ScanError(err)
		}
		slog.Debug("No species metadata, using bare handle",
			"database", name)
		return []db.Handle{NewHandle(name, "", 0, pool)}, nil
	}

	if len(res) == 0 {
		res = append(res, NewHandle(name, "", 0, pool))
	}
	return res, nil
}

// isUndefinedTable reports whether an error is the PostgreSQL
// undefined-table condition (error code 42P01). Any other failure of
// the species-metadata query is a real error and must propagate.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

// open creates (and remembers) a small pool for one database.
func (c *Connector) open(
	ctx context.Context,
	database string,
) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn(&c.cfg.Server, database))
	if err != nil {
		return nil, ConnectionError(c.cfg.Server.Host, c.cfg.Server.Port,
			database, c.cfg.Server.User, err)
	}
	poolConfig.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, ConnectionError(c.cfg.Server.Host, c.cfg.Server.Port,
			database, c.cfg.Server.User, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ConnectionError(c.cfg.Server.Host, c.cfg.Server.Port,
			database, c.cfg.Server.User, err)
	}

	c.mu.Lock()
	c.pools = append(c.pools, pool)
	c.mu.Unlock()
	return pool, nil
}

func (c *Connector) jobs() int {
	if c.cfg.JobsNumber > 0 {
		return c.cfg.JobsNumber
	}
	return 1
}

// isCandidate reports whether a database name looks like an Ensembl
// genome, compara or ancestral database.
func isCandidate(name string) bool {
	if metadata.IsCompara(name) || metadata.IsAncestral(name) {
		return true
	}
	if _, ok := metadata.ClassifyName(name); ok {
		// Exclude obvious system databases that happen to contain a
		// kind tag.
		return !strings.HasPrefix(name, "pg_")
	}
	return false
}
