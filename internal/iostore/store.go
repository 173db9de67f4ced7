// Package iostore implements the Store interface over the PostgreSQL
// metadata warehouse. This is an impure I/O package that persists and
// looks up unified genome records through GORM.
package iostore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/luca-drf/ensembl-metadata/pkg/config"
	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/luca-drf/ensembl-metadata/pkg/ensmeta"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
	"github.com/luca-drf/ensembl-metadata/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// store implements the ensmeta.Store interface.
type store struct {
	cfg      *config.Config
	operator db.Operator
	enc      gnfmt.Encoder

	gormDB *gorm.DB

	// release is the current data-release context. Compara resolution
	// switches it temporarily when falling back to a baseline release.
	release *metadata.DataRelease
}

// New creates a new Store over the warehouse operator. The data-release
// context is established by EnsureRelease before any lookup or save.
func New(cfg *config.Config, op db.Operator) ensmeta.Store {
	return &store{cfg: cfg, operator: op, enc: gnfmt.GNjson{}}
}

// EnsureRelease finds or creates the data-release row matching the
// configured release version and makes it the current context.
func (s *store) EnsureRelease(ctx context.Context) (*metadata.DataRelease, error) {
	gdb, err := s.db()
	if err != nil {
		return nil, err
	}

	version := s.cfg.Process.ReleaseVersion
	egVersion := s.cfg.Process.EGReleaseVersion

	var row schema.DataRelease
	err = gdb.WithContext(ctx).
		Where("version = ? AND eg_version = ?", version, egVersion).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = schema.DataRelease{
			Version:     version,
			EGVersion:   egVersion,
			IsCurrent:   true,
			ReleaseDate: time.Now().Format("2006-01-02"),
		}
		if err = gdb.WithContext(ctx).Create(&row).Error; err != nil {
			return nil, ReleaseError(version, egVersion, err)
		}
		slog.Info("Created data release",
			"version", version,
			"eg_version", egVersion,
		)
	} else if err != nil {
		return nil, ReleaseError(version, egVersion, err)
	}

	s.release = releaseFromRow(&row)
	return s.release, nil
}

// DataRelease returns the current data-release context.
func (s *store) DataRelease() *metadata.DataRelease {
	return s.release
}

// SetDataRelease switches the data-release context.
func (s *store) SetDataRelease(r *metadata.DataRelease) {
	s.release = r
}

// BaselineRelease looks up the baseline Ensembl release with the given
// version, the one without an Ensembl Genomes overlay.
func (s *store) BaselineRelease(
	ctx context.Context,
	version string,
) (*metadata.DataRelease, error) {
	gdb, err := s.db()
	if err != nil {
		return nil, err
	}

	var row schema.DataRelease
	err = gdb.WithContext(ctx).
		Where("version = ? AND eg_version = ''", version).
		First(&row).Error
	if err != nil {
		return nil, ReleaseError(version, "", err)
	}
	return releaseFromRow(&row), nil
}

// FetchByName returns all stored genome records for a production name
// within the current data release, across divisions. Zero candidates is
// not an error.
func (s *store) FetchByName(
	ctx context.Context,
	name string,
) ([]*metadata.GenomeInfo, error) {
	gdb, err := s.db()
	if err != nil {
		return nil, err
	}
	if s.release == nil {
		return nil, FetchError(name, errors.New("no data-release context"))
	}

	var rows []schema.Genome
	err = gdb.WithContext(ctx).
		Where("name = ? AND data_release_id = ?", name, s.release.ID).
		Order("updated_at").
		Find(&rows).Error
	if err != nil {
		return nil, FetchError(name, err)
	}

	res := make([]*metadata.GenomeInfo, 0, len(rows))
	for i := range rows {
		g, err := s.genomeFromRow(&rows[i])
		if err != nil {
			return nil, FetchError(name, err)
		}
		res = append(res, g)
	}
	return res, nil
}

// SaveGenomes persists the final genome records together with their
// compara participation. Genome rows are upserted by UUID; the compara
// analyses of each contributing compara database are replaced
// wholesale.
func (s *store) SaveGenomes(
	ctx context.Context,
	genomes []*metadata.GenomeInfo,
) error {
	gdb, err := s.db()
	if err != nil {
		return err
	}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comparaDBs := make(map[string]bool)
		var comparas []*metadata.ComparaInfo
		seen := make(map[*metadata.ComparaInfo]bool)

		for _, g := range genomes {
			row, err := s.rowFromGenome(g)
			if err != nil {
				return SaveError(g.Name, err)
			}
			err = tx.Clauses(clause.OnConflict{UpdateAll: true}).
				Create(row).Error
			if err != nil {
				return SaveError(g.Name, err)
			}

			for _, c := range g.Comparas {
				if !seen[c] {
					seen[c] = true
					comparas = append(comparas, c)
					comparaDBs[c.DBName] = true
				}
			}
		}

		// Replace analyses of every compara database touched this run.
		for dbName := range comparaDBs {
			err := tx.Exec(`DELETE FROM compara_analysis_genomes
 WHERE compara_analysis_id IN
       (SELECT id FROM compara_analyses WHERE db_name = ?)`,
				dbName).Error
			if err != nil {
				return SaveError(dbName, err)
			}
			err = tx.Where("db_name = ?", dbName).
				Delete(&schema.ComparaAnalysis{}).Error
			if err != nil {
				return SaveError(dbName, err)
			}
		}

		for _, c := range comparas {
			row := schema.ComparaAnalysis{
				DBName:   c.DBName,
				Division: c.Division,
				Method:   c.Method,
				SetName:  c.SetName,
			}
			if err := tx.Create(&row).Error; err != nil {
				return SaveError(c.DBName, err)
			}
			for _, g := range c.Genomes {
				err := tx.Exec(`INSERT INTO compara_analysis_genomes
 (compara_analysis_id, genome_uuid) VALUES (?, ?)`,
					row.ID, g.UUID).Error
				if err != nil {
					return SaveError(c.DBName, err)
				}
			}
		}

		slog.Info("Saved genome records",
			"genomes", len(genomes),
			"comparas", len(comparas),
		)
		return nil
	})
}

// db wraps the pgx pool into a GORM connection, reused once opened.
func (s *store) db() (*gorm.DB, error) {
	if s.gormDB != nil {
		return s.gormDB, nil
	}

	pool := s.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	conn := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: conn}),
		&gorm.Config{},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	s.gormDB = gormDB
	return gormDB, nil
}

func releaseFromRow(row *schema.DataRelease) *metadata.DataRelease {
	return &metadata.DataRelease{
		ID:          row.ID,
		Version:     row.Version,
		EGVersion:   row.EGVersion,
		IsCurrent:   row.IsCurrent,
		ReleaseDate: row.ReleaseDate,
	}
}
