// Package ensmeta defines the collaborator contracts of the metadata
// pipeline: the processor itself, the annotation analyzer, and the
// persisted metadata store. Implementations live under internal/.
package ensmeta

import (
	"context"

	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
)

// Processor reconciles genome databases into unified metadata records.
//
// ProcessDatabases is the full pipeline: classification, ordered
// per-species building (core kind first), then compara resolution over
// every compara database found. The per-kind methods are exposed for
// direct single-database use; non-core kinds require the registry to
// already hold (or the store to be able to supply) the genome record
// created by the core kind.
type Processor interface {
	// ProcessDatabases runs the whole pipeline over the handles and
	// returns all accumulated genome records.
	ProcessDatabases(ctx context.Context, handles []db.Handle) ([]*metadata.GenomeInfo, error)

	// ProcessCore builds a new genome record from a core database and
	// files it in the registry.
	ProcessCore(ctx context.Context, h db.Handle, reg *metadata.Registry) (*metadata.GenomeInfo, error)

	// ProcessOtherFeatures extends an existing genome record with an
	// alternate gene-set database.
	ProcessOtherFeatures(ctx context.Context, h db.Handle, reg *metadata.Registry) (*metadata.GenomeInfo, error)

	// ProcessRNASeq extends an existing genome record with a short-read
	// alignment database.
	ProcessRNASeq(ctx context.Context, h db.Handle, reg *metadata.Registry) (*metadata.GenomeInfo, error)

	// ProcessCDNA extends an existing genome record with a cDNA
	// database.
	ProcessCDNA(ctx context.Context, h db.Handle, reg *metadata.Registry) (*metadata.GenomeInfo, error)

	// ProcessVariation extends an existing genome record with a
	// variation database.
	ProcessVariation(ctx context.Context, h db.Handle, reg *metadata.Registry) (*metadata.GenomeInfo, error)

	// ProcessFuncgen extends an existing genome record with a
	// regulation database.
	ProcessFuncgen(ctx context.Context, h db.Handle, reg *metadata.Registry) (*metadata.GenomeInfo, error)

	// ProcessCompara resolves every comparative analysis of a compara
	// database against the registry, falling back to the persisted
	// store. Processing is all-or-nothing per compara database.
	ProcessCompara(ctx context.Context, h db.Handle, reg *metadata.Registry) ([]*metadata.ComparaInfo, error)
}

// Analyzer inspects a single genome database and returns structured
// annotation summaries. The pipeline treats the summaries as opaque
// payloads to merge; their content is the analyzer's concern.
type Analyzer interface {
	// Annotations returns gene counts keyed by biotype.
	Annotations(ctx context.Context, h db.Handle) (map[string]int64, error)

	// Features returns feature counts keyed by "<table>/<logic_name>".
	Features(ctx context.Context, h db.Handle) (map[string]int64, error)

	// Alignments returns base alignment counts keyed by logic name,
	// summed across the alignment feature tables.
	Alignments(ctx context.Context, h db.Handle) (map[string]int64, error)

	// ReadAlignments returns read-alignment track identifiers keyed by
	// source for a species within a division.
	ReadAlignments(ctx context.Context, species, division string) (map[string][]string, error)

	// Variations returns variant counts keyed by source.
	Variations(ctx context.Context, h db.Handle) (map[string]int64, error)

	// Size estimates the on-disk size of a database from the schema
	// catalog (data plus index length).
	Size(ctx context.Context, h db.Handle) (int64, error)
}

// SchemaManager manages the warehouse schema lifecycle.
type SchemaManager interface {
	// Create creates the warehouse schema from scratch.
	Create(ctx context.Context) error

	// Migrate updates an existing warehouse schema to the latest
	// version.
	Migrate(ctx context.Context) error
}

// Store is the persisted metadata warehouse. FetchByName is scoped to
// the store's current data-release context, which compara resolution
// may switch temporarily when falling back to a baseline release.
type Store interface {
	// EnsureRelease finds or creates the data-release row matching the
	// configured release version and makes it the current context.
	EnsureRelease(ctx context.Context) (*metadata.DataRelease, error)

	// FetchByName returns all previously stored genome records for a
	// production name within the current data release, across
	// divisions. Zero candidates is not an error.
	FetchByName(ctx context.Context, name string) ([]*metadata.GenomeInfo, error)

	// DataRelease returns the current data-release context.
	DataRelease() *metadata.DataRelease

	// SetDataRelease switches the data-release context.
	SetDataRelease(r *metadata.DataRelease)

	// BaselineRelease looks up the baseline Ensembl release with the
	// given version number (one without an Ensembl Genomes overlay).
	BaselineRelease(ctx context.Context, version string) (*metadata.DataRelease, error)

	// SaveGenomes persists the final genome records together with
	// their compara participation.
	SaveGenomes(ctx context.Context, genomes []*metadata.GenomeInfo) error
}
