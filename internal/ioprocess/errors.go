package ioprocess

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/luca-drf/ensembl-metadata/pkg/errcode"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
)

// NilHandleError creates an error for a nil database handle passed to a
// builder. This is a caller-contract violation and is never retried.
func NilHandleError(kind string) error {
	msg := `DBA not defined for the <em>%s</em> builder

<em>How to fix:</em>
  1. Check that the database is present on the server
  2. Check the database name matches the expected kind tag`

	vars := []any{kind}

	return &gn.Error{
		Code: errcode.ProcessNilHandleError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("DBA not defined for kind %q", kind),
	}
}

// NoGenomeError creates an error for a non-core builder that cannot
// resolve an existing genome record. It signals a missing core database
// or a driver ordering bug.
func NoGenomeError(kind metadata.DatabaseKind, species, division string) error {
	msg := `No genome record found for <em>%s</em> (%s)

The <em>%s</em> database kind can only extend a record created by the
core kind. A missing record means the core database was not processed
first.

<em>How to fix:</em>
  1. Check the core database for this species is on the server
  2. Process the core database before companion databases`

	vars := []any{species, division, kind.String()}

	return &gn.Error{
		Code: errcode.ProcessNoGenomeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("no genome record for %s/%s processing %q kind",
			species, division, kind),
	}
}

// MetaError creates an error for metadata-key lookup failures.
func MetaError(dbName, key string, err error) error {
	msg := `Cannot read meta key <em>%s</em> from <em>%s</em>`
	vars := []any{key, dbName}

	return &gn.Error{
		Code: errcode.ProcessMetaError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read meta key %q from %s: %w", key, dbName, err),
	}
}

// AssemblyError creates an error for assembly extraction failures.
func AssemblyError(dbName string, err error) error {
	msg := `Cannot read assembly data from <em>%s</em>`
	vars := []any{dbName}

	return &gn.Error{
		Code: errcode.ProcessAssemblyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read assembly data from %s: %w", dbName, err),
	}
}

// AnnotationError creates an error for annotation analysis failures.
func AnnotationError(dbName string, err error) error {
	msg := `Annotation analysis failed for <em>%s</em>`
	vars := []any{dbName}

	return &gn.Error{
		Code: errcode.ProcessAnnotationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("annotation analysis failed for %s: %w", dbName, err),
	}
}

// GenomeNotFoundError creates an error for a comparative analysis
// referencing a species that cannot be resolved anywhere: not in the
// run, not in the persisted store, not in the fallback release.
func GenomeNotFoundError(species string) error {
	msg := `Cannot find genome record for species <em>%s</em>

The species is referenced by a comparative analysis but was not
processed in this run and is absent from the metadata warehouse.

<em>How to fix:</em>
  1. Process the species' core database first
  2. Check the warehouse holds the species for the current release`

	vars := []any{species}

	return &gn.Error{
		Code: errcode.ComparaGenomeNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("genome not found for species %q", species),
	}
}

// ComparaError wraps a failure while processing one compara database.
// Comparative processing is all-or-nothing per database, so the
// database name is attached to whatever went wrong inside.
func ComparaError(dbName string, err error) error {
	msg := `Failed to process compara database <em>%s</em>`
	vars := []any{dbName}

	return &gn.Error{
		Code: errcode.ComparaDatabaseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to process compara database %s: %w", dbName, err),
	}
}

// ComparaQueryError creates an error for compara comparison-entry
// queries.
func ComparaQueryError(dbName, method string, err error) error {
	msg := `Cannot read <em>%s</em> analyses from <em>%s</em>`
	vars := []any{method, dbName}

	return &gn.Error{
		Code: errcode.ComparaQueryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to read %s analyses from %s: %w",
			method, dbName, err),
	}
}
