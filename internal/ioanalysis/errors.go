package ioanalysis

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/luca-drf/ensembl-metadata/pkg/errcode"
)

// QueryError creates an error for summary query failures.
func QueryError(dbName string, err error) error {
	msg := `Annotation query failed for <em>%s</em>`
	vars := []any{dbName}

	return &gn.Error{
		Code: errcode.AnalysisQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("annotation query failed for %s: %w", dbName, err),
	}
}

// TrackRegistryError creates an error for track-registry lookup
// failures.
func TrackRegistryError(species string, err error) error {
	msg := `Track registry lookup failed for <em>%s</em>

<em>Possible causes:</em>
  - Track registry is unreachable
  - Wrong registry URL in the configuration

<em>How to fix:</em>
  1. Check the <em>track_registry_url</em> setting
  2. Check the registry responds to requests`

	vars := []any{species}

	return &gn.Error{
		Code: errcode.AnalysisTrackRegistryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("track registry lookup failed for %q: %w", species, err),
	}
}
