// Package ioanalysis implements the Analyzer interface: annotation,
// feature, alignment, and variation summaries computed from genome
// databases, plus read-alignment lookups against the track registry.
// This is an impure I/O package.
package ioanalysis

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/luca-drf/ensembl-metadata/pkg/config"
	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/luca-drf/ensembl-metadata/pkg/ensmeta"
)

const qAnnotations = `
SELECT g.biotype, COUNT(*)
  FROM gene g
  JOIN seq_region sr ON sr.seq_region_id = g.seq_region_id
  JOIN coord_system cs ON cs.coord_system_id = sr.coord_system_id
 WHERE cs.species_id = $1
 GROUP BY g.biotype
 ORDER BY g.biotype`

// featureTables are counted per analysis logic name and keyed as
// "<table>/<logic_name>" in the feature summary.
var featureTables = []string{"repeat_feature", "simple_feature"}

// alignmentTables are counted per analysis logic name and keyed by
// logic name alone, the summary is merged with read-alignment counts
// downstream.
var alignmentTables = []string{"dna_align_feature", "protein_align_feature"}

const qFeatureCounts = `
SELECT a.logic_name, COUNT(*)
  FROM %s f
  JOIN analysis a ON a.analysis_id = f.analysis_id
  JOIN seq_region sr ON sr.seq_region_id = f.seq_region_id
  JOIN coord_system cs ON cs.coord_system_id = sr.coord_system_id
 WHERE cs.species_id = $1
 GROUP BY a.logic_name
 ORDER BY a.logic_name`

const qVariations = `
SELECT s.name, COUNT(*)
  FROM variation v
  JOIN source s ON s.source_id = v.source_id
 GROUP BY s.name
 ORDER BY s.name`

// On-disk size is estimated from the schema catalog: data plus index
// length of every ordinary table in the public schema.
const qSize = `
SELECT COALESCE(SUM(pg_total_relation_size(c.oid)), 0)
  FROM pg_class c
  JOIN pg_namespace n ON n.oid = c.relnamespace
 WHERE n.nspname = 'public'
   AND c.relkind = 'r'`

// analyzer implements the ensmeta.Analyzer interface.
type analyzer struct {
	cfg    *config.Config
	client *http.Client
	enc    gnfmt.Encoder
}

// New creates a new Analyzer. Track-registry lookups are disabled when
// the registry URL is not configured.
func New(cfg *config.Config) ensmeta.Analyzer {
	return &analyzer{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		enc:    gnfmt.GNjson{},
	}
}

// Annotations returns gene counts keyed by biotype.
func (a *analyzer) Annotations(
	ctx context.Context,
	h db.Handle,
) (map[string]int64, error) {
	return a.countQuery(ctx, h, qAnnotations, "")
}

// Features returns feature counts keyed by "<table>/<logic_name>".
func (a *analyzer) Features(
	ctx context.Context,
	h db.Handle,
) (map[string]int64, error) {
	res := make(map[string]int64)
	for _, table := range featureTables {
		q := fmt.Sprintf(qFeatureCounts, table)
		counts, err := a.countQuery(ctx, h, q, table+"/")
		if err != nil {
			return nil, err
		}
		for k, v := range counts {
			res[k] = v
		}
	}
	return res, nil
}

// Alignments returns base alignment counts keyed by analysis logic
// name across the alignment feature tables.
func (a *analyzer) Alignments(
	ctx context.Context,
	h db.Handle,
) (map[string]int64, error) {
	res := make(map[string]int64)
	for _, table := range alignmentTables {
		q := fmt.Sprintf(qFeatureCounts, table)
		counts, err := a.countQuery(ctx, h, q, "")
		if err != nil {
			return nil, err
		}
		for k, v := range counts {
			res[k] += v
		}
	}
	return res, nil
}

// Variations returns variant counts keyed by source.
func (a *analyzer) Variations(
	ctx context.Context,
	h db.Handle,
) (map[string]int64, error) {
	res := make(map[string]int64)
	err := h.Each(ctx, qVariations, func(scan db.ScanFunc) error {
		var (
			source string
			count  int64
		)
		if err := scan(&source, &count); err != nil {
			return err
		}
		res[source] = count
		return nil
	})
	if err != nil {
		return nil, QueryError(h.Name(), err)
	}
	return res, nil
}

// Size estimates the on-disk size of a database from the schema
// catalog.
func (a *analyzer) Size(ctx context.Context, h db.Handle) (int64, error) {
	var res int64
	if err := h.Scalar(ctx, &res, qSize); err != nil {
		return 0, QueryError(h.Name(), err)
	}
	return res, nil
}

// trackRecord is one entry of the track-registry response.
type trackRecord struct {
	Source  string `json:"source"`
	TrackID string `json:"track_id"`
}

// ReadAlignments queries the track registry for the read-alignment
// tracks of a species within a division, keyed by source. An
// unconfigured registry yields an empty summary.
func (a *analyzer) ReadAlignments(
	ctx context.Context,
	species, division string,
) (map[string][]string, error) {
	res := make(map[string][]string)
	if a.cfg.Process.TrackRegistryURL == "" {
		return res, nil
	}

	u, err := url.Parse(a.cfg.Process.TrackRegistryURL)
	if err != nil {
		return nil, TrackRegistryError(species, err)
	}
	q := u.Query()
	q.Set("species", species)
	q.Set("division", division)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, TrackRegistryError(species, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, TrackRegistryError(species, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, TrackRegistryError(species,
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, TrackRegistryError(species, err)
	}

	var tracks []trackRecord
	if err := a.enc.Decode(body, &tracks); err != nil {
		return nil, TrackRegistryError(species, err)
	}

	for _, t := range tracks {
		res[t.Source] = append(res[t.Source], t.TrackID)
	}
	return res, nil
}

// countQuery runs a (label, count) query and returns the counts keyed
// by label with an optional prefix.
func (a *analyzer) countQuery(
	ctx context.Context,
	h db.Handle,
	query, prefix string,
) (map[string]int64, error) {
	res := make(map[string]int64)
	err := h.Each(ctx, query, func(scan db.ScanFunc) error {
		var (
			label string
			count int64
		)
		if err := scan(&label, &count); err != nil {
			return err
		}
		res[prefix+label] = count
		return nil
	}, h.SpeciesID())
	if err != nil {
		return nil, QueryError(h.Name(), err)
	}
	return res, nil
}
