package ioanalysis_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luca-drf/ensembl-metadata/internal/ioanalysis"
	"github.com/luca-drf/ensembl-metadata/internal/iotesting"
	"github.com/luca-drf/ensembl-metadata/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) *iotesting.Handle {
	t.Helper()
	h := iotesting.NewGenomeHandle(
		t, "homo_sapiens_core_99_38", "homo_sapiens", 1)

	h.Exec(t, `INSERT INTO coord_system
 (coord_system_id, species_id, name, rank, attrib)
 VALUES (1, 1, 'chromosome', 1, 'default_version'),
        (2, 2, 'chromosome', 1, 'default_version')`)
	h.Exec(t, `INSERT INTO seq_region (seq_region_id, name, coord_system_id, length)
 VALUES (1, '1', 1, 1000), (2, '2', 2, 500)`)

	return h
}

func TestAnnotations(t *testing.T) {
	ctx := context.Background()
	h := newFixture(t)

	h.Exec(t, `INSERT INTO gene (seq_region_id, biotype) VALUES
 (1, 'protein_coding'), (1, 'protein_coding'), (1, 'lncRNA'),
 (2, 'protein_coding')`)

	a := ioanalysis.New(config.New())
	res, err := a.Annotations(ctx, h)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{
		"protein_coding": 2,
		"lncRNA":         1,
	}, res, "genes of other species in a collection are excluded")
}

func TestFeatures(t *testing.T) {
	ctx := context.Background()
	h := newFixture(t)

	h.Exec(t, `INSERT INTO analysis (analysis_id, logic_name)
 VALUES (1, 'trf'), (2, 'cpg')`)
	h.Exec(t, `INSERT INTO repeat_feature (seq_region_id, analysis_id)
 VALUES (1, 1), (1, 1), (2, 1)`)
	h.Exec(t, `INSERT INTO simple_feature (seq_region_id, analysis_id)
 VALUES (1, 2)`)

	a := ioanalysis.New(config.New())
	res, err := a.Features(ctx, h)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{
		"repeat_feature/trf": 2,
		"simple_feature/cpg": 1,
	}, res, "feature counts are keyed by table and logic name")
}

func TestAlignments(t *testing.T) {
	ctx := context.Background()
	h := newFixture(t)

	h.Exec(t, `INSERT INTO analysis (analysis_id, logic_name)
 VALUES (1, 'uniprot'), (2, 'est')`)
	h.Exec(t, `INSERT INTO dna_align_feature (seq_region_id, analysis_id)
 VALUES (1, 2), (1, 2)`)
	h.Exec(t, `INSERT INTO protein_align_feature (seq_region_id, analysis_id)
 VALUES (1, 1), (1, 2)`)

	a := ioanalysis.New(config.New())
	res, err := a.Alignments(ctx, h)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{
		"uniprot": 1,
		"est":     3,
	}, res, "counts sum across the alignment tables per logic name")
}

func TestVariations(t *testing.T) {
	ctx := context.Background()
	h := iotesting.NewGenomeHandle(
		t, "homo_sapiens_variation_99_38", "homo_sapiens", 1)

	h.Exec(t, `INSERT INTO source (source_id, name)
 VALUES (1, 'dbSNP'), (2, 'ClinVar')`)
	h.Exec(t, `INSERT INTO variation (source_id) VALUES (1), (1), (2)`)

	a := ioanalysis.New(config.New())
	res, err := a.Variations(ctx, h)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"dbSNP": 2, "ClinVar": 1}, res)
}

func TestReadAlignments(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "homo_sapiens", r.URL.Query().Get("species"))
			assert.Equal(t, "EnsemblVertebrates", r.URL.Query().Get("division"))
			fmt.Fprint(w, `[
 {"source": "ena", "track_id": "track-1"},
 {"source": "ena", "track_id": "track-2"},
 {"source": "sra", "track_id": "track-9"}
]`)
		}))
	defer srv.Close()

	cfg := config.New()
	cfg.Update([]config.Option{config.OptProcessTrackRegistryURL(srv.URL)})

	a := ioanalysis.New(cfg)
	res, err := a.ReadAlignments(ctx, "homo_sapiens", "EnsemblVertebrates")
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"ena": {"track-1", "track-2"},
		"sra": {"track-9"},
	}, res)
}

func TestReadAlignmentsUnconfigured(t *testing.T) {
	a := ioanalysis.New(config.New())
	res, err := a.ReadAlignments(
		context.Background(), "homo_sapiens", "EnsemblVertebrates")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestReadAlignmentsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusInternalServerError)
		}))
	defer srv.Close()

	cfg := config.New()
	cfg.Update([]config.Option{config.OptProcessTrackRegistryURL(srv.URL)})

	a := ioanalysis.New(cfg)
	_, err := a.ReadAlignments(
		context.Background(), "homo_sapiens", "EnsemblVertebrates")
	require.Error(t, err)
}
