package ioprocess_test

import (
	"context"
	"testing"

	"github.com/luca-drf/ensembl-metadata/internal/ioprocess"
	"github.com/luca-drf/ensembl-metadata/internal/iotesting"
	"github.com/luca-drf/ensembl-metadata/pkg/config"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCoreFixture builds a core-database fixture with the meta rows a
// typical species database carries.
func newCoreFixture(t *testing.T) *iotesting.Handle {
	t.Helper()
	h := iotesting.NewGenomeHandle(
		t, "homo_sapiens_core_99_38", "homo_sapiens", 1)

	h.AddMeta(t, "species.display_name", "Human")
	h.AddMeta(t, "species.scientific_name", "Homo sapiens")
	h.AddMeta(t, "species.taxonomy_id", "9606")
	h.AddMeta(t, "species.division", "EnsemblVertebrates")
	h.AddMeta(t, "species.alias", "human")
	h.AddMeta(t, "species.alias", "hsapiens")
	h.AddMeta(t, "assembly.accession", "GCA_000001405.28")
	h.AddMeta(t, "assembly.name", "GRCh38.p13")
	h.AddMeta(t, "assembly.default", "GRCh38")
	h.AddMeta(t, "assembly.ucsc_alias", "hg38")
	h.AddMeta(t, "genebuild.start_date", "2020-01")
	h.AddMeta(t, "genebuild.last_geneset_update", "2021-06")

	h.Exec(t, `INSERT INTO coord_system
 (coord_system_id, species_id, name, rank, attrib)
 VALUES (1, 1, 'chromosome', 1, 'default_version'),
        (2, 1, 'contig', 2, '')`)

	return h
}

func TestProcessCore(t *testing.T) {
	ctx := context.Background()
	h := newCoreFixture(t)
	store := newFakeStore()
	p := ioprocess.New(config.New(), store, nil)
	reg := metadata.NewRegistry()

	g, err := p.ProcessCore(ctx, h, reg)
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, "homo_sapiens", g.Name)
	assert.Equal(t, "homo_sapiens_core_99_38", g.DBName)
	assert.Equal(t, "Human", g.DisplayName)
	assert.Equal(t, "Homo sapiens", g.ScientificName)
	assert.Equal(t, int64(9606), g.TaxonomyID)
	assert.Equal(t, int64(9606), g.SpeciesTaxonomyID,
		"species-level taxonomy id defaults to the organism-level id")
	assert.Equal(t, "EnsemblVertebrates", g.Division)
	assert.Equal(t, "GCA_000001405.28", g.AssemblyAccession)
	assert.Equal(t, "hg38", g.AssemblyUCSC)
	assert.Equal(t, "2020-01/2021-06", g.Genebuild,
		"no explicit version, start date and last update join")
	assert.Equal(t, "chromosome", g.AssemblyLevel)
	assert.NotEmpty(t, g.UUID)
	assert.Equal(t, []string{"homo_sapiens_core_99_38"}, g.Databases)

	assert.Contains(t, g.Aliases, "human")
	assert.Contains(t, g.Aliases, "hsapiens")
	assert.Contains(t, g.Aliases, "Homo sapiens",
		"canonical form of the scientific name becomes an alias")

	stored, ok := reg.Genome("homo_sapiens")
	require.True(t, ok)
	assert.Same(t, g, stored)
}

func TestProcessCoreStableUUID(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	p := ioprocess.New(config.New(), store, nil)

	h := newCoreFixture(t)
	g1, err := p.ProcessCore(ctx, h, metadata.NewRegistry())
	require.NoError(t, err)

	h2 := newCoreFixture(t)
	g2, err := p.ProcessCore(ctx, h2, metadata.NewRegistry())
	require.NoError(t, err)

	assert.Equal(t, g1.UUID, g2.UUID,
		"the UUID derives from the database and species names only")
}

func TestProcessCoreSequences(t *testing.T) {
	ctx := context.Background()
	h := newCoreFixture(t)

	// seq1 lives in the default-version coordinate system with an
	// archive synonym AND is independently flagged archive-resident, so
	// it surfaces in both branches of the inventory union. XYZ1 lives in
	// a non-default system but carries the archive flag, so it enters
	// the inventory under its own name.
	h.Exec(t, `INSERT INTO seq_region (seq_region_id, name, coord_system_id, length)
 VALUES (1, 'seq1', 1, 1000), (2, 'XYZ1', 2, 500)`)
	h.Exec(t, `INSERT INTO seq_region_synonym (seq_region_id, synonym, external_db_id)
 VALUES (1, 'ABC123', 50)`)
	h.Exec(t, `INSERT INTO attrib_type (attrib_type_id, code)
 VALUES (1, 'toplevel'), (2, 'external_db')`)
	h.Exec(t, `INSERT INTO seq_region_attrib (seq_region_id, attrib_type_id, value)
 VALUES (1, 1, '1'), (1, 2, 'INSDC'), (2, 2, 'INSDC')`)

	cfg := config.New()
	cfg.Update([]config.Option{config.OptProcessRetrieveSequences(true)})
	p := ioprocess.New(cfg, newFakeStore(), nil)

	g, err := p.ProcessCore(ctx, h, metadata.NewRegistry())
	require.NoError(t, err)

	require.Len(t, g.Sequences, 2,
		"a sequence in both branches collapses to one entry")
	assert.Contains(t, g.Sequences,
		metadata.Sequence{Name: "seq1", Acc: "ABC123"},
		"the synonym-bearing entry wins for a collapsed sequence")
	assert.Contains(t, g.Sequences,
		metadata.Sequence{Name: "XYZ1", Acc: "XYZ1"})

	assert.Equal(t, int64(1000), g.BasePairs,
		"only top-level sequences count toward the total")
}

func TestProcessCorePublications(t *testing.T) {
	ctx := context.Background()
	h := newCoreFixture(t)

	// A sibling species in the same collection database carries its own
	// PUBMED reference, which must not leak into this species' record.
	h.Exec(t, `INSERT INTO coord_system
 (coord_system_id, species_id, name, rank, attrib)
 VALUES (3, 2, 'chromosome', 1, 'default_version')`)
	h.Exec(t, `INSERT INTO seq_region (seq_region_id, name, coord_system_id, length)
 VALUES (1, 'seq1', 1, 1000), (2, 'seq2', 1, 500), (3, 'sib1', 3, 800)`)
	h.Exec(t, `INSERT INTO external_db (external_db_id, db_name)
 VALUES (1, 'PUBMED'), (2, 'INSDC')`)
	h.Exec(t, `INSERT INTO xref (xref_id, external_db_id, dbprimary_acc)
 VALUES (10, 1, '12345678'), (11, 2, 'XYZ'),
        (12, 1, '87654321'), (13, 1, '99999999')`)
	h.Exec(t, `INSERT INTO attrib_type (attrib_type_id, code)
 VALUES (3, 'xref_id')`)
	h.Exec(t, `INSERT INTO seq_region_attrib (seq_region_id, attrib_type_id, value)
 VALUES (1, 3, '10'), (1, 3, '12'), (2, 3, '11'), (3, 3, '13')`)

	p := ioprocess.New(config.New(), newFakeStore(), nil)
	g, err := p.ProcessCore(ctx, h, metadata.NewRegistry())
	require.NoError(t, err)

	assert.Equal(t, []string{"12345678", "87654321"}, g.Publications,
		"PUBMED accessions of this species only, distinct, ordered")
}

func TestProcessCoreAnalysis(t *testing.T) {
	ctx := context.Background()
	h := newCoreFixture(t)

	analyzer := newFakeAnalyzer()
	analyzer.annotations[h.Name()] = map[string]int64{"protein_coding": 20000}
	analyzer.features[h.Name()] = map[string]int64{"repeat_feature/trf": 150}
	analyzer.alignments[h.Name()] = map[string]int64{"uniprot": 300}
	analyzer.reads["homo_sapiens"] = map[string][]string{
		"ena": {"track-1", "track-2"},
	}
	analyzer.sizes[h.Name()] = 4096

	p := ioprocess.New(config.New(), newFakeStore(), analyzer)
	g, err := p.ProcessCore(ctx, h, metadata.NewRegistry())
	require.NoError(t, err)

	assert.Equal(t, int64(20000), g.Annotations["protein_coding"])
	assert.Equal(t, int64(150), g.Features["repeat_feature/trf"])
	assert.Equal(t, int64(300), g.Alignments["uniprot"])
	assert.Equal(t, int64(2), g.Alignments["ena"],
		"read alignments fold in as counts per track identifier")
	assert.Equal(t, int64(4096), g.DBSize)
}

func TestProcessCoreNilHandle(t *testing.T) {
	p := ioprocess.New(config.New(), newFakeStore(), nil)
	_, err := p.ProcessCore(context.Background(), nil, metadata.NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DBA not defined")
}
