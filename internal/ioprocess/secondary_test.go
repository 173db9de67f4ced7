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

func TestProcessOtherFeaturesMerges(t *testing.T) {
	ctx := context.Background()
	h := iotesting.NewGenomeHandle(
		t, "homo_sapiens_otherfeatures_99_38", "homo_sapiens", 1)

	g := &metadata.GenomeInfo{
		Name:     "homo_sapiens",
		Division: metadata.DivisionVertebrates,
		Features: map[string]int64{"repeat_feature/trf": 100},
		DBSize:   1000,
	}
	reg := metadata.NewRegistry()
	reg.SetGenome(g)

	analyzer := newFakeAnalyzer()
	analyzer.features[h.Name()] = map[string]int64{
		"repeat_feature/trf":     999,
		"simple_feature/eponine": 5,
	}
	analyzer.alignments[h.Name()] = map[string]int64{"refseq": 40}
	analyzer.sizes[h.Name()] = 2048

	p := ioprocess.New(config.New(), newFakeStore(), analyzer)
	res, err := p.ProcessOtherFeatures(ctx, h, reg)
	require.NoError(t, err)
	assert.Same(t, g, res)

	assert.Equal(t, int64(100), res.Features["repeat_feature/trf"],
		"existing feature entries win on collision")
	assert.Equal(t, int64(5), res.Features["simple_feature/eponine"])
	assert.Equal(t, int64(40), res.Alignments["refseq"],
		"alignments are recomputed from the fresh database")
	assert.Equal(t, int64(2048), res.DBSize, "size overwrites, never sums")
	assert.Contains(t, res.Databases, h.Name())
}

func TestProcessRNASeqReadAlignments(t *testing.T) {
	ctx := context.Background()
	h := iotesting.NewGenomeHandle(
		t, "homo_sapiens_rnaseq_99_38", "homo_sapiens", 1)

	g := &metadata.GenomeInfo{
		Name:     "homo_sapiens",
		Division: metadata.DivisionVertebrates,
	}
	reg := metadata.NewRegistry()
	reg.SetGenome(g)

	analyzer := newFakeAnalyzer()
	analyzer.alignments[h.Name()] = map[string]int64{"star": 12}
	analyzer.reads["homo_sapiens"] = map[string][]string{
		"ena": {"track-1", "track-2", "track-3"},
	}

	p := ioprocess.New(config.New(), newFakeStore(), analyzer)
	res, err := p.ProcessRNASeq(ctx, h, reg)
	require.NoError(t, err)

	assert.Equal(t, int64(12), res.Alignments["star"])
	assert.Equal(t, int64(3), res.Alignments["ena"])
}

func TestProcessVariation(t *testing.T) {
	ctx := context.Background()
	h := iotesting.NewGenomeHandle(
		t, "homo_sapiens_variation_99_38", "homo_sapiens", 1)

	g := &metadata.GenomeInfo{
		Name:     "homo_sapiens",
		Division: metadata.DivisionVertebrates,
	}
	reg := metadata.NewRegistry()
	reg.SetGenome(g)

	analyzer := newFakeAnalyzer()
	analyzer.variations[h.Name()] = map[string]int64{"dbSNP": 650000000}
	analyzer.sizes[h.Name()] = 9000

	p := ioprocess.New(config.New(), newFakeStore(), analyzer)
	res, err := p.ProcessVariation(ctx, h, reg)
	require.NoError(t, err)

	assert.Equal(t, int64(650000000), res.Variations["dbSNP"])
	assert.Equal(t, int64(9000), res.DBSize)
	assert.Contains(t, res.Databases, h.Name())
	assert.Nil(t, res.Features, "variation contributes no feature payload")
}

func TestProcessFuncgen(t *testing.T) {
	ctx := context.Background()
	h := iotesting.NewGenomeHandle(
		t, "homo_sapiens_funcgen_99_38", "homo_sapiens", 1)

	g := &metadata.GenomeInfo{
		Name:     "homo_sapiens",
		Division: metadata.DivisionVertebrates,
		Features: map[string]int64{"repeat_feature/trf": 100},
	}
	reg := metadata.NewRegistry()
	reg.SetGenome(g)

	analyzer := newFakeAnalyzer()
	analyzer.features[h.Name()] = map[string]int64{"should": 1}
	analyzer.sizes[h.Name()] = 512

	p := ioprocess.New(config.New(), newFakeStore(), analyzer)
	res, err := p.ProcessFuncgen(ctx, h, reg)
	require.NoError(t, err)

	assert.Len(t, res.Features, 1,
		"regulation databases never touch the feature summary")
	assert.Equal(t, int64(512), res.DBSize)
	assert.Contains(t, res.Databases, h.Name())
}

func TestMissingPrerequisite(t *testing.T) {
	ctx := context.Background()
	h := iotesting.NewGenomeHandle(
		t, "homo_sapiens_variation_99_38", "homo_sapiens", 1)
	h.AddMeta(t, "species.division", "EnsemblVertebrates")

	p := ioprocess.New(config.New(), newFakeStore(), newFakeAnalyzer())
	_, err := p.ProcessVariation(ctx, h, metadata.NewRegistry())
	require.Error(t, err,
		"a companion kind without a core record is a driver ordering bug")
	assert.Contains(t, err.Error(), "homo_sapiens")
}

func TestStoreFallbackFiltersDivision(t *testing.T) {
	ctx := context.Background()
	h := iotesting.NewGenomeHandle(
		t, "saccharomyces_cerevisiae_cdna_46_99", "saccharomyces_cerevisiae", 1)
	h.AddMeta(t, "species.division", "EnsemblFungi")

	store := newFakeStore()
	vertebrate := &metadata.GenomeInfo{
		Name:     "saccharomyces_cerevisiae",
		Division: metadata.DivisionVertebrates,
	}
	fungal := &metadata.GenomeInfo{
		Name:     "saccharomyces_cerevisiae",
		Division: metadata.DivisionFungi,
	}
	store.addGenome(store.release.ID, vertebrate)
	store.addGenome(store.release.ID, fungal)

	reg := metadata.NewRegistry()
	p := ioprocess.New(config.New(), store, nil)
	res, err := p.ProcessCDNA(ctx, h, reg)
	require.NoError(t, err)

	assert.Same(t, fungal, res,
		"the store lookup filters to the companion database's division")

	cached, ok := reg.Genome("saccharomyces_cerevisiae")
	require.True(t, ok)
	assert.Same(t, fungal, cached)
}

func TestNilHandleCompanions(t *testing.T) {
	p := ioprocess.New(config.New(), newFakeStore(), nil)
	reg := metadata.NewRegistry()
	ctx := context.Background()

	_, err := p.ProcessOtherFeatures(ctx, nil, reg)
	require.Error(t, err)
	_, err = p.ProcessVariation(ctx, nil, reg)
	require.Error(t, err)
	_, err = p.ProcessFuncgen(ctx, nil, reg)
	require.Error(t, err)
}
