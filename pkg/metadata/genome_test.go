package metadata_test

import (
	"testing"

	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
	"github.com/stretchr/testify/assert"
)

func TestAddDatabase(t *testing.T) {
	g := &metadata.GenomeInfo{}
	g.AddDatabase("homo_sapiens_core_99_38")
	g.AddDatabase("homo_sapiens_variation_99_38")
	g.AddDatabase("homo_sapiens_core_99_38")

	assert.Equal(t,
		[]string{"homo_sapiens_core_99_38", "homo_sapiens_variation_99_38"},
		g.Databases,
	)
}

func TestAddAlias(t *testing.T) {
	g := &metadata.GenomeInfo{}
	g.AddAlias("human")
	g.AddAlias("")
	g.AddAlias("human")
	g.AddAlias("hsapiens")

	assert.Equal(t, []string{"human", "hsapiens"}, g.Aliases)
}

func TestMergeFeatures(t *testing.T) {
	g := &metadata.GenomeInfo{}

	g.MergeFeatures(map[string]int64{
		"repeat_feature/trf": 100,
		"simple_feature/cpg": 10,
	})
	assert.Equal(t, int64(100), g.Features["repeat_feature/trf"])

	// Existing entries win on collision, so re-merging an unchanged
	// database is a no-op.
	g.MergeFeatures(map[string]int64{
		"repeat_feature/trf":     999,
		"simple_feature/eponine": 5,
	})
	assert.Equal(t, int64(100), g.Features["repeat_feature/trf"])
	assert.Equal(t, int64(5), g.Features["simple_feature/eponine"])
	assert.Len(t, g.Features, 3)

	g.MergeFeatures(nil)
	assert.Len(t, g.Features, 3)
}

func TestAddCompara(t *testing.T) {
	g := &metadata.GenomeInfo{Name: "homo_sapiens"}
	c := &metadata.ComparaInfo{Method: "PROTEIN_TREES"}

	g.AddCompara(c)
	g.AddCompara(c)
	assert.Len(t, g.Comparas, 1)

	c2 := &metadata.ComparaInfo{Method: "LASTZ_NET"}
	g.AddCompara(c2)
	assert.Len(t, g.Comparas, 2)
}

func TestComparaAddGenome(t *testing.T) {
	c := &metadata.ComparaInfo{Method: "SYNTENY"}
	a := &metadata.GenomeInfo{Name: "homo_sapiens"}
	b := &metadata.GenomeInfo{Name: "mus_musculus"}

	c.AddGenome(a)
	c.AddGenome(b)
	c.AddGenome(a)

	assert.Equal(t, []*metadata.GenomeInfo{a, b}, c.Genomes)
}

func TestDataReleaseIsAuxiliary(t *testing.T) {
	baseline := &metadata.DataRelease{Version: "99"}
	assert.False(t, baseline.IsAuxiliary())

	aux := &metadata.DataRelease{Version: "99", EGVersion: "46"}
	assert.True(t, aux.IsAuxiliary())

	var nilRelease *metadata.DataRelease
	assert.False(t, nilRelease.IsAuxiliary())
}
