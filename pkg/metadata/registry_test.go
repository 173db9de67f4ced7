package metadata_test

import (
	"testing"

	"github.com/luca-drf/ensembl-metadata/internal/iotesting"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryHandles(t *testing.T) {
	reg := metadata.NewRegistry()

	core := iotesting.NewHandle(t, "homo_sapiens_core_99_38", "homo_sapiens", 1)
	variation := iotesting.NewHandle(
		t, "homo_sapiens_variation_99_38", "homo_sapiens", 1)
	mouse := iotesting.NewHandle(t, "mus_musculus_core_99_2", "mus_musculus", 1)

	reg.AddHandle("homo_sapiens", metadata.KindCore, core)
	reg.AddHandle("homo_sapiens", metadata.KindVariation, variation)
	reg.AddHandle("mus_musculus", metadata.KindCore, mouse)

	assert.Equal(t, []string{"homo_sapiens", "mus_musculus"}, reg.Species())

	group := reg.Group("homo_sapiens")
	require.NotNil(t, group)
	assert.Same(t, core, group[metadata.KindCore].(*iotesting.Handle))
	assert.Len(t, group, 2)

	assert.Nil(t, reg.Group("rattus_norvegicus"))
}

func TestRegistryLastWriterWins(t *testing.T) {
	reg := metadata.NewRegistry()

	first := iotesting.NewHandle(t, "homo_sapiens_core_98_38", "homo_sapiens", 1)
	second := iotesting.NewHandle(t, "homo_sapiens_core_99_38", "homo_sapiens", 1)

	reg.AddHandle("homo_sapiens", metadata.KindCore, first)
	reg.AddHandle("homo_sapiens", metadata.KindCore, second)

	group := reg.Group("homo_sapiens")
	assert.Same(t, second, group[metadata.KindCore].(*iotesting.Handle))
	assert.Equal(t, []string{"homo_sapiens"}, reg.Species(),
		"replacing a handle does not duplicate the species")
}

func TestRegistryGenomes(t *testing.T) {
	reg := metadata.NewRegistry()

	_, ok := reg.Genome("homo_sapiens")
	assert.False(t, ok)

	human := &metadata.GenomeInfo{Name: "homo_sapiens"}
	mouse := &metadata.GenomeInfo{Name: "mus_musculus"}
	reg.SetGenome(human)
	reg.SetGenome(mouse)

	g, ok := reg.Genome("homo_sapiens")
	require.True(t, ok)
	assert.Same(t, human, g)

	// Overwriting in place keeps insertion order and never duplicates.
	human2 := &metadata.GenomeInfo{Name: "homo_sapiens"}
	reg.SetGenome(human2)

	genomes := reg.Genomes()
	require.Len(t, genomes, 2)
	assert.Same(t, human2, genomes[0])
	assert.Same(t, mouse, genomes[1])
}

func TestRegistryComparas(t *testing.T) {
	reg := metadata.NewRegistry()
	assert.Empty(t, reg.Comparas())

	h := iotesting.NewHandle(t, "ensembl_compara_99", "", 1)
	reg.AddCompara(h)
	assert.Len(t, reg.Comparas(), 1)
}
