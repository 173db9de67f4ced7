package schema_test

import (
	"testing"

	"github.com/luca-drf/ensembl-metadata/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestAllModels(t *testing.T) {
	models := schema.AllModels()
	assert.Len(t, models, 3)

	// Release rows are migrated before the genomes referencing them.
	_, ok := models[0].(*schema.DataRelease)
	assert.True(t, ok)
	_, ok = models[1].(*schema.Genome)
	assert.True(t, ok)
}
