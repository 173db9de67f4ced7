package ioprocess

import (
	"context"

	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
)

// ProcessVariation extends an existing genome record with a variation
// database: the variation summary is attached wholesale and the size
// estimate updated.
func (p *processor) ProcessVariation(
	ctx context.Context,
	h db.Handle,
	reg *metadata.Registry,
) (*metadata.GenomeInfo, error) {
	g, err := p.locateGenome(ctx, h, reg, metadata.KindVariation)
	if err != nil {
		return nil, err
	}

	if p.analyzer != nil {
		variations, err := p.analyzer.Variations(ctx, h)
		if err != nil {
			return nil, AnnotationError(h.Name(), err)
		}
		g.Variations = variations

		size, err := p.analyzer.Size(ctx, h)
		if err != nil {
			return nil, AnnotationError(h.Name(), err)
		}
		g.DBSize = size
	}

	g.AddDatabase(h.Name())
	return g, nil
}
