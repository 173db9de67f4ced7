package ioprocess

import (
	"context"

	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
)

// ProcessFuncgen extends an existing genome record with a regulation
// database. Regulation databases contribute no feature payload, only
// their name and a fresh size observation.
func (p *processor) ProcessFuncgen(
	ctx context.Context,
	h db.Handle,
	reg *metadata.Registry,
) (*metadata.GenomeInfo, error) {
	g, err := p.locateGenome(ctx, h, reg, metadata.KindFuncgen)
	if err != nil {
		return nil, err
	}

	if p.analyzer != nil {
		size, err := p.analyzer.Size(ctx, h)
		if err != nil {
			return nil, AnnotationError(h.Name(), err)
		}
		g.DBSize = size
	}

	g.AddDatabase(h.Name())
	return g, nil
}
