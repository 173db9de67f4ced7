package ioprocess

import (
	"context"
	"log/slog"

	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
)

// ProcessOtherFeatures extends an existing genome record with an
// alternate gene-set database.
func (p *processor) ProcessOtherFeatures(
	ctx context.Context,
	h db.Handle,
	reg *metadata.Registry,
) (*metadata.GenomeInfo, error) {
	return p.extendFeatures(ctx, h, reg, metadata.KindOtherFeatures)
}

// ProcessRNASeq extends an existing genome record with a short-read
// alignment database.
func (p *processor) ProcessRNASeq(
	ctx context.Context,
	h db.Handle,
	reg *metadata.Registry,
) (*metadata.GenomeInfo, error) {
	return p.extendFeatures(ctx, h, reg, metadata.KindRNASeq)
}

// ProcessCDNA extends an existing genome record with a cDNA database.
func (p *processor) ProcessCDNA(
	ctx context.Context,
	h db.Handle,
	reg *metadata.Registry,
) (*metadata.GenomeInfo, error) {
	return p.extendFeatures(ctx, h, reg, metadata.KindCDNA)
}

// extendFeatures is the shared builder for the feature-carrying
// companion kinds. Features merge with existing entries winning,
// alignments are recomputed from this database, size is overwritten.
func (p *processor) extendFeatures(
	ctx context.Context,
	h db.Handle,
	reg *metadata.Registry,
	kind metadata.DatabaseKind,
) (*metadata.GenomeInfo, error) {
	g, err := p.locateGenome(ctx, h, reg, kind)
	if err != nil {
		return nil, err
	}

	if p.analyzer != nil {
		features, err := p.analyzer.Features(ctx, h)
		if err != nil {
			return nil, AnnotationError(h.Name(), err)
		}
		g.MergeFeatures(features)

		alignments, err := p.alignmentSummary(ctx, h, g.Name, g.Division)
		if err != nil {
			return nil, err
		}
		if g.Alignments == nil {
			g.Alignments = make(map[string]int64, len(alignments))
		}
		for k, v := range alignments {
			g.Alignments[k] = v
		}

		size, err := p.analyzer.Size(ctx, h)
		if err != nil {
			return nil, AnnotationError(h.Name(), err)
		}
		g.DBSize = size
	}

	g.AddDatabase(h.Name())
	return g, nil
}

// locateGenome resolves the record a companion database extends: first
// the current run's registry, then the persisted store filtered to the
// division recorded in the companion database itself. A record that is
// still missing signals an absent core database, which is fatal.
func (p *processor) locateGenome(
	ctx context.Context,
	h db.Handle,
	reg *metadata.Registry,
	kind metadata.DatabaseKind,
) (*metadata.GenomeInfo, error) {
	if h == nil {
		return nil, NilHandleError(kind.String())
	}

	if g, ok := reg.Genome(h.Species()); ok {
		return g, nil
	}

	divisions, err := metaValues(ctx, h, "species.division")
	if err != nil {
		return nil, err
	}
	division := metadata.PickDivision(divisions)

	candidates, err := p.store.FetchByName(ctx, h.Species())
	if err != nil {
		return nil, err
	}

	var matched []*metadata.GenomeInfo
	for _, c := range candidates {
		if c.Division == division {
			matched = append(matched, c)
		}
	}

	g := metadata.LastCandidateWins(matched)
	if g == nil {
		return nil, NoGenomeError(kind, h.Species(), division)
	}

	slog.Debug("Genome record restored from store",
		"species", h.Species(),
		"division", division,
		"kind", kind.String(),
	)
	reg.SetGenome(g)
	return g, nil
}
