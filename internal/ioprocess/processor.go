// Package ioprocess implements the Processor interface: classification
// of genome databases, the per-kind builders that assemble unified
// genome records, and comparative-analysis resolution. This is an
// impure I/O package that queries genome databases through db.Handle.
package ioprocess

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/luca-drf/ensembl-metadata/pkg/config"
	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/luca-drf/ensembl-metadata/pkg/ensmeta"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
)

// processor implements the Processor interface.
type processor struct {
	cfg      *config.Config
	store    ensmeta.Store
	analyzer ensmeta.Analyzer
}

// New creates a new Processor.
func New(
	cfg *config.Config,
	store ensmeta.Store,
	analyzer ensmeta.Analyzer,
) ensmeta.Processor {
	return &processor{cfg: cfg, store: store, analyzer: analyzer}
}

// ProcessDatabases runs the whole pipeline: classification, per-species
// record building with the core kind first, then compara resolution.
// The pipeline is strictly sequential; any builder error aborts the run.
func (p *processor) ProcessDatabases(
	ctx context.Context,
	handles []db.Handle,
) ([]*metadata.GenomeInfo, error) {
	startTime := time.Now()

	reg := p.classify(handles)
	species := reg.Species()

	slog.Info("Starting metadata processing",
		"species", len(species),
		"comparas", len(reg.Comparas()),
	)

	bar := pb.Full.Start(len(species))
	bar.Set("prefix", "Processing species: ")
	bar.Set(pb.CleanOnFinish, true)

	for _, sp := range species {
		select {
		case <-ctx.Done():
			bar.Finish()
			return nil, ctx.Err()
		default:
		}

		if err := p.processSpecies(ctx, sp, reg); err != nil {
			bar.Finish()
			return nil, err
		}
		bar.Increment()
	}
	bar.Finish()

	for _, h := range reg.Comparas() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		comparas, err := p.ProcessCompara(ctx, h, reg)
		if err != nil {
			return nil, err
		}
		slog.Info("Compara database processed",
			"database", h.Name(),
			"analyses", len(comparas),
		)
	}

	genomes := reg.Genomes()
	duration := time.Since(startTime)
	slog.Info("Metadata processing complete",
		"genomes", len(genomes),
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	msg := fmt.Sprintf("Processed <em>%d</em> genomes in %s",
		len(genomes), gnfmt.TimeString(duration.Seconds()))
	gn.Info(msg)

	return genomes, nil
}

// processSpecies runs the per-kind builders for one species in kind
// order. The core kind runs first and creates the record everything
// else extends.
func (p *processor) processSpecies(
	ctx context.Context,
	species string,
	reg *metadata.Registry,
) error {
	group := reg.Group(species)

	for _, kind := range metadata.Kinds() {
		h, ok := group[kind]
		if !ok {
			continue
		}

		var err error
		switch kind {
		case metadata.KindCore:
			_, err = p.ProcessCore(ctx, h, reg)
		case metadata.KindOtherFeatures:
			_, err = p.ProcessOtherFeatures(ctx, h, reg)
		case metadata.KindRNASeq:
			_, err = p.ProcessRNASeq(ctx, h, reg)
		case metadata.KindCDNA:
			_, err = p.ProcessCDNA(ctx, h, reg)
		case metadata.KindVariation:
			_, err = p.ProcessVariation(ctx, h, reg)
		case metadata.KindFuncgen:
			_, err = p.ProcessFuncgen(ctx, h, reg)
		}
		if err != nil {
			return err
		}

		slog.Debug("Database processed",
			"database", h.Name(),
			"species", species,
			"kind", kind.String(),
		)
	}
	return nil
}
