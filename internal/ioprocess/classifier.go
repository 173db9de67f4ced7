package ioprocess

import (
	"log/slog"

	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
)

// classify partitions database handles into the registry: compara
// databases aside, ancestral databases dropped, everything else filed
// under (species, kind). Unclassifiable databases are skipped with a
// warning rather than failing the run.
func (p *processor) classify(handles []db.Handle) *metadata.Registry {
	reg := metadata.NewRegistry()

	for _, h := range handles {
		name := h.Name()

		if metadata.IsAncestral(name) {
			slog.Debug("Skipping ancestral database", "database", name)
			continue
		}

		if metadata.IsCompara(name) {
			reg.AddCompara(h)
			continue
		}

		kind, ok := metadata.ClassifyName(name)
		if !ok {
			slog.Warn("Skipping unclassifiable database", "database", name)
			continue
		}

		if h.Species() == "" {
			slog.Warn("Skipping database without species",
				"database", name,
				"kind", kind.String(),
			)
			continue
		}

		reg.AddHandle(h.Species(), kind, h)
	}

	return reg
}
