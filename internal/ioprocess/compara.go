package ioprocess

import (
	"context"
	"log/slog"

	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/luca-drf/ensembl-metadata/pkg/ensmeta"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
)

// comparaMethods is the closed set of comparative-analysis methods the
// resolver looks for. Methods absent from a compara database simply
// yield no records.
var comparaMethods = []string{
	"PROTEIN_TREES",
	"LASTZ_NET",
	"BLASTZ_NET",
	"TRANSLATED_BLAT_NET",
	"SYNTENY",
	"FAMILY",
}

// Comparison entries for one method, ordered so rows of the same
// species set arrive together. Two entries sharing a species-set id are
// the same group regardless of membership.
const qComparaEntries = `
SELECT mlss.species_set_id,
       COALESCE(ssh.name, ''),
       gdb.name
  FROM method_link_species_set mlss
  JOIN method_link ml ON ml.method_link_id = mlss.method_link_id
  JOIN species_set ss ON ss.species_set_id = mlss.species_set_id
  JOIN genome_db gdb ON gdb.genome_db_id = ss.genome_db_id
  LEFT JOIN species_set_header ssh
    ON ssh.species_set_id = mlss.species_set_id
 WHERE ml.type = $1
 ORDER BY mlss.species_set_id, mlss.method_link_species_set_id, gdb.name`

// comparaGroup accumulates one species set while rows stream in.
type comparaGroup struct {
	setID   int64
	setName string
	species []string
}

func (cg *comparaGroup) add(setName, species string) {
	if cg.setName == "" {
		cg.setName = setName
	}
	for _, s := range cg.species {
		if s == species {
			return
		}
	}
	cg.species = append(cg.species, species)
}

// ProcessCompara resolves every comparative analysis of a compara
// database against the registry, falling back to the persisted store
// for species not processed in this run. Processing is all-or-nothing:
// a single unresolvable species aborts the whole database.
func (p *processor) ProcessCompara(
	ctx context.Context,
	h db.Handle,
	reg *metadata.Registry,
) ([]*metadata.ComparaInfo, error) {
	if h == nil {
		return nil, NilHandleError(metadata.ComparaMarker)
	}

	division := metadata.DivisionFromComparaName(h.Name())
	slog.Info("Processing compara database",
		"database", h.Name(),
		"division", division,
	)

	var res []*metadata.ComparaInfo
	for _, method := range comparaMethods {
		groups, err := p.comparaGroups(ctx, h, method)
		if err != nil {
			return nil, ComparaError(h.Name(), err)
		}

		for _, group := range groups {
			c := &metadata.ComparaInfo{
				DBName:   h.Name(),
				Division: division,
				Method:   method,
				SetName:  group.setName,
			}

			for _, species := range group.species {
				g, err := p.resolveComparaGenome(ctx, species, division, reg)
				if err != nil {
					return nil, ComparaError(h.Name(), err)
				}
				c.AddGenome(g)
				g.AddCompara(c)
			}

			res = append(res, c)
		}
	}

	return res, nil
}

// comparaGroups fetches all comparison entries for a method and groups
// them by species-set id, collecting the union of participating species
// names. The first non-empty set name within a group wins.
func (p *processor) comparaGroups(
	ctx context.Context,
	h db.Handle,
	method string,
) ([]*comparaGroup, error) {
	var groups []*comparaGroup
	byID := make(map[int64]*comparaGroup)

	err := h.Each(ctx, qComparaEntries, func(scan db.ScanFunc) error {
		var (
			setID            int64
			setName, species string
		)
		if err := scan(&setID, &setName, &species); err != nil {
			return err
		}

		group, ok := byID[setID]
		if !ok {
			group = &comparaGroup{setID: setID}
			byID[setID] = group
			groups = append(groups, group)
		}
		group.add(setName, species)
		return nil
	}, method)
	if err != nil {
		return nil, ComparaQueryError(h.Name(), method, err)
	}

	return groups, nil
}

// resolveComparaGenome finds the genome record for a species referenced
// by a comparative analysis: the run's registry first, then the
// persisted store, then the baseline release when the run targets an
// auxiliary release. Resolved records are cached in the registry so the
// next group referencing the species is a map lookup.
func (p *processor) resolveComparaGenome(
	ctx context.Context,
	species, division string,
	reg *metadata.Registry,
) (*metadata.GenomeInfo, error) {
	if g, ok := reg.Genome(species); ok {
		return g, nil
	}

	candidates, err := p.store.FetchByName(ctx, species)
	if err != nil {
		return nil, err
	}

	g := pickComparaCandidate(candidates, species, division)
	if g == nil {
		g, err = p.baselineFallback(ctx, species)
		if err != nil {
			return nil, err
		}
	}
	if g == nil {
		return nil, GenomeNotFoundError(species)
	}

	reg.SetGenome(g)
	return g, nil
}

// pickComparaCandidate applies the disambiguation policy to persisted
// candidates. Species shared across divisions prefer a candidate from a
// different division when resolving for the pan-taxonomic or plants
// division, and a matching division otherwise. Everything else falls
// through to the last candidate encountered.
func pickComparaCandidate(
	candidates []*metadata.GenomeInfo,
	species, division string,
) *metadata.GenomeInfo {
	if len(candidates) == 0 {
		return nil
	}

	if metadata.SharedDivisionSpecies[species] {
		wantDifferent := division == metadata.DivisionPan ||
			division == metadata.DivisionPlants
		for _, c := range candidates {
			if wantDifferent && c.Division != division {
				return c
			}
			if !wantDifferent && c.Division == division {
				return c
			}
		}
	}

	return metadata.LastCandidateWins(candidates)
}

// baselineFallback retries the store lookup with the data-release
// context temporarily switched to the baseline release, accepting only
// vertebrate-division candidates. Only meaningful when the run targets
// an auxiliary release layered over a baseline one.
func (p *processor) baselineFallback(
	ctx context.Context,
	species string,
) (*metadata.GenomeInfo, error) {
	current := p.store.DataRelease()
	if !current.IsAuxiliary() {
		return nil, nil
	}

	baseline, err := p.store.BaselineRelease(ctx, current.Version)
	if err != nil {
		return nil, err
	}

	p.store.SetDataRelease(baseline)
	defer p.store.SetDataRelease(current)

	candidates, err := p.store.FetchByName(ctx, species)
	if err != nil {
		return nil, err
	}

	var matched []*metadata.GenomeInfo
	for _, c := range candidates {
		if c.Division == metadata.DivisionVertebrates {
			matched = append(matched, c)
		}
	}
	g := metadata.LastCandidateWins(matched)
	if g != nil {
		slog.Debug("Genome resolved from baseline release",
			"species", species,
			"release", baseline.Version,
		)
	}
	return g, nil
}

var _ ensmeta.Processor = (*processor)(nil)
