package ioprocess

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gnames/gnparser"
	"github.com/gnames/gnuuid"
	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
)

// Highest-ranked coordinate system names the assembly level.
const qAssemblyLevel = `
SELECT name FROM coord_system
 WHERE species_id = $1
 ORDER BY rank
 LIMIT 1`

// Sequence inventory is the union of default-version sequences (with
// their archive synonym when one is linked) and sequences independently
// flagged as archive-resident, which may have no synonym row at all.
// The reader keys entries by sequence name; a sequence surfacing in
// both branches collapses to one entry.
const qSequences = `
SELECT sr.name, COALESCE(srs.synonym, sr.name) AS acc
  FROM seq_region sr
  JOIN coord_system cs ON cs.coord_system_id = sr.coord_system_id
  LEFT JOIN seq_region_synonym srs
    ON srs.seq_region_id = sr.seq_region_id
 WHERE cs.species_id = $1
   AND cs.attrib LIKE '%default_version%'
UNION
SELECT sr.name, sr.name AS acc
  FROM seq_region sr
  JOIN coord_system cs ON cs.coord_system_id = sr.coord_system_id
  JOIN seq_region_attrib sra ON sra.seq_region_id = sr.seq_region_id
  JOIN attrib_type at ON at.attrib_type_id = sra.attrib_type_id
 WHERE cs.species_id = $1
   AND at.code = 'external_db'`

const qBasePairs = `
SELECT COALESCE(SUM(sr.length), 0)
  FROM seq_region sr
  JOIN seq_region_attrib sra ON sra.seq_region_id = sr.seq_region_id
  JOIN attrib_type at ON at.attrib_type_id = sra.attrib_type_id
  JOIN coord_system cs ON cs.coord_system_id = sr.coord_system_id
 WHERE at.code = 'toplevel'
   AND cs.species_id = $1`

// Literature references live as PUBMED cross-references linked through
// sequence attributes that store the xref id as text. Scoped by species
// id so collection databases keep their members apart.
const qPublications = `
SELECT DISTINCT x.dbprimary_acc
  FROM seq_region_attrib sra
  JOIN seq_region sr ON sr.seq_region_id = sra.seq_region_id
  JOIN coord_system cs ON cs.coord_system_id = sr.coord_system_id
  JOIN attrib_type at ON at.attrib_type_id = sra.attrib_type_id
  JOIN xref x ON CAST(x.xref_id AS TEXT) = sra.value
  JOIN external_db ed ON ed.external_db_id = x.external_db_id
 WHERE at.code = 'xref_id'
   AND ed.db_name = 'PUBMED'
   AND cs.species_id = $1
 ORDER BY x.dbprimary_acc`

// ProcessCore builds a new genome record from a core database and files
// it in the registry. This is the only builder that creates records;
// every other kind extends what this one made.
func (p *processor) ProcessCore(
	ctx context.Context,
	h db.Handle,
	reg *metadata.Registry,
) (*metadata.GenomeInfo, error) {
	if h == nil {
		return nil, NilHandleError(metadata.KindCore.String())
	}

	g := &metadata.GenomeInfo{
		Name:      h.Species(),
		SpeciesID: h.SpeciesID(),
		DBName:    h.Name(),
		Release:   p.store.DataRelease(),
	}
	g.UUID = gnuuid.New(h.Name() + "|" + h.Species()).String()

	if err := p.coreNames(ctx, h, g); err != nil {
		return nil, err
	}
	if err := p.coreAssembly(ctx, h, g); err != nil {
		return nil, err
	}
	if err := p.corePublications(ctx, h, g); err != nil {
		return nil, err
	}
	if err := p.coreAliases(ctx, h, g); err != nil {
		return nil, err
	}
	if err := p.coreAnalysis(ctx, h, g); err != nil {
		return nil, err
	}

	g.AddDatabase(h.Name())
	reg.SetGenome(g)

	slog.Debug("Core database processed",
		"database", h.Name(),
		"species", g.Name,
		"division", g.Division,
	)
	return g, nil
}

// coreNames extracts the naming and taxonomy attributes and picks the
// division tag.
func (p *processor) coreNames(
	ctx context.Context,
	h db.Handle,
	g *metadata.GenomeInfo,
) error {
	var err error
	keys := []struct {
		key  string
		dest *string
	}{
		{"species.display_name", &g.DisplayName},
		{"species.scientific_name", &g.ScientificName},
		{"species.strain", &g.StrainName},
		{"species.serotype", &g.Serotype},
	}
	for _, k := range keys {
		*k.dest, err = metaValue(ctx, h, k.key)
		if err != nil {
			return err
		}
	}

	g.TaxonomyID, err = metaInt(ctx, h, "species.taxonomy_id")
	if err != nil {
		return err
	}
	g.SpeciesTaxonomyID, err = metaInt(ctx, h, "species.species_taxonomy_id")
	if err != nil {
		return err
	}
	if g.SpeciesTaxonomyID == 0 {
		g.SpeciesTaxonomyID = g.TaxonomyID
	}

	divisions, err := metaValues(ctx, h, "species.division")
	if err != nil {
		return err
	}
	g.Division = metadata.PickDivision(divisions)

	return nil
}

// coreAssembly extracts assembly attributes, the genome-build label,
// the assembly level, and when enabled the sequence inventory with the
// top-level base-pair total.
func (p *processor) coreAssembly(
	ctx context.Context,
	h db.Handle,
	g *metadata.GenomeInfo,
) error {
	var err error
	keys := []struct {
		key  string
		dest *string
	}{
		{"assembly.accession", &g.AssemblyAccession},
		{"assembly.name", &g.AssemblyName},
		{"assembly.default", &g.AssemblyDefault},
		{"assembly.ucsc_alias", &g.AssemblyUCSC},
	}
	for _, k := range keys {
		*k.dest, err = metaValue(ctx, h, k.key)
		if err != nil {
			return err
		}
	}

	version, err := metaValue(ctx, h, "genebuild.version")
	if err != nil {
		return err
	}
	startDate, err := metaValue(ctx, h, "genebuild.start_date")
	if err != nil {
		return err
	}
	lastUpdate, err := metaValue(ctx, h, "genebuild.last_geneset_update")
	if err != nil {
		return err
	}
	g.Genebuild = metadata.GenomeBuildLabel(version, startDate, lastUpdate)

	err = h.Scalar(ctx, &g.AssemblyLevel, qAssemblyLevel, h.SpeciesID())
	if err != nil && !errors.Is(err, db.ErrNoRows) {
		return AssemblyError(h.Name(), err)
	}

	if p.cfg.Process.RetrieveSequences {
		idx := make(map[string]int)
		err = h.Each(ctx, qSequences, func(scan db.ScanFunc) error {
			var seq metadata.Sequence
			if err := scan(&seq.Name, &seq.Acc); err != nil {
				return err
			}
			// One entry per sequence name; the synonym-bearing row
			// wins over a name-only one from the other branch.
			if i, ok := idx[seq.Name]; ok {
				prev := g.Sequences[i]
				if prev.Acc == prev.Name && seq.Acc != seq.Name {
					g.Sequences[i] = seq
				}
				return nil
			}
			idx[seq.Name] = len(g.Sequences)
			g.Sequences = append(g.Sequences, seq)
			return nil
		}, h.SpeciesID())
		if err != nil {
			return AssemblyError(h.Name(), err)
		}
	}

	err = h.Scalar(ctx, &g.BasePairs, qBasePairs, h.SpeciesID())
	if err != nil && !errors.Is(err, db.ErrNoRows) {
		return AssemblyError(h.Name(), err)
	}

	return nil
}

func (p *processor) corePublications(
	ctx context.Context,
	h db.Handle,
	g *metadata.GenomeInfo,
) error {
	pubs, err := h.Strings(ctx, qPublications, h.SpeciesID())
	if err != nil {
		return AssemblyError(h.Name(), err)
	}
	g.Publications = pubs
	return nil
}

// coreAliases collects the distinct species aliases and adds the
// canonical form of the scientific name when it parses cleanly.
func (p *processor) coreAliases(
	ctx context.Context,
	h db.Handle,
	g *metadata.GenomeInfo,
) error {
	aliases, err := metaValues(ctx, h, "species.alias")
	if err != nil {
		return err
	}
	for _, a := range aliases {
		g.AddAlias(a)
	}

	if g.ScientificName != "" {
		prs := gnparser.New(gnparser.NewConfig())
		parsed := prs.ParseName(g.ScientificName)
		if parsed.Parsed {
			g.AddAlias(parsed.Canonical.Simple)
		}
	}

	metadata.SortAliases(g.Aliases)
	return nil
}

// coreAnalysis populates the annotation, feature, and alignment
// summaries plus the on-disk size estimate. Skipped entirely when no
// analyzer is wired in.
func (p *processor) coreAnalysis(
	ctx context.Context,
	h db.Handle,
	g *metadata.GenomeInfo,
) error {
	if p.analyzer == nil {
		return nil
	}

	annotations, err := p.analyzer.Annotations(ctx, h)
	if err != nil {
		return AnnotationError(h.Name(), err)
	}
	g.Annotations = annotations

	features, err := p.analyzer.Features(ctx, h)
	if err != nil {
		return AnnotationError(h.Name(), err)
	}
	g.MergeFeatures(features)

	alignments, err := p.alignmentSummary(ctx, h, g.Name, g.Division)
	if err != nil {
		return err
	}
	g.Alignments = alignments

	size, err := p.analyzer.Size(ctx, h)
	if err != nil {
		return AnnotationError(h.Name(), err)
	}
	g.DBSize = size

	return nil
}

// alignmentSummary merges the database's base alignments with the
// read-alignment track counts for the species. Read alignments fold in
// as counts per track identifier, not raw records.
func (p *processor) alignmentSummary(
	ctx context.Context,
	h db.Handle,
	species, division string,
) (map[string]int64, error) {
	res, err := p.analyzer.Alignments(ctx, h)
	if err != nil {
		return nil, AnnotationError(h.Name(), err)
	}
	if res == nil {
		res = make(map[string]int64)
	}

	reads, err := p.analyzer.ReadAlignments(ctx, species, division)
	if err != nil {
		return nil, AnnotationError(h.Name(), err)
	}
	for source, tracks := range reads {
		res[source] += int64(len(tracks))
	}
	return res, nil
}
