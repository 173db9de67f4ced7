package iostore

import (
	"github.com/google/uuid"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
	"github.com/luca-drf/ensembl-metadata/pkg/schema"
)

// rowFromGenome serializes a genome record into its warehouse row. The
// list and map summaries go into JSON text columns.
func (s *store) rowFromGenome(g *metadata.GenomeInfo) (*schema.Genome, error) {
	row := &schema.Genome{
		UUID:              g.UUID,
		Name:              g.Name,
		SpeciesID:         g.SpeciesID,
		Division:          g.Division,
		DBName:            g.DBName,
		StrainName:        g.StrainName,
		Serotype:          g.Serotype,
		DisplayName:       g.DisplayName,
		ScientificName:    g.ScientificName,
		TaxonomyID:        g.TaxonomyID,
		SpeciesTaxonomyID: g.SpeciesTaxonomyID,
		AssemblyAccession: g.AssemblyAccession,
		AssemblyName:      g.AssemblyName,
		AssemblyDefault:   g.AssemblyDefault,
		AssemblyUCSC:      g.AssemblyUCSC,
		AssemblyLevel:     g.AssemblyLevel,
		Genebuild:         g.Genebuild,
		BasePairs:         g.BasePairs,
		DBSize:            g.DBSize,
	}
	if g.Release != nil {
		row.DataReleaseID = g.Release.ID
	}
	// The warehouse key is never the empty string.
	if row.UUID == "" {
		row.UUID = uuid.Nil.String()
	}

	payloads := []struct {
		src  any
		dest *string
	}{
		{g.Sequences, &row.Sequences},
		{g.Publications, &row.Publications},
		{g.Aliases, &row.Aliases},
		{g.Annotations, &row.Annotations},
		{g.Features, &row.Features},
		{g.Alignments, &row.Alignments},
		{g.Variations, &row.Variations},
		{g.Databases, &row.Databases},
	}
	for _, p := range payloads {
		bs, err := s.enc.Encode(p.src)
		if err != nil {
			return nil, err
		}
		*p.dest = string(bs)
	}

	return row, nil
}

// genomeFromRow deserializes a warehouse row back into a genome record.
// The release context is the one the row was fetched under.
func (s *store) genomeFromRow(row *schema.Genome) (*metadata.GenomeInfo, error) {
	g := &metadata.GenomeInfo{
		UUID:              row.UUID,
		Name:              row.Name,
		SpeciesID:         row.SpeciesID,
		Division:          row.Division,
		DBName:            row.DBName,
		Release:           s.release,
		StrainName:        row.StrainName,
		Serotype:          row.Serotype,
		DisplayName:       row.DisplayName,
		ScientificName:    row.ScientificName,
		TaxonomyID:        row.TaxonomyID,
		SpeciesTaxonomyID: row.SpeciesTaxonomyID,
		AssemblyAccession: row.AssemblyAccession,
		AssemblyName:      row.AssemblyName,
		AssemblyDefault:   row.AssemblyDefault,
		AssemblyUCSC:      row.AssemblyUCSC,
		AssemblyLevel:     row.AssemblyLevel,
		Genebuild:         row.Genebuild,
		BasePairs:         row.BasePairs,
		DBSize:            row.DBSize,
	}

	payloads := []struct {
		src  string
		dest any
	}{
		{row.Sequences, &g.Sequences},
		{row.Publications, &g.Publications},
		{row.Aliases, &g.Aliases},
		{row.Annotations, &g.Annotations},
		{row.Features, &g.Features},
		{row.Alignments, &g.Alignments},
		{row.Variations, &g.Variations},
		{row.Databases, &g.Databases},
	}
	for _, p := range payloads {
		if p.src == "" || p.src == "null" {
			continue
		}
		if err := s.enc.Decode([]byte(p.src), p.dest); err != nil {
			return nil, err
		}
	}

	return g, nil
}
