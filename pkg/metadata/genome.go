// Package metadata defines the domain model for the ensembl-metadata
// pipeline: the unified per-species genome record, the comparative
// analysis record, database kinds, and the registry that threads both
// through a processing run.
package metadata

// Sequence is one entry of the assembly sequence inventory: a sequence
// name paired with its external-archive accession.
type Sequence struct {
	Name string `json:"name"`
	Acc  string `json:"acc"`
}

// GenomeInfo is the unified metadata record for one
// (species, division, release). It is created exactly once per run by
// the core-kind builder and only ever extended afterwards.
type GenomeInfo struct {
	// UUID is a stable v5 UUID derived from the core database and
	// species names.
	UUID string

	// Name is the species production name, e.g. "homo_sapiens".
	Name string

	// SpeciesID is the numeric species id within the core database
	// (greater than 1 only in collection databases).
	SpeciesID int64

	Division string

	// DBName is the core database this record was created from.
	DBName string

	// Release the scanned databases belong to.
	Release *DataRelease

	StrainName     string
	Serotype       string
	DisplayName    string
	ScientificName string

	TaxonomyID int64
	// SpeciesTaxonomyID defaults to TaxonomyID when the species-level
	// id is not recorded.
	SpeciesTaxonomyID int64

	AssemblyAccession string
	AssemblyName      string
	AssemblyDefault   string
	AssemblyUCSC      string

	// Genebuild is the genome-build label: the explicit genebuild
	// version when recorded, otherwise start date and last update
	// joined with "/".
	Genebuild string

	// AssemblyLevel is the name of the highest-ranked coordinate
	// system, e.g. "chromosome".
	AssemblyLevel string

	Sequences []Sequence

	// BasePairs is the total length of all top-level sequences.
	BasePairs int64

	Publications []string
	Aliases      []string

	// Annotations holds gene counts keyed by biotype.
	Annotations map[string]int64

	// Features holds feature counts keyed by "<table>/<logic_name>".
	Features map[string]int64

	// Alignments holds alignment counts keyed by source, base
	// alignments merged with read-alignment track counts.
	Alignments map[string]int64

	// Variations holds variant counts keyed by source.
	Variations map[string]int64

	// DBSize is the latest on-disk size estimate observed for a
	// contributing database.
	DBSize int64

	// Databases is the set of database names that contributed to this
	// record, in first-contribution order.
	Databases []string

	// Comparas lists every comparative analysis this genome
	// participates in. Append-only.
	Comparas []*ComparaInfo
}

// AddDatabase registers a contributing database name. Duplicates are
// ignored, insertion order is preserved.
func (g *GenomeInfo) AddDatabase(name string) {
	for _, db := range g.Databases {
		if db == name {
			return
		}
	}
	g.Databases = append(g.Databases, name)
}

// AddAlias appends an alias unless it is already present.
func (g *GenomeInfo) AddAlias(alias string) {
	if alias == "" {
		return
	}
	for _, a := range g.Aliases {
		if a == alias {
			return
		}
	}
	g.Aliases = append(g.Aliases, alias)
}

// MergeFeatures merges fresh feature counts into the record. Existing
// entries win on key collision, which makes re-merging an unchanged
// database a no-op.
func (g *GenomeInfo) MergeFeatures(fresh map[string]int64) {
	if len(fresh) == 0 {
		return
	}
	if g.Features == nil {
		g.Features = make(map[string]int64, len(fresh))
	}
	for k, v := range fresh {
		if _, ok := g.Features[k]; !ok {
			g.Features[k] = v
		}
	}
}

// AddCompara appends a comparative analysis to the participation list,
// initializing the list on first use. A record already present is not
// appended twice.
func (g *GenomeInfo) AddCompara(c *ComparaInfo) {
	for _, existing := range g.Comparas {
		if existing == c {
			return
		}
	}
	g.Comparas = append(g.Comparas, c)
}
