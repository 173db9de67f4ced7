package metadata

// ComparaInfo represents one comparative-analysis run over a fixed set
// of species for one analysis method. The species set is the grouping
// key: all comparison entries sharing a species-set id and method
// collapse into a single ComparaInfo.
type ComparaInfo struct {
	// DBName is the compara database the analysis came from.
	DBName string

	Division string

	// Method is the analysis method identifier, e.g. "PROTEIN_TREES".
	Method string

	// SetName is the human-readable species-set name, first non-empty
	// name wins within a group.
	SetName string

	// Genomes lists the participating genome records, unique, in
	// resolution order.
	Genomes []*GenomeInfo
}

// AddGenome appends a genome to the participant list unless it is
// already present.
func (c *ComparaInfo) AddGenome(g *GenomeInfo) {
	for _, existing := range c.Genomes {
		if existing == g {
			return
		}
	}
	c.Genomes = append(c.Genomes, g)
}
