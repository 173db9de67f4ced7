package metadata

import (
	"github.com/luca-drf/ensembl-metadata/pkg/db"
)

// KindGroup maps database kinds to handles for one species. Within a
// group a kind holds at most one handle; on duplicate classification
// the last writer wins, a known looseness kept for compatibility.
type KindGroup map[DatabaseKind]db.Handle

// Registry is the owned mutable state of one processing run: the
// per-species kind groups produced by classification, the compara
// handles, and the species-name to GenomeInfo map mutated in place by
// both the per-species phase and the compara phase. Execution is
// single-threaded, so no locking; each key has a single writer.
type Registry struct {
	groups   map[string]KindGroup
	comparas []db.Handle
	genomes  map[string]*GenomeInfo

	speciesOrder []string
	genomeOrder  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		groups:  make(map[string]KindGroup),
		genomes: make(map[string]*GenomeInfo),
	}
}

// AddHandle files a handle under (species, kind). A later handle for
// the same slot silently replaces the earlier one.
func (r *Registry) AddHandle(species string, kind DatabaseKind, h db.Handle) {
	group, ok := r.groups[species]
	if !ok {
		group = make(KindGroup)
		r.groups[species] = group
		r.speciesOrder = append(r.speciesOrder, species)
	}
	group[kind] = h
}

// AddCompara appends a compara database handle.
func (r *Registry) AddCompara(h db.Handle) {
	r.comparas = append(r.comparas, h)
}

// Species returns all species with classified handles, in
// classification order.
func (r *Registry) Species() []string {
	return r.speciesOrder
}

// Group returns the kind group for a species, nil when unknown.
func (r *Registry) Group(species string) KindGroup {
	return r.groups[species]
}

// Comparas returns the compara handles in classification order.
func (r *Registry) Comparas() []db.Handle {
	return r.comparas
}

// Genome looks up the unified record for a species by production name.
func (r *Registry) Genome(name string) (*GenomeInfo, bool) {
	g, ok := r.genomes[name]
	return g, ok
}

// SetGenome files a genome record under its production name,
// overwriting in place. Records are never duplicated per name.
func (r *Registry) SetGenome(g *GenomeInfo) {
	if _, ok := r.genomes[g.Name]; !ok {
		r.genomeOrder = append(r.genomeOrder, g.Name)
	}
	r.genomes[g.Name] = g
}

// Genomes returns all accumulated genome records in insertion order.
func (r *Registry) Genomes() []*GenomeInfo {
	res := make([]*GenomeInfo, 0, len(r.genomeOrder))
	for _, name := range r.genomeOrder {
		res = append(res, r.genomes[name])
	}
	return res
}
