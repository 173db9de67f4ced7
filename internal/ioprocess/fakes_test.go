package ioprocess_test

import (
	"context"

	"github.com/luca-drf/ensembl-metadata/pkg/db"
	"github.com/luca-drf/ensembl-metadata/pkg/ensmeta"
	"github.com/luca-drf/ensembl-metadata/pkg/metadata"
)

// fakeStore is an in-memory Store with release-scoped candidates.
type fakeStore struct {
	release  *metadata.DataRelease
	baseline *metadata.DataRelease

	// genomes holds candidates per release ID, then per species name.
	genomes map[int64]map[string][]*metadata.GenomeInfo

	saved []*metadata.GenomeInfo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		release: &metadata.DataRelease{ID: 1, Version: "99"},
		genomes: make(map[int64]map[string][]*metadata.GenomeInfo),
	}
}

func (s *fakeStore) addGenome(releaseID int64, g *metadata.GenomeInfo) {
	byName := s.genomes[releaseID]
	if byName == nil {
		byName = make(map[string][]*metadata.GenomeInfo)
		s.genomes[releaseID] = byName
	}
	byName[g.Name] = append(byName[g.Name], g)
}

func (s *fakeStore) EnsureRelease(
	ctx context.Context,
) (*metadata.DataRelease, error) {
	return s.release, nil
}

func (s *fakeStore) FetchByName(
	ctx context.Context,
	name string,
) ([]*metadata.GenomeInfo, error) {
	return s.genomes[s.release.ID][name], nil
}

func (s *fakeStore) DataRelease() *metadata.DataRelease {
	return s.release
}

func (s *fakeStore) SetDataRelease(r *metadata.DataRelease) {
	s.release = r
}

func (s *fakeStore) BaselineRelease(
	ctx context.Context,
	version string,
) (*metadata.DataRelease, error) {
	return s.baseline, nil
}

func (s *fakeStore) SaveGenomes(
	ctx context.Context,
	genomes []*metadata.GenomeInfo,
) error {
	s.saved = genomes
	return nil
}

var _ ensmeta.Store = (*fakeStore)(nil)

// fakeAnalyzer returns canned summaries keyed by database name.
type fakeAnalyzer struct {
	annotations map[string]map[string]int64
	features    map[string]map[string]int64
	alignments  map[string]map[string]int64
	variations  map[string]map[string]int64
	reads       map[string]map[string][]string
	sizes       map[string]int64
}

func newFakeAnalyzer() *fakeAnalyzer {
	return &fakeAnalyzer{
		annotations: make(map[string]map[string]int64),
		features:    make(map[string]map[string]int64),
		alignments:  make(map[string]map[string]int64),
		variations:  make(map[string]map[string]int64),
		reads:       make(map[string]map[string][]string),
		sizes:       make(map[string]int64),
	}
}

func (a *fakeAnalyzer) Annotations(
	ctx context.Context,
	h db.Handle,
) (map[string]int64, error) {
	return a.annotations[h.Name()], nil
}

func (a *fakeAnalyzer) Features(
	ctx context.Context,
	h db.Handle,
) (map[string]int64, error) {
	return a.features[h.Name()], nil
}

func (a *fakeAnalyzer) Alignments(
	ctx context.Context,
	h db.Handle,
) (map[string]int64, error) {
	return a.alignments[h.Name()], nil
}

func (a *fakeAnalyzer) ReadAlignments(
	ctx context.Context,
	species, division string,
) (map[string][]string, error) {
	return a.reads[species], nil
}

func (a *fakeAnalyzer) Variations(
	ctx context.Context,
	h db.Handle,
) (map[string]int64, error) {
	return a.variations[h.Name()], nil
}

func (a *fakeAnalyzer) Size(ctx context.Context, h db.Handle) (int64, error) {
	return a.sizes[h.Name()], nil
}

var _ ensmeta.Analyzer = (*fakeAnalyzer)(nil)
