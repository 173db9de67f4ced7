package metadata

// DataRelease is a versioned snapshot of the metadata warehouse.
// A release with a non-empty EGVersion is an auxiliary Ensembl Genomes
// release layered over the baseline Ensembl release named by Version.
type DataRelease struct {
	ID int64

	// Version is the baseline Ensembl release number, e.g. "99".
	Version string

	// EGVersion is the Ensembl Genomes release number, e.g. "46".
	// Empty for a baseline release.
	EGVersion string

	IsCurrent bool

	// ReleaseDate in YYYY-MM-DD form.
	ReleaseDate string
}

// IsAuxiliary reports whether this is an Ensembl Genomes release layered
// over a baseline Ensembl release.
func (r *DataRelease) IsAuxiliary() bool {
	return r != nil && r.EGVersion != ""
}
