// Package schema provides the metadata warehouse models.
// The warehouse stores one row per unified genome record per data
// release, plus the comparative analyses linking genomes together.
package schema

import (
	"time"
)

// DataRelease is a versioned snapshot of the warehouse. EGVersion is
// set for auxiliary Ensembl Genomes releases layered over the baseline
// Ensembl release named by Version.
type DataRelease struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Version     string `gorm:"size:16;index:idx_data_releases_version"`
	EGVersion   string `gorm:"size:16;index:idx_data_releases_eg_version"`
	IsCurrent   bool
	ReleaseDate string `gorm:"size:32"`
}

// Genome stores one unified genome record. Scalar attributes are plain
// columns; the list and map summaries are serialized to JSON text
// columns, the warehouse never queries inside them.
type Genome struct {
	// UUID is a v5 UUID derived from the core database and species
	// names, stable across runs.
	UUID string `gorm:"primaryKey;size:36"`

	DataReleaseID int64 `gorm:"index:idx_genomes_release"`

	// Name is the species production name.
	Name string `gorm:"size:128;index:idx_genomes_name"`

	SpeciesID int64
	Division  string `gorm:"size:32;index:idx_genomes_division"`
	DBName    string `gorm:"size:128"`

	StrainName     string `gorm:"size:128"`
	Serotype       string `gorm:"size:128"`
	DisplayName    string `gorm:"size:255"`
	ScientificName string `gorm:"size:255"`

	TaxonomyID        int64
	SpeciesTaxonomyID int64

	AssemblyAccession string `gorm:"size:64"`
	AssemblyName      string `gorm:"size:128"`
	AssemblyDefault   string `gorm:"size:128"`
	AssemblyUCSC      string `gorm:"size:64"`
	AssemblyLevel     string `gorm:"size:32"`
	Genebuild         string `gorm:"size:64"`

	BasePairs int64
	DBSize    int64

	// JSON-serialized payloads.
	Sequences    string `gorm:"type:text"`
	Publications string `gorm:"type:text"`
	Aliases      string `gorm:"type:text"`
	Annotations  string `gorm:"type:text"`
	Features     string `gorm:"type:text"`
	Alignments   string `gorm:"type:text"`
	Variations   string `gorm:"type:text"`
	Databases    string `gorm:"type:text"`

	UpdatedAt time.Time
}

// ComparaAnalysis stores one comparative analysis and its participating
// genomes through the compara_analysis_genomes join table.
type ComparaAnalysis struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	DBName   string `gorm:"size:128;index:idx_compara_analyses_db_name"`
	Division string `gorm:"size:32"`
	Method   string `gorm:"size:64"`
	SetName  string `gorm:"size:255"`

	Genomes []Genome `gorm:"many2many:compara_analysis_genomes;foreignKey:ID;joinForeignKey:ComparaAnalysisID;References:UUID;joinReferences:GenomeUUID"`

	UpdatedAt time.Time
}
