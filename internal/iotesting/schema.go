package iotesting

import "testing"

// genomeDDL is the subset of the genome-database layout the pipeline
// queries against.
var genomeDDL = []string{
	`CREATE TABLE meta (
		meta_id INTEGER PRIMARY KEY AUTOINCREMENT,
		species_id INTEGER NOT NULL DEFAULT 1,
		meta_key TEXT NOT NULL,
		meta_value TEXT NOT NULL)`,
	`CREATE TABLE coord_system (
		coord_system_id INTEGER PRIMARY KEY,
		species_id INTEGER NOT NULL DEFAULT 1,
		name TEXT NOT NULL,
		rank INTEGER NOT NULL,
		attrib TEXT NOT NULL DEFAULT '')`,
	`CREATE TABLE seq_region (
		seq_region_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		coord_system_id INTEGER NOT NULL,
		length INTEGER NOT NULL DEFAULT 0)`,
	`CREATE TABLE seq_region_synonym (
		seq_region_synonym_id INTEGER PRIMARY KEY AUTOINCREMENT,
		seq_region_id INTEGER NOT NULL,
		synonym TEXT NOT NULL,
		external_db_id INTEGER)`,
	`CREATE TABLE seq_region_attrib (
		seq_region_id INTEGER NOT NULL,
		attrib_type_id INTEGER NOT NULL,
		value TEXT NOT NULL)`,
	`CREATE TABLE attrib_type (
		attrib_type_id INTEGER PRIMARY KEY,
		code TEXT NOT NULL)`,
	`CREATE TABLE external_db (
		external_db_id INTEGER PRIMARY KEY,
		db_name TEXT NOT NULL)`,
	`CREATE TABLE xref (
		xref_id INTEGER PRIMARY KEY,
		external_db_id INTEGER NOT NULL,
		dbprimary_acc TEXT NOT NULL)`,
	`CREATE TABLE analysis (
		analysis_id INTEGER PRIMARY KEY,
		logic_name TEXT NOT NULL)`,
	`CREATE TABLE gene (
		gene_id INTEGER PRIMARY KEY AUTOINCREMENT,
		seq_region_id INTEGER NOT NULL,
		biotype TEXT NOT NULL)`,
	`CREATE TABLE repeat_feature (
		repeat_feature_id INTEGER PRIMARY KEY AUTOINCREMENT,
		seq_region_id INTEGER NOT NULL,
		analysis_id INTEGER NOT NULL)`,
	`CREATE TABLE simple_feature (
		simple_feature_id INTEGER PRIMARY KEY AUTOINCREMENT,
		seq_region_id INTEGER NOT NULL,
		analysis_id INTEGER NOT NULL)`,
	`CREATE TABLE dna_align_feature (
		dna_align_feature_id INTEGER PRIMARY KEY AUTOINCREMENT,
		seq_region_id INTEGER NOT NULL,
		analysis_id INTEGER NOT NULL)`,
	`CREATE TABLE protein_align_feature (
		protein_align_feature_id INTEGER PRIMARY KEY AUTOINCREMENT,
		seq_region_id INTEGER NOT NULL,
		analysis_id INTEGER NOT NULL)`,
	`CREATE TABLE source (
		source_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL)`,
	`CREATE TABLE variation (
		variation_id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_id INTEGER NOT NULL)`,
}

// comparaDDL is the subset of the compara-database layout the resolver
// queries against.
var comparaDDL = []string{
	`CREATE TABLE method_link (
		method_link_id INTEGER PRIMARY KEY,
		type TEXT NOT NULL)`,
	`CREATE TABLE method_link_species_set (
		method_link_species_set_id INTEGER PRIMARY KEY,
		method_link_id INTEGER NOT NULL,
		species_set_id INTEGER NOT NULL)`,
	`CREATE TABLE species_set (
		species_set_id INTEGER NOT NULL,
		genome_db_id INTEGER NOT NULL)`,
	`CREATE TABLE species_set_header (
		species_set_id INTEGER PRIMARY KEY,
		name TEXT)`,
	`CREATE TABLE genome_db (
		genome_db_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL)`,
}

// NewGenomeHandle creates a fixture with the genome-database layout.
func NewGenomeHandle(t *testing.T, name, species string, speciesID int64) *Handle {
	t.Helper()
	h := NewHandle(t, name, species, speciesID)
	for _, ddl := range genomeDDL {
		h.Exec(t, ddl)
	}
	return h
}

// NewComparaHandle creates a fixture with the compara-database layout.
func NewComparaHandle(t *testing.T, name string) *Handle {
	t.Helper()
	h := NewHandle(t, name, "", 1)
	for _, ddl := range comparaDDL {
		h.Exec(t, ddl)
	}
	return h
}

// AddMeta inserts one meta key-value row for the handle's species.
func (h *Handle) AddMeta(t *testing.T, key, value string) {
	t.Helper()
	h.Exec(t,
		"INSERT INTO meta (species_id, meta_key, meta_value) VALUES ($1, $2, $3)",
		h.speciesID, key, value,
	)
}
