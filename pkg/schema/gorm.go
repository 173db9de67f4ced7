package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all warehouse models for GORM AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&DataRelease{},
		&Genome{},
		&ComparaAnalysis{},
	}
}

// Migrate runs GORM AutoMigrate to create or update the warehouse
// schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
