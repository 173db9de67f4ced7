package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBDiscoveryError
	DBQueryError
	DBScanError
	DBTableCheckError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Process errors
	ProcessNilHandleError
	ProcessNoGenomeError
	ProcessMetaError
	ProcessAssemblyError
	ProcessAnnotationError

	// Compara errors
	ComparaGenomeNotFoundError
	ComparaDatabaseError
	ComparaQueryError

	// Store errors
	StoreFetchError
	StoreSaveError
	StoreReleaseError

	// Analysis errors
	AnalysisQueryError
	AnalysisTrackRegistryError
)
