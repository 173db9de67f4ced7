package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/luca-drf/ensembl-metadata/pkg/errcode"
)

// NotConnectedError creates an error for when a store operation is
// attempted without a warehouse connection.
func NotConnectedError() error {
	msg := "Store operation attempted without warehouse connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to warehouse"),
	}
}

// GORMConnectionError creates an error for GORM connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to the warehouse with GORM

<em>How to fix:</em>
  1. Ensure the warehouse operator is connected
  2. Check the warehouse configuration`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// FetchError creates an error for genome lookup failures.
func FetchError(name string, err error) error {
	msg := `Cannot fetch genome records for <em>%s</em>`
	vars := []any{name}

	return &gn.Error{
		Code: errcode.StoreFetchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to fetch genomes for %q: %w", name, err),
	}
}

// SaveError creates an error for genome persistence failures.
func SaveError(name string, err error) error {
	msg := `Cannot save metadata for <em>%s</em>

<em>Possible causes:</em>
  - Warehouse schema is missing or outdated
  - Insufficient database permissions

<em>How to fix:</em>
  1. Run 'ensmeta schema migrate' to update the warehouse schema
  2. Check the warehouse user has INSERT and DELETE permissions`

	vars := []any{name}

	return &gn.Error{
		Code: errcode.StoreSaveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to save metadata for %q: %w", name, err),
	}
}

// ReleaseError creates an error for data-release lookup failures.
func ReleaseError(version, egVersion string, err error) error {
	msg := `Cannot resolve data release <em>%s</em>`
	label := version
	if egVersion != "" {
		label = version + "/" + egVersion
	}
	vars := []any{label}

	return &gn.Error{
		Code: errcode.StoreReleaseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to resolve data release %s: %w", label, err),
	}
}
