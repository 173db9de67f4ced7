package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/luca-drf/ensembl-metadata/pkg/errcode"
)

// NotConnectedError creates an error for when a schema operation is
// attempted without a warehouse connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without warehouse connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Vars: nil,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to warehouse"),
	}
}

// GORMConnectionError creates an error for GORM connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to the warehouse with GORM

<em>Possible causes:</em>
  - Connection pool not initialized
  - Warehouse configuration issue

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

// CreateSchemaError creates an error for schema creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create the warehouse schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - Database constraint violations

<em>How to fix:</em>
  1. Check the warehouse user has CREATE permissions
  2. Check the warehouse logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

// MigrateSchemaError creates an error for schema migration failures.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate the warehouse schema

<em>Possible causes:</em>
  - Incompatible schema changes
  - Insufficient database permissions

<em>How to fix:</em>
  1. Review migration compatibility
  2. Check the warehouse logs for details`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}
