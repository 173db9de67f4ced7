package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/luca-drf/ensembl-metadata/pkg/errcode"
)

// NotConnectedError creates an error for when an operation is attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// ConnectionError creates an error for connection failures.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to database <em>%s</em>

<em>Host:</em> %s:%d
<em>User:</em> %s

<em>Possible causes:</em>
  - Server is not running or unreachable
  - Wrong credentials
  - Database does not exist

<em>How to fix:</em>
  1. Check the server is up and reachable
  2. Verify connection settings in the config file or ENSMETA_* vars`

	vars := []any{database, host, port, user}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// DiscoveryError creates an error for database discovery failures.
func DiscoveryError(host string, err error) error {
	msg := `Cannot list databases on <em>%s</em>`
	vars := []any{host}

	return &gn.Error{
		Code: errcode.DBDiscoveryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to discover databases: %w", err),
	}
}

// QueryError creates an error for query failures.
func QueryError(query string, err error) error {
	msg := "Database query failed"

	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("query failed: %w (%s)", err, query),
	}
}

// ScanError creates an error for row scanning failures.
func ScanError(err error) error {
	msg := "Cannot read database row"

	return &gn.Error{
		Code: errcode.DBScanError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to scan row: %w", err),
	}
}

// TableCheckError creates an error for table existence checks.
func TableCheckError(table string, err error) error {
	msg := "Cannot check warehouse tables"

	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Vars: nil,
		Msg:  msg,
		Err:  fmt.Errorf("failed to check table %q: %w", table, err),
	}
}
