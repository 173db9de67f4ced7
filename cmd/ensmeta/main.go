// Package main provides the ensmeta CLI application.
// ensmeta reconciles Ensembl genome databases into unified metadata
// records stored in a PostgreSQL warehouse.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
