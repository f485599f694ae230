// Package main provides the docsql command.
package main

import (
	"os"

	"github.com/leapstack-labs/docsql/internal/cli"

	// Register the data source adapters.
	_ "github.com/leapstack-labs/docsql/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/docsql/pkg/adapters/mssql"
	_ "github.com/leapstack-labs/docsql/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/docsql/pkg/adapters/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
