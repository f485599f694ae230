// Package core defines the shared language of the docsql system.
//
// This package contains:
//   - Data source configuration (Kind, DataSourceConfig)
//   - Query results (ResultTable, Value)
//   - Credential indirection (ResolveCredential)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
