// Package warehouse provides access to the parts-intelligence dataset.
package warehouse

import (
	"context"
)

// ResultSet is one tabular query result. Callers above the store
// treat it as an opaque value and only route it; nothing in the
// executor or handlers interprets rows.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Store is the narrow data-access contract the rest of the service
// depends on: query text in, tabular result or error out.
type Store interface {
	// Query executes one query and returns its full result set.
	Query(ctx context.Context, sql string) (*ResultSet, error)

	// Ping verifies connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}
