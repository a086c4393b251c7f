// Package store persists benchmark results. The default backend writes
// one JSON file per run; an optional SQL backend (sqlx over
// modernc.org/sqlite) supports querying results with SQL directly
// instead of reloading every run's JSON file.
package store

import (
	"github.com/alexandru-savinov/cbmbench/internal/engine"
)

// ResultStore persists and reloads a run's results.
type ResultStore interface {
	// Save stores results under runID. Calling Save twice with the same
	// runID overwrites the prior save.
	Save(runID string, results []engine.Result) error
	// Load returns every result previously saved under runID.
	Load(runID string) ([]engine.Result, error)
	// Close releases any resources (file handles, DB connections) held by
	// the store.
	Close() error
}
