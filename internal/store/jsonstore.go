package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexandru-savinov/cbmbench/internal/apperrors"
	"github.com/alexandru-savinov/cbmbench/internal/engine"
)

// JSONStore writes one indented JSON array per run under Dir, the
// spec-required default backend.
type JSONStore struct {
	Dir string
}

// NewJSONStore builds a JSONStore rooted at dir, creating it if missing.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.HandleError(err, fmt.Sprintf("failed to create results directory %s", dir))
	}
	return &JSONStore{Dir: dir}, nil
}

func (s *JSONStore) pathFor(runID string) string {
	return filepath.Join(s.Dir, runID+".json")
}

// Save writes results as an indented JSON array to <Dir>/<runID>.json.
func (s *JSONStore) Save(runID string, results []engine.Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return apperrors.HandleError(err, "failed to marshal results")
	}
	path := s.pathFor(runID)
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- results are not secret
		return apperrors.HandleError(err, fmt.Sprintf("failed to write results to %s", path))
	}
	return nil
}

// Load reads results back from <Dir>/<runID>.json.
func (s *JSONStore) Load(runID string) ([]engine.Result, error) {
	path := s.pathFor(runID)
	data, err := os.ReadFile(path) // #nosec G304 -- path is built from a caller-supplied run ID
	if err != nil {
		return nil, apperrors.HandleError(err, fmt.Sprintf("failed to read results from %s", path))
	}
	var results []engine.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, apperrors.HandleError(err, fmt.Sprintf("failed to parse results from %s", path))
	}
	return results, nil
}

// Close is a no-op; JSONStore holds no open resources between calls.
func (s *JSONStore) Close() error { return nil }

// LoadAllJSON concatenates the results from every *.json file directly
// under dir, for the export path which aggregates across every run a
// directory of raw result files holds rather than one run at a time.
func LoadAllJSON(dir string) ([]engine.Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.HandleError(err, fmt.Sprintf("failed to list results directory %s", dir))
	}

	var all []engine.Result
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path) // #nosec G304 -- path is built from directory listing, not user input
		if err != nil {
			return nil, apperrors.HandleError(err, fmt.Sprintf("failed to read results file %s", path))
		}
		var results []engine.Result
		if err := json.Unmarshal(data, &results); err != nil {
			return nil, apperrors.HandleError(err, fmt.Sprintf("failed to parse results file %s", path))
		}
		all = append(all, results...)
	}
	return all, nil
}
