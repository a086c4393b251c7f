package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexandru-savinov/cbmbench/internal/aggregate"
	"github.com/alexandru-savinov/cbmbench/internal/calibration"
	"github.com/alexandru-savinov/cbmbench/internal/store"
	"github.com/spf13/cobra"
)

var (
	exportResultsDir string
	exportOutputDir  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Group raw results and publish calibration statistics",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportResultsDir, "results-dir", "results/raw", "directory of raw result JSON files to load")
	exportCmd.Flags().StringVar(&exportOutputDir, "output-dir", "results/published", "directory to write published slices to")
}

// exportSlicings lists the dimension subsets published on every export,
// covering the single-dimension breakdowns plus the full cross of
// dataset x vendor x variant analysts most often want.
var exportSlicings = [][]aggregate.Dimension{
	{aggregate.Dataset},
	{aggregate.Vendor},
	{aggregate.Model},
	{aggregate.Variant},
	{aggregate.Temperature},
	{aggregate.Dataset, aggregate.Vendor, aggregate.Variant},
}

func runExport(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(exportResultsDir); err != nil {
		return fmt.Errorf("results directory not found: %s", exportResultsDir)
	}

	results, err := store.LoadAllJSON(exportResultsDir)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Printf("no results found in %s\n", exportResultsDir)
		return nil
	}
	fmt.Printf("loaded %d results from %s\n", len(results), exportResultsDir)

	if err := os.MkdirAll(exportOutputDir, 0o755); err != nil {
		return err
	}

	for _, dims := range exportSlicings {
		groups := aggregate.GroupBy(results, dims, calibration.DefaultBins)
		data, err := json.MarshalIndent(groups, "", "  ")
		if err != nil {
			return err
		}
		path := filepath.Join(exportOutputDir, aggregate.FileName(dims))
		if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- published results are not secret
			return err
		}
		fmt.Printf("published %s (%d groups)\n", path, len(groups))
	}

	return nil
}
