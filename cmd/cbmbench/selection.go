package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexandru-savinov/cbmbench/internal/config"
	"github.com/alexandru-savinov/cbmbench/internal/prompting"
	"github.com/spf13/cobra"
)

// selectionFlags holds the flags shared by run and dry-run: both plan the
// same task list, they only differ in whether they execute it.
type selectionFlags struct {
	dataset      string
	variant      string
	vendors      string
	models       string
	temperatures string
	repetitions  int
	sampleCap    int
	modelsFile   string
}

func addSelectionFlags(cmd *cobra.Command, f *selectionFlags) {
	cmd.Flags().StringVar(&f.dataset, "dataset", "", "path to a unified-format question file")
	cmd.Flags().StringVar(&f.variant, "variant", "all", "comma-separated variant list, or \"all\"")
	cmd.Flags().StringVar(&f.vendors, "vendors", "", "comma-separated vendor list (default: every vendor with a configured API key)")
	cmd.Flags().StringVar(&f.models, "models", "", "comma-separated model list (default: every model in the registry)")
	cmd.Flags().StringVar(&f.temperatures, "temperatures", "0.0,0.7,1.0", "comma-separated temperature list")
	cmd.Flags().IntVar(&f.repetitions, "repetitions", 3, "repetitions per (question, variant, vendor, model, temperature) combination")
	cmd.Flags().IntVar(&f.sampleCap, "sample-cap", 0, "cap the number of questions drawn from the dataset (0 = no cap)")
	cmd.Flags().StringVar(&f.modelsFile, "models-file", "models.json", "path to the model registry JSON file")
}

// applyConfigDefaults fills any selectionFlags field the user left at its
// flag default from the loaded YAML config file, CLI flags still winning
// whenever the user actually set them.
func applyConfigDefaults(cmd *cobra.Command, f *selectionFlags, cfg config.Config) {
	if !cmd.Flags().Changed("dataset") && cfg.DatasetPath != "" {
		f.dataset = cfg.DatasetPath
	}
	if !cmd.Flags().Changed("variant") && len(cfg.Variants) > 0 {
		f.variant = strings.Join(cfg.Variants, ",")
	}
	if !cmd.Flags().Changed("vendors") && len(cfg.Vendors) > 0 {
		f.vendors = strings.Join(cfg.Vendors, ",")
	}
	if !cmd.Flags().Changed("models") && len(cfg.Models) > 0 {
		f.models = strings.Join(cfg.Models, ",")
	}
	if !cmd.Flags().Changed("temperatures") && len(cfg.Temperatures) > 0 {
		parts := make([]string, len(cfg.Temperatures))
		for i, t := range cfg.Temperatures {
			parts[i] = strconv.FormatFloat(t, 'g', -1, 64)
		}
		f.temperatures = strings.Join(parts, ",")
	}
	if !cmd.Flags().Changed("repetitions") && cfg.Repetitions > 0 {
		f.repetitions = cfg.Repetitions
	}
	if !cmd.Flags().Changed("sample-cap") && cfg.SampleCap > 0 {
		f.sampleCap = cfg.SampleCap
	}
	if !cmd.Flags().Changed("models-file") && cfg.ModelsFile != "" {
		f.modelsFile = cfg.ModelsFile
	}
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseVariants(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" || s == "all" {
		return prompting.AllVariants(), nil
	}
	variants := splitCSV(s)
	valid := make(map[string]bool)
	for _, v := range prompting.AllVariants() {
		valid[v] = true
	}
	for _, v := range variants {
		if !valid[v] {
			return nil, fmt.Errorf("unknown variant %q (want one of %s)", v, strings.Join(prompting.AllVariants(), ", "))
		}
	}
	return variants, nil
}

func parseTemperatures(s string) ([]float64, error) {
	parts := splitCSV(s)
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid temperature %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
