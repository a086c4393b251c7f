package main

import (
	"fmt"

	"github.com/alexandru-savinov/cbmbench/internal/config"
	"github.com/alexandru-savinov/cbmbench/internal/engine"
	"github.com/alexandru-savinov/cbmbench/internal/question"
	"github.com/spf13/cobra"
)

var dryRunFlags selectionFlags

var dryRunCmd = &cobra.Command{
	Use:   "dry-run",
	Short: "Plan the task list without calling any vendor",
	RunE:  runDryRun,
}

func init() {
	addSelectionFlags(dryRunCmd, &dryRunFlags)
}

func runDryRun(cmd *cobra.Command, args []string) error {
	config.LoadEnv()
	fileCfg, err := config.LoadFile(cfgFile)
	if err != nil {
		return err
	}
	applyConfigDefaults(cmd, &dryRunFlags, fileCfg)

	if dryRunFlags.dataset == "" {
		return fmt.Errorf("--dataset is required")
	}

	variants, err := parseVariants(dryRunFlags.variant)
	if err != nil {
		return err
	}
	temperatures, err := parseTemperatures(dryRunFlags.temperatures)
	if err != nil {
		return err
	}

	questions, err := question.LoadFile(dryRunFlags.dataset)
	if err != nil {
		return err
	}
	if dryRunFlags.sampleCap > 0 && len(questions) > dryRunFlags.sampleCap {
		questions = questions[:dryRunFlags.sampleCap]
	}

	registry, err := question.LoadRegistry(dryRunFlags.modelsFile)
	if err != nil {
		return err
	}

	available := engine.AvailableVendors(registry, splitCSV(dryRunFlags.vendors), splitCSV(dryRunFlags.models), config.HasKeyFunc())
	if len(available) == 0 {
		fmt.Println("no vendors available (check API keys, --vendors, and --models)")
		return nil
	}

	tasks := engine.Plan(questions, variants, available, temperatures, dryRunFlags.repetitions)

	fmt.Printf("questions: %d\n", len(questions))
	fmt.Printf("variants: %v\n", variants)
	for _, v := range available {
		fmt.Printf("vendor %s: %d models\n", v.Vendor, len(v.Models))
	}
	fmt.Printf("temperatures: %v\n", temperatures)
	fmt.Printf("repetitions: %d\n", dryRunFlags.repetitions)
	fmt.Printf("total planned tasks: %d\n", len(tasks))
	return nil
}
