// Command cbmbench runs the confidence-based-marking benchmark harness:
// it elicits answers and confidence from several LLM vendors under four
// prompting variants, scores them, and exports calibration statistics.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "cbmbench",
	Short:   "Confidence-based-marking benchmark harness for LLMs",
	Long:    `cbmbench runs multiple-choice questions through several LLM vendors under discrete and continuous confidence-elicitation variants, scores the results with incentive-compatible marking rules, and exports calibration statistics.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file layered under flags and environment variables")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dryRunCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
