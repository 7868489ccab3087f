package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gridstat/internal/histogram"
	"gridstat/internal/runner"
)

var (
	anaOutputDir string
	anaBins      int
	anaVariables []string
	anaWorkers   int
	anaQuiet     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.nc>",
	Short: "Compute histograms and statistics for a NetCDF file's variables",
	Long: `Analyze reads every selected variable of a NetCDF file, removes
non-finite values, and writes one report per variable containing its
metadata, summary statistics, and a fixed-width binned histogram.

Without --variables, all data variables (rank >= 2) are auto-discovered;
rank-1 coordinate axes such as latitude or longitude are skipped unless
named explicitly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("input file %s: %w", path, err)
		}

		opts := runner.Options{
			InputPath: path,
			Bins:      50,
			Workers:   1,
		}
		if cfg != nil {
			if cfg.Bins > 0 {
				opts.Bins = cfg.Bins
			}
			if cfg.Workers > 0 {
				opts.Workers = cfg.Workers
			}
			opts.OutputDir = cfg.OutputDir
			opts.Quiet = cfg.Quiet
		}
		f := cmd.Flags()
		if f.Changed("bins") {
			if anaBins <= 0 {
				return fmt.Errorf("--bins %d: %w", anaBins, histogram.ErrInvalidBinCount)
			}
			opts.Bins = anaBins
		}
		if f.Changed("output") {
			opts.OutputDir = anaOutputDir
		}
		if f.Changed("workers") {
			if anaWorkers < 1 {
				return fmt.Errorf("--workers must be >= 1, got %d", anaWorkers)
			}
			opts.Workers = anaWorkers
		}
		if f.Changed("quiet") {
			opts.Quiet = anaQuiet
		}
		opts.Variables = anaVariables

		// Skips are warned one by one during the run; a run that completes
		// is a success even if every variable was skipped.
		if _, err := runner.Run(opts); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputDir, "output", "o", "", "output directory (default: same as input file)")
	analyzeCmd.Flags().IntVarP(&anaBins, "bins", "b", 50, "number of histogram bins")
	analyzeCmd.Flags().StringSliceVarP(&anaVariables, "variables", "v", nil, "specific variables to process (default: all data variables)")
	analyzeCmd.Flags().IntVar(&anaWorkers, "workers", 1, "process up to N variables concurrently")
	analyzeCmd.Flags().BoolVar(&anaQuiet, "quiet", false, "suppress progress and non-essential output")
}
