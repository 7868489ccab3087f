package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "gridstat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set gridstat configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("bins: %d\n", cfg.Bins)
		fmt.Printf("output_dir: %s\n", cfg.OutputDir)
		fmt.Printf("workers: %d\n", cfg.Workers)
		fmt.Printf("quiet: %t\n", cfg.Quiet)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "bins":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid bins: %s (must be a positive integer)", val)
			}
			cfg.Bins = n
		case "output_dir":
			cfg.OutputDir = val
		case "workers":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return fmt.Errorf("invalid workers: %s (must be >= 1)", val)
			}
			cfg.Workers = n
		case "quiet":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid quiet: %s (use true or false)", val)
			}
			cfg.Quiet = b
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
