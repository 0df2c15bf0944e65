package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"emi-planner/config"
)

var flagForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func configFile() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.ConfigPath()
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(cfg)
	}

	fmt.Printf("  Config file: %s\n", configFile())
	fmt.Println()
	fmt.Printf("  Server:     %s\n", cfg.Server.Addr)
	fmt.Printf("  Storage:    %s\n", cfg.Storage.Driver)
	fmt.Printf("  Cache:      %s\n", cfg.Cache.Driver)
	fmt.Printf("  Retention:  %d days (%s)\n", cfg.Retention.Days, cfg.Retention.Schedule)
	fmt.Printf("  Log:        %s, %s\n", cfg.Log.Level, cfg.Log.Format)
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	path := configFile()
	if err := writeDefaultConfig(path, flagForce); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", path)
	return nil
}

// writeDefaultConfig saves the default configuration to path, refusing to
// replace an existing file unless force is set.
func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking config file: %w", err)
		}
	}
	return config.Save(path, config.DefaultConfig())
}
