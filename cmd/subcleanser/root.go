package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/subcleanser/internal/config"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "subcleanser",
		Short:         "Cleanse, retime and convert subtitle files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newConvertCommand(&configFlag))
	rootCmd.AddCommand(newWatchCommand(&configFlag))

	return rootCmd
}

// loadConfig resolves the effective configuration. Without a --config flag
// everything runs on defaults; config.yaml in the working directory is
// picked up when present, matching the watch pipeline's convention.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path == "" {
		cfg := &config.Config{}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("default config: %w", err)
		}
		return cfg, nil
	}
	return config.Load(path)
}
