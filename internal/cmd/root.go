// Package cmd holds the storefront command line.
package cmd

import (
	"context"

	"github.com/somnath11som/webeF/internal/config"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Agency storefront backend",
	Long: `storefront serves the agency's catalog, per-visitor carts and sessions,
checkout and order lookup over a JSON API. Orders, accounts and contact leads
are handled by the agency's remote APIs.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (environment variables override it)")
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}
