// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/fwm-platform/ecosystem-console/internal/config"
)

var (
	cfg        config.Config
	configPath string // Path to the configuration directory
	err        error
)

var rootCmd = &cobra.Command{
	Use:   "ecosystem-console",
	Short: "ecosystem-console is the management console for the FWM site ecosystem",
	Long: `ecosystem-console is the web-based management console for the FWM
site ecosystem. It hosts the tenant sites (conferences, hotels, churches,
schools, banks, HR and communications) and enforces role-based access with
per-site scoping for every portal and admin surface.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration directory")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
