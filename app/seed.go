package app

import (
	"github.com/spf13/cobra"

	"github.com/fwm-platform/ecosystem-console/internal/config"
	"github.com/fwm-platform/ecosystem-console/internal/daemon"
	"github.com/fwm-platform/ecosystem-console/internal/logger"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Provision the permission catalog, system roles and demo data",
	Long: `Provision the permission catalog, system roles, demo sites and demo
users. The seed only runs against an empty database, so it is safe to call
on an existing installation.`,
	PreRun: func(_ *cobra.Command, _ []string) {
		if cfg, err = config.ReadConfig(configPath); err != nil {
			panic(err)
		}

		if err = logger.Init(cfg.Log); err != nil {
			panic(err)
		}
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		daemon.Seed(&cfg)
		return nil
	},
}
