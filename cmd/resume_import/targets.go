package main

import (
	"github.com/jonathan/resume-importer/internal/observability"
	"github.com/jonathan/resume-importer/internal/store"
	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the locale files an import would read",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig(string(store.BackendMemory))
		if err != nil {
			return err
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintTargets(cfg.Collection, cfg.Targets)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
