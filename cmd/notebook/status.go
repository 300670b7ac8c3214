package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notebook"
	"github.com/aretw0/notebook/pkg/core"
)

type statusReport struct {
	Version  string       `json:"version"`
	Database string       `json:"database"`
	Resolved string       `json:"resolved_path"`
	DevRun   bool         `json:"dev_run"`
	Service  any          `json:"service"`
	Config   statusConfig `json:"config"`
}

type statusConfig struct {
	ReadOnly bool   `json:"read_only"`
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the notebook as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *core.Service) error {
			resolved := cfg.Database.Path
			if store, ok := svc.Repository().(interface{ Path() string }); ok {
				resolved = store.Path()
			}
			return writeJSON(cmd.OutOrStdout(), statusReport{
				Version:  strings.TrimSpace(notebook.Version),
				Database: cfg.Database.Path,
				Resolved: resolved,
				DevRun:   notebook.IsDevRun(),
				Service:  svc.State(),
				Config: statusConfig{
					ReadOnly: cfg.Database.ReadOnly,
					LogLevel: cfg.Logging.Level,
					LogFile:  cfg.Logging.File,
				},
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
