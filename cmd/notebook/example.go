package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/notebook/internal/repl"
	"github.com/aretw0/notebook/pkg/core"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Run a short demo of every operation",
	Long:  `Inserts, reads, updates, lists and deletes notes in the configured notebook, narrating each step.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *core.Service) error {
			return repl.RunExample(cmd.Context(), svc, cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}
