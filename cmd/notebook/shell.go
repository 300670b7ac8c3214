package main

import (
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/notebook/internal/repl"
	"github.com/aretw0/notebook/pkg/core"
)

var noColor bool

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive notebook shell",
	Long:  `Reads one command per line (help, all, get, insert, update, delete, example, quit).`,
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	return withService(func(svc *core.Service) error {
		shell := repl.New(svc, repl.Options{
			In:      cmd.InOrStdin(),
			Out:     cmd.OutOrStdout(),
			NoColor: noColor || color.NoColor,
			Logger:  slog.Default(),
		})
		return shell.Run(cmd.Context())
	})
}

func init() {
	rootCmd.AddCommand(shellCmd)
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output in the shell")
}
