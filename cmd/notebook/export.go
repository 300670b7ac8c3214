package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notebook/pkg/core"
	"github.com/aretw0/notebook/pkg/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every note to stdout or a file",
	Long: `Render all notes as json, yaml, markdown (frontmatter + text) or csv.
With --out the file is replaced atomically, and the format defaults to the
one matching the file extension.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if !cmd.Flags().Changed("format") && exportOut != "" {
			format = formatForPath(exportOut, format)
		}
		enc, err := export.Lookup(format)
		if err != nil {
			return err
		}

		return withService(func(svc *core.Service) error {
			rows, err := svc.ListNotes(cmd.Context())
			if err != nil {
				return err
			}

			if exportOut == "" {
				return enc.Encode(cmd.OutOrStdout(), rows)
			}
			if err := export.WriteFile(exportOut, format, rows); err != nil {
				return fmt.Errorf("export to %s: %w", exportOut, err)
			}
			slog.Info("notes exported", "count", len(rows), "format", format, "path", exportOut)
			return nil
		})
	},
}

func formatForPath(path, fallback string) string {
	ext := strings.ToLower(filepath.Ext(path))
	for format, e := range export.Extension {
		if e == ext {
			return format
		}
	}
	if ext == ".yml" {
		return "yaml"
	}
	return fallback
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: "+strings.Join(export.Formats(), ", "))
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Destination file (default stdout)")
}
