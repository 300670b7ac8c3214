package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/notebook/pkg/core"
)

var (
	insertTitle string
	insertText  string

	getJSON bool
	allJSON bool

	updateTitle string
	updateText  string
)

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Add a note",
	Long:  `Add a note and print the id the store assigned to it.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *core.Service) error {
			id, err := svc.InsertNote(cmd.Context(), core.Note{Title: insertTitle, Text: insertText})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Print a note",
	Long:  `Print a note by its ID as title and indented text, or as a JSON object with --json.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := core.ParseID(args[0])
		if err != nil {
			return err
		}
		return withService(func(svc *core.Service) error {
			n, err := svc.GetNote(cmd.Context(), id)
			if err != nil {
				return err
			}
			if getJSON {
				return writeJSON(cmd.OutOrStdout(), core.NoteRow{ID: id, Title: n.Title, Text: n.Text})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\t%s\n", n.Title, n.Text)
			return nil
		})
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "List every note",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc *core.Service) error {
			rows, err := svc.ListNotes(cmd.Context())
			if err != nil {
				return err
			}
			if allJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, core.ListingHeader)
			for _, row := range rows {
				fmt.Fprintln(out, row.String())
			}
			return nil
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Overwrite a note's text",
	Long:  `Replace the text of a note. The title is kept unless --title is given.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := core.ParseID(args[0])
		if err != nil {
			return err
		}
		return withService(func(svc *core.Service) error {
			ctx := cmd.Context()
			existing, err := svc.GetNote(ctx, id)
			if err != nil {
				return err
			}
			title := existing.Title
			if cmd.Flags().Changed("title") {
				title = updateTitle
			}
			n, err := svc.UpdateNote(ctx, id, core.Note{Title: title, Text: updateText})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d row(s)\n", n)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Remove a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := core.ParseID(args[0])
		if err != nil {
			return err
		}
		return withService(func(svc *core.Service) error {
			n, err := svc.DeleteNote(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d row(s)\n", n)
			return nil
		})
	},
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func init() {
	rootCmd.AddCommand(insertCmd, getCmd, allCmd, updateCmd, deleteCmd)

	insertCmd.Flags().StringVar(&insertTitle, "title", "", "Note title")
	insertCmd.Flags().StringVar(&insertText, "text", "", "Note text")
	insertCmd.MarkFlagRequired("title")

	getCmd.Flags().BoolVar(&getJSON, "json", false, "Output in JSON format")
	allCmd.Flags().BoolVar(&allJSON, "json", false, "Output in JSON format")

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title (defaults to the current one)")
	updateCmd.Flags().StringVar(&updateText, "text", "", "New text")
	updateCmd.MarkFlagRequired("text")
}
