package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mediashelf/internal/library"
	"mediashelf/internal/media"
)

var errRecordNotFound = errors.New("record not found")

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list <book|movie|music>",
		Short: "List catalog records, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := media.ParseCategory(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.libraryStore()
			if err != nil {
				return err
			}
			records, err := store.List(cmd.Context(), category)
			if err != nil {
				return err
			}
			if jsonOut {
				if records == nil {
					records = []library.Record{}
				}
				return writeJSON(cmd, records)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintf(out, "No %s records\n", category)
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{
					r.ID,
					r.Title,
					creatorOf(r),
					string(r.Status),
					fmt.Sprintf("%.1f", r.Rating),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Title", "By", "Status", "Rating"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <book|movie|music> <record-id>",
		Short: "Show one catalog record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := media.ParseCategory(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.libraryStore()
			if err != nil {
				return err
			}
			record, err := store.Get(cmd.Context(), category, args[1])
			if err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("%s %s: %w", category, args[1], errRecordNotFound)
			}
			if jsonOut {
				return writeJSON(cmd, record)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderFields(recordFields(*record)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <book|movie|music> <record-id>",
		Short: "Remove a catalog record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := media.ParseCategory(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.libraryStore()
			if err != nil {
				return err
			}
			deleted, err := store.Delete(cmd.Context(), category, args[1])
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("%s %s: %w", category, args[1], errRecordNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", category, args[1])
			return nil
		},
	}
}

func creatorOf(r library.Record) string {
	switch r.Category {
	case media.CategoryBook:
		return r.Author
	case media.CategoryMovie:
		return r.Director
	default:
		return r.Artist
	}
}

func recordFields(r library.Record) []field {
	fields := []field{
		{"ID", r.ID},
		{"Category", string(r.Category)},
		{"External ID", r.ExternalID},
		{"Title", r.Title},
		{"By", creatorOf(r)},
	}
	switch r.Category {
	case media.CategoryBook:
		fields = append(fields,
			field{"Publisher", r.Publisher},
			field{"Published", r.PublishDate},
			field{"Pages", intText(r.Pages)},
			field{"ISBN", r.ISBN},
		)
	case media.CategoryMovie:
		fields = append(fields,
			field{"Cast", r.Cast},
			field{"Genre", r.Genre},
			field{"Year", intText(r.Year)},
		)
	case media.CategoryMusic:
		fields = append(fields,
			field{"Album", r.Album},
			field{"Genre", r.Genre},
			field{"Year", intText(r.Year)},
			field{"Tracks", strings.Join(r.Tracks, "\n")},
		)
	}
	fields = append(fields,
		field{"Rating", fmt.Sprintf("%.1f", r.Rating)},
		field{"Status", string(r.Status)},
		field{"Tags", strings.Join(r.Tags, ", ")},
		field{"Owned", yesNo(r.IsOwned)},
		field{"Notes", r.Notes},
		field{"Created", r.CreatedAt.Local().Format("2006-01-02 15:04")},
		field{"Updated", r.UpdatedAt.Local().Format("2006-01-02 15:04")},
	)
	return fields
}
