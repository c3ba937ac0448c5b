package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var category string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search the listing for candidate ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.importService()
			if err != nil {
				return err
			}
			results, err := svc.Search(cmd.Context(), args[0], category)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, results)
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No results")
				return nil
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				score := ""
				if r.Score > 0 {
					score = fmt.Sprintf("%.1f", r.Score)
				}
				rows = append(rows, []string{r.ID, string(r.Category), r.Title, r.Year, score})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Type", "Title", "Year", "Score"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "type", "t", "", "Restrict to book, movie, or music")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}
