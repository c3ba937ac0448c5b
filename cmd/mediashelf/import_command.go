package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mediashelf/internal/media"
)

type importResult struct {
	Candidate *media.ImportCandidate `json:"candidate"`
	RecordID  string                 `json:"record_id,omitempty"`
	Created   bool                   `json:"created"`
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var (
		title   string
		status  string
		rating  float64
		notes   string
		tags    []string
		owned   bool
		save    bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "import <book|movie|music> <id>",
		Short: "Fetch one item and shape it into a catalog candidate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.importService()
			if err != nil {
				return err
			}

			var overrides media.Overrides
			flags := cmd.Flags()
			if flags.Changed("title") {
				overrides.Title = &title
			}
			if flags.Changed("status") {
				overrides.Status = &status
			}
			if flags.Changed("rating") {
				overrides.Rating = &rating
			}
			if flags.Changed("notes") {
				overrides.Notes = &notes
			}
			if flags.Changed("tags") {
				overrides.Tags = tags
			}
			if flags.Changed("owned") {
				overrides.IsOwned = &owned
			}

			candidate, err := svc.Import(cmd.Context(), args[0], args[1], overrides)
			if err != nil {
				return err
			}
			result := importResult{Candidate: candidate}

			if save {
				store, err := ctx.libraryStore()
				if err != nil {
					return err
				}
				id, created, err := store.Save(cmd.Context(), *candidate)
				if err != nil {
					return fmt.Errorf("save record: %w", err)
				}
				result.RecordID = id
				result.Created = created
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderFields(candidateFields(*candidate)))
			if candidate.LowConfidence {
				fmt.Fprintln(out, "Warning: no title was found; review the fields before saving.")
			}
			if result.RecordID != "" {
				verb := "Updated"
				if result.Created {
					verb = "Saved"
				}
				fmt.Fprintf(out, "%s record %s\n", verb, result.RecordID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Override the scraped title")
	cmd.Flags().StringVar(&status, "status", "", "Override the consumption status")
	cmd.Flags().Float64Var(&rating, "rating", 0, "Override the rating (0 to 5)")
	cmd.Flags().StringVar(&notes, "notes", "", "Attach notes")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Replace tags (comma separated)")
	cmd.Flags().BoolVar(&owned, "owned", false, "Mark the item as owned")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the candidate to the catalog")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output JSON")
	return cmd
}

func candidateFields(c media.ImportCandidate) []field {
	fields := []field{
		{"Category", string(c.Category)},
		{"External ID", c.ExternalID},
		{"Title", c.Title},
	}
	switch c.Category {
	case media.CategoryBook:
		fields = append(fields,
			field{"Author", c.Author},
			field{"Translator", c.Translator},
			field{"Publisher", c.Publisher},
			field{"Series", c.Series},
			field{"Published", c.PublishDate},
			field{"Pages", intText(c.PageCount)},
			field{"ISBN", c.ISBN},
			field{"Price", c.Price},
		)
	case media.CategoryMovie:
		fields = append(fields,
			field{"Original title", c.OriginalTitle},
			field{"Director", c.Director},
			field{"Cast", c.Cast},
			field{"Genre", c.Genre},
			field{"Country", c.Country},
			field{"Language", c.Language},
			field{"Year", intText(c.Year)},
			field{"Duration", c.Duration},
			field{"IMDb", c.IMDbID},
		)
	case media.CategoryMusic:
		fields = append(fields,
			field{"Artist", c.Artist},
			field{"Album", c.Album},
			field{"Genre", c.Genre},
			field{"Year", intText(c.Year)},
			field{"Publisher", c.Publisher},
			field{"Medium", c.Medium},
			field{"Tracks", fmt.Sprint(len(c.Tracks))},
		)
	}
	fields = append(fields,
		field{"Rating", fmt.Sprintf("%.1f", c.NormalizedRating)},
		field{"Status", string(c.Status)},
		field{"Tags", strings.Join(c.Tags, ", ")},
		field{"Owned", yesNo(c.IsOwned)},
		field{"Notes", c.Notes},
		field{"Artist rule", c.Diagnostics.AmbiguityRule},
		field{"Trace", strings.Join(c.Diagnostics.Trace, " > ")},
	)
	return fields
}

func intText(v *int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}
