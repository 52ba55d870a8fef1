package main

import (
	"fmt"

	"github.com/handiism/musicbase/internal/library"
	"github.com/spf13/cobra"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		query  library.Query
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search TEXT",
		Short: "Find tag values in the audio files of the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.baseDir()
			if err != nil {
				return err
			}
			settings, _ := ctx.ensureSettings()

			query.Text = args[0]
			hits, err := library.NewSearcher(base, settings.MaxConcurrentFiles, ctx.printer(cmd)).Search(cmd.Context(), query)
			if err != nil {
				return err
			}

			if asJSON {
				if hits == nil {
					hits = []library.Hit{}
				}
				return writeJSON(cmd, hits)
			}
			if len(hits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}
			rows := make([][]string, 0, len(hits))
			for _, h := range hits {
				rows = append(rows, []string{h.Directory, h.File, h.Tag, h.Value})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Directory", "File", "Tag", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query.Tag, "tag", "t", "", "Only search this tag")
	cmd.Flags().BoolVarP(&query.Regex, "regex", "r", false, "Treat TEXT as a regular expression")
	cmd.Flags().IntVarP(&query.Limit, "limit", "n", 0, "Stop after this many matches")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print matches as JSON")
	return cmd
}
