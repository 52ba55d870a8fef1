package main

import (
	"fmt"

	"github.com/handiism/musicbase/internal/library"
	"github.com/handiism/musicbase/internal/store"
	"github.com/spf13/cobra"
)

func newCollectCommand(ctx *commandContext) *cobra.Command {
	var opts library.Options

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Store the albums and songs of the collection in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.baseDir()
			if err != nil {
				return err
			}
			settings, _ := ctx.ensureSettings()

			db, err := store.Open(cmd.Context(), settings.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close()

			opts.Concurrency = settings.MaxConcurrentFiles
			stats, err := library.NewCollector(db, base, opts, ctx.printer(cmd)).Collect(cmd.Context())
			if err != nil {
				return err
			}

			albums, err := db.CountAlbums(cmd.Context())
			if err != nil {
				return err
			}
			songs, err := db.CountSongs(cmd.Context())
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Albums read", fmt.Sprint(stats.Scanned)},
				{"New or modified", fmt.Sprint(stats.NewOrModified)},
				{"Skipped", fmt.Sprint(stats.Skipped)},
				{"Failed", fmt.Sprint(stats.Failed)},
				{"Songs read", fmt.Sprint(stats.Songs)},
				{"Albums stored", fmt.Sprint(albums)},
				{"Songs stored", fmt.Sprint(songs)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"", db.Path()}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Update, "update", "u", false, "Re-read albums that are already stored")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Stop after this many new or modified albums")
	return cmd
}
