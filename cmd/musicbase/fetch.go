package main

import (
	"fmt"
	"path/filepath"

	"github.com/handiism/musicbase/internal/http"
	"github.com/handiism/musicbase/internal/liner"
	"github.com/handiism/musicbase/internal/reconcile"
	"github.com/spf13/cobra"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var (
		req     reconcile.Request
		thenTag bool
	)

	cmd := &cobra.Command{
		Use:   "fetch DIR",
		Short: "Write the album sheet of DIR from the catalog",
		Long: "Search the catalog for the album in DIR, verify the candidates against the " +
			"directory name and its audio files, and write the best release as an album sheet " +
			"next to the files.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			req.Dir = dir

			onProgress := ctx.printer(cmd)
			notes := liner.NewGetter(http.NewClient(httpOptions(settings)), settings.LinerNotesURL)
			reconciler := reconcile.New(catalogClient(settings), notes, onProgress)

			sh, release, err := reconciler.Fetch(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Matched release %d: %s - %s\n", release.ID, release.ArtistName(), release.Title)

			var downloader reconcile.Downloader
			if settings.DownloadCoverArt {
				downloader = http.NewClient(httpOptions(settings))
			}
			if _, err := reconcile.NewSaver(downloader, settings.ToCoverOptions(), onProgress).Save(cmd.Context(), dir, sh, release); err != nil {
				return err
			}

			if !thenTag {
				return nil
			}
			return tagAlbum(cmd, settings, dir, sh, ctx.printer(cmd))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Artist, "artist", "", "Artist to search for")
	flags.StringVar(&req.Title, "title", "", "Album title to search for")
	flags.StringVarP(&req.Query, "query", "q", "", "Free text query")
	flags.IntVar(&req.ReleaseID, "release", 0, "Use this catalog release id")
	flags.StringVar(&req.URL, "url", "", "Use the release at this catalog URL")
	flags.StringVar(&req.Genre, "genre", "", "Restrict the search to a genre")
	flags.IntVar(&req.Year, "year", 0, "Restrict the search to a year")
	flags.StringVar(&req.Country, "country", "", "Restrict the search to a country")
	flags.IntVarP(&req.Match, "match", "m", 0, "Expected track count: 0 counts the audio files, -1 skips the check")
	flags.BoolVar(&req.Analogue, "analogue", false, "Accept vinyl-only releases")
	flags.BoolVar(&thenTag, "tag", false, "Tag the audio files after writing the sheet")
	return cmd
}
