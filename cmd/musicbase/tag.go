package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/handiism/musicbase/internal/config"
	"github.com/handiism/musicbase/internal/progress"
	"github.com/handiism/musicbase/internal/sheet"
	"github.com/handiism/musicbase/internal/tagging"
	"github.com/spf13/cobra"
)

func newTagCommand(ctx *commandContext) *cobra.Command {
	var correctFile string

	cmd := &cobra.Command{
		Use:   "tag DIR",
		Short: "Write the tags of DIR from its album sheet",
		Long: "Write title, artist, composer, year and track numbers from the album sheet into " +
			"the audio files of DIR. With --correct, DIR is a collection directory and the " +
			"corrections file lists tag values per album directory.",
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

			if correctFile != "" {
				corrections, err := tagging.LoadCorrections(correctFile)
				if err != nil {
					return err
				}
				changed, err := newSetter(settings, ctx.printer(cmd)).Correct(cmd.Context(), dir, corrections)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(changed))
				for _, album := range sortedKeys(changed) {
					rows = append(rows, []string{album, fmt.Sprint(changed[album])})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Directory", "Files changed"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			}

			sh, err := sheet.Read(dir)
			if err != nil {
				return err
			}
			return tagAlbum(cmd, settings, dir, sh, ctx.printer(cmd))
		},
	}

	cmd.Flags().StringVar(&correctFile, "correct", "", "Apply the tag corrections in this YAML file")
	return cmd
}

func newSetter(settings *config.Settings, onProgress progress.Func) *tagging.Setter {
	return tagging.NewSetter(settings.ToTagConfig(), tagging.Options{
		RenameTracks:   settings.RenameTracks,
		EmbedCover:     settings.SaveCoverArtInTags,
		Cover:          settings.ToCoverOptions(),
		Playlist:       settings.CreatePlaylist,
		PlaylistFormat: settings.ToPlaylistFormat(),
		M3UExtended:    settings.M3UExtended,
	}, onProgress)
}

// tagAlbum writes the sheet's tags into the files of dir and reports what
// was done.
func tagAlbum(cmd *cobra.Command, settings *config.Settings, dir string, sh *sheet.Sheet, onProgress progress.Func) error {
	res, err := newSetter(settings, onProgress).Apply(cmd.Context(), dir, sh)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Tagged %d files in %s\n", len(res.Tagged), filepath.Base(dir))
	if len(res.Renamed) > 0 {
		rows := make([][]string, 0, len(res.Renamed))
		for _, from := range sortedKeys(res.Renamed) {
			rows = append(rows, []string{from, res.Renamed[from]})
		}
		fmt.Fprintln(out, renderTable([]string{"File", "Renamed to"}, rows, nil))
	}
	if len(res.Unmatched) > 0 {
		fmt.Fprintln(out, warningColor.Sprint("No sheet track for: "+strings.Join(res.Unmatched, ", ")))
	}
	if res.Playlist != "" {
		fmt.Fprintf(out, "Playlist: %s\n", res.Playlist)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
