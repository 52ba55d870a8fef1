package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/handiism/musicbase/internal/config"
	"github.com/handiism/musicbase/internal/discogs"
	"github.com/handiism/musicbase/internal/http"
	"github.com/spf13/cobra"
)

type commandContext struct {
	configFlag string
	baseFlag   string
	verbose    bool

	settingsOnce sync.Once
	settings     *config.Settings
	settingsErr  error
}

// configPath returns the --config value or the default location.
func (c *commandContext) configPath() (string, error) {
	if path := strings.TrimSpace(c.configFlag); path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

func (c *commandContext) ensureSettings() (*config.Settings, error) {
	c.settingsOnce.Do(func() {
		path, err := c.configPath()
		if err != nil {
			c.settingsErr = fmt.Errorf("determine config path: %w", err)
			return
		}
		settings, err := config.Load(path)
		if err != nil {
			c.settingsErr = err
			return
		}
		if base := strings.TrimSpace(c.baseFlag); base != "" {
			settings.BaseDir = base
		}
		c.settings = settings
	})
	return c.settings, c.settingsErr
}

// baseDir returns the absolute collection root.
func (c *commandContext) baseDir() (string, error) {
	settings, err := c.ensureSettings()
	if err != nil {
		return "", err
	}
	if settings.BaseDir == "" {
		return "", fmt.Errorf("no collection directory: set base_dir or pass --base")
	}
	return filepath.Abs(settings.BaseDir)
}

// httpOptions returns the client options shared by catalog and liner-notes
// requests.
func httpOptions(s *config.Settings) http.Options {
	return http.Options{
		UserAgent:     s.UserAgent,
		Timeout:       seconds(s.RequestTimeout),
		MaxRetries:    s.MaxRetries,
		RetryCooldown: seconds(s.RetryCooldown),
		RetryExponent: s.RetryExponent,
	}
}

func catalogClient(s *config.Settings) *discogs.Client {
	opts := httpOptions(s)
	opts.Header = discogs.TokenHeader(s.CatalogToken)
	return discogs.NewClient(http.NewClient(opts), s.CatalogURL)
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

func shouldSkipSettings(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "musicbase",
		Short:         "Keep a music collection named, tagged and catalogued",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			color.NoColor = !shouldColorize(cmd.OutOrStdout())
			if shouldSkipSettings(cmd) {
				return nil
			}
			_, err := ctx.ensureSettings()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&ctx.baseFlag, "base", "b", "", "Collection directory (overrides base_dir)")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Show verbose output")

	rootCmd.AddCommand(newRenameCommand(ctx))
	rootCmd.AddCommand(newCollectCommand(ctx))
	rootCmd.AddCommand(newFetchCommand(ctx))
	rootCmd.AddCommand(newTagCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
