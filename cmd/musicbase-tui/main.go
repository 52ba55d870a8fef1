package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/handiism/musicbase/internal/config"
	"github.com/handiism/musicbase/internal/progress"
	"github.com/handiism/musicbase/internal/rename"
	"github.com/handiism/musicbase/internal/tui"
)

func main() {
	var (
		configFlag = flag.String("config", "", "Path to config file")
		baseFlag   = flag.String("base", "", "Collection directory (overrides base_dir)")
	)
	flag.Parse()

	path := *configFlag
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	settings, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *baseFlag != "" {
		settings.BaseDir = *baseFlag
	}
	base, err := filepath.Abs(settings.BaseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	newRenamer := func(onProgress progress.Func) *rename.Renamer {
		return rename.NewDefaultRenamer(settings.MaxConcurrentDirs, onProgress)
	}
	if err := tui.Run(base, newRenamer); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
