package reconcile

import (
	"context"
	"fmt"
	"path/filepath"

	ioutils "github.com/handiism/musicbase/internal/io"
	"github.com/handiism/musicbase/internal/model"
	"github.com/handiism/musicbase/internal/progress"
	"github.com/handiism/musicbase/internal/sheet"
)

// coverFile is the name a downloaded cover is stored under.
const coverFile = "cover.jpg"

// Downloader fetches binary resources such as cover images.
type Downloader interface {
	DownloadBytes(ctx context.Context, url string) ([]byte, error)
}

// Saver writes fetched sheets next to the audio files and, optionally,
// downloads the release cover.
type Saver struct {
	downloader Downloader
	images     *ioutils.ImageService
	cover      ioutils.CoverOptions
	progress   progress.Func
}

// NewSaver creates a saver. A nil downloader disables cover downloads.
func NewSaver(downloader Downloader, cover ioutils.CoverOptions, onProgress progress.Func) *Saver {
	return &Saver{
		downloader: downloader,
		images:     ioutils.NewImageService(),
		cover:      cover,
		progress:   onProgress,
	}
}

// Save writes the sheet into dir and returns its path. A cover is
// downloaded only when dir has none yet.
func (s *Saver) Save(ctx context.Context, dir string, sh *sheet.Sheet, release *model.Release) (string, error) {
	path, err := sheet.Write(ctx, dir, sh)
	if err != nil {
		return "", fmt.Errorf("write album sheet: %w", err)
	}
	s.progress.Emitf(progress.LevelSuccess, "Wrote %s", path)

	if s.downloader == nil || release == nil {
		return path, nil
	}
	if existing, ok := ioutils.FindCover(dir); ok {
		s.progress.Emitf(progress.LevelVerbose, "Keeping %s", filepath.Base(existing))
		return path, nil
	}
	img, ok := release.PrimaryImage()
	if !ok {
		return path, nil
	}

	data, err := s.downloader.DownloadBytes(ctx, img.URI)
	if err != nil {
		s.progress.Emitf(progress.LevelWarning, "Could not download cover: %v", err)
		return path, nil
	}
	opts := s.cover
	opts.JPEG = true
	if data, err = s.images.PrepareCover(ctx, data, opts); err != nil {
		s.progress.Emitf(progress.LevelWarning, "Could not process cover: %v", err)
		return path, nil
	}
	if err := ioutils.WriteFile(ctx, filepath.Join(dir, coverFile), data); err != nil {
		return path, fmt.Errorf("write cover: %w", err)
	}
	s.progress.Emitf(progress.LevelVerbose, "Saved %s", coverFile)
	return path, nil
}
