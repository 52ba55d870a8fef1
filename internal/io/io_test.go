package ioutils

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDirs(t *testing.T) {
	base := t.TempDir()
	for _, d := range []string{"b_album", "a_album", ".hidden"} {
		require.NoError(t, os.Mkdir(filepath.Join(base, d), 0o755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(base, "file.txt"), nil, 0o644))

	dirs, err := ListDirs(base)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_album", "b_album"}, dirs)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Yes.yml")
	require.NoError(t, WriteFile(context.Background(), path, []byte("first")))
	require.NoError(t, WriteFile(context.Background(), path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, WriteFile(ctx, path, nil), context.Canceled)
}

func TestMoveDir(t *testing.T) {
	base := t.TempDir()
	src := filepath.Join(base, "Yes - Close to the Edge")
	dst := filepath.Join(base, "Yes_-_Close_to_the_Edge")
	other := filepath.Join(base, "Yes_-_Fragile")
	require.NoError(t, os.Mkdir(src, 0o755))
	require.NoError(t, os.Mkdir(other, 0o755))

	require.NoError(t, MoveDir(src, dst))
	assert.DirExists(t, dst)
	assert.NoDirExists(t, src)

	err := MoveDir(dst, other)
	assert.True(t, errors.Is(err, ErrExists))
	assert.DirExists(t, dst)
}

func TestLock(t *testing.T) {
	dir := t.TempDir()

	first, err := Lock(dir)
	require.NoError(t, err)

	_, err = Lock(dir)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Unlock())
	assert.NoFileExists(t, filepath.Join(dir, lockFileName))

	again, err := Lock(dir)
	require.NoError(t, err)
	require.NoError(t, again.Unlock())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	var none *DirLock
	assert.NoError(t, none.Unlock())
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImageService(t *testing.T) {
	svc := NewImageService()
	ctx := context.Background()
	data := testPNG(t, 300, 150)

	resized, err := svc.ResizeImage(ctx, data, 100, 100)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(resized))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)

	converted, err := svc.PrepareCover(ctx, data, CoverOptions{JPEG: true})
	require.NoError(t, err)
	_, format, err := image.DecodeConfig(bytes.NewReader(converted))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	same, err := svc.PrepareCover(ctx, data, CoverOptions{})
	require.NoError(t, err)
	assert.Equal(t, data, same)

	_, err = svc.ConvertToJPEG(ctx, []byte("not an image"))
	assert.Error(t, err)
}

func TestFindCover(t *testing.T) {
	dir := t.TempDir()
	_, ok := FindCover(dir)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.png"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "folder.jpg"), nil, 0o644))

	path, ok := FindCover(dir)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "folder.jpg"), path)
}
