package frames

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rm-hull/frame-interpolator/internal/interpolate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()
	require.NoError(t, png.Encode(f, img))
}

func frameDir(t *testing.T, count, w, h int) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i < count; i++ {
		c := color.NRGBA{R: uint8(i * 40), G: 100, B: 200, A: 255}
		writePNG(t, filepath.Join(dir, fmt.Sprintf("%02d.png", i)), solid(w, h, c))
	}
	return dir
}

func TestLoad_TwoFrames(t *testing.T) {
	dir := frameDir(t, 2, 4, 4)

	store, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, image.Pt(4, 4), store.Size())
	assert.Equal(t, dir, store.Source())
}

func TestLoad_DirectoryOrder(t *testing.T) {
	dir := frameDir(t, 3, 2, 2)

	store, err := Load(dir)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		img, err := store.FrameAt(i)
		require.NoError(t, err)
		r, _, _, _ := img.At(0, 0).RGBA()
		assert.Equal(t, uint32(i*40), r>>8)
	}
}

func TestLoad_MixedFormats(t *testing.T) {
	dir := frameDir(t, 1, 3, 3)
	f, err := os.Create(filepath.Join(dir, "01.jpg"))
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, solid(3, 3, color.NRGBA{R: 1, G: 2, B: 3, A: 255}), nil))
	require.NoError(t, f.Close())

	store, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
}

func TestLoad_InvalidSource(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, ErrInvalidSource)
	})

	t.Run("regular file", func(t *testing.T) {
		dir := frameDir(t, 2, 2, 2)
		_, err := Load(filepath.Join(dir, "00.png"))
		assert.ErrorIs(t, err, ErrInvalidSource)
	})

	t.Run("too few entries", func(t *testing.T) {
		_, err := Load(frameDir(t, 1, 2, 2))
		assert.ErrorIs(t, err, ErrInvalidSource)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.ErrorIs(t, err, ErrInvalidSource)
	})

	t.Run("nested directory", func(t *testing.T) {
		dir := frameDir(t, 2, 2, 2)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
		_, err := Load(dir)
		assert.ErrorIs(t, err, ErrInvalidSource)
	})
}

func TestLoad_DecodeFailure(t *testing.T) {
	t.Run("text file", func(t *testing.T) {
		dir := frameDir(t, 3, 4, 4)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a frame"), 0644))

		store, err := Load(dir)
		assert.ErrorIs(t, err, ErrDecodeFailure)
		assert.Nil(t, store)
	})

	t.Run("empty file", func(t *testing.T) {
		dir := frameDir(t, 2, 4, 4)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "03.png"), nil, 0644))

		_, err := Load(dir)
		assert.ErrorIs(t, err, ErrDecodeFailure)
	})

	t.Run("truncated png", func(t *testing.T) {
		dir := frameDir(t, 2, 4, 4)
		data, err := os.ReadFile(filepath.Join(dir, "01.png"))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "01.png"), data[:len(data)/2], 0644))

		_, err = Load(dir)
		assert.ErrorIs(t, err, ErrDecodeFailure)
	})
}

func TestReload_KeepsFramesOnFailure(t *testing.T) {
	dir := frameDir(t, 2, 4, 4)
	store, err := Load(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "zz.txt"), []byte("oops"), 0644))
	err = store.Reload()
	assert.ErrorIs(t, err, ErrDecodeFailure)
	assert.Equal(t, 2, store.Len())

	require.NoError(t, os.Remove(filepath.Join(dir, "zz.txt")))
	writePNG(t, filepath.Join(dir, "02.png"), solid(4, 4, color.NRGBA{A: 255}))
	require.NoError(t, store.Reload())
	assert.Equal(t, 3, store.Len())
}

func TestReload_WithoutSource(t *testing.T) {
	store, err := FromImages([]image.Image{solid(1, 1, color.NRGBA{}), solid(1, 1, color.NRGBA{})})
	require.NoError(t, err)
	assert.ErrorIs(t, store.Reload(), ErrInvalidSource)
}

func TestLoad_RequireUniformSize(t *testing.T) {
	dir := frameDir(t, 2, 4, 4)
	writePNG(t, filepath.Join(dir, "02.png"), solid(5, 4, color.NRGBA{A: 255}))

	store, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, store.Len())

	_, err = Load(dir, RequireUniformSize())
	assert.ErrorIs(t, err, interpolate.ErrDimensionMismatch)
}

func TestFromImages(t *testing.T) {
	a := solid(2, 2, color.NRGBA{R: 1, A: 255})
	b := solid(2, 2, color.NRGBA{R: 2, A: 255})

	t.Run("skips nil entries", func(t *testing.T) {
		store, err := FromImages([]image.Image{nil, a, nil, b, nil})
		require.NoError(t, err)
		assert.Equal(t, 2, store.Len())
		first, err := store.FrameAt(0)
		require.NoError(t, err)
		assert.Same(t, a, first)
	})

	t.Run("too few images", func(t *testing.T) {
		_, err := FromImages([]image.Image{a})
		assert.ErrorIs(t, err, ErrInvalidSource)

		_, err = FromImages([]image.Image{a, nil})
		assert.ErrorIs(t, err, ErrInvalidSource)

		_, err = FromImages(nil)
		assert.ErrorIs(t, err, ErrInvalidSource)
	})
}

func TestFrameAt_OutOfRange(t *testing.T) {
	store, err := Load(frameDir(t, 2, 2, 2))
	require.NoError(t, err)

	for _, index := range []int{-1, 2, 100} {
		img, err := store.FrameAt(index)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.Nil(t, img)
	}
}

func TestSnapshot_IsDefensiveCopy(t *testing.T) {
	a := solid(2, 2, color.NRGBA{R: 1, A: 255})
	b := solid(2, 2, color.NRGBA{R: 2, A: 255})
	store, err := FromImages([]image.Image{a, b})
	require.NoError(t, err)

	snapshot := store.Snapshot()
	snapshot[0] = b

	assert.Equal(t, 2, store.Len())
	first, err := store.FrameAt(0)
	require.NoError(t, err)
	assert.Same(t, a, first)
}

func TestReplace(t *testing.T) {
	a := solid(2, 2, color.NRGBA{R: 1, A: 255})
	b := solid(2, 2, color.NRGBA{R: 2, A: 255})
	c := solid(2, 2, color.NRGBA{R: 3, A: 255})
	store, err := FromImages([]image.Image{a, b})
	require.NoError(t, err)

	require.NoError(t, store.Replace([]image.Image{nil, c, b, a, nil}))
	assert.Equal(t, 3, store.Len())
	first, err := store.FrameAt(0)
	require.NoError(t, err)
	assert.Same(t, c, first)

	assert.ErrorIs(t, store.Replace([]image.Image{nil, a}), ErrInvalidSource)
	assert.Equal(t, 3, store.Len())
}
