package testsupport

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// Solid returns an opaque image of the given size filled with c.
func Solid(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

// WriteJPEG encodes a solid-colour JPEG fixture at path.
func WriteJPEG(t testing.TB, path string, width, height int, c color.Color) {
	t.Helper()
	writeImage(t, path, func(f *os.File) error {
		return jpeg.Encode(f, Solid(width, height, c), &jpeg.Options{Quality: 95})
	})
}

// WritePNG encodes img as a PNG fixture at path.
func WritePNG(t testing.TB, path string, img image.Image) {
	t.Helper()
	writeImage(t, path, func(f *os.File) error {
		return png.Encode(f, img)
	})
}

func writeImage(t testing.TB, path string, encode func(*os.File) error) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}
}
