package frame

import (
	"fmt"
	"image"
)

// PixelFormat names a packed pixel layout understood by ffmpeg's -pix_fmt.
type PixelFormat string

// PixelFormatRGB24 is three bytes per pixel in R, G, B order with no padding.
const PixelFormatRGB24 PixelFormat = "rgb24"

// BytesPerPixel reports the packed size of one pixel, or 0 for unknown formats.
func (p PixelFormat) BytesPerPixel() int {
	switch p {
	case PixelFormatRGB24:
		return 3
	default:
		return 0
	}
}

// Frame is a tightly packed raster of Width*Height pixels.
type Frame struct {
	Width  int
	Height int
	Format PixelFormat
	Pix    []byte
}

// Size returns the frame dimensions.
func (f *Frame) Size() image.Point {
	return image.Pt(f.Width, f.Height)
}

// Check verifies that f matches the expected geometry and format and that
// its buffer has exactly the packed length.
func (f *Frame) Check(size image.Point, format PixelFormat) error {
	if f == nil {
		return fmt.Errorf("nil frame")
	}
	if f.Format != format {
		return fmt.Errorf("frame pixel format %q, want %q", f.Format, format)
	}
	if f.Width != size.X || f.Height != size.Y {
		return fmt.Errorf("frame size %dx%d, want %dx%d", f.Width, f.Height, size.X, size.Y)
	}
	if want := size.X * size.Y * format.BytesPerPixel(); len(f.Pix) != want {
		return fmt.Errorf("frame buffer %d bytes, want %d", len(f.Pix), want)
	}
	return nil
}

// EvenSize rounds each dimension up to the next even number. 4:2:0 chroma
// subsampling requires even sizes.
func EvenSize(p image.Point) image.Point {
	return image.Pt(p.X+p.X%2, p.Y+p.Y%2)
}
