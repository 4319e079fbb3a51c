package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"snapmotion/internal/collect"
	"snapmotion/internal/failure"
)

// Renderer produces frames of one fixed size and background.
type Renderer struct {
	size       image.Point
	background color.RGBA
	scaler     draw.Scaler
	canvas     *image.RGBA
}

// NewRenderer returns a renderer for width x height frames.
func NewRenderer(width, height int, background color.RGBA) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	background.A = 0xff
	return &Renderer{
		size:       image.Pt(width, height),
		background: background,
		scaler:     draw.CatmullRom,
		canvas:     image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// Size returns the frame dimensions this renderer emits.
func (r *Renderer) Size() image.Point { return r.size }

// Format returns the pixel format of emitted frames.
func (r *Renderer) Format() PixelFormat { return PixelFormatRGB24 }

// Render decodes entry and returns its frame. Unreadable or corrupt files
// fail with failure.ErrDecode.
func (r *Renderer) Render(entry collect.ImageEntry) (*Frame, error) {
	img, err := Decode(entry.Path)
	if err != nil {
		return nil, err
	}
	return r.RenderImage(img), nil
}

// RenderImage places img on the background canvas and packs the result.
func (r *Renderer) RenderImage(img image.Image) *Frame {
	bounds := r.canvas.Bounds()
	draw.Draw(r.canvas, bounds, &image.Uniform{C: r.background}, image.Point{}, draw.Src)

	src := img.Bounds()
	target := Fit(src.Size(), r.size)
	if !target.Empty() {
		if target.Size() == src.Size() {
			draw.Draw(r.canvas, target, img, src.Min, draw.Over)
		} else {
			r.scaler.Scale(r.canvas, target, img, src, draw.Over, nil)
		}
	}
	return packRGB24(r.canvas)
}

func packRGB24(canvas *image.RGBA) *Frame {
	b := canvas.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		row := canvas.Pix[y*canvas.Stride : y*canvas.Stride+w*4]
		out := pix[y*w*3 : (y+1)*w*3]
		for x := 0; x < w; x++ {
			out[x*3] = row[x*4]
			out[x*3+1] = row[x*4+1]
			out[x*3+2] = row[x*4+2]
		}
	}
	return &Frame{Width: w, Height: h, Format: PixelFormatRGB24, Pix: pix}
}

// Decode reads a JPEG or PNG from path. The format is sniffed from the file
// contents, not its extension.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, failure.Wrap(failure.ErrDecode, failure.StageRender, "open image", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, failure.Wrap(failure.ErrDecode, failure.StageRender, "decode image", path, err)
	}
	if img.Bounds().Empty() {
		return nil, failure.Wrap(failure.ErrDecode, failure.StageRender, "decode image", path, errors.New("image has no pixels"))
	}
	return img, nil
}

// DecodeSize reads only the header of the image at path and returns its
// dimensions.
func DecodeSize(path string) (image.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Point{}, failure.Wrap(failure.ErrDecode, failure.StageRender, "open image", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Point{}, failure.Wrap(failure.ErrDecode, failure.StageRender, "decode image header", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return image.Point{}, failure.Wrap(failure.ErrDecode, failure.StageRender, "decode image header", path, errors.New("image has no pixels"))
	}
	return image.Pt(cfg.Width, cfg.Height), nil
}
