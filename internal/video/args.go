package video

import (
	"math"
	"strconv"
	"strings"

	"snapmotion/internal/frame"
)

// Repeats is how many encoder frames one image occupies: spf*fps rounded to
// the nearest integer, never less than one.
func Repeats(secondsPerFrame float64, fps int) int {
	n := int(math.Round(secondsPerFrame * float64(fps)))
	if n < 1 {
		return 1
	}
	return n
}

// OutputPixelFormat picks the encoded chroma layout. 4:2:0 needs even
// dimensions; odd sizes fall back to 4:4:4.
func OutputPixelFormat(width, height int) string {
	if width%2 != 0 || height%2 != 0 {
		return "yuv444p"
	}
	return "yuv420p"
}

// BuildArgs returns the ffmpeg argument list that reads raw frames from stdin
// and writes an MP4 to target.
func BuildArgs(opts Options, target string) []string {
	format := opts.Format
	if format == "" {
		format = frame.PixelFormatRGB24
	}
	size := strconv.Itoa(opts.Width) + "x" + strconv.Itoa(opts.Height)
	rate := strconv.Itoa(opts.FPS)

	args := []string{
		"-hide_banner", "-loglevel", "error", "-y",
		"-f", "rawvideo",
		"-pix_fmt", string(format),
		"-s", size,
		"-r", rate,
		"-i", "-",
		"-an",
		"-c:v", opts.codec(),
		"-pix_fmt", OutputPixelFormat(opts.Width, opts.Height),
	}
	if strings.HasPrefix(opts.codec(), "libx26") {
		args = append(args, "-crf", strconv.Itoa(opts.CRF))
		if opts.Preset != "" {
			args = append(args, "-preset", opts.Preset)
		}
	}
	args = append(args,
		"-r", rate,
		"-movflags", "+faststart",
		"-f", "mp4",
		target,
	)
	return args
}
