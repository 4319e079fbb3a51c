package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"snapmotion/internal/config"
	"snapmotion/internal/deps"
	"snapmotion/internal/failure"
	"snapmotion/internal/fileutil"
	"snapmotion/internal/frame"
	"snapmotion/internal/logging"
	"snapmotion/internal/staging"
)

// ErrWriterClosed is returned by operations on a writer that reached a
// terminal state.
var ErrWriterClosed = errors.New("video writer closed")

// State tracks the writer lifecycle.
type State int

const (
	StateUnopened State = iota
	StateOpen
	StateFinalized
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateOpen:
		return "open"
	case StateFinalized:
		return "finalized"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const (
	defaultCodec  = "libx264"
	defaultBinary = "ffmpeg"
)

// Options configures one output video.
type Options struct {
	Path            string
	Width           int
	Height          int
	FPS             int
	SecondsPerFrame float64
	// Format is the raw pixel format frames arrive in. Defaults to rgb24.
	Format       frame.PixelFormat
	Codec        string
	CRF          int
	Preset       string
	// FFmpegBinary defaults to "ffmpeg" resolved via deps.Resolve.
	FFmpegBinary string
	// StagingDir holds the partial file. Empty means the output directory.
	StagingDir string
	Logger     *slog.Logger
}

func (o Options) codec() string {
	if c := strings.TrimSpace(o.Codec); c != "" {
		return c
	}
	return defaultCodec
}

func (o Options) validate() error {
	switch {
	case strings.TrimSpace(o.Path) == "":
		return errors.New("output path is empty")
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("invalid frame size %dx%d", o.Width, o.Height)
	case o.FPS <= 0:
		return fmt.Errorf("invalid frame rate %d", o.FPS)
	case !(o.SecondsPerFrame > 0) || o.SecondsPerFrame > config.MaxSecondsPerFrame:
		return fmt.Errorf("invalid seconds per frame %v", o.SecondsPerFrame)
	}
	if o.Format != "" && o.Format.BytesPerPixel() == 0 {
		return fmt.Errorf("unsupported pixel format %q", o.Format)
	}
	return nil
}

// Writer streams frames into one ffmpeg process.
type Writer struct {
	mu      sync.Mutex
	opts    Options
	logger  *slog.Logger
	ctx     context.Context
	state   State
	repeats int
	frames  int64

	lock    *flock.Flock
	partial string
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stderr  *tailBuffer
	waited  bool
}

// Open validates opts, locks the output path, and starts the encoder.
func Open(ctx context.Context, opts Options) (*Writer, error) {
	if err := opts.validate(); err != nil {
		return nil, failure.Wrap(failure.ErrWrite, failure.StageWrite, "open", "invalid options", err)
	}
	if opts.Format == "" {
		opts.Format = frame.PixelFormatRGB24
	}
	if strings.TrimSpace(opts.FFmpegBinary) == "" {
		opts.FFmpegBinary = defaultBinary
	}
	opts.Path = filepath.Clean(opts.Path)

	w := &Writer{
		opts:    opts,
		logger:  logging.NewComponentLogger(opts.Logger, "video"),
		ctx:     ctx,
		state:   StateUnopened,
		repeats: Repeats(opts.SecondsPerFrame, opts.FPS),
		stderr:  newTailBuffer(4096),
	}
	if err := w.start(); err != nil {
		w.release()
		w.state = StateFailed
		return nil, err
	}
	w.state = StateOpen
	return w, nil
}

func (w *Writer) start() error {
	outDir := filepath.Dir(w.opts.Path)
	if err := requireDir(outDir); err != nil {
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, "open", "output directory", err)
	}
	stagingDir := outDir
	if w.opts.StagingDir != "" {
		stagingDir = w.opts.StagingDir
		if err := requireDir(stagingDir); err != nil {
			return failure.Wrap(failure.ErrWrite, failure.StageWrite, "open", "staging directory", err)
		}
	}

	w.lock = flock.New(w.opts.Path + ".lock")
	locked, err := w.lock.TryLock()
	if err != nil {
		w.lock = nil
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, "open", "lock output", err)
	}
	if !locked {
		w.lock = nil
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, "open", "output is being written by another run", errors.New(w.opts.Path))
	}

	binary, err := deps.Resolve(w.opts.FFmpegBinary)
	if err != nil {
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, "open", "ffmpeg not available", err)
	}

	w.partial = filepath.Join(stagingDir, staging.PartialName(filepath.Base(w.opts.Path)))
	args := BuildArgs(w.opts, w.partial)

	if OutputPixelFormat(w.opts.Width, w.opts.Height) != "yuv420p" {
		w.logger.Warn("odd frame size, encoding 4:4:4 which some players cannot decode",
			slog.Int("width", w.opts.Width),
			slog.Int("height", w.opts.Height),
		)
	}

	cmd := exec.CommandContext(w.ctx, binary, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = w.stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, "open", "encoder stdin", err)
	}
	if err := cmd.Start(); err != nil {
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, "open", "start ffmpeg", err)
	}
	w.cmd = cmd
	w.stdin = stdin

	w.logger.Debug("encoder started",
		slog.String("binary", binary),
		slog.String("args", strings.Join(args, " ")),
		slog.Int("repeats", w.repeats),
	)
	return nil
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// State reports the current lifecycle state.
func (w *Writer) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Repeats reports how many encoder frames each WriteFrame call produces.
func (w *Writer) Repeats() int { return w.repeats }

// FramesWritten reports encoder frames sent so far.
func (w *Writer) FramesWritten() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// Path returns the final output path.
func (w *Writer) Path() string { return w.opts.Path }

// WriteFrame appends f Repeats() times. Frames of the wrong size or pixel
// format are rejected without affecting the writer.
func (w *Writer) WriteFrame(f *frame.Frame) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateOpen {
		return ErrWriterClosed
	}
	if err := f.Check(image.Pt(w.opts.Width, w.opts.Height), w.opts.Format); err != nil {
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, "write frame", "frame rejected", err)
	}
	if err := w.ctx.Err(); err != nil {
		w.abortLocked()
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, "write frame", "interrupted", err)
	}
	for range w.repeats {
		if _, err := w.stdin.Write(f.Pix); err != nil {
			w.abortLocked()
			return w.encoderError("write frame", err)
		}
		w.frames++
	}
	return nil
}

// Finalize flushes the encoder, waits for it, and moves the finished file to
// its final path. It fails with failure.ErrEmptyInput when no frame was
// written.
func (w *Writer) Finalize() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateOpen {
		return ErrWriterClosed
	}
	if w.frames == 0 {
		w.abortLocked()
		return failure.Wrap(failure.ErrEmptyInput, failure.StageWrite, "finalize", "no frames were written", nil)
	}

	closeErr := w.stdin.Close()
	waitErr := w.cmd.Wait()
	w.waited = true
	if waitErr != nil || closeErr != nil {
		err := errors.Join(waitErr, closeErr)
		w.abortLocked()
		return w.encoderError("finalize", err)
	}

	if err := fileutil.Promote(w.partial, w.opts.Path); err != nil {
		w.abortLocked()
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, "finalize", "move output into place", err)
	}
	w.partial = ""
	w.release()
	w.state = StateFinalized

	w.logger.Debug("encoder finished",
		slog.String("output", w.opts.Path),
		slog.Int64("frames", w.frames),
	)
	return nil
}

// Abort stops the encoder and removes the partial file. It is a no-op once
// the writer is StateFinalized or StateFailed.
func (w *Writer) Abort() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateOpen {
		return nil
	}
	w.abortLocked()
	return nil
}

func (w *Writer) abortLocked() {
	if w.stdin != nil {
		_ = w.stdin.Close()
	}
	if w.cmd != nil && !w.waited {
		if w.cmd.Process != nil {
			_ = w.cmd.Process.Kill()
		}
		_ = w.cmd.Wait()
		w.waited = true
	}
	w.release()
	w.state = StateFailed
	w.logger.Debug("encoder aborted", slog.String("output", w.opts.Path))
}

// release drops the partial file and unlocks the output.
func (w *Writer) release() {
	if w.partial != "" {
		if err := fileutil.RemoveIfExists(w.partial); err != nil {
			w.logger.Warn("failed to remove partial output", slog.String("path", w.partial), logging.Error(err))
		}
		w.partial = ""
	}
	// Unlock only. Unlinking the lock file lets two runs hold locks on
	// different inodes for the same output.
	if w.lock != nil {
		_ = w.lock.Unlock()
		w.lock = nil
	}
}

func (w *Writer) encoderError(op string, err error) error {
	if ctxErr := w.ctx.Err(); ctxErr != nil {
		return failure.Wrap(failure.ErrWrite, failure.StageWrite, op, "interrupted", ctxErr)
	}
	msg := "ffmpeg failed"
	if tail := strings.TrimSpace(w.stderr.String()); tail != "" {
		msg = "ffmpeg failed: " + lastLine(tail)
	}
	return failure.Wrap(failure.ErrWrite, failure.StageWrite, op, msg, err)
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	limit int
}

func newTailBuffer(limit int) *tailBuffer {
	return &tailBuffer{limit: limit}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(p)
	if len(p) > t.limit {
		p = p[len(p)-t.limit:]
	}
	if over := t.buf.Len() + len(p) - t.limit; over > 0 {
		t.buf.Next(over)
	}
	t.buf.Write(p)
	return n, nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}
