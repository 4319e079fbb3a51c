// Package prompt asks the interactive questions that configure a run.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"snapmotion/internal/config"
	"snapmotion/internal/sequence"
	"snapmotion/internal/textutil"
)

// ErrAborted is returned when input ends before the wizard completes.
var ErrAborted = errors.New("wizard aborted")

// Defaults pre-fill the answers accepted with an empty line.
type Defaults struct {
	Sort            sequence.Mode
	SecondsPerFrame float64
	Width           int
	Height          int
	OutputDir       string
}

// DefaultsFromConfig derives prompt defaults from cfg.
func DefaultsFromConfig(cfg *config.Config) Defaults {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return Defaults{
		Sort:            cfg.SortMode(),
		SecondsPerFrame: cfg.Render.SecondsPerFrame,
		Width:           cfg.Render.Width,
		Height:          cfg.Render.Height,
		OutputDir:       cfg.Output.Dir,
	}
}

// Answers holds one completed questionnaire.
type Answers struct {
	InputDir        string
	Sort            sequence.Mode
	SecondsPerFrame float64
	// Width and Height are zero when the original size is kept.
	Width     int
	Height    int
	FileName  string
	OutputDir string
}

// OutputPath joins the output folder and file name.
func (a Answers) OutputPath() string {
	return filepath.Join(a.OutputDir, a.FileName+".mp4")
}

// Wizard reads answers line by line from in and writes questions to out.
type Wizard struct {
	in       *bufio.Reader
	out      io.Writer
	defaults Defaults
}

// New returns a wizard over in and out.
func New(in io.Reader, out io.Writer, defaults Defaults) *Wizard {
	return &Wizard{in: bufio.NewReader(in), out: out, defaults: defaults}
}

// Run asks every question in order. Invalid answers are explained and asked
// again.
func (w *Wizard) Run() (Answers, error) {
	var a Answers
	var err error

	w.printf("Welcome to SnapMotion! Turn a folder of photos into a timelapse video.\n\n")

	if a.InputDir, err = w.ask("Folder with your images", "", existingDir); err != nil {
		return Answers{}, err
	}

	w.printf("\nHow should the images be ordered?\n  1) By filename\n  2) By date/time\n")
	sortDefault := "1"
	if w.defaults.Sort == sequence.ByDate {
		sortDefault = "2"
	}
	sortText, err := w.ask("Choice (1 or 2)", sortDefault, func(v string) (string, error) {
		mode, err := sequence.ParseSortMode(v)
		return string(mode), err
	})
	if err != nil {
		return Answers{}, err
	}
	a.Sort = sequence.Mode(sortText)

	w.printf("\n")
	spfDefault := ""
	if w.defaults.SecondsPerFrame > 0 {
		spfDefault = formatSeconds(w.defaults.SecondsPerFrame)
	}
	spfText, err := w.ask("Seconds each photo is shown", spfDefault, func(v string) (string, error) {
		s, err := config.ParseSeconds(v)
		return formatSeconds(s), err
	})
	if err != nil {
		return Answers{}, err
	}
	a.SecondsPerFrame, _ = strconv.ParseFloat(spfText, 64)

	w.printf("\nRecommended resolutions:\n  - HD (1280x720): good balance of quality and file size\n  - Full HD (1920x1080): higher quality, larger file\n")
	resDefault := "original"
	if w.defaults.Width > 0 && w.defaults.Height > 0 {
		resDefault = fmt.Sprintf("%dx%d", w.defaults.Width, w.defaults.Height)
	}
	resText, err := w.ask("Resolution (WIDTHxHEIGHT, or \"original\" to keep the image size)", resDefault, parseResolutionAnswer)
	if err != nil {
		return Answers{}, err
	}
	a.Width, a.Height, _ = resolutionFromAnswer(resText)

	w.printf("\n")
	if a.FileName, err = w.ask("Video file name (without extension)", "", validFileName); err != nil {
		return Answers{}, err
	}
	if a.OutputDir, err = w.ask("Folder to save the video in", w.defaults.OutputDir, existingDir); err != nil {
		return Answers{}, err
	}
	return a, nil
}

// Confirm asks a yes/no question. An empty answer means no.
func (w *Wizard) Confirm(question string) (bool, error) {
	answer, err := w.ask(question+" (y/N)", "n", func(v string) (string, error) {
		switch strings.ToLower(v) {
		case "y", "yes":
			return "y", nil
		case "n", "no":
			return "n", nil
		default:
			return "", errors.New("please answer y or n")
		}
	})
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}

// ask prints label, reads one line, and feeds it (or def when empty) through
// check until check accepts it.
func (w *Wizard) ask(label, def string, check func(string) (string, error)) (string, error) {
	for {
		if def != "" {
			w.printf("%s [%s]: ", label, def)
		} else {
			w.printf("%s: ", label)
		}
		line, err := w.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			line = def
		}
		if line == "" {
			w.printf("  a value is required\n")
			continue
		}
		value, err := check(line)
		if err != nil {
			w.printf("  %v\n", err)
			continue
		}
		return value, nil
	}
}

func (w *Wizard) readLine() (string, error) {
	line, err := w.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			w.printf("\n")
			return "", ErrAborted
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (w *Wizard) printf(format string, args ...any) {
	fmt.Fprintf(w.out, format, args...)
}

func existingDir(v string) (string, error) {
	path, err := config.ExpandPath(v)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("folder %s does not exist", path)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a folder", path)
	}
	return path, nil
}

func validFileName(v string) (string, error) {
	name := strings.TrimSpace(v)
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".mp4") {
		name = strings.TrimSuffix(name, ext)
	}
	name = textutil.SanitizeFileName(name)
	if name == "" {
		return "", errors.New("file name cannot be empty")
	}
	return name, nil
}

func parseResolutionAnswer(v string) (string, error) {
	w, h, err := resolutionFromAnswer(v)
	if err != nil {
		return "", err
	}
	if w == 0 && h == 0 {
		return "original", nil
	}
	return fmt.Sprintf("%dx%d", w, h), nil
}

func resolutionFromAnswer(v string) (int, int, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "original", "keep", "o":
		return 0, 0, nil
	}
	return config.ParseResolution(v)
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
