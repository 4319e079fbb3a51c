// Package collect enumerates the still images a timelapse is built from.
package collect

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"snapmotion/internal/failure"
)

// ImageEntry is one collected image. Entries are never modified after
// collection.
type ImageEntry struct {
	Path    string
	Name    string
	ModTime time.Time
	Size    int64
}

var supportedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// IsSupported reports whether name carries one of the accepted image
// extensions, compared case-insensitively.
func IsSupported(name string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Images lists the supported image files directly inside dir. Subdirectories
// are not descended. The returned order is the directory listing order; use
// the sequence package to impose a deterministic one.
func Images(dir string) ([]ImageEntry, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, failure.Wrap(failure.ErrInvalidPath, failure.StageCollect, "stat", "input directory not set", nil)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, failure.Wrap(failure.ErrInvalidPath, failure.StageCollect, "stat", dir+" does not exist", nil)
		}
		return nil, failure.Wrap(failure.ErrInvalidPath, failure.StageCollect, "stat", dir, err)
	}
	if !info.IsDir() {
		return nil, failure.Wrap(failure.ErrInvalidPath, failure.StageCollect, "stat", dir+" is not a directory", nil)
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, failure.Wrap(failure.ErrInvalidPath, failure.StageCollect, "read directory", dir, err)
	}

	entries := make([]ImageEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !IsSupported(de.Name()) {
			continue
		}
		path := filepath.Join(dir, de.Name())
		// os.Stat follows symlinks; dangling links and links to directories
		// are skipped.
		fi, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, failure.Wrap(failure.ErrInvalidPath, failure.StageCollect, "stat", de.Name(), err)
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		entries = append(entries, ImageEntry{
			Path:    path,
			Name:    de.Name(),
			ModTime: fi.ModTime(),
			Size:    fi.Size(),
		})
	}

	if len(entries) == 0 {
		return nil, failure.Wrap(failure.ErrEmptyInput, failure.StageCollect, "", "no .jpg, .jpeg or .png files in "+dir, nil)
	}
	return entries, nil
}

// TotalSize sums the on-disk size of entries.
func TotalSize(entries []ImageEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total
}
