// Package staging names and reclaims the in-progress files a video is
// written to before it is promoted to its final path.
package staging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"snapmotion/internal/logging"
)

const partialSuffix = ".partial"

// DefaultMaxAge is how old a partial file must be before CleanStale treats
// it as abandoned.
const DefaultMaxAge = 24 * time.Hour

// PartialName returns a unique hidden file name for an in-progress copy of
// the output named base.
func PartialName(base string) string {
	return fmt.Sprintf(".%s.%s%s", base, uuid.NewString()[:tagLen], partialSuffix)
}

const tagLen = 8

// IsPartial reports whether name has the ".<base>.<8 hex>.partial" shape
// PartialName produces.
func IsPartial(name string) bool {
	if !strings.HasPrefix(name, ".") || !strings.HasSuffix(name, partialSuffix) {
		return false
	}
	stem := strings.TrimSuffix(name[1:], partialSuffix)
	dot := strings.LastIndexByte(stem, '.')
	if dot < 1 {
		return false
	}
	tag := stem[dot+1:]
	if len(tag) != tagLen {
		return false
	}
	for _, r := range tag {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}

// CleanStaleResult contains the outcome of a stale file cleanup.
type CleanStaleResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// CleanStale removes partial files in dir older than maxAge. They are left
// behind only when a run was killed before it could clean up.
func CleanStale(ctx context.Context, dir string, maxAge time.Duration, logger *slog.Logger) CleanStaleResult {
	result := CleanStaleResult{}

	dir = strings.TrimSpace(dir)
	if dir == "" {
		return result
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: dir, Error: err})
		}
		return result
	}

	cutoff := time.Now().Add(-maxAge)

	for _, entry := range entries {
		if ctx.Err() != nil {
			return result
		}
		if entry.IsDir() || !IsPartial(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			if !os.IsNotExist(err) {
				result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
			}
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
			if logger != nil {
				logger.Warn("failed to remove stale partial file",
					slog.String("path", path),
					logging.Error(err),
					slog.String(logging.FieldEventType, "staging_cleanup_failed"),
				)
			}
			continue
		}
		result.Removed = append(result.Removed, path)
		if logger != nil {
			logger.Info("removed stale partial file",
				slog.String("path", path),
				slog.Duration("age", time.Since(info.ModTime()).Round(time.Second)),
				slog.String(logging.FieldEventType, "staging_cleanup"),
			)
		}
	}

	return result
}
