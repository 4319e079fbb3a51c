// Package deps reports which external binaries SnapMotion can reach.
package deps

import (
	"fmt"
	"strings"

	"snapmotion/internal/config"
)

// Requirement defines an external dependency SnapMotion relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements lists the binaries a run needs under cfg. ffprobe is only
// required when output verification is enabled.
func Requirements(cfg *config.Config) []Requirement {
	ffmpeg, ffprobe := "ffmpeg", "ffprobe"
	verify := false
	if cfg != nil {
		ffmpeg, ffprobe = cfg.FFmpeg.Binary, cfg.FFmpeg.FFprobeBinary
		verify = cfg.Output.Verify
	}
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpeg, Description: "Encodes rendered frames into MP4"},
		{Name: "FFprobe", Command: ffprobe, Description: "Verifies frame counts of finished videos", Optional: !verify},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
// Commands given as bare names are resolved next to the executable first.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := Resolve(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Missing returns the required statuses that are unavailable.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}
