// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: video stream properties, including decoded frame counts
//   - Format: container-level metadata (duration, size, format name)
//
// Inspect runs ffprobe once. With CountFrames it asks ffprobe to decode the
// video stream and report nb_read_frames, which is how finished timelapses
// are verified.
package ffprobe
