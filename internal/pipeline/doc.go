// Package pipeline runs one timelapse build from a directory of images to a
// finished MP4.
//
// A run has two phases:
//   - Prepare collects and orders the images, checks the output location and
//     the encoder, and resolves the render size. Nothing is written yet, so
//     the caller can show the resulting Plan and ask for confirmation.
//   - Execute renders every entry in order, streams the frames into a
//     video.Writer, and optionally verifies the finished file with ffprobe.
//
// Progress is reported through an Observer; the package never prints.
package pipeline
