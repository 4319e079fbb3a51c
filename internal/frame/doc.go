// Package frame turns decoded images into fixed-size raw video frames.
//
// Fit computes where a source image lands inside the target canvas
// (aspect-preserving, centred, letterboxed or pillarboxed as needed).
// Renderer decodes a file, scales it into that rectangle over a solid
// background, and packs the canvas into the pixel format the video writer
// declares to the encoder. Frames are ephemeral: the writer consumes each one
// before the next is rendered.
package frame
