// Package video owns the single output file of a run.
//
// A Writer starts one ffmpeg process that reads raw frames from stdin and
// encodes them to MP4. Output is written to a partial file and only moved to
// the requested path once ffmpeg exits cleanly, so a failed or interrupted
// run never leaves a file that looks finished. An advisory lock on
// "<output>.lock" keeps two runs from targeting the same path. The lock file
// itself is left in place after the run.
//
// Writers move through StateUnopened, StateOpen and then StateFinalized, or
// from StateOpen to StateFailed. Abort
// is safe to call in any state, which makes "defer w.Abort()" the release
// path for every early return.
package video
