// Package failure classifies pipeline errors.
//
// Every stage reports errors through Wrap so callers can test the failure
// kind with errors.Is against the exported markers while still reaching the
// underlying cause. The CLI uses StageOf and ExitCode to tell the user which
// stage failed and to pick the process exit status.
package failure
