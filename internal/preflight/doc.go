// Package preflight provides readiness checks for the filesystem paths and
// external binaries SnapMotion depends on.
//
// These checks run in two contexts:
//   - The pipeline checks the input folder and the output folder before any
//     frame is rendered, so an unwritable destination fails fast.
//   - The CLI "snapmotion doctor" command runs RunAll and CheckSystemDeps to
//     display installation health.
package preflight
