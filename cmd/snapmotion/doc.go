// Package main hosts the SnapMotion CLI entrypoint and command graph.
//
// Running snapmotion without a subcommand starts the interactive wizard: it
// asks for the image folder and output settings, shows the resolved plan,
// and after confirmation renders the timelapse with a progress bar. The
// config and doctor subcommands scaffold configuration and report whether
// ffmpeg and the configured directories are usable.
//
// Keep this package lean: the pipeline, wizard, and checks live in internal
// packages; commands here only wire them to the terminal.
package main
