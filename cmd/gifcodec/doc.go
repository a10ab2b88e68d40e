// Package main hosts the gifcodec CLI entrypoint and command graph.
//
// The Cobra command tree exposes the codec in pkg/gif: decode extracts
// composited frames as PNG files, encode assembles still images into an
// animated GIF, info prints stream and frame metadata, and config scaffolds
// the TOML settings file. Configuration and logging are resolved once in the
// command context so subcommands only deal with their own flags.
package main
