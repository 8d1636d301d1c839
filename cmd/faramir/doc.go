// Package main hosts the faramir CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into batch runs over a
// scanned film roll, EXIF inspection, journal queries, and configuration
// scaffolding. Configuration resolution and logger setup happen once in the
// command context so subcommands only parse flags and render output.
//
// Keep this package thin: renaming, alignment, and tag encoding live in the
// internal packages and are surfaced here through dedicated commands.
package main
