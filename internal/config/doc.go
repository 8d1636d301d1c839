// Package config loads, normalizes, and validates faramir configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the FARAMIR_EXIFTOOL environment
// override. The Config type centralizes every knob the CLI and batch pipeline
// need: naming conventions, sidecar layout, alignment policy, and where run
// state lives.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical orders, and clear validation errors.
package config
