// Package services defines shared utilities consumed by the batch pipeline and
// its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, frame positions, and stage names for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that separate fatal
//     preconditions (validation, configuration) from tool failures.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across commands.
package services
