// Package preflight provides readiness checks for the external tools and
// filesystem paths a faramir batch depends on.
//
// These checks run in two contexts:
//   - "faramir run" checks the roll folder and sidecar before planning so a
//     read-only folder or unreadable CSV aborts the batch before any file is
//     touched.
//   - "faramir status" reports every check for the active configuration.
package preflight
