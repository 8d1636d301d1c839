// Package textutil provides filename sanitization helpers shared by the
// rename planner and the CLI.
//
// Components of generated names come from folder names typed by hand, so they
// may carry characters that are unsafe on common filesystems or runs of
// whitespace that should collapse into a single separator.
package textutil
