// Package batch sequences one roll through planning, renaming, and tag
// writing.
//
// Plan resolves everything that can abort the run: the folder naming
// context, the sidecar header, the file list, and target collisions. Only a
// plan that passed those checks reaches Execute, which renames each file and
// writes its tags one at a time. Per-field and per-file failures are absorbed
// into the Report and surfaced through the Observer.
package batch
