package batch

import (
	"faramir/internal/naming"
	"faramir/internal/sidecar"
)

// Step is one file of the batch with its precomputed target.
type Step struct {
	// Index is the 1-based position after sorting.
	Index  int
	Source string
	Target string
	Record *sidecar.Record
}

// Renames reports whether the step changes the file name.
func (s Step) Renames() bool { return s.Source != s.Target }

// Plan is the full ordered work list of a batch. It is computed before any
// file is touched.
type Plan struct {
	Folder     string
	Context    naming.PathContext
	Policy     string
	DateLayout string
	DryRun     bool
	Verify     bool

	Steps           []Step
	UnmatchedFiles  []string
	UnmatchedRows   []sidecar.Record
	SidecarWarnings []sidecar.Warning
}

// Matched counts steps that carry a sidecar row.
func (p Plan) Matched() int {
	n := 0
	for _, step := range p.Steps {
		if step.Record != nil {
			n++
		}
	}
	return n
}
