package batch

// ItemStatus is the outcome of one step.
type ItemStatus string

const (
	StatusPlanned      ItemStatus = "planned"
	StatusRenamed      ItemStatus = "renamed"
	StatusTagged       ItemStatus = "tagged"
	StatusRenameFailed ItemStatus = "rename_failed"
	StatusWriteFailed  ItemStatus = "write_failed"
	StatusSkipped      ItemStatus = "skipped"
)

// ItemResult records what happened to one file.
type ItemResult struct {
	Index      int
	Source     string
	Target     string
	Status     ItemStatus
	TagCount   int
	Warnings   []string
	Mismatches []string
	Err        error
}

// ErrorMessage returns the item error text or "".
func (r ItemResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Report accumulates the counters of one batch. UnmatchedFiles includes
// files whose tag write failed.
type Report struct {
	Found          int
	Renamed        int
	Tagged         int
	UnmatchedFiles int
	UnmatchedRows  int
	RenameFailures int
	WriteFailures  int
	Warnings       int

	DryRun   bool
	Canceled bool
	Items    []ItemResult
}

// Failed reports whether any file could not be renamed or tagged.
func (r Report) Failed() bool {
	return r.RenameFailures > 0 || r.WriteFailures > 0 || r.Canceled
}

func newReport(plan Plan) Report {
	return Report{
		Found:          len(plan.Steps),
		UnmatchedFiles: len(plan.UnmatchedFiles),
		UnmatchedRows:  len(plan.UnmatchedRows),
		Warnings:       len(plan.SidecarWarnings),
		DryRun:         plan.DryRun,
		Items:          make([]ItemResult, 0, len(plan.Steps)),
	}
}
