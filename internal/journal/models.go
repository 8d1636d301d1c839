package journal

import "time"

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusPartial   = "partial"
	StatusFailed    = "failed"
)

// Run is one recorded batch invocation.
type Run struct {
	ID         string
	Folder     string
	Sidecar    string
	Policy     string
	DryRun     bool
	Status     string
	StartedAt  time.Time
	FinishedAt time.Time

	Found          int
	Renamed        int
	Tagged         int
	UnmatchedFiles int
	UnmatchedRows  int
	RenameFailures int
	WriteFailures  int
	Warnings       int

	ErrorMessage string
}

// Duration returns the wall time of a finished run.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Item is the recorded outcome for one file of a run.
type Item struct {
	Index        int
	Source       string
	Target       string
	Status       string
	TagCount     int
	Warnings     []string
	ErrorMessage string
}
