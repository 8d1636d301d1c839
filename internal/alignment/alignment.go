// Package alignment pairs enumerated image files with sidecar rows.
//
// Alignment is a named policy so the orchestrator never hard-codes how rows
// map to frames. Every file appears in the resulting plan exactly once; the
// surplus on either side is listed rather than dropped.
package alignment

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"faramir/internal/sidecar"
)

// Policy names accepted by PolicyByName.
const (
	PolicyPrefix = "prefix"
	PolicyFrame  = "frame"
)

// ErrUnknownPolicy is returned for unrecognized policy names.
var ErrUnknownPolicy = errors.New("unknown alignment policy")

// Pair binds a 1-based frame position to its file and optional row.
type Pair struct {
	Index  int
	Path   string
	Record *sidecar.Record
}

// Plan is the outcome of aligning one batch.
type Plan struct {
	Pairs          []Pair
	UnmatchedFiles []string
	UnmatchedRows  []sidecar.Record
}

// Matched counts pairs that carry a row.
func (p Plan) Matched() int {
	n := 0
	for _, pair := range p.Pairs {
		if pair.Record != nil {
			n++
		}
	}
	return n
}

// Policy aligns an ordered file list with an ordered row list.
type Policy interface {
	Name() string
	Align(files []string, rows []sidecar.Record) Plan
}

// PolicyByName resolves a policy; an empty name selects Prefix.
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyPrefix:
		return Prefix{}, nil
	case PolicyFrame:
		return ByFrameNumber{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownPolicy, name, PolicyPrefix, PolicyFrame)
	}
}

// Prefix pairs file N with row N for the first min(len(files), len(rows))
// positions. Surplus files get no row; surplus rows are never consumed.
type Prefix struct{}

// Name implements Policy.
func (Prefix) Name() string { return PolicyPrefix }

// Align implements Policy.
func (Prefix) Align(files []string, rows []sidecar.Record) Plan {
	owned := append([]sidecar.Record(nil), rows...)
	plan := Plan{Pairs: make([]Pair, len(files))}
	for i, path := range files {
		plan.Pairs[i] = Pair{Index: i + 1, Path: path}
		if i < len(owned) {
			plan.Pairs[i].Record = &owned[i]
		} else {
			plan.UnmatchedFiles = append(plan.UnmatchedFiles, path)
		}
	}
	if len(owned) > len(files) {
		plan.UnmatchedRows = append(plan.UnmatchedRows, owned[len(files):]...)
	}
	return plan
}

// ByFrameNumber pairs file position N with the row whose Frame column is N.
// Rows without a frame number, with a number outside the file range, or
// sharing a number with another row are left unmatched.
type ByFrameNumber struct{}

// Name implements Policy.
func (ByFrameNumber) Name() string { return PolicyFrame }

// Align implements Policy.
func (ByFrameNumber) Align(files []string, rows []sidecar.Record) Plan {
	owned := append([]sidecar.Record(nil), rows...)

	counts := make(map[int]int, len(owned))
	for _, rec := range owned {
		if rec.Frame != nil {
			counts[*rec.Frame]++
		}
	}

	byFrame := make(map[int]int, len(owned))
	var unmatched []int
	for i, rec := range owned {
		if rec.Frame == nil {
			unmatched = append(unmatched, i)
			continue
		}
		frame := *rec.Frame
		if frame < 1 || frame > len(files) || counts[frame] > 1 {
			unmatched = append(unmatched, i)
			continue
		}
		byFrame[frame] = i
	}

	plan := Plan{Pairs: make([]Pair, len(files))}
	for i, path := range files {
		plan.Pairs[i] = Pair{Index: i + 1, Path: path}
		if rowIdx, ok := byFrame[i+1]; ok {
			plan.Pairs[i].Record = &owned[rowIdx]
		} else {
			plan.UnmatchedFiles = append(plan.UnmatchedFiles, path)
		}
	}

	sort.Ints(unmatched)
	for _, idx := range unmatched {
		plan.UnmatchedRows = append(plan.UnmatchedRows, owned[idx])
	}
	return plan
}
