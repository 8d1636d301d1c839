package batch

import (
	"log/slog"
	"path/filepath"
	"time"

	"faramir/internal/exifread"
	"faramir/internal/exposure"
	"faramir/internal/logging"
	"faramir/internal/sidecar"
)

// Observer receives batch events as they happen. Implementations must not
// block for long; Execute calls them inline.
type Observer interface {
	OnPlanned(plan Plan)
	OnSidecarWarning(w sidecar.Warning)
	OnFieldWarning(step Step, w exposure.Warning)
	OnMismatch(step Step, m exifread.Mismatch)
	OnItemDone(total int, item ItemResult, dur time.Duration)
	OnDone(report Report, dur time.Duration)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnPlanned(Plan) {}
func (NopObserver) OnSidecarWarning(sidecar.Warning) {}
func (NopObserver) OnFieldWarning(Step, exposure.Warning) {}
func (NopObserver) OnMismatch(Step, exifread.Mismatch) {}
func (NopObserver) OnItemDone(int, ItemResult, time.Duration) {}
func (NopObserver) OnDone(Report, time.Duration) {}

// LogObserver forwards batch events to a structured logger.
type LogObserver struct {
	Logger *slog.Logger
}

// NewLogObserver returns an observer logging under the batch component.
func NewLogObserver(logger *slog.Logger) LogObserver {
	return LogObserver{Logger: logging.NewComponentLogger(logger, "batch")}
}

func (o LogObserver) OnPlanned(plan Plan) {
	o.Logger.Info("batch planned",
		logging.String("folder", plan.Folder),
		logging.String("film_stock", plan.Context.FilmStock),
		logging.String("location", plan.Context.Location),
		logging.String("season_year", plan.Context.SeasonYear),
		logging.String("policy", plan.Policy),
		logging.Int("files", len(plan.Steps)),
		logging.Int("matched", plan.Matched()),
		logging.Int("unmatched_files", len(plan.UnmatchedFiles)),
		logging.Int("unmatched_rows", len(plan.UnmatchedRows)),
		logging.Bool("dry_run", plan.DryRun),
	)
	if n := len(plan.UnmatchedFiles) + len(plan.UnmatchedRows); n > 0 {
		logging.WarnWithContext(o.Logger, "frame count mismatch", "alignment_mismatch",
			logging.Int("unmatched_files", len(plan.UnmatchedFiles)),
			logging.Int("unmatched_rows", len(plan.UnmatchedRows)),
			logging.String(logging.FieldImpact, "surplus files are renamed without tags"),
		)
	}
}

func (o LogObserver) OnSidecarWarning(w sidecar.Warning) {
	logging.WarnWithContext(o.Logger, "sidecar cell dropped", "sidecar_cell_invalid",
		logging.Int("line", w.Line),
		logging.String("column", w.Column),
		logging.String("input", w.Input),
		logging.Error(w.Err),
		logging.String(logging.FieldErrorHint, "fix the cell in the sidecar and rerun"),
	)
}

func (o LogObserver) OnFieldWarning(step Step, w exposure.Warning) {
	logging.WarnWithContext(o.Logger, "field omitted", "field_invalid",
		logging.Int(logging.FieldFrame, step.Index),
		logging.String("file", filepath.Base(step.Target)),
		logging.String("field", w.Field),
		logging.String("input", w.Input),
		logging.Error(w.Err),
		logging.String(logging.FieldImpact, "tag not written"),
	)
}

func (o LogObserver) OnMismatch(step Step, m exifread.Mismatch) {
	logging.WarnWithContext(o.Logger, "tag verification mismatch", "verify_mismatch",
		logging.Int(logging.FieldFrame, step.Index),
		logging.String("file", filepath.Base(step.Target)),
		logging.String("tag", m.Tag),
		logging.String("want", m.Want),
		logging.String("got", m.Got),
	)
}

func (o LogObserver) OnItemDone(total int, item ItemResult, dur time.Duration) {
	attrs := []slog.Attr{
		logging.Int(logging.FieldFrame, item.Index),
		logging.Int("total", total),
		logging.String("source", filepath.Base(item.Source)),
		logging.String("target", filepath.Base(item.Target)),
		logging.String("status", string(item.Status)),
		logging.Int("tags", item.TagCount),
		logging.Duration("duration", dur),
	}
	switch item.Status {
	case StatusRenameFailed, StatusWriteFailed:
		attrs = append(attrs, logging.Error(item.Err))
		logging.ErrorWithContext(o.Logger, "frame failed", string(item.Status), attrs...)
	default:
		o.Logger.Debug("frame done", logging.Args(attrs...)...)
	}
}

func (o LogObserver) OnDone(report Report, dur time.Duration) {
	o.Logger.Info("batch finished",
		logging.Int("found", report.Found),
		logging.Int("renamed", report.Renamed),
		logging.Int("tagged", report.Tagged),
		logging.Int("unmatched_files", report.UnmatchedFiles),
		logging.Int("unmatched_rows", report.UnmatchedRows),
		logging.Int("rename_failures", report.RenameFailures),
		logging.Int("write_failures", report.WriteFailures),
		logging.Int("warnings", report.Warnings),
		logging.Bool("canceled", report.Canceled),
		logging.Duration("duration", dur),
	)
}
