package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"faramir/internal/alignment"
	"faramir/internal/exifread"
	"faramir/internal/exposure"
	"faramir/internal/fileutil"
	"faramir/internal/logging"
	"faramir/internal/naming"
	"faramir/internal/scan"
	"faramir/internal/services"
	"faramir/internal/sidecar"
)

const stageName = "batch"

// MetadataWriter embeds a tag set into the file at path.
type MetadataWriter interface {
	WriteTags(ctx context.Context, path string, tags exposure.TagSet) error
}

// Verifier reads tags back from a written file.
type Verifier interface {
	Verify(path string, want exposure.TagSet) ([]exifread.Mismatch, error)
}

// ExifVerifier decodes the file with exifread and compares values.
type ExifVerifier struct{}

// Verify implements Verifier.
func (ExifVerifier) Verify(path string, want exposure.TagSet) ([]exifread.Mismatch, error) {
	capture, err := exifread.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return exifread.Compare(want, capture), nil
}

// Orchestrator runs batches against a MetadataWriter.
type Orchestrator struct {
	writer   MetadataWriter
	verifier Verifier
	observer Observer
	logger   *slog.Logger
	now      func() time.Time
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithObserver sets the event sink.
func WithObserver(observer Observer) Option {
	return func(o *Orchestrator) {
		if observer != nil {
			o.observer = observer
		}
	}
}

// WithVerifier overrides the read-back used when a request asks for
// verification.
func WithVerifier(verifier Verifier) Option {
	return func(o *Orchestrator) {
		if verifier != nil {
			o.verifier = verifier
		}
	}
}

// WithLogger sets the orchestrator logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logging.NewComponentLogger(logger, stageName)
	}
}

// New constructs an orchestrator. writer may be nil when only dry runs are
// executed.
func New(writer MetadataWriter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		writer:   writer,
		verifier: ExifVerifier{},
		observer: NopObserver{},
		logger:   logging.NewComponentLogger(nil, stageName),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run plans and, unless the request is a dry run, executes the batch. A
// returned error means nothing was touched.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Plan, Report, error) {
	plan, err := o.Plan(ctx, req)
	if err != nil {
		return Plan{}, Report{}, err
	}
	return plan, o.Execute(ctx, plan), nil
}

// Plan resolves the naming context, the sidecar rows, and the file list,
// then aligns them and checks every target. It never mutates the folder.
func (o *Orchestrator) Plan(ctx context.Context, req Request) (Plan, error) {
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}

	pathCtx, err := naming.ParsePathContext(req.Folder, req.Separator)
	if err != nil {
		return Plan{}, services.Wrap(services.ErrValidation, stageName, "resolve path context", "folder cannot name the batch", err)
	}

	policy, err := alignment.PolicyByName(req.Policy)
	if err != nil {
		return Plan{}, services.Wrap(services.ErrConfiguration, stageName, "select policy", "", err)
	}

	rows, warnings, err := loadRows(req)
	if err != nil {
		return Plan{}, err
	}

	files, err := scan.Files(req.Folder, scan.Options{Extensions: req.Extensions, Descending: req.Descending})
	if err != nil {
		marker := services.ErrTransient
		if errors.Is(err, os.ErrNotExist) {
			marker = services.ErrNotFound
		}
		return Plan{}, services.Wrap(marker, stageName, "list files", req.Folder, err)
	}

	aligned := policy.Align(files, rows)
	planner := naming.Planner{Context: pathCtx, Roll: req.Roll}
	plan := Plan{
		Folder:          req.Folder,
		Context:         pathCtx,
		Policy:          policy.Name(),
		DateLayout:      req.DateLayout,
		DryRun:          req.DryRun,
		Verify:          req.Verify,
		Steps:           make([]Step, len(aligned.Pairs)),
		UnmatchedFiles:  aligned.UnmatchedFiles,
		UnmatchedRows:   aligned.UnmatchedRows,
		SidecarWarnings: warnings,
	}
	for i, pair := range aligned.Pairs {
		plan.Steps[i] = Step{
			Index:  pair.Index,
			Source: pair.Path,
			Target: filepath.Join(filepath.Dir(pair.Path), planner.Name(pair.Index, filepath.Base(pair.Path))),
			Record: pair.Record,
		}
	}

	if err := checkCollisions(plan.Steps); err != nil {
		return Plan{}, err
	}

	o.logger.Debug("batch planned",
		logging.String("folder", plan.Folder),
		logging.Int("steps", len(plan.Steps)),
		logging.String("policy", plan.Policy),
	)
	o.observer.OnPlanned(plan)
	for _, w := range warnings {
		o.observer.OnSidecarWarning(w)
	}
	return plan, nil
}

func loadRows(req Request) ([]sidecar.Record, []sidecar.Warning, error) {
	if req.SidecarPath == "" {
		return append([]sidecar.Record(nil), req.Rows...), nil, nil
	}
	table, err := sidecar.Load(req.SidecarPath, sidecar.Options{Delimiter: req.Delimiter})
	if err != nil {
		marker := services.ErrValidation
		if errors.Is(err, os.ErrNotExist) {
			marker = services.ErrNotFound
		}
		return nil, nil, services.Wrap(marker, stageName, "load sidecar", req.SidecarPath, err)
	}
	return table.Rows, table.Warnings, nil
}

// checkCollisions rejects plans where a target is claimed twice or is
// already occupied by a file that is not the step's own source. Targets
// held by another batch file are rejected too, since the no-clobber rename
// would fail midway through the batch.
func checkCollisions(steps []Step) error {
	claimed := make(map[string]string, len(steps))
	for _, step := range steps {
		if prev, ok := claimed[step.Target]; ok {
			return services.Wrap(services.ErrValidation, stageName, "check targets",
				fmt.Sprintf("%s and %s both map to %s", filepath.Base(prev), filepath.Base(step.Source), filepath.Base(step.Target)), nil)
		}
		claimed[step.Target] = step.Source
		if !step.Renames() {
			continue
		}
		exists, err := fileutil.Exists(step.Target)
		if err != nil {
			return services.Wrap(services.ErrTransient, stageName, "check targets", step.Target, err)
		}
		if exists {
			return services.Wrap(services.ErrValidation, stageName, "check targets",
				fmt.Sprintf("%s would overwrite %s", filepath.Base(step.Source), filepath.Base(step.Target)), fileutil.ErrTargetExists)
		}
	}
	return nil
}

// Execute applies the plan one step at a time. Failures are recorded per
// file and never stop the batch; cancellation stops it between files.
func (o *Orchestrator) Execute(ctx context.Context, plan Plan) Report {
	start := o.now()
	report := newReport(plan)
	builder := exposure.NewBuilder(plan.DateLayout)
	total := len(plan.Steps)

	for _, step := range plan.Steps {
		if ctx.Err() != nil {
			report.Canceled = true
			break
		}
		itemStart := o.now()
		item := o.executeStep(ctx, plan, step, builder, &report)
		report.Items = append(report.Items, item)
		o.observer.OnItemDone(total, item, o.now().Sub(itemStart))
	}

	o.observer.OnDone(report, o.now().Sub(start))
	return report
}

func (o *Orchestrator) executeStep(ctx context.Context, plan Plan, step Step, builder exposure.Builder, report *Report) ItemResult {
	ctx = services.WithFrame(ctx, step.Index)
	item := ItemResult{Index: step.Index, Source: step.Source, Target: step.Target}

	var tags exposure.TagSet
	if step.Record != nil {
		var warnings []exposure.Warning
		tags, warnings = builder.Build(*step.Record)
		for _, w := range warnings {
			item.Warnings = append(item.Warnings, w.Error())
			report.Warnings++
			o.observer.OnFieldWarning(step, w)
		}
		item.TagCount = tags.Len()
	}

	if plan.DryRun {
		item.Status = StatusPlanned
		return item
	}

	if err := fileutil.RenameNoClobber(step.Source, step.Target); err != nil {
		item.Status = StatusRenameFailed
		item.Err = services.Wrap(services.ErrTransient, stageName, "rename", filepath.Base(step.Source), err)
		item.TagCount = 0
		report.RenameFailures++
		return item
	}
	report.Renamed++
	item.Status = StatusRenamed

	if step.Record == nil || tags.Empty() {
		return item
	}
	if o.writer == nil {
		item.Status = StatusWriteFailed
		item.Err = services.Wrap(services.ErrConfiguration, stageName, "write tags", "no metadata writer configured", nil)
		report.WriteFailures++
		report.UnmatchedFiles++
		return item
	}
	if err := o.writer.WriteTags(ctx, step.Target, tags); err != nil {
		item.Status = StatusWriteFailed
		item.Err = err
		report.WriteFailures++
		report.UnmatchedFiles++
		logging.WithContext(ctx, o.logger).Debug("tag write failed", logging.Error(err))
		return item
	}
	report.Tagged++
	item.Status = StatusTagged

	if plan.Verify {
		o.verify(step, tags, &item, report)
	}
	return item
}

func (o *Orchestrator) verify(step Step, tags exposure.TagSet, item *ItemResult, report *Report) {
	mismatches, err := o.verifier.Verify(step.Target, tags)
	if err != nil {
		mismatches = []exifread.Mismatch{{Tag: "exif", Want: "readable", Got: err.Error()}}
	}
	for _, m := range mismatches {
		item.Mismatches = append(item.Mismatches, m.String())
		report.Warnings++
		o.observer.OnMismatch(step, m)
	}
}
