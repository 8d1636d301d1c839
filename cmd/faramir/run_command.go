package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"faramir/internal/batch"
	"faramir/internal/config"
	"faramir/internal/journal"
	"faramir/internal/logging"
	"faramir/internal/preflight"
	"faramir/internal/runlock"
	"faramir/internal/services"
	"faramir/internal/services/exiftool"
)

type runOptions struct {
	reverse bool
	roll    string
	policy  string
	dryRun  bool
	verify  bool
	json    bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run <folder> <sidecar.csv>",
		Short: "Rename a roll folder and embed sidecar metadata",
		Long: `Rename every scan in <folder> to
"{film}_{location}_{season}_{roll}_F{NN}.ext" and write the capture
metadata of the matching sidecar row into each file.

The folder must be laid out as "<film stock>/<location> - <season year>".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return executeRun(cmd, cfg, logger, args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.reverse, "reverse", "r", false, "Process files in descending name order")
	cmd.Flags().StringVar(&opts.roll, "roll", "", "Roll identifier (overrides naming.roll)")
	cmd.Flags().StringVar(&opts.policy, "policy", "", "Alignment policy: prefix or frame (overrides alignment.policy)")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Show the plan without renaming or writing tags")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "Read tags back after writing and warn on mismatches")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output the report as JSON")
	return cmd
}

func executeRun(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, folderArg, sidecarArg string, opts runOptions) error {
	folder, err := resolveArgPath(folderArg)
	if err != nil {
		return err
	}
	sidecarPath, err := resolveArgPath(sidecarArg)
	if err != nil {
		return err
	}
	for _, check := range []preflight.Result{
		preflight.CheckDirectoryAccess("Image folder", folder),
		preflight.CheckFileReadable("Sidecar", sidecarPath),
	} {
		if !check.Passed {
			return services.Wrap(services.ErrValidation, "run", "preflight", check.Name+": "+check.Detail, nil)
		}
	}

	req := batch.RequestFromConfig(cfg, folder, sidecarPath)
	if opts.reverse {
		req.Descending = true
	}
	if opts.roll != "" {
		req.Roll = opts.roll
	}
	if opts.policy != "" {
		req.Policy = opts.policy
	}
	req.DryRun = opts.dryRun
	req.Verify = opts.verify

	runID := uuid.NewString()
	runCtx := services.WithRunID(cmd.Context(), runID)
	ctxLogger := logging.WithContext(runCtx, logger)
	runLogger := logging.NewComponentLogger(ctxLogger, "cli")

	if !req.DryRun {
		lock, err := runlock.Acquire(cfg.LockDir(), folder)
		if err != nil {
			return services.Wrap(services.ErrValidation, "run", "lock folder", "", err)
		}
		defer func() {
			if err := lock.Release(); err != nil {
				runLogger.Warn("release folder lock failed", logging.Error(err))
			}
		}()
	}

	var writer batch.MetadataWriter
	if !req.DryRun {
		client, err := exiftool.New(cfg.ExifTool.Binary,
			exiftool.WithLogger(ctxLogger),
			exiftool.WithOverwriteOriginal(cfg.ExifTool.OverwriteOriginal),
			exiftool.WithTimeout(time.Duration(cfg.ExifTool.TimeoutSeconds)*time.Second),
		)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				runLogger.Warn("close exiftool failed", logging.Error(err))
			}
		}()
		writer = client
	}

	rec, err := startJournal(runCtx, cfg, runID, req, runLogger)
	if err != nil {
		return err
	}
	defer rec.close()

	started := time.Now()
	orch := batch.New(writer,
		batch.WithLogger(ctxLogger),
		batch.WithObserver(batch.NewLogObserver(ctxLogger)),
	)
	plan, report, runErr := orch.Run(runCtx, req)
	if runErr != nil {
		rec.fail(runCtx, runErr)
		runLogger.Error("batch aborted",
			logging.String(logging.FieldEventType, "batch_aborted"),
			logging.String("kind", services.Kind(runErr)),
			logging.Error(runErr),
		)
		return runErr
	}
	rec.finish(runCtx, report)
	runLogger.Info("run complete",
		logging.String("folder", folder),
		logging.Duration("duration", time.Since(started)),
	)

	out := newRunOutput(runID, plan, report)
	if opts.json {
		if err := writeJSON(cmd, out); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), renderRunReport(out))
	}

	if report.Canceled {
		return context.Canceled
	}
	if report.Failed() {
		return fmt.Errorf("run %s finished with %d rename and %d write failures", shortID(runID), report.RenameFailures, report.WriteFailures)
	}
	return nil
}

func resolveArgPath(arg string) (string, error) {
	expanded, err := config.ExpandPath(strings.TrimSpace(arg))
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", arg, err)
	}
	return abs, nil
}

// journalRecorder persists a run when the journal is enabled. A disabled
// journal makes every method a no-op.
type journalRecorder struct {
	store  *journal.Store
	run    journal.Run
	logger *slog.Logger
}

func startJournal(ctx context.Context, cfg *config.Config, runID string, req batch.Request, logger *slog.Logger) (*journalRecorder, error) {
	rec := &journalRecorder{
		run: journal.Run{
			ID:        runID,
			Folder:    req.Folder,
			Sidecar:   req.SidecarPath,
			Policy:    req.Policy,
			DryRun:    req.DryRun,
			StartedAt: time.Now(),
		},
		logger: logger,
	}
	if !cfg.Journal.Enabled {
		return rec, nil
	}
	store, err := journal.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.BeginRun(ctx, rec.run); err != nil {
		_ = store.Close()
		return nil, err
	}
	rec.store = store
	return rec, nil
}

func (r *journalRecorder) fail(ctx context.Context, err error) {
	if r.store == nil {
		return
	}
	r.run.Status = journal.StatusFailed
	r.run.ErrorMessage = err.Error()
	if err := r.store.FinishRun(context.WithoutCancel(ctx), r.run, nil); err != nil {
		r.logger.Warn("journal update failed", logging.Error(err))
	}
}

func (r *journalRecorder) finish(ctx context.Context, report batch.Report) {
	if r.store == nil {
		return
	}
	r.run.Status = journal.StatusCompleted
	if report.Failed() {
		r.run.Status = journal.StatusPartial
	}
	r.run.Found = report.Found
	r.run.Renamed = report.Renamed
	r.run.Tagged = report.Tagged
	r.run.UnmatchedFiles = report.UnmatchedFiles
	r.run.UnmatchedRows = report.UnmatchedRows
	r.run.RenameFailures = report.RenameFailures
	r.run.WriteFailures = report.WriteFailures
	r.run.Warnings = report.Warnings

	items := make([]journal.Item, 0, len(report.Items))
	for _, item := range report.Items {
		warnings := append(append([]string(nil), item.Warnings...), item.Mismatches...)
		items = append(items, journal.Item{
			Index:        item.Index,
			Source:       item.Source,
			Target:       item.Target,
			Status:       string(item.Status),
			TagCount:     item.TagCount,
			Warnings:     warnings,
			ErrorMessage: item.ErrorMessage(),
		})
	}
	if err := r.store.FinishRun(context.WithoutCancel(ctx), r.run, items); err != nil {
		r.logger.Warn("journal update failed", logging.Error(err))
	}
}

func (r *journalRecorder) close() {
	if r.store != nil {
		_ = r.store.Close()
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
