package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"faramir/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openJournal(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				out := make([]runSummaryJSON, 0, len(runs))
				for _, run := range runs {
					out = append(out, newRunSummaryJSON(run))
				}
				return writeJSON(cmd, out)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRunList(runs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output runs as JSON")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the items of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openJournal(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, journal.ErrNotFound) {
					return fmt.Errorf("no run matches %q", args[0])
				}
				return err
			}
			items, err := store.ListItems(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, newRunDetailJSON(*run, items))
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRunDetail(*run, items))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run as JSON")
	return cmd
}

func openJournal(ctx *commandContext) (*journal.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Journal.Enabled {
		return nil, errors.New("run journal is disabled (set journal.enabled = true)")
	}
	return journal.Open(cfg)
}

type runSummaryJSON struct {
	ID             string    `json:"id"`
	Folder         string    `json:"folder"`
	Sidecar        string    `json:"sidecar"`
	Policy         string    `json:"policy"`
	DryRun         bool      `json:"dry_run"`
	Status         string    `json:"status"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at,omitzero"`
	Found          int       `json:"found"`
	Renamed        int       `json:"renamed"`
	Tagged         int       `json:"tagged"`
	UnmatchedFiles int       `json:"unmatched_files"`
	UnmatchedRows  int       `json:"unmatched_rows"`
	RenameFailures int       `json:"rename_failures"`
	WriteFailures  int       `json:"write_failures"`
	Warnings       int       `json:"warnings"`
	Error          string    `json:"error,omitempty"`
}

type runDetailJSON struct {
	runSummaryJSON
	Items []itemOutput `json:"items"`
}

func newRunSummaryJSON(run journal.Run) runSummaryJSON {
	return runSummaryJSON{
		ID:             run.ID,
		Folder:         run.Folder,
		Sidecar:        run.Sidecar,
		Policy:         run.Policy,
		DryRun:         run.DryRun,
		Status:         run.Status,
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
		Found:          run.Found,
		Renamed:        run.Renamed,
		Tagged:         run.Tagged,
		UnmatchedFiles: run.UnmatchedFiles,
		UnmatchedRows:  run.UnmatchedRows,
		RenameFailures: run.RenameFailures,
		WriteFailures:  run.WriteFailures,
		Warnings:       run.Warnings,
		Error:          run.ErrorMessage,
	}
}

func newRunDetailJSON(run journal.Run, items []journal.Item) runDetailJSON {
	out := runDetailJSON{
		runSummaryJSON: newRunSummaryJSON(run),
		Items:          make([]itemOutput, 0, len(items)),
	}
	for _, item := range items {
		out.Items = append(out.Items, itemOutput{
			Frame:    item.Index,
			Source:   filepath.Base(item.Source),
			Target:   filepath.Base(item.Target),
			Status:   item.Status,
			Tags:     item.TagCount,
			Warnings: item.Warnings,
			Error:    item.ErrorMessage,
		})
	}
	return out
}

func renderRunList(runs []journal.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		status := run.Status
		if run.DryRun {
			status += " (dry)"
		}
		rows = append(rows, []string{
			shortID(run.ID),
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			rollLabel(run.Folder),
			status,
			strconv.Itoa(run.Found),
			strconv.Itoa(run.Renamed),
			strconv.Itoa(run.Tagged),
			strconv.Itoa(run.RenameFailures + run.WriteFailures),
		})
	}
	return renderTable(tableSpec{
		headers: []string{"ID", "Started", "Roll", "Status", "Found", "Renamed", "Tagged", "Failed"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	}, rows)
}

func renderRunDetail(run journal.Run, items []journal.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run:      %s\n", run.ID)
	fmt.Fprintf(&b, "Folder:   %s\n", run.Folder)
	fmt.Fprintf(&b, "Sidecar:  %s\n", run.Sidecar)
	fmt.Fprintf(&b, "Policy:   %s\n", run.Policy)
	fmt.Fprintf(&b, "Status:   %s (dry run: %s)\n", run.Status, yesNo(run.DryRun))
	fmt.Fprintf(&b, "Started:  %s\n", run.StartedAt.Local().Format(time.RFC3339))
	if !run.FinishedAt.IsZero() {
		fmt.Fprintf(&b, "Duration: %s\n", run.Duration().Round(time.Millisecond))
	}
	fmt.Fprintf(&b, "Counts:   %d found, %d renamed, %d tagged, %d/%d unmatched files/rows\n",
		run.Found, run.Renamed, run.Tagged, run.UnmatchedFiles, run.UnmatchedRows)
	if run.ErrorMessage != "" {
		fmt.Fprintf(&b, "Error:    %s\n", run.ErrorMessage)
	}
	if len(items) == 0 {
		return b.String()
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		note := item.ErrorMessage
		if note == "" {
			note = strings.Join(item.Warnings, "; ")
		}
		rows = append(rows, []string{
			fmt.Sprintf("F%02d", item.Index),
			filepath.Base(item.Source),
			filepath.Base(item.Target),
			item.Status,
			strconv.Itoa(item.TagCount),
			note,
		})
	}
	b.WriteString(renderTable(tableSpec{
		headers: []string{"Frame", "Source", "Target", "Status", "Tags", "Notes"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	}, rows))
	b.WriteString("\n")
	return b.String()
}

// rollLabel shows the two innermost folder segments.
func rollLabel(folder string) string {
	trip := filepath.Base(folder)
	film := filepath.Base(filepath.Dir(folder))
	if film == "." || film == string(filepath.Separator) {
		return trip
	}
	return film + "/" + trip
}
