package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"faramir/internal/batch"
)

type runOutput struct {
	RunID      string       `json:"run_id"`
	Folder     string       `json:"folder"`
	FilmStock  string       `json:"film_stock"`
	Location   string       `json:"location"`
	SeasonYear string       `json:"season_year"`
	Policy     string       `json:"policy"`
	DryRun     bool         `json:"dry_run"`
	Summary    reportCounts `json:"summary"`
	Items      []itemOutput `json:"items"`

	UnmatchedFiles []string `json:"unmatched_files"`
	UnmatchedRows  []int    `json:"unmatched_row_lines"`
}

type reportCounts struct {
	Found          int  `json:"found"`
	Renamed        int  `json:"renamed"`
	Tagged         int  `json:"tagged"`
	UnmatchedFiles int  `json:"unmatched_files"`
	UnmatchedRows  int  `json:"unmatched_rows"`
	RenameFailures int  `json:"rename_failures"`
	WriteFailures  int  `json:"write_failures"`
	Warnings       int  `json:"warnings"`
	Canceled       bool `json:"canceled,omitempty"`
}

type itemOutput struct {
	Frame      int      `json:"frame"`
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Status     string   `json:"status"`
	Tags       int      `json:"tags"`
	Warnings   []string `json:"warnings,omitempty"`
	Mismatches []string `json:"mismatches,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func newRunOutput(runID string, plan batch.Plan, report batch.Report) runOutput {
	out := runOutput{
		RunID:      runID,
		Folder:     plan.Folder,
		FilmStock:  plan.Context.FilmStock,
		Location:   plan.Context.Location,
		SeasonYear: plan.Context.SeasonYear,
		Policy:     plan.Policy,
		DryRun:     report.DryRun,
		Summary: reportCounts{
			Found:          report.Found,
			Renamed:        report.Renamed,
			Tagged:         report.Tagged,
			UnmatchedFiles: report.UnmatchedFiles,
			UnmatchedRows:  report.UnmatchedRows,
			RenameFailures: report.RenameFailures,
			WriteFailures:  report.WriteFailures,
			Warnings:       report.Warnings,
			Canceled:       report.Canceled,
		},
		Items:          make([]itemOutput, 0, len(report.Items)),
		UnmatchedFiles: make([]string, 0, len(plan.UnmatchedFiles)),
		UnmatchedRows:  make([]int, 0, len(plan.UnmatchedRows)),
	}
	for _, item := range report.Items {
		out.Items = append(out.Items, itemOutput{
			Frame:      item.Index,
			Source:     filepath.Base(item.Source),
			Target:     filepath.Base(item.Target),
			Status:     string(item.Status),
			Tags:       item.TagCount,
			Warnings:   item.Warnings,
			Mismatches: item.Mismatches,
			Error:      item.ErrorMessage(),
		})
	}
	for _, path := range plan.UnmatchedFiles {
		out.UnmatchedFiles = append(out.UnmatchedFiles, filepath.Base(path))
	}
	for _, row := range plan.UnmatchedRows {
		out.UnmatchedRows = append(out.UnmatchedRows, row.Line)
	}
	return out
}

func renderRunReport(out runOutput) string {
	var b strings.Builder

	title := fmt.Sprintf("%s / %s - %s", out.FilmStock, out.Location, out.SeasonYear)
	if out.DryRun {
		title += " (dry run)"
	}
	rows := make([][]string, 0, len(out.Items))
	for _, item := range out.Items {
		note := item.Error
		if note == "" && len(item.Warnings)+len(item.Mismatches) > 0 {
			note = strings.Join(append(append([]string(nil), item.Warnings...), item.Mismatches...), "; ")
		}
		rows = append(rows, []string{
			fmt.Sprintf("F%02d", item.Frame),
			item.Source,
			item.Target,
			item.Status,
			strconv.Itoa(item.Tags),
			note,
		})
	}
	b.WriteString(renderTable(tableSpec{
		title:   title,
		headers: []string{"Frame", "Source", "Target", "Status", "Tags", "Notes"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	}, rows))
	b.WriteString("\n")

	s := out.Summary
	fmt.Fprintf(&b, "Run %s: %d found, %d renamed, %d tagged\n", shortID(out.RunID), s.Found, s.Renamed, s.Tagged)
	fmt.Fprintf(&b, "Unmatched: %d files, %d rows\n", s.UnmatchedFiles, s.UnmatchedRows)
	if len(out.UnmatchedRows) > 0 {
		lines := make([]string, len(out.UnmatchedRows))
		for i, line := range out.UnmatchedRows {
			lines[i] = strconv.Itoa(line)
		}
		fmt.Fprintf(&b, "Unused sidecar lines: %s\n", strings.Join(lines, ", "))
	}
	if s.RenameFailures+s.WriteFailures > 0 {
		fmt.Fprintf(&b, "Failures: %d rename, %d write\n", s.RenameFailures, s.WriteFailures)
	}
	if s.Warnings > 0 {
		fmt.Fprintf(&b, "Warnings: %d\n", s.Warnings)
	}
	if s.Canceled {
		b.WriteString("Run canceled before all files were processed\n")
	}
	return b.String()
}

// writeJSON encodes v as indented JSON to the command's stdout. Folder
// names such as "Rock & Roll - Summer 2024" are written without HTML
// escaping.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
