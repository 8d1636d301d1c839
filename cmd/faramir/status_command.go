package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"faramir/internal/config"
	"faramir/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check configuration, directories, and external tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("Configuration", colorize)
			lines = append(lines, configLines(ctx, cfg, colorize)...)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Directories", colorize)...)
			results := preflight.RunAll(cmd.Context(), cfg)
			lines = append(lines, preflightLines(results, colorize)...)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Dependencies", colorize)...)
			statuses := preflight.CheckSystemDeps(cmd.Context(), cfg)
			lines = append(lines, dependencyLines(statuses, colorize)...)

			fmt.Fprintln(out, strings.Join(lines, "\n"))

			for _, r := range results {
				if !r.Passed {
					return errors.New("status checks failed")
				}
			}
			for _, s := range statuses {
				if !s.Available && !s.Optional {
					return errors.New("status checks failed")
				}
			}
			return nil
		},
	}
}

func configLines(ctx *commandContext, cfg *config.Config, colorize bool) []string {
	source := ctx.configPath + " (defaults)"
	if ctx.configExists {
		source = ctx.configPath
	}
	journalDetail := "Disabled"
	journalKind := statusWarn
	if cfg.Journal.Enabled {
		journalDetail = cfg.JournalPath()
		journalKind = statusOK
	}
	return []string{
		renderStatusLine("Config", statusInfo, source, colorize),
		renderStatusLine("Roll", statusInfo, cfg.Naming.Roll, colorize),
		renderStatusLine("Order", statusInfo, cfg.Scan.Order, colorize),
		renderStatusLine("Policy", statusInfo, cfg.Alignment.Policy, colorize),
		renderStatusLine("Date layout", statusInfo, cfg.Sidecar.DateLayout, colorize),
		renderStatusLine("Overwrite", statusInfo, yesNo(cfg.ExifTool.OverwriteOriginal), colorize),
		renderStatusLine("Journal", journalKind, journalDetail, colorize),
	}
}
