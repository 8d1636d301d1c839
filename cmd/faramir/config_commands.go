package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"faramir/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Scaffold and check the faramir configuration",
	}
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration and list the settings to review",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if err := writeSample(target, overwrite); err != nil {
				return err
			}
			cfg, _, _, err := config.Load(target)
			if err != nil {
				return fmt.Errorf("reload sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n\n", target)
			fmt.Fprintln(out, "Review before the first roll:")
			writeChecklist(out, cfg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and report the settings a run will use",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configFlagValue())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "Config path: %s\n", path)
			} else {
				fmt.Fprintf(out, "Config path: %s (not found, using defaults)\n", path)
			}
			writeChecklist(out, cfg)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func initTarget(flagValue string) (string, error) {
	target := strings.TrimSpace(flagValue)
	if target == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(target)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

func writeSample(target string, overwrite bool) error {
	if !overwrite {
		_, err := os.Stat(target)
		switch {
		case err == nil:
			return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("check config path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := config.CreateSample(target); err != nil {
		return fmt.Errorf("create sample config: %w", err)
	}
	return nil
}

// checklistItem is one setting that shapes every renamed file or tag.
type checklistItem struct {
	section string
	key     string
	value   string
	hint    string
}

func checklist(cfg *config.Config) []checklistItem {
	journal := "disabled"
	if cfg.Journal.Enabled {
		journal = cfg.JournalPath()
	}
	return []checklistItem{
		{"naming", "roll", cfg.Naming.Roll, "stamped into every file name; --roll overrides per run"},
		{"naming", "context_separator", cfg.Naming.ContextSeparator, "splits \"<location><sep><season year>\" folder names"},
		{"sidecar", "delimiter", cfg.Sidecar.Delimiter, "CSV column separator"},
		{"sidecar", "date_layout", cfg.Sidecar.DateLayout, "Go layout for the Date column"},
		{"alignment", "policy", cfg.Alignment.Policy, "prefix pairs by position, frame uses the Frame column"},
		{"exiftool", "binary", cfg.ExifTool.Binary, "metadata writer"},
		{"journal", "path", journal, "run history"},
	}
}

func writeChecklist(w io.Writer, cfg *config.Config) {
	for _, item := range checklist(cfg) {
		fmt.Fprintf(w, "  [%s] %s = %q\n      %s\n", item.section, item.key, item.value, item.hint)
	}
}
