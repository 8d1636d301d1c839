package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeNaming()
	c.normalizeScan()
	c.normalizeSidecar()
	c.normalizeAlignment()
	c.normalizeExifTool()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Journal.Path, err = expandPath(strings.TrimSpace(c.Journal.Path)); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeNaming() {
	c.Naming.Roll = strings.TrimSpace(c.Naming.Roll)
	if c.Naming.Roll == "" {
		c.Naming.Roll = defaultRoll
	}
	if c.Naming.ContextSeparator == "" {
		c.Naming.ContextSeparator = defaultContextSeparator
	}
}

func (c *Config) normalizeScan() {
	exts := make([]string, 0, len(c.Scan.Extensions))
	seen := make(map[string]struct{}, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = []string{defaultExtension}
	}
	c.Scan.Extensions = exts

	switch strings.ToLower(strings.TrimSpace(c.Scan.Order)) {
	case "", "asc", OrderAscending:
		c.Scan.Order = OrderAscending
	case "desc", "reverse", OrderDescending:
		c.Scan.Order = OrderDescending
	default:
		c.Scan.Order = strings.ToLower(strings.TrimSpace(c.Scan.Order))
	}
}

func (c *Config) normalizeSidecar() {
	c.Sidecar.DateLayout = strings.TrimSpace(c.Sidecar.DateLayout)
	if c.Sidecar.DateLayout == "" {
		c.Sidecar.DateLayout = defaultDateLayout
	}
	if c.Sidecar.Delimiter == "" {
		c.Sidecar.Delimiter = defaultDelimiter
	}
}

func (c *Config) normalizeAlignment() {
	c.Alignment.Policy = strings.ToLower(strings.TrimSpace(c.Alignment.Policy))
	if c.Alignment.Policy == "" {
		c.Alignment.Policy = defaultAlignmentPolicy
	}
}

func (c *Config) normalizeExifTool() {
	if value, ok := os.LookupEnv("FARAMIR_EXIFTOOL"); ok && strings.TrimSpace(value) != "" {
		c.ExifTool.Binary = strings.TrimSpace(value)
	}
	c.ExifTool.Binary = strings.TrimSpace(c.ExifTool.Binary)
	if c.ExifTool.Binary == "" {
		c.ExifTool.Binary = defaultExifToolBinary
	}
	if c.ExifTool.TimeoutSeconds <= 0 {
		c.ExifTool.TimeoutSeconds = defaultExifToolTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
