package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateSidecar(); err != nil {
		return err
	}
	if err := c.validateAlignment(); err != nil {
		return err
	}
	if err := c.validateExifTool(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateNaming() error {
	if strings.ContainsAny(c.Naming.Roll, `/\`) {
		return fmt.Errorf("naming.roll must not contain path separators, got %q", c.Naming.Roll)
	}
	if strings.TrimSpace(c.Naming.ContextSeparator) == "" {
		return errors.New("naming.context_separator must contain a visible character")
	}
	return nil
}

func (c *Config) validateScan() error {
	switch c.Scan.Order {
	case OrderAscending, OrderDescending:
	default:
		return fmt.Errorf("scan.order must be %q or %q, got %q", OrderAscending, OrderDescending, c.Scan.Order)
	}
	return nil
}

func (c *Config) validateSidecar() error {
	if utf8.RuneCountInString(c.Sidecar.Delimiter) != 1 {
		return fmt.Errorf("sidecar.delimiter must be a single character, got %q", c.Sidecar.Delimiter)
	}
	if c.Sidecar.Delimiter == "\"" || c.Sidecar.Delimiter == "\n" || c.Sidecar.Delimiter == "\r" {
		return fmt.Errorf("sidecar.delimiter %q is not allowed", c.Sidecar.Delimiter)
	}
	// A layout that cannot round-trip its own reference time cannot parse anything.
	ref := time.Date(2006, time.January, 2, 15, 4, 0, 0, time.UTC)
	if _, err := time.Parse(c.Sidecar.DateLayout, ref.Format(c.Sidecar.DateLayout)); err != nil {
		return fmt.Errorf("sidecar.date_layout %q is not a usable Go time layout: %w", c.Sidecar.DateLayout, err)
	}
	return nil
}

func (c *Config) validateAlignment() error {
	switch c.Alignment.Policy {
	case "prefix", "frame":
		return nil
	default:
		return fmt.Errorf("alignment.policy must be \"prefix\" or \"frame\", got %q", c.Alignment.Policy)
	}
}

func (c *Config) validateExifTool() error {
	if c.ExifTool.TimeoutSeconds <= 0 {
		return errors.New("exiftool.timeout_seconds must be positive")
	}
	return nil
}
