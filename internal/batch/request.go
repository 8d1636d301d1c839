package batch

import (
	"faramir/internal/alignment"
	"faramir/internal/config"
	"faramir/internal/naming"
	"faramir/internal/sidecar"
)

// Request describes one batch invocation.
type Request struct {
	Folder string

	// SidecarPath is loaded when set; otherwise Rows is used as-is.
	SidecarPath string
	Rows        []sidecar.Record
	Delimiter   rune

	Roll       string
	Separator  string
	Extensions []string
	Descending bool
	Policy     string
	DateLayout string

	DryRun bool
	Verify bool
}

// RequestFromConfig seeds a Request with the configured defaults.
func RequestFromConfig(cfg *config.Config, folder, sidecarPath string) Request {
	req := Request{
		Folder:      folder,
		SidecarPath: sidecarPath,
		Roll:        naming.DefaultRoll,
		Separator:   naming.DefaultSeparator,
		Policy:      alignment.PolicyPrefix,
	}
	if cfg == nil {
		return req
	}
	req.Roll = cfg.Naming.Roll
	req.Separator = cfg.Naming.ContextSeparator
	req.Extensions = append([]string(nil), cfg.Scan.Extensions...)
	req.Descending = cfg.Descending()
	req.Policy = cfg.Alignment.Policy
	req.DateLayout = cfg.Sidecar.DateLayout
	if d := []rune(cfg.Sidecar.Delimiter); len(d) == 1 {
		req.Delimiter = d[0]
	}
	return req
}
