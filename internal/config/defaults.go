package config

const (
	defaultConfigPath        = "~/.config/faramir/config.toml"
	defaultStateDir          = "~/.local/share/faramir"
	defaultLogDir            = "~/.local/share/faramir/logs"
	defaultRoll              = "R01"
	defaultContextSeparator  = " - "
	defaultDateLayout        = "1/2/2006, 3:04 PM"
	defaultDelimiter         = ","
	defaultExifToolBinary    = "exiftool"
	defaultExifToolTimeout   = 30
	defaultLogFormat         = "console"
	defaultLogLevel          = "warn"
	defaultAlignmentPolicy   = "prefix"
	defaultJournalEnabled    = true
	defaultOverwriteOriginal = true
	defaultExtension         = ".jpg"
)

// Processing orders accepted by scan.order.
const (
	OrderAscending  = "ascending"
	OrderDescending = "descending"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Naming: Naming{
			Roll:             defaultRoll,
			ContextSeparator: defaultContextSeparator,
		},
		Scan: Scan{
			Extensions: []string{defaultExtension},
			Order:      OrderAscending,
		},
		Sidecar: Sidecar{
			DateLayout: defaultDateLayout,
			Delimiter:  defaultDelimiter,
		},
		Alignment: Alignment{
			Policy: defaultAlignmentPolicy,
		},
		ExifTool: ExifTool{
			Binary:            defaultExifToolBinary,
			OverwriteOriginal: defaultOverwriteOriginal,
			TimeoutSeconds:    defaultExifToolTimeout,
		},
		Journal: Journal{
			Enabled: defaultJournalEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
