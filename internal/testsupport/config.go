package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"faramir/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithRoll overrides the roll identifier on the test config.
func WithRoll(roll string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Naming.Roll = roll
	}
}

// WithJournalDisabled turns off the run journal.
func WithJournalDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// ExifToolStub answers the stay-open protocol and reports every file as
// updated. Received argument lines are appended to exiftool.log next to the
// script; "-ver" prints a version.
const ExifToolStub = `#!/bin/sh
log="$(dirname "$0")/exiftool.log"
if [ "$1" = "-ver" ]; then
  echo "12.76"
  exit 0
fi
while IFS= read -r line; do
  echo "$line" >> "$log"
  case "$line" in
    -execute) echo "    1 image files updated"; echo "{ready}" ;;
    False) exit 0 ;;
  esac
done
`

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, exiftool is stubbed with
// ExifToolStub and the config points at it.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		stubExifTool := len(names) == 0
		if stubExifTool {
			names = []string{"exiftool"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			script := "#!/bin/sh\nexit 0\n"
			if name == "exiftool" {
				script = ExifToolStub
			}
			path := WriteScript(b.t, binDir, name, script)
			if name == "exiftool" {
				b.cfg.ExifTool.Binary = path
			}
		}

		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// WriteScript writes an executable shell script and returns its path.
func WriteScript(t testing.TB, dir, name, script string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
