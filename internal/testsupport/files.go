package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0x42
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// RollFolder creates "<base>/<film>/<trip>" and writes the named scans into
// it, returning the folder path.
func RollFolder(t testing.TB, base, film, trip string, scans ...string) string {
	t.Helper()

	folder := filepath.Join(base, film, trip)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", folder, err)
	}
	for _, name := range scans {
		if err := os.WriteFile(filepath.Join(folder, name), MinimalJPEG(), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return folder
}

// WriteSidecar writes a CSV with the standard header and the given rows.
func WriteSidecar(t testing.TB, path string, rows ...string) {
	t.Helper()

	content := "Frame,Aperture,Shutter,Focal Length,Date,Latitude,Longitude\n"
	for _, row := range rows {
		content += row + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}
}
