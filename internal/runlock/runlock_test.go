package runlock

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestAcquireIsExclusive(t *testing.T) {
	dir := t.TempDir()
	folder := filepath.Join(t.TempDir(), "Kodak Gold 200", "Paris - Summer 2024")

	first, err := Acquire(dir, folder)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	if _, err := Acquire(dir, folder); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	other, err := Acquire(dir, filepath.Join(folder, "..", "Rome - Winter 2023"))
	if err != nil {
		t.Fatalf("different folder should lock independently: %v", err)
	}
	defer other.Release()

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	again, err := Acquire(dir, folder)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if err := again.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestPathForIsStable(t *testing.T) {
	a := PathFor("/state/locks", "/scans/Portra/Rome - 2020")
	b := PathFor("/state/locks", "/scans/Portra/Rome - 2020/")
	if a != b {
		t.Fatalf("trailing slash changed lock path: %s vs %s", a, b)
	}
	if filepath.Ext(a) != ".lock" || len(filepath.Base(a)) != len("0123456789abcdef.lock") {
		t.Fatalf("unexpected lock name %s", a)
	}
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Fatalf("nil release: %v", err)
	}
}
