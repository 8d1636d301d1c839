package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRenameNoClobber(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "Kodak_Gold_200_Paris_Summer 2024_R01_F01.jpg")

	if err := os.WriteFile(src, []byte("scan"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RenameNoClobber(src, dst); err != nil {
		t.Fatalf("RenameNoClobber: %v", err)
	}

	if _, err := os.Stat(src); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected source to be gone, got %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "scan" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestRenameNoClobberRefusesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	dst := filepath.Join(dir, "b.jpg")

	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := RenameNoClobber(src, dst)
	if !errors.Is(err, ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists, got %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "old" {
		t.Fatalf("target was overwritten: %q", got)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source should remain: %v", err)
	}
}

func TestRenameNoClobberSamePath(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.jpg")
	if err := os.WriteFile(src, []byte("scan"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RenameNoClobber(src, src); err != nil {
		t.Fatalf("same-path rename should be a no-op: %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source should remain: %v", err)
	}
}

func TestRenameNoClobberMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := RenameNoClobber(filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "out.jpg"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if errors.Is(err, ErrTargetExists) {
		t.Fatalf("missing source should not report ErrTargetExists: %v", err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	ok, err := Exists(path)
	if err != nil || !ok {
		t.Fatalf("Exists(present) = %v, %v", ok, err)
	}
	ok, err = Exists(filepath.Join(dir, "absent"))
	if err != nil || ok {
		t.Fatalf("Exists(absent) = %v, %v", ok, err)
	}
}
