package services_test

import (
	"errors"
	"strings"
	"testing"

	"faramir/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "metadata", "write", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"metadata", "write", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestKindAndPrecondition(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		kind         string
		precondition bool
	}{
		{"nil", nil, "", false},
		{"validation", services.Wrap(services.ErrValidation, "naming", "parse", "bad folder", nil), "validation", true},
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "load", "bad", nil), "configuration", true},
		{"not found", services.Wrap(services.ErrNotFound, "scan", "list", "missing", nil), "not_found", true},
		{"tool", services.Wrap(services.ErrExternalTool, "exiftool", "write", "crashed", nil), "external_tool", false},
		{"plain", errors.New("io"), "transient", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.Kind(tt.err); got != tt.kind {
				t.Fatalf("Kind() = %q, want %q", got, tt.kind)
			}
			if got := services.IsPrecondition(tt.err); got != tt.precondition {
				t.Fatalf("IsPrecondition() = %v, want %v", got, tt.precondition)
			}
		})
	}
}
