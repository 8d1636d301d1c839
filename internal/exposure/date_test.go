package exposure

import (
	"errors"
	"testing"
)

func TestDateNormalizer(t *testing.T) {
	n := DateNormalizer{}
	tests := []struct {
		input string
		want  string
	}{
		{"7/14/2024, 6:30 PM", "2024:07:14 18:30:00"},
		{"12/1/2023, 9:05 am", "2023:12:01 09:05:00"},
		{"01/02/2024, 12:00 AM", "2024:01:02 00:00:00"},
		{" 3/9/2022, 11:59 pm ", "2022:03:09 23:59:00"},
	}
	for _, tt := range tests {
		got, err := n.Normalize(tt.input)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDateNormalizerRejects(t *testing.T) {
	n := DateNormalizer{Layout: DefaultDateLayout}
	for _, input := range []string{"", "2024-07-14", "13/40/2024, 6:30 PM", "7/14/2024 6:30 PM", "yesterday"} {
		if _, err := n.Normalize(input); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("Normalize(%q) expected ErrInvalidDate, got %v", input, err)
		}
	}
}

func TestDateNormalizerCustomLayout(t *testing.T) {
	n := DateNormalizer{Layout: "2006-01-02 15:04"}
	got, err := n.Normalize("2024-07-14 18:30")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != "2024:07:14 18:30:00" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestDateNormalizerFoldsOnlyMeridiem(t *testing.T) {
	n := DateNormalizer{Layout: "Mon Jan 2 2006 3:04 PM"}
	for _, input := range []string{"Sun Jul 14 2024 6:30 PM", "Sun Jul 14 2024 6:30 pm", "Sun Jul 14 2024 6:30 Pm"} {
		got, err := n.Normalize(input)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", input, err)
		}
		if got != "2024:07:14 18:30:00" {
			t.Fatalf("Normalize(%q) = %q", input, got)
		}
	}
	if _, err := n.Normalize("Sun Jul 14 2024 6:30 xm"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
