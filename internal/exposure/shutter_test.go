package exposure

import (
	"errors"
	"testing"
)

func TestParseShutter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Rational
	}{
		{"plain", "1/125", Rational{1, 125}},
		{"spaces", " 1 / 60 ", Rational{1, 60}},
		{"whole seconds", "2/1", Rational{2, 1}},
		{"fraction slash", "1⁄1000", Rational{1, 1000}},
		{"super and subscript", "¹⁄₁₀₀₀", Rational{1, 1000}},
		{"division slash", "1∕250", Rational{1, 250}},
		{"fullwidth", "１／５００", Rational{1, 500}},
		{"vulgar fraction", "½", Rational{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseShutter(tt.input)
			if err != nil {
				t.Fatalf("ParseShutter(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseShutter(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseShutterGlyphsMatchASCII(t *testing.T) {
	ascii, err := ParseShutter("1/1000")
	if err != nil {
		t.Fatal(err)
	}
	stylized, err := ParseShutter("1⁄1000")
	if err != nil {
		t.Fatal(err)
	}
	if ascii != stylized {
		t.Fatalf("stylized %v differs from ascii %v", stylized, ascii)
	}
}

func TestParseShutterRoundTrip(t *testing.T) {
	for n := int64(0); n <= 4; n++ {
		for _, d := range []int64{1, 2, 8, 30, 125, 4000} {
			text := Rational{n, d}.String()
			got, err := ParseShutter(text)
			if err != nil {
				t.Fatalf("ParseShutter(%q): %v", text, err)
			}
			if got.Numerator != n || got.Denominator != d {
				t.Fatalf("ParseShutter(%q) = %v", text, got)
			}
		}
	}
}

func TestParseShutterRejects(t *testing.T) {
	for _, input := range []string{"abc", "", "   ", "125", "1/0", "1/-5", "-1/60", "1/2/3", "1/", "/60", "1.5/60", "1/60s", "+1/125", "1/+125", "1_000/1"} {
		_, err := ParseShutter(input)
		if err == nil {
			t.Fatalf("ParseShutter(%q) should fail", input)
		}
		if !errors.Is(err, ErrInvalidShutter) {
			t.Fatalf("ParseShutter(%q) error %v does not wrap ErrInvalidShutter", input, err)
		}
	}
}
