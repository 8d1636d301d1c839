package exposure

import (
	"math"
	"testing"
)

func TestEncodeCoordinateExact(t *testing.T) {
	tests := []struct {
		v       float64
		axis    Axis
		deg     int64
		min     int64
		secHund int64
		ref     byte
	}{
		{10.5, Latitude, 10, 30, 0, 'N'},
		{0.25, Longitude, 0, 15, 0, 'E'},
		{-33.875, Latitude, 33, 52, 3000, 'S'},
		{-122.25, Longitude, 122, 15, 0, 'W'},
		{0, Latitude, 0, 0, 0, 'N'},
		{0, Longitude, 0, 0, 0, 'E'},
		{90, Latitude, 90, 0, 0, 'N'},
	}
	for _, tt := range tests {
		got := EncodeCoordinate(tt.v, tt.axis)
		if got.Degrees != (Rational{tt.deg, 1}) || got.Minutes != (Rational{tt.min, 1}) || got.Seconds != (Rational{tt.secHund, 100}) {
			t.Fatalf("EncodeCoordinate(%v) = %+v", tt.v, got)
		}
		if got.Ref != tt.ref {
			t.Fatalf("EncodeCoordinate(%v) ref = %c, want %c", tt.v, got.Ref, tt.ref)
		}
	}
}

func TestEncodeCoordinateTruncates(t *testing.T) {
	// Just under two degrees must not carry into the next minute or degree.
	got := EncodeCoordinate(1+59.0/60+59.999/3600, Latitude)
	if got.Minutes.Numerator != 59 {
		t.Fatalf("expected 59 minutes, got %v", got.Minutes)
	}
	if got.Seconds.Numerator > 5999 {
		t.Fatalf("seconds overflowed: %v", got.Seconds)
	}
	if got.Degrees.Numerator != 1 {
		t.Fatalf("truncation must not carry into degrees: %v", got.Degrees)
	}
}

func TestEncodeCoordinateInvariants(t *testing.T) {
	const bound = 1.0 / 3600
	for i := 0; i <= 3600; i++ {
		v := -180 + float64(i)*0.1 + float64(i%7)*0.0001234
		for _, axis := range []Axis{Latitude, Longitude} {
			dms := EncodeCoordinate(v, axis)
			if dms.Degrees.Numerator < 0 {
				t.Fatalf("negative degrees for %v", v)
			}
			if m := dms.Minutes.Numerator; m < 0 || m >= 60 {
				t.Fatalf("minutes out of range for %v: %d", v, m)
			}
			if s := dms.Seconds.Float64(); s < 0 || s >= 60 {
				t.Fatalf("seconds out of range for %v: %v", v, s)
			}
			if dms.Seconds.Denominator != 100 {
				t.Fatalf("seconds denominator = %d", dms.Seconds.Denominator)
			}
			if diff := math.Abs(v) - dms.Decimal(); diff < -1e-9 || diff > bound {
				t.Fatalf("reconstruction of %v off by %v", v, diff)
			}
		}
	}
}

func TestEncodeCoordinateHemispheres(t *testing.T) {
	if EncodeCoordinate(-0.5, Latitude).Ref != 'S' {
		t.Fatal("negative latitude should be S")
	}
	if EncodeCoordinate(0.5, Latitude).Ref != 'N' {
		t.Fatal("positive latitude should be N")
	}
	if EncodeCoordinate(-0.5, Longitude).Ref != 'W' {
		t.Fatal("negative longitude should be W")
	}
	if EncodeCoordinate(0.5, Longitude).Ref != 'E' {
		t.Fatal("positive longitude should be E")
	}
}
