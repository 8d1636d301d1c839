package exiftool

import (
	"reflect"
	"testing"

	"faramir/internal/exposure"
	"faramir/internal/sidecar"
)

func TestBuildArgs(t *testing.T) {
	aperture, focal := 2.8, 50.0
	shutter, date := "1/125", "7/14/2024, 6:30 PM"
	lat, lon := -33.875, 151.25
	tags, warnings := exposure.NewBuilder(exposure.DefaultDateLayout).Build(sidecar.Record{
		Aperture: &aperture, Shutter: &shutter, FocalLength: &focal, Date: &date, Latitude: &lat, Longitude: &lon,
	})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings %v", warnings)
	}

	got := BuildArgs("/scans/F01.jpg", tags, true)
	want := []string{
		"-overwrite_original",
		"-Exif:ExposureTime#=1/125",
		"-Exif:FNumber#=280/100",
		"-Exif:DateTimeOriginal=2024:07:14 18:30:00",
		"-Exif:FocalLength#=50/1",
		"-GPS:GPSLatitudeRef=S",
		"-GPS:GPSLatitude#=33/1 52/1 3000/100",
		"-GPS:GPSLongitudeRef=E",
		"-GPS:GPSLongitude#=151/1 15/1 0/100",
		"/scans/F01.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildArgs =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildArgsKeepsBackupsWhenRequested(t *testing.T) {
	tags := exposure.NewTagSet()
	tags.Exif[exposure.TagExposureTime] = exposure.RationalValue(exposure.Rational{Numerator: 1, Denominator: 60})

	got := BuildArgs("a.jpg", tags, false)
	want := []string{"-Exif:ExposureTime#=1/60", "a.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildArgs = %q, want %q", got, want)
	}
}

func TestBuildArgsKeepsExactRationals(t *testing.T) {
	aperture := 2.8
	lat, lon := 40.7128, -74.006
	tags, warnings := exposure.NewBuilder("").Build(sidecar.Record{Aperture: &aperture, Latitude: &lat, Longitude: &lon})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings %v", warnings)
	}

	got := BuildArgs("b.jpg", tags, false)
	want := []string{
		"-Exif:FNumber#=280/100",
		"-GPS:GPSLatitudeRef=N",
		"-GPS:GPSLatitude#=40/1 42/1 4608/100",
		"-GPS:GPSLongitudeRef=W",
		"-GPS:GPSLongitude#=74/1 0/1 2160/100",
		"b.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildArgs =\n%q\nwant\n%q", got, want)
	}
}

func TestParseResult(t *testing.T) {
	tests := []struct {
		stdout string
		n      int
		ok     bool
	}{
		{"    1 image files updated\n", 1, true},
		{"    1 image file updated\n", 1, true},
		{"    1 image files unchanged\n", 1, true},
		{"    0 image files updated\n    1 files weren't updated due to errors\n", 0, true},
		{"", 0, false},
	}
	for _, tt := range tests {
		n, ok := parseResult(tt.stdout)
		if n != tt.n || ok != tt.ok {
			t.Fatalf("parseResult(%q) = %d, %v; want %d, %v", tt.stdout, n, ok, tt.n, tt.ok)
		}
	}
}
