// Package exifread decodes the capture fields faramir writes back out of an
// image, for inspection and post-write verification.
package exifread

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"faramir/internal/exposure"
)

// ErrNoExif reports a file without an EXIF block.
var ErrNoExif = errors.New("no exif data")

// Capture holds the decoded capture fields. Nil means the tag is absent.
type Capture struct {
	FNumber          *exposure.Rational
	ExposureTime     *exposure.Rational
	FocalLength      *exposure.Rational
	DateTimeOriginal string
	Latitude         *float64
	Longitude        *float64

	// Raw GPS triples and references as stored, for exact comparison.
	GPSLatitude     []exposure.Rational
	GPSLatitudeRef  string
	GPSLongitude    []exposure.Rational
	GPSLongitudeRef string
}

// HasGPS reports whether both coordinates were decoded.
func (c Capture) HasGPS() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// ReadFile decodes the capture fields of the image at path.
func ReadFile(path string) (Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return Capture{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes the capture fields from r. Sub-IFD decode problems that
// goexif reports as non-critical do not fail the read.
func Read(r io.Reader) (Capture, error) {
	x, err := exif.Decode(r)
	if err != nil && exif.IsCriticalError(err) {
		if missingExif(err) {
			return Capture{}, ErrNoExif
		}
		return Capture{}, fmt.Errorf("decode exif: %w", err)
	}
	if x == nil {
		return Capture{}, ErrNoExif
	}

	var c Capture
	c.FNumber = rational(x, exif.FNumber)
	c.ExposureTime = rational(x, exif.ExposureTime)
	c.FocalLength = rational(x, exif.FocalLength)

	c.DateTimeOriginal = text(x, exif.DateTimeOriginal)

	if lat, lon, err := x.LatLong(); err == nil && !math.IsNaN(lat) && !math.IsNaN(lon) {
		c.Latitude = &lat
		c.Longitude = &lon
	}
	c.GPSLatitude = rationals(x, exif.GPSLatitude)
	c.GPSLatitudeRef = text(x, exif.GPSLatitudeRef)
	c.GPSLongitude = rationals(x, exif.GPSLongitude)
	c.GPSLongitudeRef = text(x, exif.GPSLongitudeRef)
	return c, nil
}

// missingExif reports whether a critical decode error means the stream
// carries no EXIF block. goexif returns the raw reader error when the
// APP1 marker is never found, and plain text errors for a short header or
// an APP1 segment that is not EXIF.
func missingExif(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "failed to find exif intro marker") ||
		strings.Contains(msg, "error reading 4 byte header")
}

func text(x *exif.Exif, field exif.FieldName) string {
	tag, err := x.Get(field)
	if err != nil {
		return ""
	}
	val, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(val, "\x00"))
}

func rationals(x *exif.Exif, field exif.FieldName) []exposure.Rational {
	tag, err := x.Get(field)
	if err != nil {
		return nil
	}
	out := make([]exposure.Rational, 0, tag.Count)
	for i := 0; i < int(tag.Count); i++ {
		num, denom, err := tag.Rat2(i)
		if err != nil {
			return nil
		}
		out = append(out, exposure.Rational{Numerator: num, Denominator: denom})
	}
	return out
}

func rational(x *exif.Exif, field exif.FieldName) *exposure.Rational {
	tag, err := x.Get(field)
	if err != nil {
		return nil
	}
	if tag.Count == 0 {
		return nil
	}
	num, denom, err := tag.Rat2(0)
	if err != nil || denom == 0 {
		return nil
	}
	return &exposure.Rational{Numerator: num, Denominator: denom}
}
