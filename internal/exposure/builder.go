package exposure

import (
	"errors"
	"fmt"
	"math"

	"faramir/internal/sidecar"
)

// Field names carried on warnings.
const (
	FieldAperture    = "aperture"
	FieldShutter     = "shutter"
	FieldFocalLength = "focal_length"
	FieldDate        = "date"
	FieldGPS         = "gps"
)

var (
	// ErrOutOfRange marks numeric values that cannot be encoded.
	ErrOutOfRange = errors.New("value out of range")
	// ErrIncompleteCoordinates marks a row with only one of latitude/longitude.
	ErrIncompleteCoordinates = errors.New("latitude and longitude must both be present")
)

// Warning records a field omitted from a TagSet.
type Warning struct {
	Field string
	Input string
	Err   error
}

func (w Warning) Error() string {
	if w.Input == "" {
		return fmt.Sprintf("%s: %v", w.Field, w.Err)
	}
	return fmt.Sprintf("%s %q: %v", w.Field, w.Input, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// Builder encodes sidecar records into tag sets.
type Builder struct {
	Dates DateNormalizer
}

// NewBuilder returns a Builder parsing dates with layout.
func NewBuilder(dateLayout string) Builder {
	return Builder{Dates: DateNormalizer{Layout: dateLayout}}
}

// Build encodes every field of rec that parses cleanly. Each field is
// handled independently; failures are returned as warnings and the field is
// left out of the set.
func (b Builder) Build(rec sidecar.Record) (TagSet, []Warning) {
	tags := NewTagSet()
	var warnings []Warning

	if rec.Aperture != nil {
		if r, err := encodePositive(*rec.Aperture, 100); err != nil {
			warnings = append(warnings, Warning{Field: FieldAperture, Input: formatFloat(*rec.Aperture), Err: err})
		} else {
			tags.Exif[TagFNumber] = RationalValue(r)
		}
	}

	if rec.Shutter != nil {
		if r, err := ParseShutter(*rec.Shutter); err != nil {
			warnings = append(warnings, Warning{Field: FieldShutter, Input: *rec.Shutter, Err: err})
		} else {
			tags.Exif[TagExposureTime] = RationalValue(r)
		}
	}

	if rec.FocalLength != nil {
		if r, err := encodePositive(*rec.FocalLength, 1); err != nil {
			warnings = append(warnings, Warning{Field: FieldFocalLength, Input: formatFloat(*rec.FocalLength), Err: err})
		} else {
			tags.Exif[TagFocalLength] = RationalValue(r)
		}
	}

	if rec.Date != nil {
		if text, err := b.Dates.Normalize(*rec.Date); err != nil {
			warnings = append(warnings, Warning{Field: FieldDate, Input: *rec.Date, Err: err})
		} else {
			tags.Exif[TagDateTimeOriginal] = TextValue(text)
		}
	}

	if w, ok := encodeGPS(tags, rec.Latitude, rec.Longitude); !ok {
		warnings = append(warnings, w)
	}

	return tags, warnings
}

func encodePositive(v float64, denominator int64) (Rational, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return Rational{}, fmt.Errorf("%w: must be a positive number", ErrOutOfRange)
	}
	r, ok := ScaledRational(v, denominator)
	if !ok || r.Numerator == 0 {
		return Rational{}, fmt.Errorf("%w: cannot encode as a rational", ErrOutOfRange)
	}
	return r, nil
}

// encodeGPS writes the whole GPS group or nothing. It returns ok == false
// with a warning when coordinates were supplied but could not be written.
func encodeGPS(tags TagSet, lat, lon *float64) (Warning, bool) {
	switch {
	case lat == nil && lon == nil:
		return Warning{}, true
	case lat == nil || lon == nil:
		return Warning{Field: FieldGPS, Input: formatPair(lat, lon), Err: ErrIncompleteCoordinates}, false
	}

	for _, c := range []struct {
		v    float64
		axis Axis
	}{{*lat, Latitude}, {*lon, Longitude}} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) || math.Abs(c.v) > c.axis.Limit() {
			err := fmt.Errorf("%w: %s must be within ±%g", ErrOutOfRange, c.axis, c.axis.Limit())
			return Warning{Field: FieldGPS, Input: formatPair(lat, lon), Err: err}, false
		}
	}

	latDMS := EncodeCoordinate(*lat, Latitude)
	lonDMS := EncodeCoordinate(*lon, Longitude)
	tags.GPS[TagGPSLatitudeRef] = TextValue(string(latDMS.Ref))
	tags.GPS[TagGPSLatitude] = RationalValue(latDMS.Rationals()...)
	tags.GPS[TagGPSLongitudeRef] = TextValue(string(lonDMS.Ref))
	tags.GPS[TagGPSLongitude] = RationalValue(lonDMS.Rationals()...)
	return Warning{}, true
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

func formatPair(lat, lon *float64) string {
	render := func(v *float64) string {
		if v == nil {
			return "-"
		}
		return formatFloat(*v)
	}
	return render(lat) + "," + render(lon)
}
