package exifread

import (
	"fmt"
	"strings"

	"faramir/internal/exposure"
)

// Mismatch describes a tag whose decoded value differs from what was written.
type Mismatch struct {
	Tag  string
	Want string
	Got  string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: want %s, got %s", m.Tag, m.Want, m.Got)
}

// Compare checks the decoded capture against the tag set that was written.
// Rationals must match numerator and denominator exactly, so 28/10 does not
// match 280/100.
func Compare(want exposure.TagSet, got Capture) []Mismatch {
	var out []Mismatch

	checkRational := func(id exposure.TagID, decoded *exposure.Rational) {
		v, ok := want.Exif[id]
		if !ok || len(v.Rationals) != 1 {
			return
		}
		expected := v.Rationals[0]
		switch {
		case decoded == nil:
			out = append(out, Mismatch{Tag: exposure.ExifTagName(id), Want: expected.String(), Got: "absent"})
		case *decoded != expected:
			out = append(out, Mismatch{Tag: exposure.ExifTagName(id), Want: expected.String(), Got: decoded.String()})
		}
	}
	checkRational(exposure.TagFNumber, got.FNumber)
	checkRational(exposure.TagExposureTime, got.ExposureTime)
	checkRational(exposure.TagFocalLength, got.FocalLength)

	if v, ok := want.Exif[exposure.TagDateTimeOriginal]; ok && v.Text != got.DateTimeOriginal {
		out = append(out, Mismatch{Tag: "DateTimeOriginal", Want: v.Text, Got: orAbsent(got.DateTimeOriginal)})
	}

	checkGPS := func(valueTag, refTag exposure.TagID, decoded []exposure.Rational, decodedRef string) {
		name := exposure.GPSTagName(valueTag)
		if v, ok := want.GPS[valueTag]; ok {
			if wantText, gotText := joinRationals(v.Rationals), joinRationals(decoded); wantText != gotText {
				out = append(out, Mismatch{Tag: name, Want: wantText, Got: orAbsent(gotText)})
			}
		}
		if v, ok := want.GPS[refTag]; ok && v.Text != decodedRef {
			out = append(out, Mismatch{Tag: exposure.GPSTagName(refTag), Want: v.Text, Got: orAbsent(decodedRef)})
		}
	}
	checkGPS(exposure.TagGPSLatitude, exposure.TagGPSLatitudeRef, got.GPSLatitude, got.GPSLatitudeRef)
	checkGPS(exposure.TagGPSLongitude, exposure.TagGPSLongitudeRef, got.GPSLongitude, got.GPSLongitudeRef)
	return out
}

func joinRationals(rs []exposure.Rational) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

func orAbsent(s string) string {
	if s == "" {
		return "absent"
	}
	return s
}
