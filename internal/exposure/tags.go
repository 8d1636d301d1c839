package exposure

import "sort"

// TagID is a 16-bit EXIF tag identifier within its IFD group.
type TagID uint16

// Capture-parameter tags in the Exif IFD.
const (
	TagExposureTime     TagID = 0x829a
	TagFNumber          TagID = 0x829d
	TagDateTimeOriginal TagID = 0x9003
	TagFocalLength      TagID = 0x920a
)

// Tags in the GPS IFD.
const (
	TagGPSLatitudeRef  TagID = 0x0001
	TagGPSLatitude     TagID = 0x0002
	TagGPSLongitudeRef TagID = 0x0003
	TagGPSLongitude    TagID = 0x0004
)

var exifTagNames = map[TagID]string{
	TagExposureTime:     "ExposureTime",
	TagFNumber:          "FNumber",
	TagDateTimeOriginal: "DateTimeOriginal",
	TagFocalLength:      "FocalLength",
}

var gpsTagNames = map[TagID]string{
	TagGPSLatitudeRef:  "GPSLatitudeRef",
	TagGPSLatitude:     "GPSLatitude",
	TagGPSLongitudeRef: "GPSLongitudeRef",
	TagGPSLongitude:    "GPSLongitude",
}

// ExifTagName returns the canonical name of a tag in the Exif group.
func ExifTagName(id TagID) string { return exifTagNames[id] }

// GPSTagName returns the canonical name of a tag in the GPS group.
func GPSTagName(id TagID) string { return gpsTagNames[id] }

// Value is either a list of rationals or ASCII text.
type Value struct {
	Rationals []Rational
	Text      string
}

// RationalValue wraps one or more rationals.
func RationalValue(r ...Rational) Value {
	return Value{Rationals: append([]Rational(nil), r...)}
}

// TextValue wraps an ASCII string.
func TextValue(s string) Value {
	return Value{Text: s}
}

// IsText reports whether the value carries ASCII text.
func (v Value) IsText() bool { return len(v.Rationals) == 0 }

// TagSet holds encoded tags partitioned into the Exif and GPS groups.
type TagSet struct {
	Exif map[TagID]Value
	GPS  map[TagID]Value
}

// NewTagSet returns an empty, writable set.
func NewTagSet() TagSet {
	return TagSet{Exif: map[TagID]Value{}, GPS: map[TagID]Value{}}
}

// Len counts tags across both groups.
func (s TagSet) Len() int { return len(s.Exif) + len(s.GPS) }

// Empty reports whether the set holds no tags.
func (s TagSet) Empty() bool { return s.Len() == 0 }

// HasGPS reports whether the GPS group is populated.
func (s TagSet) HasGPS() bool { return len(s.GPS) > 0 }

// Tag is a single named entry of a TagSet.
type Tag struct {
	Group string
	ID    TagID
	Name  string
	Value Value
}

// Tags lists every entry ordered by group then tag ID, Exif first.
func (s TagSet) Tags() []Tag {
	out := make([]Tag, 0, s.Len())
	out = appendGroup(out, "Exif", s.Exif, exifTagNames)
	out = appendGroup(out, "GPS", s.GPS, gpsTagNames)
	return out
}

func appendGroup(dst []Tag, group string, values map[TagID]Value, names map[TagID]string) []Tag {
	ids := make([]TagID, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		dst = append(dst, Tag{Group: group, ID: id, Name: names[id], Value: values[id]})
	}
	return dst
}
