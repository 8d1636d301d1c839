package exiftool

import (
	"strings"

	"faramir/internal/exposure"
)

// BuildArgs renders the exiftool arguments that write tags into path.
// Tags are emitted in a stable order with explicit group prefixes so values
// never land in XMP or MakerNotes. Rational tags use "#=" with n/d text so
// exiftool stores the numerator and denominator as given instead of
// approximating a decimal.
func BuildArgs(path string, tags exposure.TagSet, overwriteOriginal bool) []string {
	args := make([]string, 0, tags.Len()+2)
	if overwriteOriginal {
		args = append(args, "-overwrite_original")
	}
	for _, tag := range tags.Tags() {
		if tag.Name == "" {
			continue
		}
		op := "="
		if !tag.Value.IsText() {
			op = "#="
		}
		args = append(args, "-"+tag.Group+":"+tag.Name+op+formatValue(tag.Value))
	}
	args = append(args, path)
	return args
}

func formatValue(v exposure.Value) string {
	if v.IsText() {
		return v.Text
	}
	parts := make([]string, len(v.Rationals))
	for i, r := range v.Rationals {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}
