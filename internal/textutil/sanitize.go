package textutil

import (
	"strings"
	"unicode"
)

// fileNameReplacer removes filesystem-unsafe characters.
var fileNameReplacer = strings.NewReplacer(
	"/", "",
	"\\", "",
	":", "",
	"*", "",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
	"\x00", "",
)

// SanitizeFileName removes filesystem-unsafe characters from a filename
// component. Interior spaces are kept; the result is trimmed of
// leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// Underscore sanitizes value and joins its whitespace-separated words with
// underscores, so "Kodak Gold 200" becomes "Kodak_Gold_200".
func Underscore(value string) string {
	return strings.Join(strings.Fields(SanitizeFileName(value)), "_")
}
