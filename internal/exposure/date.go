package exposure

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultDateLayout matches sidecar dates such as "7/14/2024, 6:30 PM".
const DefaultDateLayout = "1/2/2006, 3:04 PM"

// ExifDateLayout is the EXIF DateTime text encoding.
const ExifDateLayout = "2006:01:02 15:04:05"

// ErrInvalidDate marks capture dates that do not match the configured layout.
var ErrInvalidDate = errors.New("invalid capture date")

// DateNormalizer converts sidecar dates in a fixed layout to EXIF text.
type DateNormalizer struct {
	Layout string
}

// Normalize parses text with the configured layout. AM/PM markers are
// accepted in either case.
func (n DateNormalizer) Normalize(text string) (string, error) {
	layout := n.Layout
	if strings.TrimSpace(layout) == "" {
		layout = DefaultDateLayout
	}
	value := strings.TrimSpace(text)
	if value == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	parsed, err := time.Parse(layout, value)
	if err != nil {
		folded, ok := foldMeridiem(value)
		if !ok {
			return "", fmt.Errorf("%w: %q does not match %q", ErrInvalidDate, text, layout)
		}
		upper, upperErr := time.Parse(layout, folded)
		if upperErr != nil {
			return "", fmt.Errorf("%w: %q does not match %q", ErrInvalidDate, text, layout)
		}
		parsed = upper
	}
	return parsed.Format(ExifDateLayout), nil
}

// foldMeridiem upper-cases a trailing am/pm marker and leaves the rest of
// the value untouched, so month and weekday names keep their case.
func foldMeridiem(value string) (string, bool) {
	if len(value) < 2 {
		return "", false
	}
	head, tail := value[:len(value)-2], value[len(value)-2:]
	switch strings.ToLower(tail) {
	case "am", "pm":
		upper := strings.ToUpper(tail)
		return head + upper, upper != tail
	}
	return "", false
}
