package exposure

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidShutter marks shutter text that cannot be read as "N/D".
var ErrInvalidShutter = errors.New("invalid shutter speed")

// slashReplacer maps the fraction and division slash glyphs left intact by
// NFKC onto an ASCII solidus.
var slashReplacer = strings.NewReplacer(
	"⁄", "/",
	"∕", "/",
)

// ParseShutter reads exposure time text such as "1/125", "1⁄1000" or
// "¹⁄₁₂₅" into a Rational. Superscript, subscript and fullwidth digits are
// folded to ASCII before splitting on the slash.
func ParseShutter(text string) (Rational, error) {
	normalized := slashReplacer.Replace(norm.NFKC.String(text))
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return Rational{}, fmt.Errorf("%w: empty value", ErrInvalidShutter)
	}

	parts := strings.Split(normalized, "/")
	if len(parts) != 2 {
		return Rational{}, fmt.Errorf("%w: %q is not of the form N/D", ErrInvalidShutter, text)
	}

	numerator, err := parseShutterToken(parts[0])
	if err != nil {
		return Rational{}, fmt.Errorf("%w: numerator %q: %v", ErrInvalidShutter, parts[0], err)
	}
	denominator, err := parseShutterToken(parts[1])
	if err != nil {
		return Rational{}, fmt.Errorf("%w: denominator %q: %v", ErrInvalidShutter, parts[1], err)
	}

	r, ok := NewRational(numerator, denominator)
	if !ok {
		return Rational{}, fmt.Errorf("%w: %q needs a non-negative numerator and positive denominator", ErrInvalidShutter, text)
	}
	return r, nil
}

func parseShutterToken(token string) (int64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("missing digits")
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("unexpected character %q", r)
		}
	}
	return strconv.ParseInt(token, 10, 64)
}
