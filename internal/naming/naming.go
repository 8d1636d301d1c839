// Package naming derives the batch naming context from a roll folder path and
// computes the target filename of each frame.
package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"faramir/internal/textutil"
)

// DefaultSeparator splits the innermost folder into location and season.
const DefaultSeparator = " - "

// DefaultRoll is used when no roll identifier is configured.
const DefaultRoll = "R01"

// ErrInvalidFolder is returned when the folder path does not follow the
// "<film stock>/<location> - <season year>" layout.
var ErrInvalidFolder = errors.New("folder path does not follow <film stock>/<location> - <season year>")

// PathContext holds the naming components shared by every frame of a batch.
type PathContext struct {
	FilmStock  string
	Location   string
	SeasonYear string
}

// ParsePathContext reads the two innermost segments of folder. The last
// segment must split on separator into exactly two non-empty parts.
func ParsePathContext(folder, separator string) (PathContext, error) {
	if separator == "" {
		separator = DefaultSeparator
	}
	cleaned := filepath.Clean(strings.TrimSpace(folder))
	segments := make([]string, 0, 8)
	for _, s := range strings.Split(cleaned, string(filepath.Separator)) {
		if s != "" && s != "." {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return PathContext{}, fmt.Errorf("%w: %q needs two directory levels", ErrInvalidFolder, folder)
	}

	film := segments[len(segments)-2]
	last := segments[len(segments)-1]
	parts := strings.Split(last, separator)
	if len(parts) != 2 {
		return PathContext{}, fmt.Errorf("%w: %q must contain exactly one %q", ErrInvalidFolder, last, separator)
	}

	ctx := PathContext{
		FilmStock:  textutil.Underscore(film),
		Location:   textutil.SanitizeFileName(parts[0]),
		SeasonYear: textutil.SanitizeFileName(parts[1]),
	}
	if ctx.FilmStock == "" || ctx.Location == "" || ctx.SeasonYear == "" {
		return PathContext{}, fmt.Errorf("%w: %q has an empty component", ErrInvalidFolder, filepath.Join(film, last))
	}
	return ctx, nil
}

// Planner computes target names for one batch.
type Planner struct {
	Context PathContext
	Roll    string
}

// Name returns "{film}_{location}_{season}_{roll}_F{index:02d}{ext}" where
// ext is taken verbatim from original. index is 1-based.
func (p Planner) Name(index int, original string) string {
	roll := textutil.SanitizeFileName(p.Roll)
	if roll == "" {
		roll = DefaultRoll
	}
	return fmt.Sprintf("%s_%s_%s_%s_F%02d%s",
		p.Context.FilmStock,
		p.Context.Location,
		p.Context.SeasonYear,
		roll,
		index,
		filepath.Ext(original),
	)
}
