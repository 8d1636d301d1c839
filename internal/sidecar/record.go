package sidecar

import "fmt"

// Column names recognized in the sidecar header.
const (
	ColumnFrame       = "Frame"
	ColumnAperture    = "Aperture"
	ColumnShutter     = "Shutter"
	ColumnFocalLength = "Focal Length"
	ColumnDate        = "Date"
	ColumnLatitude    = "Latitude"
	ColumnLongitude   = "Longitude"
)

// RequiredColumns lists the header columns a sidecar must carry.
var RequiredColumns = []string{
	ColumnFrame,
	ColumnAperture,
	ColumnShutter,
	ColumnFocalLength,
	ColumnDate,
	ColumnLatitude,
	ColumnLongitude,
}

// Record is one sidecar row. A nil field means the cell was empty or could
// not be parsed.
type Record struct {
	Frame       *int
	Aperture    *float64
	Shutter     *string
	FocalLength *float64
	Date        *string
	Latitude    *float64
	Longitude   *float64

	// Line is the 1-based CSV line the row started on.
	Line int
}

// Warning describes a cell that was dropped while loading.
type Warning struct {
	Line   int
	Column string
	Input  string
	Err    error
}

func (w Warning) Error() string {
	return fmt.Sprintf("line %d column %q: %q: %v", w.Line, w.Column, w.Input, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }
