package sidecar

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrMissingColumns is returned when the header lacks a required column.
var ErrMissingColumns = errors.New("sidecar missing required columns")

// ErrNotANumber marks numeric cells that failed to parse.
var ErrNotANumber = errors.New("not a number")

// Options tunes CSV parsing.
type Options struct {
	// Delimiter separates cells; zero means a comma.
	Delimiter rune
}

// Table is the loaded content of a sidecar.
type Table struct {
	Columns  []string
	Rows     []Record
	Warnings []Warning
}

// Load opens and parses the sidecar at path.
func Load(path string, opts Options) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open sidecar: %w", err)
	}
	defer f.Close()
	return Parse(f, opts)
}

// Parse reads a sidecar from r.
func Parse(r io.Reader, opts Options) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, fmt.Errorf("%w: empty file", ErrMissingColumns)
	}
	if err != nil {
		return Table{}, fmt.Errorf("read sidecar header: %w", err)
	}

	index, columns, err := indexHeader(header)
	if err != nil {
		return Table{}, err
	}

	table := Table{Columns: columns}
	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read sidecar row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rec, warnings := decodeRow(cells, index, line)
		table.Rows = append(table.Rows, rec)
		table.Warnings = append(table.Warnings, warnings...)
	}
	return table, nil
}

func indexHeader(header []string) (map[string]int, []string, error) {
	index := make(map[string]int, len(header))
	columns := make([]string, 0, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if i == 0 {
			name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		}
		columns = append(columns, name)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; ok {
			continue
		}
		found := false
		for name, i := range index {
			if strings.EqualFold(name, col) {
				index[col] = i
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return index, columns, nil
}

type rowDecoder struct {
	cells    []string
	index    map[string]int
	line     int
	warnings []Warning
}

func decodeRow(cells []string, index map[string]int, line int) (Record, []Warning) {
	d := &rowDecoder{cells: cells, index: index, line: line}
	rec := Record{
		Frame:       d.integer(ColumnFrame),
		Aperture:    d.float(ColumnAperture),
		Shutter:     d.text(ColumnShutter),
		FocalLength: d.float(ColumnFocalLength),
		Date:        d.text(ColumnDate),
		Latitude:    d.float(ColumnLatitude),
		Longitude:   d.float(ColumnLongitude),
		Line:        line,
	}
	return rec, d.warnings
}

func (d *rowDecoder) cell(column string) string {
	i := d.index[column]
	if i >= len(d.cells) {
		return ""
	}
	return strings.TrimSpace(d.cells[i])
}

func (d *rowDecoder) warn(column, input string, err error) {
	d.warnings = append(d.warnings, Warning{Line: d.line, Column: column, Input: input, Err: err})
}

func (d *rowDecoder) text(column string) *string {
	value := d.cell(column)
	if value == "" {
		return nil
	}
	return &value
}

func (d *rowDecoder) float(column string) *float64 {
	value := d.cell(column)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) {
		d.warn(column, value, ErrNotANumber)
		return nil
	}
	return &parsed
}

func (d *rowDecoder) integer(column string) *int {
	value := d.cell(column)
	if value == "" {
		return nil
	}
	if parsed, err := strconv.Atoi(value); err == nil {
		return &parsed
	}
	// Spreadsheet exports often write whole numbers as "3.0".
	if f, err := strconv.ParseFloat(value, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < math.MaxInt32 {
		parsed := int(f)
		return &parsed
	}
	d.warn(column, value, ErrNotANumber)
	return nil
}
