package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"faramir/internal/exifread"
	"faramir/internal/exposure"
)

type inspectOutput struct {
	File             string   `json:"file"`
	FNumber          string   `json:"f_number,omitempty"`
	ExposureTime     string   `json:"exposure_time,omitempty"`
	FocalLength      string   `json:"focal_length,omitempty"`
	DateTimeOriginal string   `json:"date_time_original,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	Error            string   `json:"error,omitempty"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "inspect <file>...",
		Short:       "Show the capture metadata embedded in image files",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]inspectOutput, 0, len(args))
			for _, arg := range args {
				results = append(results, inspectFile(arg))
			}
			if jsonOutput {
				return writeJSON(cmd, results)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderInspect(results))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	return cmd
}

func inspectFile(arg string) inspectOutput {
	path, err := resolveArgPath(arg)
	if err != nil {
		return inspectOutput{File: arg, Error: err.Error()}
	}
	out := inspectOutput{File: path}
	capture, err := exifread.ReadFile(path)
	if err != nil {
		if errors.Is(err, exifread.ErrNoExif) {
			out.Error = "no exif data"
		} else {
			out.Error = err.Error()
		}
		return out
	}
	out.FNumber = decimalOrEmpty(capture.FNumber)
	if capture.ExposureTime != nil {
		out.ExposureTime = capture.ExposureTime.String()
	}
	out.FocalLength = decimalOrEmpty(capture.FocalLength)
	out.DateTimeOriginal = capture.DateTimeOriginal
	out.Latitude = capture.Latitude
	out.Longitude = capture.Longitude
	return out
}

func decimalOrEmpty(r *exposure.Rational) string {
	if r == nil {
		return ""
	}
	return r.Decimal()
}

func renderInspect(results []inspectOutput) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Error != "" {
			rows = append(rows, []string{filepath.Base(r.File), "", "", "", "", "", r.Error})
			continue
		}
		gps := ""
		if r.Latitude != nil && r.Longitude != nil {
			gps = strconv.FormatFloat(*r.Latitude, 'f', 5, 64) + ", " + strconv.FormatFloat(*r.Longitude, 'f', 5, 64)
		}
		rows = append(rows, []string{
			filepath.Base(r.File),
			prefixed("f/", r.FNumber),
			r.ExposureTime,
			suffixed(r.FocalLength, "mm"),
			r.DateTimeOriginal,
			gps,
			"",
		})
	}
	return renderTable(tableSpec{
		headers: []string{"File", "Aperture", "Shutter", "Focal", "Date", "GPS", "Notes"},
		aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft, alignLeft},
	}, rows)
}

func prefixed(prefix, value string) string {
	if value == "" {
		return ""
	}
	return prefix + value
}

func suffixed(value, suffix string) string {
	if value == "" {
		return ""
	}
	return value + suffix
}
