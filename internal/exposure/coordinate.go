package exposure

import "math"

// Axis selects the hemisphere references used for a coordinate.
type Axis int

const (
	Latitude Axis = iota
	Longitude
)

// Limit returns the largest absolute value valid on the axis.
func (a Axis) Limit() float64 {
	if a == Longitude {
		return 180
	}
	return 90
}

func (a Axis) String() string {
	if a == Longitude {
		return "longitude"
	}
	return "latitude"
}

// DMS is a degrees/minutes/seconds triple with its hemisphere reference.
// Seconds carry two implied decimals through a denominator of 100.
type DMS struct {
	Degrees Rational
	Minutes Rational
	Seconds Rational
	Ref     byte
}

// Rationals returns the triple in EXIF order.
func (d DMS) Rationals() []Rational {
	return []Rational{d.Degrees, d.Minutes, d.Seconds}
}

// Decimal reconstructs unsigned decimal degrees from the triple.
func (d DMS) Decimal() float64 {
	return d.Degrees.Float64() + d.Minutes.Float64()/60 + d.Seconds.Float64()/3600
}

// EncodeCoordinate converts signed decimal degrees to a DMS triple.
// Each component is truncated, never rounded. Zero maps to N or E.
// v must be finite.
func EncodeCoordinate(v float64, axis Axis) DMS {
	abs := math.Abs(v)
	degrees := math.Floor(abs)
	fraction := (abs - degrees) * 60
	minutes := math.Floor(fraction)
	hundredths := math.Floor((fraction - minutes) * 60 * 100)

	if minutes > 59 {
		minutes = 59
	}
	if hundredths > 5999 {
		hundredths = 5999
	}
	if hundredths < 0 {
		hundredths = 0
	}

	return DMS{
		Degrees: Rational{Numerator: int64(degrees), Denominator: 1},
		Minutes: Rational{Numerator: int64(minutes), Denominator: 1},
		Seconds: Rational{Numerator: int64(hundredths), Denominator: 100},
		Ref:     hemisphere(v, axis),
	}
}

func hemisphere(v float64, axis Axis) byte {
	switch axis {
	case Longitude:
		if v >= 0 {
			return 'E'
		}
		return 'W'
	default:
		if v >= 0 {
			return 'N'
		}
		return 'S'
	}
}
