package exposure

import (
	"math"
	"strconv"
)

// Rational is an unsigned EXIF RATIONAL. Denominator is always positive.
type Rational struct {
	Numerator   int64
	Denominator int64
}

// NewRational validates the pair and reports ok == false when the
// denominator is not positive or the numerator is negative.
func NewRational(numerator, denominator int64) (Rational, bool) {
	if denominator <= 0 || numerator < 0 {
		return Rational{}, false
	}
	return Rational{Numerator: numerator, Denominator: denominator}, true
}

// ScaledRational encodes v as (round(v*denominator), denominator).
func ScaledRational(v float64, denominator int64) (Rational, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || denominator <= 0 {
		return Rational{}, false
	}
	scaled := math.Round(v * float64(denominator))
	if scaled < 0 || scaled > math.MaxUint32 {
		return Rational{}, false
	}
	return NewRational(int64(scaled), denominator)
}

// Float64 returns the decimal value of the rational.
func (r Rational) Float64() float64 {
	if r.Denominator == 0 {
		return 0
	}
	return float64(r.Numerator) / float64(r.Denominator)
}

// String renders the rational as "n/d".
func (r Rational) String() string {
	return strconv.FormatInt(r.Numerator, 10) + "/" + strconv.FormatInt(r.Denominator, 10)
}

// Decimal renders the rational as the shortest decimal that round-trips.
func (r Rational) Decimal() string {
	return strconv.FormatFloat(r.Float64(), 'f', -1, 64)
}
