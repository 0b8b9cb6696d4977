// Package units parses and converts physical unit strings following the
// climate-and-forecast (CF/UDUNITS) conventions, covering the unit surface
// that shows up in meteorological and oceanographic datasets: SI prefixes,
// compound units with integer exponents ("kg m-2", "m s-1", "m/s") and
// reference-time units ("hours since 1970-01-01").
package units

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Sentinel errors, checked with errors.Is().
var (
	// ErrUnknownUnit indicates a unit string that could not be parsed.
	ErrUnknownUnit = errors.New("units: unknown unit")

	// ErrIncompatibleUnits indicates a conversion between units with
	// different dimensions.
	ErrIncompatibleUnits = errors.New("units: incompatible units")
)

// dims is the dimension vector of a unit, with one entry per base
// dimension. Two units are convertible iff their dimension vectors match.
type dims struct {
	Length int
	Mass   int
	Time   int
	Temp   int
	Angle  int
}

func (d dims) add(o dims, exp int) dims {
	return dims{
		Length: d.Length + o.Length*exp,
		Mass:   d.Mass + o.Mass*exp,
		Time:   d.Time + o.Time*exp,
		Temp:   d.Temp + o.Temp*exp,
		Angle:  d.Angle + o.Angle*exp,
	}
}

// Unit is a parsed unit: an affine transformation to base SI units
// (m, kg, s, K, rad), plus an optional reference epoch for units of the
// form "<time unit> since <timestamp>".
type Unit struct {
	scale  float64
	offset float64
	d      dims
	epoch  *time.Time
	src    string
}

// String returns the unit as it was given to Parse.
func (u Unit) String() string {
	return u.src
}

// Dimensionless reports whether the unit has an empty dimension vector.
func (u Unit) Dimensionless() bool {
	return u.d == dims{} && u.epoch == nil
}

// ConvertibleTo reports whether values in u can be converted to v.
func (u Unit) ConvertibleTo(v Unit) bool {
	if u.d != v.d {
		return false
	}
	return (u.epoch == nil) == (v.epoch == nil)
}

var factorRegexp = regexp.MustCompile(`^([A-Za-zµ%_1]+)(?:\^?(-?\d+))?$`)

// Parse parses a unit string.
func Parse(s string) (Unit, error) {
	src := s
	s = strings.TrimSpace(s)
	if s == "" {
		return Unit{}, fmt.Errorf("%w: empty unit string", ErrUnknownUnit)
	}

	// Reference-time units: "<time unit> since <timestamp>"
	if idx := strings.Index(strings.ToLower(s), " since "); idx >= 0 {
		base, err := Parse(s[:idx])
		if err != nil {
			return Unit{}, err
		}
		if (base.d != dims{Time: 1}) || base.offset != 0 {
			return Unit{}, fmt.Errorf("%w: %q is not a unit of time", ErrUnknownUnit, s[:idx])
		}
		epoch, err := parseEpoch(strings.TrimSpace(s[idx+len(" since "):]))
		if err != nil {
			return Unit{}, fmt.Errorf("%w: %q: %v", ErrUnknownUnit, s, err)
		}
		base.epoch = &epoch
		base.src = src
		return base, nil
	}

	u := Unit{scale: 1, src: src}
	factors := 0
	// Segments after a "/" contribute negated exponents.
	for i, segment := range strings.Split(s, "/") {
		segment = strings.ReplaceAll(segment, "*", " ")
		segment = strings.ReplaceAll(segment, "·", " ")
		for _, field := range strings.Fields(segment) {
			m := factorRegexp.FindStringSubmatch(field)
			if m == nil {
				return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, src)
			}
			exp := 1
			if m[2] != "" {
				exp, _ = strconv.Atoi(m[2])
			}
			if i > 0 {
				exp = -exp
			}
			entry, err := lookupSymbol(m[1])
			if err != nil {
				return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, src)
			}
			u.scale *= pow(entry.scale, exp)
			u.offset = entry.offset
			u.d = u.d.add(entry.d, exp)
			if exp != 1 {
				u.offset = 0
			}
			factors++
		}
	}
	if factors == 0 {
		return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, src)
	}
	// Offsets (degC, degF) only make sense for a single plain factor.
	if factors > 1 {
		u.offset = 0
	}
	return u, nil
}

// MustParse is like Parse but panics on error. For use in tables and tests.
func MustParse(s string) Unit {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Converter returns a function converting a single value from one unit to
// the other.
func Converter(from, to Unit) (func(float64) float64, error) {
	if !from.ConvertibleTo(to) {
		return nil, fmt.Errorf("%w: %q and %q", ErrIncompatibleUnits, from, to)
	}

	if from.epoch != nil {
		// Values are elapsed time since an epoch: shift between epochs in
		// seconds, then rescale.
		shift := from.epoch.Sub(*to.epoch).Seconds()
		return func(v float64) float64 {
			return (v*from.scale + shift) / to.scale
		}, nil
	}

	return func(v float64) float64 {
		return (v*from.scale + from.offset - to.offset) / to.scale
	}, nil
}

// Convert converts a slice of values from one unit to the other, returning
// a new slice.
func Convert(values []float64, from, to Unit) ([]float64, error) {
	conv, err := Converter(from, to)
	if err != nil {
		return nil, err
	}
	converted := make([]float64, len(values))
	for i, v := range values {
		converted[i] = conv(v)
	}
	return converted, nil
}

var epochLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseEpoch(s string) (time.Time, error) {
	for _, layout := range epochLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}

func pow(base float64, exp int) float64 {
	if exp < 0 {
		return 1 / pow(base, -exp)
	}
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
