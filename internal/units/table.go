package units

import "fmt"

// entry is a symbol table entry. Prefixable entries accept SI prefixes
// ("hPa", "km", "mbar").
type entry struct {
	scale      float64
	offset     float64
	d          dims
	prefixable bool
}

const degree = 0.017453292519943295 // pi / 180

// symbols maps unit symbols and names to their base-SI definitions.
// Multi-character names are matched case-insensitively, so word-like
// entries are keyed by their lower-case spelling; single-character symbols
// ("K" vs the "k" prefix) stay case-sensitive.
var symbols = map[string]entry{
	// length
	"m":      {scale: 1, d: dims{Length: 1}, prefixable: true},
	"meter":  {scale: 1, d: dims{Length: 1}},
	"meters": {scale: 1, d: dims{Length: 1}},
	"metre":  {scale: 1, d: dims{Length: 1}},
	"metres": {scale: 1, d: dims{Length: 1}},

	// mass
	"g":     {scale: 1e-3, d: dims{Mass: 1}, prefixable: true},
	"gram":  {scale: 1e-3, d: dims{Mass: 1}},
	"grams": {scale: 1e-3, d: dims{Mass: 1}},

	// time
	"s":       {scale: 1, d: dims{Time: 1}, prefixable: true},
	"sec":     {scale: 1, d: dims{Time: 1}},
	"second":  {scale: 1, d: dims{Time: 1}},
	"seconds": {scale: 1, d: dims{Time: 1}},
	"min":     {scale: 60, d: dims{Time: 1}},
	"minute":  {scale: 60, d: dims{Time: 1}},
	"minutes": {scale: 60, d: dims{Time: 1}},
	"h":       {scale: 3600, d: dims{Time: 1}},
	"hr":      {scale: 3600, d: dims{Time: 1}},
	"hour":    {scale: 3600, d: dims{Time: 1}},
	"hours":   {scale: 3600, d: dims{Time: 1}},
	"day":     {scale: 86400, d: dims{Time: 1}},
	"days":    {scale: 86400, d: dims{Time: 1}},

	// temperature
	"K":          {scale: 1, d: dims{Temp: 1}, prefixable: true},
	"kelvin":     {scale: 1, d: dims{Temp: 1}},
	"degc":       {scale: 1, offset: 273.15, d: dims{Temp: 1}},
	"deg_c":      {scale: 1, offset: 273.15, d: dims{Temp: 1}},
	"celsius":    {scale: 1, offset: 273.15, d: dims{Temp: 1}},
	"degf":       {scale: 5.0 / 9.0, offset: 255.37222222222223, d: dims{Temp: 1}},
	"fahrenheit": {scale: 5.0 / 9.0, offset: 255.37222222222223, d: dims{Temp: 1}},

	// pressure
	"pa":  {scale: 1, d: dims{Length: -1, Mass: 1, Time: -2}, prefixable: true},
	"bar": {scale: 1e5, d: dims{Length: -1, Mass: 1, Time: -2}, prefixable: true},
	"atm": {scale: 101325, d: dims{Length: -1, Mass: 1, Time: -2}},

	// force, energy, power
	"N": {scale: 1, d: dims{Length: 1, Mass: 1, Time: -2}, prefixable: true},
	"J": {scale: 1, d: dims{Length: 2, Mass: 1, Time: -2}, prefixable: true},
	"W": {scale: 1, d: dims{Length: 2, Mass: 1, Time: -3}, prefixable: true},

	// angle
	"rad":           {scale: 1, d: dims{Angle: 1}},
	"radian":        {scale: 1, d: dims{Angle: 1}},
	"radians":       {scale: 1, d: dims{Angle: 1}},
	"deg":           {scale: degree, d: dims{Angle: 1}},
	"degree":        {scale: degree, d: dims{Angle: 1}},
	"degrees":       {scale: degree, d: dims{Angle: 1}},
	"degrees_north": {scale: degree, d: dims{Angle: 1}},
	"degree_north":  {scale: degree, d: dims{Angle: 1}},
	"degrees_n":     {scale: degree, d: dims{Angle: 1}},
	"degrees_east":  {scale: degree, d: dims{Angle: 1}},
	"degree_east":   {scale: degree, d: dims{Angle: 1}},
	"degrees_e":     {scale: degree, d: dims{Angle: 1}},

	// dimensionless
	"1":       {scale: 1},
	"%":       {scale: 0.01},
	"percent": {scale: 0.01},
	"ppm":     {scale: 1e-6},
}

// prefixes maps SI prefix symbols to their multipliers.
var prefixes = map[string]float64{
	"da": 1e1,
	"h":  1e2,
	"k":  1e3,
	"M":  1e6,
	"G":  1e9,
	"T":  1e12,
	"d":  1e-1,
	"c":  1e-2,
	"m":  1e-3,
	"u":  1e-6,
	"µ":  1e-6,
	"n":  1e-9,
	"p":  1e-12,
	"f":  1e-15,
}

func lookupPlain(sym string) (entry, bool) {
	if e, ok := symbols[sym]; ok {
		return e, true
	}
	if len(sym) > 1 {
		if e, ok := symbols[lower(sym)]; ok {
			return e, true
		}
	}
	return entry{}, false
}

func lookupSymbol(sym string) (entry, error) {
	if e, ok := lookupPlain(sym); ok {
		return e, nil
	}
	// Longest prefix first, so "da" wins over "d".
	for _, plen := range []int{2, 1} {
		if len(sym) <= plen {
			continue
		}
		factor, ok := prefixes[sym[:plen]]
		if !ok {
			continue
		}
		if e, ok := lookupPlain(sym[plen:]); ok && e.prefixable {
			e.scale *= factor
			return e, nil
		}
	}
	return entry{}, fmt.Errorf("unknown unit symbol %q", sym)
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
