// Package coordmodel defines coordinate models: the target naming, units
// and attributes that dataset coordinates are translated to. The builtin
// CADS model is the default; custom models load from YAML.
package coordmodel

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Entry describes the target form of a single coordinate.
type Entry struct {
	OutName      string `yaml:"out_name,omitempty"`
	Units        string `yaml:"units,omitempty"`
	StandardName string `yaml:"standard_name,omitempty"`
	LongName     string `yaml:"long_name,omitempty"`
	Axis         string `yaml:"axis,omitempty"`
}

// Attrs returns the attributes the entry contributes to a coordinate.
func (e Entry) Attrs() map[string]interface{} {
	attrs := map[string]interface{}{}
	if e.Units != "" {
		attrs["units"] = e.Units
	}
	if e.StandardName != "" {
		attrs["standard_name"] = e.StandardName
	}
	if e.LongName != "" {
		attrs["long_name"] = e.LongName
	}
	if e.Axis != "" {
		attrs["axis"] = e.Axis
	}
	return attrs
}

// Model maps coordinate names to their target form.
type Model struct {
	// AlwaysLowerCase lower-cases coordinate names before lookup, and
	// makes the lower-cased name the default out_name.
	AlwaysLowerCase bool             `yaml:"always_lower_case"`
	Coordinates     map[string]Entry `yaml:"coordinates"`
}

// Lookup returns the entry for a coordinate name, honouring
// AlwaysLowerCase, plus the key the name resolved to.
func (m *Model) Lookup(name string) (entry Entry, key string) {
	key = name
	if m.AlwaysLowerCase {
		key = lower(name)
	}
	entry = m.Coordinates[key]
	return
}

// Decode decodes a coordinate model from YAML.
func Decode(data []byte) (*Model, error) {
	var model Model
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("decoding coordinate model: %w", err)
	}
	if len(model.Coordinates) == 0 {
		return nil, fmt.Errorf("decoding coordinate model: no coordinates defined")
	}
	return &model, nil
}

// CADS returns the builtin CADS coordinate model.
func CADS() *Model {
	return &Model{
		AlwaysLowerCase: true,
		Coordinates: map[string]Entry{
			"lat": {
				OutName:      "latitude",
				Units:        "degrees_north",
				StandardName: "latitude",
				LongName:     "latitude",
			},
			"latitude": {
				OutName:      "latitude",
				Units:        "degrees_north",
				StandardName: "latitude",
				LongName:     "latitude",
			},
			"lon": {
				OutName:      "longitude",
				Units:        "degrees_east",
				StandardName: "longitude",
				LongName:     "longitude",
			},
			"longitude": {
				OutName:      "longitude",
				Units:        "degrees_east",
				StandardName: "longitude",
				LongName:     "longitude",
			},
			"depth": {
				OutName:      "depth",
				Units:        "m",
				StandardName: "depth",
				LongName:     "depth",
			},
			"time": {
				OutName:      "time",
				StandardName: "time",
				LongName:     "time",
			},
			"valid_time": {
				OutName:      "time",
				StandardName: "time",
				LongName:     "time",
			},
			"plev": {
				OutName:      "plev",
				Units:        "Pa",
				StandardName: "air_pressure",
				LongName:     "pressure",
			},
			"pressure_level": {
				OutName:      "plev",
				Units:        "Pa",
				StandardName: "air_pressure",
				LongName:     "pressure",
			},
			"number": {
				OutName:      "realization",
				StandardName: "realization",
				LongName:     "ensemble member numerical id",
			},
			"realization": {
				OutName:      "realization",
				StandardName: "realization",
				LongName:     "ensemble member numerical id",
			},
		},
	}
}

// DefaultUnitAliases maps common unit spellings which are not recognised
// by the units package to recognised ones. This is the default table,
// which grows with experience and can be superseded per call.
func DefaultUnitAliases() map[string]string {
	return map[string]string{
		"-":                     "1",
		"DegNorth":              "Degrees_North",
		"DegEast":               "Degrees_East",
		"m of water equivalent": "m",
		"m of water":            "m",
	}
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
