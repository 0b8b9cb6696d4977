package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// arrayDoc is the on-disk form of a DataArray in the YAML and JSON codecs.
// Shape may be omitted for 1-D arrays.
type arrayDoc struct {
	Dims   []string               `yaml:"dims" json:"dims"`
	Shape  []int                  `yaml:"shape,omitempty" json:"shape,omitempty"`
	Values []float64              `yaml:"values" json:"values"`
	Attrs  map[string]interface{} `yaml:"attrs,omitempty" json:"attrs,omitempty"`
}

type datasetDoc struct {
	Coords   map[string]arrayDoc    `yaml:"coords,omitempty" json:"coords,omitempty"`
	DataVars map[string]arrayDoc    `yaml:"data_vars,omitempty" json:"data_vars,omitempty"`
	Attrs    map[string]interface{} `yaml:"attrs,omitempty" json:"attrs,omitempty"`
}

// Supported reports whether the file extension maps to a known codec.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nc", ".nc4", ".cdf", ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Read reads a dataset from the given path, choosing the codec by file
// extension. netCDF files are read from the OS filesystem directly, the
// text formats go through fsys.
func Read(fsys afero.Fs, path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nc", ".nc4", ".cdf":
		return readNetCDF(path)
	case ".yaml", ".yml":
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, err
		}
		return decodeYAML(data)
	case ".json":
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, err
		}
		return decodeJSON(data)
	}
	return nil, fmt.Errorf("unsupported file format: %q", path)
}

// Write writes a dataset to the given path, choosing the codec by file
// extension.
func Write(fsys afero.Fs, path string, ds *Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".nc", ".nc4", ".cdf":
		return writeNetCDF(path, ds)
	case ".yaml", ".yml":
		data, err := encodeYAML(ds)
		if err != nil {
			return err
		}
		return afero.WriteFile(fsys, path, data, 0644)
	case ".json":
		data, err := encodeJSON(ds)
		if err != nil {
			return err
		}
		return afero.WriteFile(fsys, path, data, 0644)
	}
	return fmt.Errorf("unsupported file format: %q", path)
}

func decodeYAML(data []byte) (*Dataset, error) {
	var doc datasetDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return decodeDoc(doc)
}

func encodeYAML(ds *Dataset) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(encodeDoc(ds)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeJSON(data []byte) (*Dataset, error) {
	var doc datasetDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return decodeDoc(doc)
}

func encodeJSON(ds *Dataset) ([]byte, error) {
	data, err := json.MarshalIndent(encodeDoc(ds), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func decodeDoc(doc datasetDoc) (*Dataset, error) {
	ds := New()
	for name, ad := range doc.Coords {
		ds.Coords[name] = docToArray(name, ad)
	}
	for name, ad := range doc.DataVars {
		ds.DataVars[name] = docToArray(name, ad)
	}
	if doc.Attrs != nil {
		ds.Attrs = doc.Attrs
	}
	return ds, ds.Validate()
}

func encodeDoc(ds *Dataset) datasetDoc {
	doc := datasetDoc{
		Coords:   map[string]arrayDoc{},
		DataVars: map[string]arrayDoc{},
	}
	for name, coord := range ds.Coords {
		doc.Coords[name] = arrayToDoc(coord)
	}
	for name, dv := range ds.DataVars {
		doc.DataVars[name] = arrayToDoc(dv)
	}
	if len(ds.Attrs) > 0 {
		doc.Attrs = ds.Attrs
	}
	return doc
}

func docToArray(name string, ad arrayDoc) *DataArray {
	shape := ad.Shape
	if shape == nil && len(ad.Dims) == 1 {
		shape = []int{len(ad.Values)}
	}
	return &DataArray{
		Name:   name,
		Dims:   ad.Dims,
		Shape:  shape,
		Values: ad.Values,
		Attrs:  ad.Attrs,
	}
}

func arrayToDoc(a *DataArray) arrayDoc {
	ad := arrayDoc{
		Dims:   a.Dims,
		Values: a.Values,
		Attrs:  a.Attrs,
	}
	if len(a.Shape) != 1 {
		ad.Shape = a.Shape
	}
	return ad
}
