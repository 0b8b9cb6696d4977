// Package dataset holds the labeled multi-dimensional array model that cgul
// harmonises: n-dimensional numeric arrays with named dimensions, coordinate
// values and metadata attributes, plus codecs for the supported file formats.
package dataset

import (
	"fmt"
	"sort"
)

// DataArray pairs an n-dimensional numeric array with named dimensions and
// metadata attributes. Values are stored flattened in row-major order.
type DataArray struct {
	Name   string
	Dims   []string
	Shape  []int
	Values []float64
	Attrs  map[string]interface{}
}

// Size returns the number of values the shape describes.
func (a *DataArray) Size() int {
	size := 1
	for _, n := range a.Shape {
		size *= n
	}
	return size
}

// StringAttr returns the attribute value for key if it is a string.
func (a *DataArray) StringAttr(key string) (value string, ok bool) {
	v, found := a.Attrs[key]
	if !found {
		return "", false
	}
	value, ok = v.(string)
	return
}

// SetAttr sets a single attribute, allocating the attribute map if needed.
func (a *DataArray) SetAttr(key string, value interface{}) {
	if a.Attrs == nil {
		a.Attrs = map[string]interface{}{}
	}
	a.Attrs[key] = value
}

// AttrKeys returns the attribute keys in sorted order.
func (a *DataArray) AttrKeys() []string {
	return sortedKeysAny(a.Attrs)
}

// Clone returns a deep copy of the array.
func (a *DataArray) Clone() *DataArray {
	clone := &DataArray{
		Name:   a.Name,
		Dims:   append([]string(nil), a.Dims...),
		Shape:  append([]int(nil), a.Shape...),
		Values: append([]float64(nil), a.Values...),
	}
	if a.Attrs != nil {
		clone.Attrs = make(map[string]interface{}, len(a.Attrs))
		for k, v := range a.Attrs {
			clone.Attrs[k] = v
		}
	}
	return clone
}

// Dataset is a collection of coordinate arrays and data-variable arrays
// sharing dimensions, plus global attributes. Coordinates are 1-D arrays
// whose single dimension carries their own name.
type Dataset struct {
	Coords   map[string]*DataArray
	DataVars map[string]*DataArray
	Attrs    map[string]interface{}
}

// New returns an empty dataset.
func New() *Dataset {
	return &Dataset{
		Coords:   map[string]*DataArray{},
		DataVars: map[string]*DataArray{},
		Attrs:    map[string]interface{}{},
	}
}

// CoordNames returns the coordinate names in sorted order.
func (d *Dataset) CoordNames() []string {
	names := make([]string, 0, len(d.Coords))
	for name := range d.Coords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VarNames returns the data-variable names in sorted order.
func (d *Dataset) VarNames() []string {
	names := make([]string, 0, len(d.DataVars))
	for name := range d.DataVars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dimensions returns the dimension sizes, derived from the coordinates and
// the data-variable shapes.
func (d *Dataset) Dimensions() map[string]int {
	sizes := map[string]int{}
	for name, coord := range d.Coords {
		sizes[name] = len(coord.Values)
	}
	for _, dv := range d.DataVars {
		for i, dim := range dv.Dims {
			if _, ok := sizes[dim]; !ok && i < len(dv.Shape) {
				sizes[dim] = dv.Shape[i]
			}
		}
	}
	return sizes
}

// Validate checks the structural invariants of the dataset.
func (d *Dataset) Validate() error {
	for name, coord := range d.Coords {
		if len(coord.Dims) != 1 || coord.Dims[0] != name {
			return fmt.Errorf("coordinate %q must have itself as its only dimension", name)
		}
		if len(coord.Shape) > 0 && coord.Size() != len(coord.Values) {
			return fmt.Errorf("coordinate %q: shape describes %d values, got %d",
				name, coord.Size(), len(coord.Values))
		}
	}

	sizes := map[string]int{}
	for name, coord := range d.Coords {
		sizes[name] = len(coord.Values)
	}
	for name, dv := range d.DataVars {
		if len(dv.Shape) != len(dv.Dims) {
			return fmt.Errorf("variable %q: %d dimensions but shape of length %d",
				name, len(dv.Dims), len(dv.Shape))
		}
		if dv.Size() != len(dv.Values) {
			return fmt.Errorf("variable %q: shape describes %d values, got %d",
				name, dv.Size(), len(dv.Values))
		}
		for i, dim := range dv.Dims {
			if size, ok := sizes[dim]; ok && size != dv.Shape[i] {
				return fmt.Errorf("variable %q: dimension %q has size %d, expected %d",
					name, dim, dv.Shape[i], size)
			}
		}
	}

	return nil
}

// Rename renames a coordinate and every reference to its dimension.
func (d *Dataset) Rename(oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	coord, ok := d.Coords[oldName]
	if !ok {
		return fmt.Errorf("no coordinate named %q", oldName)
	}
	if _, exists := d.Coords[newName]; exists {
		return fmt.Errorf("coordinate %q already exists", newName)
	}

	delete(d.Coords, oldName)
	coord.Name = newName
	coord.Dims = []string{newName}
	d.Coords[newName] = coord

	for _, dv := range d.DataVars {
		for i, dim := range dv.Dims {
			if dim == oldName {
				dv.Dims[i] = newName
			}
		}
	}

	return nil
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	clone := New()
	for name, coord := range d.Coords {
		clone.Coords[name] = coord.Clone()
	}
	for name, dv := range d.DataVars {
		clone.DataVars[name] = dv.Clone()
	}
	for k, v := range d.Attrs {
		clone.Attrs[k] = v
	}
	return clone
}

func sortedKeysAny(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
