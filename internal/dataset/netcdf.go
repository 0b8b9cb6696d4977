package dataset

import (
	"fmt"
	"reflect"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/cdf"
	"github.com/batchatco/go-native-netcdf/netcdf/util"
)

// readNetCDF reads any netCDF file (classic or HDF5-based). A variable whose
// name equals its sole dimension is treated as a coordinate, per netCDF
// convention. Non-numeric variables are not carried over.
func readNetCDF(path string) (*Dataset, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	defer nc.Close()

	ds := New()
	if attrs := attrsToGo(nc.Attributes()); attrs != nil {
		ds.Attrs = attrs
	}

	for _, name := range nc.ListVariables() {
		vr, err := nc.GetVariable(name)
		if err != nil {
			return nil, fmt.Errorf("reading %q: variable %q: %w", path, name, err)
		}
		values, shape, ok := flattenValues(vr.Values)
		if !ok {
			continue
		}
		da := &DataArray{
			Name:   name,
			Dims:   vr.Dimensions,
			Shape:  shape,
			Values: values,
			Attrs:  attrsToGo(vr.Attributes),
		}
		if len(vr.Dimensions) == 1 && vr.Dimensions[0] == name {
			ds.Coords[name] = da
		} else {
			ds.DataVars[name] = da
		}
	}

	return ds, ds.Validate()
}

// writeNetCDF writes a dataset in netCDF classic format.
func writeNetCDF(path string, ds *Dataset) error {
	cw, err := cdf.OpenWriter(path)
	if err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}

	if len(ds.Attrs) > 0 {
		globalAttrs, err := orderedAttrs(ds.Attrs)
		if err != nil {
			return err
		}
		if err = cw.AddAttributes(globalAttrs); err != nil {
			return fmt.Errorf("writing %q: %w", path, err)
		}
	}

	// Coordinates first, so dimension lengths are defined before use.
	for _, name := range ds.CoordNames() {
		if err = addVar(cw, ds.Coords[name]); err != nil {
			return fmt.Errorf("writing %q: %w", path, err)
		}
	}
	for _, name := range ds.VarNames() {
		if err = addVar(cw, ds.DataVars[name]); err != nil {
			return fmt.Errorf("writing %q: %w", path, err)
		}
	}

	return cw.Close()
}

func addVar(cw api.Writer, a *DataArray) error {
	attrs, err := orderedAttrs(a.Attrs)
	if err != nil {
		return err
	}
	return cw.AddVar(a.Name, api.Variable{
		Values:     nestValues(a.Values, a.Shape),
		Dimensions: append([]string(nil), a.Dims...),
		Attributes: attrs,
	})
}

func attrsToGo(am api.AttributeMap) map[string]interface{} {
	if am == nil || len(am.Keys()) == 0 {
		return nil
	}
	attrs := make(map[string]interface{}, len(am.Keys()))
	for _, key := range am.Keys() {
		if v, has := am.Get(key); has {
			attrs[key] = v
		}
	}
	return attrs
}

func orderedAttrs(attrs map[string]interface{}) (api.AttributeMap, error) {
	if len(attrs) == 0 {
		return util.NewOrderedMap(nil, nil)
	}
	return util.NewOrderedMap(sortedKeysAny(attrs), attrs)
}

// flattenValues flattens the nested slices returned by the netCDF reader
// into row-major float64 values plus a shape. It returns ok=false for
// non-numeric payloads.
func flattenValues(v interface{}) (values []float64, shape []int, ok bool) {
	rv := reflect.ValueOf(v)
	for t := rv.Type(); t.Kind() == reflect.Slice || t.Kind() == reflect.Array; t = t.Elem() {
		shape = append(shape, 0)
	}
	values = []float64{}
	if !flattenInto(rv, 0, shape, &values) {
		return nil, nil, false
	}
	return values, shape, true
}

func flattenInto(rv reflect.Value, depth int, shape []int, out *[]float64) bool {
	if depth < len(shape) {
		shape[depth] = rv.Len()
		for i := 0; i < rv.Len(); i++ {
			if !flattenInto(rv.Index(i), depth+1, shape, out) {
				return false
			}
		}
		return true
	}
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		*out = append(*out, float64(rv.Int()))
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		*out = append(*out, float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		*out = append(*out, rv.Float())
	default:
		return false
	}
	return true
}

// nestValues is the inverse of flattenValues: it rebuilds nested float64
// slices matching the shape, which is what the netCDF writer expects.
func nestValues(values []float64, shape []int) interface{} {
	if len(shape) <= 1 || len(values) == 0 {
		return values
	}
	return nestValue(reflect.ValueOf(values), shape).Interface()
}

func nestValue(flat reflect.Value, shape []int) reflect.Value {
	if len(shape) <= 1 {
		return flat
	}
	stride := flat.Len() / shape[0]
	first := nestValue(flat.Slice(0, stride), shape[1:])
	out := reflect.MakeSlice(reflect.SliceOf(first.Type()), shape[0], shape[0])
	out.Index(0).Set(first)
	for i := 1; i < shape[0]; i++ {
		out.Index(i).Set(nestValue(flat.Slice(i*stride, (i+1)*stride), shape[1:]))
	}
	return out
}
