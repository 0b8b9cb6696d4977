// Package harmonise translates the coordinates of labeled datasets to a
// coordinate model and normalises data-variable attributes and unit
// spellings, so that datasets from different producers end up in a single
// consistent format.
package harmonise

import (
	"fmt"
	"log/slog"

	"github.com/ecmwf-projects/cgul/internal/coordmodel"
	"github.com/ecmwf-projects/cgul/internal/dataset"
	"github.com/ecmwf-projects/cgul/internal/units"
)

// DefaultConventions is stamped on harmonised datasets that do not declare
// a Conventions attribute.
const DefaultConventions = "CF-1.8"

// Options configures a harmonisation pass. The zero value uses the builtin
// CADS coordinate model, the default unit-alias table, warn error mode and
// the default logger.
type Options struct {
	Model   *coordmodel.Model
	Aliases map[string]string
	Mode    ErrorMode
	Logger  *slog.Logger

	changes *[]string
}

func (o Options) model() *coordmodel.Model {
	if o.Model != nil {
		return o.Model
	}
	return coordmodel.CADS()
}

func (o Options) aliases() map[string]string {
	if o.Aliases != nil {
		return o.Aliases
	}
	return coordmodel.DefaultUnitAliases()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) record(format string, args ...interface{}) {
	if o.changes != nil {
		*o.changes = append(*o.changes, fmt.Sprintf(format, args...))
	}
}

// ConvertUnits converts the values of a data array from sourceUnits to
// targetUnits. Unrecognised units and failed conversions follow the error
// mode and leave the array untouched.
func ConvertUnits(
	da *dataset.DataArray, targetUnits, sourceUnits string, opts Options,
) (*dataset.DataArray, error) {
	if targetUnits == sourceUnits {
		return da, nil
	}

	target, err := units.Parse(targetUnits)
	if err != nil {
		return da, opts.handle(
			fmt.Sprintf("target units for %s (%s) are not recognised",
				da.Name, targetUnits),
			err, "units will not be converted")
	}

	source, err := units.Parse(sourceUnits)
	if err != nil {
		return da, opts.handle(
			fmt.Sprintf("source units for %s (%s) are not recognised",
				da.Name, sourceUnits),
			err, "units will not be converted")
	}

	converted, err := units.Convert(da.Values, source, target)
	if err != nil {
		return da, opts.handle(
			fmt.Sprintf("error while converting %s to %s for %s",
				sourceUnits, targetUnits, da.Name),
			err, "units will not be converted")
	}

	da = da.Clone()
	da.Values = converted
	da.SetAttr("units", targetUnits)
	opts.record("convert %s units from %q to %q", da.Name, sourceUnits, targetUnits)
	return da, nil
}

// coordTranslator translates a single coordinate to the form its model
// entry describes: units converted, model attributes merged in.
func coordTranslator(
	coord *dataset.DataArray, entry coordmodel.Entry, opts Options,
) (*dataset.DataArray, error) {
	if sourceUnits, ok := coord.StringAttr("units"); ok {
		if alias, ok := opts.aliases()[sourceUnits]; ok {
			sourceUnits = alias
		}
		targetUnits := entry.Units
		if targetUnits == "" {
			targetUnits = sourceUnits
		}

		var err error
		coord, err = ConvertUnits(coord, targetUnits, sourceUnits, opts)
		if err != nil {
			return coord, err
		}
	}

	entryAttrs := entry.Attrs()
	if len(entryAttrs) > 0 {
		coord = coord.Clone()
		for k, v := range entryAttrs {
			coord.Attrs[k] = v
		}
	}

	return coord, nil
}

// TranslateCoords translates the coordinates of a dataset to the given
// coordinate model and returns a new dataset. The input is not modified.
func TranslateCoords(ds *dataset.Dataset, opts Options) (*dataset.Dataset, error) {
	ds = ds.Clone()
	model := opts.model()

	for _, name := range ds.CoordNames() {
		entry, key := model.Lookup(name)

		coord, err := coordTranslator(ds.Coords[name], entry, opts)
		if err != nil {
			return nil, fmt.Errorf("translating coordinate %s: %w", name, err)
		}
		ds.Coords[name] = coord

		outName := entry.OutName
		if outName == "" {
			outName = key
		}
		if outName != name {
			if err = ds.Rename(name, outName); err != nil {
				if err = opts.handle(
					fmt.Sprintf("renaming coordinate %s", name), err, "",
				); err != nil {
					return nil, err
				}
				continue
			}
			opts.record("rename coordinate %q to %q", name, outName)
		}
	}

	return ds, nil
}

// Harmonise translates the coordinates of a dataset and normalises its
// data-variable attributes: canonical attribute keys are lower-cased,
// unit spellings are alias-normalised (values are not converted), and the
// dataset is stamped with a Conventions attribute when it has none. A new
// dataset is returned; the input is not modified.
func Harmonise(ds *dataset.Dataset, opts Options) (*dataset.Dataset, error) {
	ds, err := TranslateCoords(ds, opts)
	if err != nil {
		return nil, err
	}

	for _, name := range ds.VarNames() {
		normaliseVarAttrs(ds.DataVars[name], opts)
	}

	if _, ok := ds.Attrs["Conventions"]; !ok {
		ds.Attrs["Conventions"] = DefaultConventions
		opts.record("set Conventions attribute to %q", DefaultConventions)
	}

	return ds, nil
}

// canonicalAttrs are the attribute keys that harmonisation lower-cases.
var canonicalAttrs = map[string]bool{
	"units":         true,
	"standard_name": true,
	"long_name":     true,
	"axis":          true,
}

func normaliseVarAttrs(dv *dataset.DataArray, opts Options) {
	for _, key := range dv.AttrKeys() {
		lowered := lower(key)
		if lowered == key || !canonicalAttrs[lowered] {
			continue
		}
		if _, exists := dv.Attrs[lowered]; !exists {
			dv.Attrs[lowered] = dv.Attrs[key]
			opts.record("rename %s attribute %q to %q", dv.Name, key, lowered)
		}
		delete(dv.Attrs, key)
	}

	if unitStr, ok := dv.StringAttr("units"); ok {
		if alias, found := opts.aliases()[unitStr]; found {
			dv.SetAttr("units", alias)
			opts.record("replace %s units %q with %q", dv.Name, unitStr, alias)
		}
	}
}

// Plan returns the list of changes Harmonise would make to the dataset,
// without touching it.
func Plan(ds *dataset.Dataset, opts Options) ([]string, error) {
	changes := []string{}
	opts.changes = &changes
	if _, err := Harmonise(ds, opts); err != nil {
		return nil, err
	}
	return changes, nil
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
