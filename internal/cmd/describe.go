package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ecmwf-projects/cgul/internal/dataset"
)

func newDescribeCmd(cgulWriter io.Writer, dataFS afero.Fs) *cobra.Command {
	var describeCmd = &cobra.Command{
		Use:   "describe FILE...",
		Short: "Describe the structure of datasets",
		Args:  checkArgs(),
		Example: `  # Describe a dataset
  cgul describe data.nc

  # Describe multiple datasets
  cgul describe a.nc b.yaml`,
		RunE: newRunDescribe(cgulWriter, dataFS),
	}
	return describeCmd
}

func newRunDescribe(
	cgulWriter io.Writer, dataFS afero.Fs,
) func(*cobra.Command, []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		for _, inputPath := range args {
			var ds *dataset.Dataset
			ds, err = dataset.Read(dataFS, inputPath)
			if err != nil {
				return
			}
			describe(cgulWriter, inputPath, ds)
		}
		return
	}
}

func describe(cgulWriter io.Writer, path string, ds *dataset.Dataset) {
	fmt.Fprintf(cgulWriter, "📄 %s\n", path)

	fmt.Fprintln(cgulWriter, "Dimensions:")
	sizes := ds.Dimensions()
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(cgulWriter, "  %s: %d\n", name, sizes[name])
	}

	fmt.Fprintln(cgulWriter, "Coordinates:")
	for _, name := range ds.CoordNames() {
		fmt.Fprintln(cgulWriter, "  "+arrayLine(ds.Coords[name]))
	}

	fmt.Fprintln(cgulWriter, "Data variables:")
	for _, name := range ds.VarNames() {
		fmt.Fprintln(cgulWriter, "  "+arrayLine(ds.DataVars[name]))
	}

	if len(ds.Attrs) > 0 {
		fmt.Fprintln(cgulWriter, "Attributes:")
		keys := make([]string, 0, len(ds.Attrs))
		for key := range ds.Attrs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(cgulWriter, "  %s: %v\n", key, ds.Attrs[key])
		}
	}
}

func arrayLine(a *dataset.DataArray) string {
	line := fmt.Sprintf("%s (%s)", a.Name, strings.Join(a.Dims, ", "))
	if unitStr, ok := a.StringAttr("units"); ok {
		line += fmt.Sprintf(": units %s", unitStr)
	}
	return line
}
