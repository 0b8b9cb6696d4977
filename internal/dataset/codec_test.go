package dataset_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/ecmwf-projects/cgul/internal/dataset"
)

const gridYAML = `coords:
  lat:
    dims: [lat]
    values: [0, 1]
    attrs:
      units: degrees_north
  lon:
    dims: [lon]
    values: [0, 1, 2]
data_vars:
  t2m:
    dims: [lat, lon]
    shape: [2, 3]
    values: [1, 2, 3, 4, 5, 6]
    attrs:
      units: K
attrs:
  Conventions: CF-1.8
`

func TestSupported(t *testing.T) {
	for _, path := range []string{"a.nc", "b.NC4", "c.cdf", "d.yaml", "e.yml", "f.json"} {
		require.True(t, dataset.Supported(path), path)
	}
	for _, path := range []string{"a.grib", "b.txt", "c"} {
		require.False(t, dataset.Supported(path), path)
	}
}

func TestReadYAML(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/grid.yaml", []byte(gridYAML), 0644))

	ds, err := dataset.Read(fsys, "/data/grid.yaml")
	require.NoError(t, err)

	require.Equal(t, []string{"lat", "lon"}, ds.CoordNames())
	require.Equal(t, []string{"t2m"}, ds.VarNames())
	// Shape defaults to the value count for 1-D arrays.
	require.Equal(t, []int{3}, ds.Coords["lon"].Shape)
	require.Equal(t, "CF-1.8", ds.Attrs["Conventions"])
}

func TestYAMLRoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/grid.yaml", []byte(gridYAML), 0644))

	ds, err := dataset.Read(fsys, "/data/grid.yaml")
	require.NoError(t, err)

	require.NoError(t, dataset.Write(fsys, "/data/copy.yaml", ds))
	reread, err := dataset.Read(fsys, "/data/copy.yaml")
	require.NoError(t, err)

	if diff := cmp.Diff(ds, reread); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/grid.yaml", []byte(gridYAML), 0644))

	ds, err := dataset.Read(fsys, "/data/grid.yaml")
	require.NoError(t, err)

	require.NoError(t, dataset.Write(fsys, "/data/copy.json", ds))
	reread, err := dataset.Read(fsys, "/data/copy.json")
	require.NoError(t, err)

	if diff := cmp.Diff(ds, reread); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRejectsInvalid(t *testing.T) {
	fsys := afero.NewMemMapFs()

	// Unsupported format
	_, err := dataset.Read(fsys, "/data/grid.grib")
	require.Error(t, err)

	// Inconsistent shape
	bad := `data_vars:
  t2m:
    dims: [lat, lon]
    shape: [2, 2]
    values: [1, 2, 3]
`
	require.NoError(t, afero.WriteFile(fsys, "/data/bad.yaml", []byte(bad), 0644))
	_, err = dataset.Read(fsys, "/data/bad.yaml")
	require.Error(t, err)
}
