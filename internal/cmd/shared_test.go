package cmd_test

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/ecmwf-projects/cgul/internal/cmd"
)

type test struct {
	name         string
	cliArgs      []string
	files        map[string]string
	wantErr      bool
	wantOut      string
	wantOutRegex string
	wantFiles    []string
}

// awkwardDatasetYAML is a dataset with everything harmonisation fixes:
// capitalised coordinate names, unit spellings that need aliasing, a depth
// coordinate in km and a capitalised Units attribute key.
const awkwardDatasetYAML = `coords:
  Depth:
    dims: [Depth]
    values: [0, 1]
    attrs:
      units: km
  Lat:
    dims: [Lat]
    values: [0, 1]
    attrs:
      units: DegNorth
  Lon:
    dims: [Lon]
    values: [0, 1]
    attrs:
      units: Degrees_East
data_vars:
  test:
    dims: [Lat, Lon, Depth]
    shape: [2, 2, 2]
    values: [1, 2, 3, 4, 5, 6, 7, 8]
    attrs:
      Units: m of water equivalent
`

// harmonisedDatasetYAML is already in harmonised form.
const harmonisedDatasetYAML = `coords:
  latitude:
    dims: [latitude]
    values: [0, 1]
    attrs:
      units: degrees_north
      standard_name: latitude
      long_name: latitude
data_vars:
  t2m:
    dims: [latitude]
    shape: [2]
    values: [280, 281]
    attrs:
      units: K
attrs:
  Conventions: CF-1.8
`

func runTest(t *testing.T, tt test, subcommand ...string) (dataFS afero.Fs) {
	t.Helper()

	dataFS = afero.NewMemMapFs()
	for path, contents := range tt.files {
		err := afero.WriteFile(dataFS, path, []byte(contents), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}

	buf := new(bytes.Buffer)

	command := cmd.NewRootCmd(buf, dataFS)
	command.SetArgs(append(subcommand, tt.cliArgs...))

	// Redirect Cobra output
	command.SetOut(buf)
	command.SetErr(buf)

	err := command.Execute()
	if (err != nil) != tt.wantErr {
		t.Errorf("%s: Execute() error = %v, wantErr %v", tt.name, err, tt.wantErr)
	}

	checkWantOut(t, tt, buf)

	for _, path := range tt.wantFiles {
		exists, err := afero.Exists(dataFS, path)
		if err != nil {
			t.Fatal(err)
		}
		if !exists {
			t.Errorf("%s: expected %s to exist", tt.name, path)
		}
	}

	return
}

func checkWantOut(t *testing.T, tt test, buf *bytes.Buffer) {
	t.Helper()

	if tt.wantOut == "" && tt.wantOutRegex == "" {
		t.Fatalf("Either wantOut or wantOutRegex must be set")
	}
	if tt.wantOut != "" {
		if diff := cmp.Diff(tt.wantOut, buf.String()); diff != "" {
			t.Errorf("Output mismatch (-want +got):\n%s", diff)
		}
	} else if tt.wantOutRegex != "" {
		matched, err := regexp.Match(tt.wantOutRegex, buf.Bytes())
		if err != nil {
			t.Errorf("Error compiling regex: %v", err)
		}
		if !matched {
			t.Errorf("Error matching regex: %v, output: %s", tt.wantOutRegex, buf.String())
		}
	}
}
