package cmd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecmwf-projects/cgul/internal/dataset"
)

func TestTranslateCoordsCmd(t *testing.T) {
	usage := `Usage:
  cgul translate-coords FILE... [flags]

Examples:
  # Translate the coordinates of a dataset
  cgul translate-coords data.nc

  # Translate to a custom coordinate model
  cgul translate-coords --coord-model model.yaml data.nc

Flags:
      --coord-model string   coordinate model: a registry model name or a YAML file (default is the builtin CADS model)
      --error-mode string    how to treat conversion errors: warn, raise or ignore (default "warn")
  -h, --help                 help for translate-coords
  -o, --output string        output path (only valid with a single input file)

Global Flags:
      --config string   path of the config file (default is $HOME/.config/cgul/config.yaml)
`

	tests := []test{
		{
			name:    "help flag",
			cliArgs: []string{"--help"},
			wantOut: `Translate dataset coordinates to a coordinate model

` + usage,
		},
		{
			name:         "no file specified",
			cliArgs:      []string{},
			wantErr:      true,
			wantOutRegex: "no file specified",
		},
		{
			name:    "single file",
			cliArgs: []string{"/data/test.yaml"},
			files: map[string]string{
				"/data/test.yaml": awkwardDatasetYAML,
			},
			wantOut: `✅ /data/test.yaml translated to /data/test_harmonised.yaml
`,
			wantFiles: []string{"/data/test_harmonised.yaml"},
		},
		{
			name: "custom coordinate model",
			cliArgs: []string{
				"--coord-model", "/models/projected.yaml", "/data/xy.yaml",
			},
			files: map[string]string{
				"/models/projected.yaml": `always_lower_case: true
coordinates:
  x:
    out_name: projection_x_coordinate
    units: m
`,
				"/data/xy.yaml": `coords:
  X:
    dims: [X]
    values: [0, 1]
    attrs:
      units: km
`,
			},
			wantOut: `✅ /data/xy.yaml translated to /data/xy_harmonised.yaml
`,
			wantFiles: []string{"/data/xy_harmonised.yaml"},
		},
		{
			name:    "missing coordinate model",
			cliArgs: []string{"--coord-model", "/models/nope.yaml", "/data/test.yaml"},
			files: map[string]string{
				"/data/test.yaml": awkwardDatasetYAML,
			},
			wantErr:      true,
			wantOutRegex: "reading coordinate model /models/nope.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runTest(t, tt, "translate-coords")
		})
	}
}

func TestTranslateCoordsCmdLeavesVarAttrsAlone(t *testing.T) {
	tt := test{
		name:    "single file",
		cliArgs: []string{"/data/test.yaml"},
		files: map[string]string{
			"/data/test.yaml": awkwardDatasetYAML,
		},
		wantOut: `✅ /data/test.yaml translated to /data/test_harmonised.yaml
`,
	}
	dataFS := runTest(t, tt, "translate-coords")

	ds, err := dataset.Read(dataFS, "/data/test_harmonised.yaml")
	require.NoError(t, err)

	// Coordinates are translated...
	require.NotNil(t, ds.Coords["depth"])
	assert.Equal(t, []float64{0, 1000}, ds.Coords["depth"].Values)

	// ...but data-variable attributes and global attributes are not touched.
	assert.Equal(t, "m of water equivalent", ds.DataVars["test"].Attrs["Units"])
	assert.NotContains(t, ds.Attrs, "Conventions")
}
