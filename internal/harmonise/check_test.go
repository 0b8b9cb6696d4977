package harmonise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecmwf-projects/cgul/internal/dataset"
	"github.com/ecmwf-projects/cgul/internal/harmonise"
)

func TestCheckConventions(t *testing.T) {
	tests := []struct {
		name        string
		conventions interface{}
		wantErr     string
	}{
		{
			name:        "recent enough",
			conventions: "CF-1.8",
		},
		{
			name:        "exactly the minimum",
			conventions: "CF-1.6",
		},
		{
			name:    "missing",
			wantErr: "missing Conventions attribute",
		},
		{
			name:        "not a CF tag",
			conventions: "ACDD-1.3",
			wantErr:     "ACDD-1.3 is not a CF conventions tag",
		},
		{
			name:        "not a string",
			conventions: 1.8,
			wantErr:     "1.8 is not a CF conventions tag",
		},
		{
			name:        "too old",
			conventions: "CF-1.5",
			wantErr:     "Conventions CF-1.5 is older than CF-1.6",
		},
		{
			name:        "unparseable version",
			conventions: "CF-one.six",
			wantErr:     "unparseable version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dataset.New()
			if tt.conventions != nil {
				ds.Attrs["Conventions"] = tt.conventions
			}

			err := harmonise.CheckConventions(ds, "1.6")
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheckConventionsBadMinimum(t *testing.T) {
	err := harmonise.CheckConventions(dataset.New(), "latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid minimum conventions version "latest"`)
}
