package cmd_test

import (
	"testing"
)

func TestRootCmd(t *testing.T) {
	usage := `Usage:
  cgul [flags]
  cgul [command]

Examples:
  # Harmonise a dataset to the CADS coordinate model
  cgul harmonise data.nc

  # Show what harmonisation would change
  cgul harmonise --check data.nc

  # Check datasets for conformance
  cgul check data.nc

Available Commands:
  check            Check datasets for conformance with a coordinate model
  completion       Generate the autocompletion script for the specified shell
  describe         Describe the structure of datasets
  harmonise        Harmonise datasets to a coordinate model
  help             Help about any command
  translate-coords Translate dataset coordinates to a coordinate model
  version          Display the version of cgul

Flags:
      --config string   path of the config file (default is $HOME/.config/cgul/config.yaml)
  -h, --help            help for cgul
      --version         display the version of cgul

Use "cgul [command] --help" for more information about a command.
`

	tests := []test{
		{
			name:    "no cli args",
			cliArgs: []string{},
			wantOut: `cgul keeps labeled datasets in a consistent format

` + usage,
		},
		{
			name:    "help flag",
			cliArgs: []string{"--help"},
			wantOut: `cgul keeps labeled datasets in a consistent format

` + usage,
		},
		{
			name:    "config flag without value",
			cliArgs: []string{"--config"},
			wantErr: true,
			wantOut: `Error: flag needs an argument: --config
` + usage + `
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runTest(t, tt)
		})
	}
}
