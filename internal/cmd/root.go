package cmd

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	versionFlag bool
)

// NewRootCmd returns the root command.
func NewRootCmd(cgulWriter io.Writer, dataFS afero.Fs) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cgul",
		Short: "cgul keeps labeled datasets in a consistent format",
		Example: `  # Harmonise a dataset to the CADS coordinate model
  cgul harmonise data.nc

  # Show what harmonisation would change
  cgul harmonise --check data.nc

  # Check datasets for conformance
  cgul check data.nc`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				return printVersion(cgulWriter)
			}

			return cmd.Help()
		},
	}

	// Flags
	rootCmd.Flags().BoolVar(&versionFlag, "version", false, "display the version of cgul")

	// Persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path of the config file (default is $HOME/.config/cgul/config.yaml)")

	// Hidden persistent flags
	rootCmd.PersistentFlags().Bool("remote", false, "Use the remote model registry")
	err := rootCmd.PersistentFlags().MarkHidden("remote")
	if err != nil {
		panic(err)
	}

	// Commands
	rootCmd.AddCommand(newHarmoniseCmd(cgulWriter, dataFS))
	rootCmd.AddCommand(newTranslateCoordsCmd(cgulWriter, dataFS))
	rootCmd.AddCommand(newCheckCmd(cgulWriter, dataFS))
	rootCmd.AddCommand(newDescribeCmd(cgulWriter, dataFS))
	rootCmd.AddCommand(newVersionCmd(cgulWriter))

	return rootCmd
}
