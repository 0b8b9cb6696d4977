package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ecmwf-projects/cgul/internal/dataset"
	"github.com/ecmwf-projects/cgul/internal/harmonise"
)

var (
	translateCoordModelFlag string
	translateErrorModeFlag  string
	translateOutputFlag     string
)

func newTranslateCoordsCmd(cgulWriter io.Writer, dataFS afero.Fs) *cobra.Command {
	var translateCmd = &cobra.Command{
		Use:   "translate-coords FILE...",
		Short: "Translate dataset coordinates to a coordinate model",
		Args:  checkArgs(),
		Example: `  # Translate the coordinates of a dataset
  cgul translate-coords data.nc

  # Translate to a custom coordinate model
  cgul translate-coords --coord-model model.yaml data.nc`,
		RunE: newRunTranslateCoords(cgulWriter, dataFS),
	}

	translateCmd.Flags().StringVar(&translateCoordModelFlag, "coord-model", "",
		"coordinate model: a registry model name or a YAML file (default is the builtin CADS model)")
	translateCmd.Flags().StringVar(&translateErrorModeFlag, "error-mode", "warn",
		"how to treat conversion errors: warn, raise or ignore")
	translateCmd.Flags().StringVarP(&translateOutputFlag, "output", "o", "",
		"output path (only valid with a single input file)")

	return translateCmd
}

func newRunTranslateCoords(
	cgulWriter io.Writer, dataFS afero.Fs,
) func(*cobra.Command, []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		opts, err := harmoniseOpts(cmd, dataFS,
			translateCoordModelFlag, translateErrorModeFlag)
		if err != nil {
			return
		}

		if translateOutputFlag != "" && len(args) > 1 {
			return fmt.Errorf("--output can only be used with a single input file")
		}

		for _, inputPath := range args {
			var ds *dataset.Dataset
			ds, err = dataset.Read(dataFS, inputPath)
			if err != nil {
				return
			}

			var translated *dataset.Dataset
			translated, err = harmonise.TranslateCoords(ds, opts)
			if err != nil {
				return
			}

			output := translateOutputFlag
			if output == "" {
				output = outputPath(inputPath, viper.GetString("OutputSuffix"))
			}
			err = ensureWritableDir(dataFS, filepath.Dir(output))
			if err != nil {
				return
			}
			err = dataset.Write(dataFS, output, translated)
			if err != nil {
				return
			}

			fmt.Fprintf(cgulWriter, "✅ %s translated to %s\n", inputPath, output)
		}

		return
	}
}
