package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sys/unix"

	"github.com/ecmwf-projects/cgul/internal/bundle"
	"github.com/ecmwf-projects/cgul/internal/dataset"
	"github.com/ecmwf-projects/cgul/internal/harmonise"
	"github.com/ecmwf-projects/cgul/internal/utils"
)

var (
	harmoniseCheckFlag      bool
	harmoniseCoordModelFlag string
	harmoniseErrorModeFlag  string
	harmoniseOutputFlag     string
)

func newHarmoniseCmd(cgulWriter io.Writer, dataFS afero.Fs) *cobra.Command {
	var harmoniseCmd = &cobra.Command{
		Use:   "harmonise FILE...",
		Short: "Harmonise datasets to a coordinate model",
		Args:  checkArgs(),
		Example: `  # Harmonise a netCDF dataset
  cgul harmonise data.nc

  # Only show the changes harmonisation would make
  cgul harmonise --check data.nc

  # Harmonise to a custom coordinate model
  cgul harmonise --coord-model model.yaml data.nc

  # Harmonise every dataset in a bundle
  cgul harmonise data.tar.gz`,
		RunE: newRunHarmonise(cgulWriter, dataFS),
	}

	harmoniseCmd.Flags().BoolVar(&harmoniseCheckFlag, "check", false,
		"only show the changes harmonisation would make")
	harmoniseCmd.Flags().StringVar(&harmoniseCoordModelFlag, "coord-model", "",
		"coordinate model: a registry model name or a YAML file (default is the builtin CADS model)")
	harmoniseCmd.Flags().StringVar(&harmoniseErrorModeFlag, "error-mode", "warn",
		"how to treat conversion errors: warn, raise or ignore")
	harmoniseCmd.Flags().StringVarP(&harmoniseOutputFlag, "output", "o", "",
		"output path (only valid with a single input file)")

	return harmoniseCmd
}

func newRunHarmonise(
	cgulWriter io.Writer, dataFS afero.Fs,
) func(*cobra.Command, []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		opts, err := harmoniseOpts(cmd, dataFS,
			harmoniseCoordModelFlag, harmoniseErrorModeFlag)
		if err != nil {
			return
		}

		if harmoniseOutputFlag != "" && len(args) > 1 {
			return fmt.Errorf("--output can only be used with a single input file")
		}

		processed := 0
		for _, inputPath := range args {
			// --check never writes, whatever the input kind.
			if harmoniseCheckFlag {
				err = printCheck(cgulWriter, dataFS, inputPath, opts)
				if err != nil {
					return
				}
				continue
			}

			output := harmoniseOutputFlag
			if output == "" {
				output = outputPath(inputPath, viper.GetString("OutputSuffix"))
			}

			if bundle.IsBundle(inputPath) {
				var n int
				n, err = bundle.Harmonise(cgulWriter, inputPath, output, opts)
				if err != nil {
					return
				}
				fmt.Fprintf(cgulWriter,
					"📦 %s: %d datasets harmonised to %s\n", inputPath, n, output)
				processed += n
				continue
			}

			var ds *dataset.Dataset
			ds, err = dataset.Read(dataFS, inputPath)
			if err != nil {
				return
			}

			err = ensureWritableDir(dataFS, filepath.Dir(output))
			if err != nil {
				return
			}

			var harmonised *dataset.Dataset
			harmonised, err = harmonise.Harmonise(ds, opts)
			if err != nil {
				return
			}
			err = dataset.Write(dataFS, output, harmonised)
			if err != nil {
				return
			}

			fmt.Fprintf(cgulWriter, "✅ %s harmonised to %s\n", inputPath, output)
			processed++
		}

		if !harmoniseCheckFlag {
			recordRun(dataFS, processed)
		}

		return
	}
}

// harmoniseOpts builds harmonisation options from the shared command flags.
func harmoniseOpts(
	cmd *cobra.Command, dataFS afero.Fs, coordModelFlag, errorModeFlag string,
) (opts harmonise.Options, err error) {
	opts.Mode, err = harmonise.ParseErrorMode(errorModeFlag)
	if err != nil {
		return
	}
	opts.Model, err = resolveCoordModel(cmd, dataFS, coordModelFlag)
	return
}

// printCheck reports the changes harmonising inputPath would make. For a
// bundle, every dataset member is reported individually.
func printCheck(
	cgulWriter io.Writer, dataFS afero.Fs, inputPath string,
	opts harmonise.Options,
) error {
	if bundle.IsBundle(inputPath) {
		plans, err := bundle.Plan(inputPath, opts)
		if err != nil {
			return err
		}
		for _, p := range plans {
			printPlan(cgulWriter, filepath.Join(inputPath, p.Path), p.Changes)
		}
		return nil
	}

	ds, err := dataset.Read(dataFS, inputPath)
	if err != nil {
		return err
	}
	changes, err := harmonise.Plan(ds, opts)
	if err != nil {
		return err
	}
	printPlan(cgulWriter, inputPath, changes)
	return nil
}

func printPlan(cgulWriter io.Writer, inputPath string, changes []string) {
	if len(changes) == 0 {
		fmt.Fprintf(cgulWriter, "✅ %s: already harmonised\n", inputPath)
		return
	}
	fmt.Fprintf(cgulWriter, "🔍 %s:\n", inputPath)
	for _, change := range changes {
		fmt.Fprintf(cgulWriter, "  🔄 %s\n", change)
	}
}

// ensureWritableDir rejects unwritable output directories up front, so a
// long harmonisation run does not fail at write time. Only meaningful on
// the OS filesystem.
func ensureWritableDir(dataFS afero.Fs, dir string) error {
	if _, ok := dataFS.(*afero.OsFs); !ok {
		return nil
	}
	if unix.Access(dir, unix.W_OK) != nil {
		return fmt.Errorf("output directory %s is not writable", dir)
	}
	return nil
}

// recordRun updates the persisted run state. Failures only warn: state is
// bookkeeping, not part of the harmonisation result.
func recordRun(dataFS afero.Fs, processed int) {
	state, err := utils.NewState(dataFS)
	if err == nil {
		state.Harmonise.LastRun = time.Now()
		state.Harmonise.FilesProcessed += processed
		err = state.Write(dataFS)
	}
	if err != nil {
		slog.Warn("could not update run state", "cause", err)
	}
}
