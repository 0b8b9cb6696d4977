package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ecmwf-projects/cgul/internal/dataset"
	"github.com/ecmwf-projects/cgul/internal/harmonise"
	"github.com/ecmwf-projects/cgul/internal/utils"
)

var (
	checkCoordModelFlag     string
	checkMinConventionsFlag string
)

func newCheckCmd(cgulWriter io.Writer, dataFS afero.Fs) *cobra.Command {
	var checkCmd = &cobra.Command{
		Use:   "check FILE...",
		Short: "Check datasets for conformance with a coordinate model",
		Args:  checkArgs(),
		Example: `  # Check a dataset against the builtin CADS model
  cgul check data.nc

  # Check multiple datasets against a custom model
  cgul check --coord-model model.yaml a.nc b.nc`,
		RunE: newRunCheck(cgulWriter, dataFS),
	}

	checkCmd.Flags().StringVar(&checkCoordModelFlag, "coord-model", "",
		"coordinate model: a registry model name or a YAML file (default is the builtin CADS model)")
	checkCmd.Flags().StringVar(&checkMinConventionsFlag, "min-conventions", "",
		"minimum accepted CF conventions version (default from config)")

	return checkCmd
}

func newRunCheck(
	cgulWriter io.Writer, dataFS afero.Fs,
) func(*cobra.Command, []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		model, err := resolveCoordModel(cmd, dataFS, checkCoordModelFlag)
		if err != nil {
			return
		}

		minConventions := checkMinConventionsFlag
		if minConventions == "" {
			minConventions, err = utils.RequireConfigString("MinConventions")
			if err != nil {
				return
			}
		}

		// Conversion failures are reported as pending changes, not warnings.
		opts := harmonise.Options{Model: model, Mode: harmonise.Ignore}

		failed := 0
		for _, inputPath := range args {
			var ds *dataset.Dataset
			ds, err = dataset.Read(dataFS, inputPath)
			if err != nil {
				return
			}

			var problems []string
			if convErr := harmonise.CheckConventions(ds, minConventions); convErr != nil {
				problems = append(problems, convErr.Error())
			}
			var changes []string
			changes, err = harmonise.Plan(ds, opts)
			if err != nil {
				return
			}
			problems = append(problems, changes...)

			if len(problems) == 0 {
				fmt.Fprintf(cgulWriter, "✅ %s\n", inputPath)
				continue
			}
			failed++
			fmt.Fprintf(cgulWriter, "❌ %s:\n", inputPath)
			for _, problem := range problems {
				fmt.Fprintf(cgulWriter, "  - %s\n", problem)
			}
		}

		if failed > 0 {
			err = fmt.Errorf("%d of %d files failed the check", failed, len(args))
		}

		return
	}
}
