package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ecmwf-projects/cgul/internal/api"
	"github.com/ecmwf-projects/cgul/internal/coordmodel"
)

func checkArgs() cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) (err error) {
		if len(args) == 0 {
			err = fmt.Errorf("no file specified")
		}
		return
	}
}

// resolveCoordModel loads the coordinate model for a --coord-model value:
// empty or "cads" means the builtin CADS model, a value with a path
// separator or YAML extension is read as a file, anything else is looked up
// in the model registry.
func resolveCoordModel(
	cmd *cobra.Command, dataFS afero.Fs, name string,
) (*coordmodel.Model, error) {
	if name == "" || name == "cads" {
		return coordmodel.CADS(), nil
	}

	if strings.ContainsAny(name, `/\`) ||
		strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		data, err := afero.ReadFile(dataFS, name)
		if err != nil {
			return nil, fmt.Errorf("reading coordinate model %s: %w", name, err)
		}
		return coordmodel.Decode(data)
	}

	modelAPI, err := api.New(dataFS, cmd, api.Local)
	if err != nil {
		return nil, err
	}
	return api.GetModel(modelAPI, name)
}

// outputPath derives the default output path for an input path by adding
// the suffix before the extension. Bundle extensions like .tar.gz are kept
// intact.
func outputPath(input, suffix string) string {
	lowered := strings.ToLower(input)
	for _, bundleExt := range []string{".tar.gz", ".tgz", ".zip", ".tar"} {
		if strings.HasSuffix(lowered, bundleExt) {
			return input[:len(input)-len(bundleExt)] + suffix + bundleExt
		}
	}
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}
