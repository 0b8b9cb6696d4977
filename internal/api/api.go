// Package api provides access to the coordinate-model registry, either on
// the local filesystem or at a remote HTTP endpoint.
package api

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ecmwf-projects/cgul/internal/utils"
)

// Location represents the location of the registry, currently remote or local.
type Location uint32

const (
	// Local represents the local registry location.
	Local Location = iota
	// Remote represents the remote registry location.
	Remote
)

// ModelAPI defines the interface that all model registries need to implement.
type ModelAPI interface {
	GetContents(path string) (found bool, contents []byte, err error)
	GetLocalFS() afero.Fs
	GetLocation() Location

	SaveContents(path string, data []byte) error
}

// New returns a new registry instance, based on the specified command line
// flags and the default location.
func New(localFS afero.Fs, cmd *cobra.Command, defaultLocation Location) (ModelAPI, error) {
	remoteFlag, err := cmd.Flags().GetBool("remote")
	if err != nil {
		return nil, err
	}

	if remoteFlag || defaultLocation == Remote {
		remoteBaseURL, err := utils.RequireConfigString("RemoteModelBaseURL")
		if err != nil {
			return nil, err
		}
		return NewRemoteAPI(localFS, remoteBaseURL)
	}

	localBasePath, err := utils.RequireConfigString("LocalModelBasePath")
	if err != nil {
		return nil, err
	}
	return NewLocalAPI(localFS, localBasePath)
}
