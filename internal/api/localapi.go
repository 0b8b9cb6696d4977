package api

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
)

type localAPI struct {
	BasePath string
	LocalFS  afero.Fs
}

func (a localAPI) GetContents(relativePath string) (found bool, contents []byte, err error) {
	absolutePath := path.Join(a.BasePath, relativePath)

	contents, err = afero.ReadFile(a.LocalFS, absolutePath)
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
		return
	}
	found = true

	return
}

func (a localAPI) GetLocalFS() afero.Fs {
	return a.LocalFS
}

func (a localAPI) GetLocation() Location {
	return Local
}

// SaveContents writes the given contents to a file at the given path.
func (a localAPI) SaveContents(relativePath string, contents []byte) (err error) {
	absolutePath := path.Join(a.BasePath, relativePath)
	err = a.LocalFS.MkdirAll(filepath.Dir(absolutePath), 0755)
	if err != nil {
		return
	}
	err = afero.WriteFile(a.LocalFS, absolutePath, contents, 0644)
	if err != nil {
		return
	}
	return
}

// NewLocalAPI returns a new local registry instance.
func NewLocalAPI(localFS afero.Fs, basePath string) (ModelAPI, error) {
	return &localAPI{
		BasePath: basePath,
		LocalFS:  localFS,
	}, nil
}
