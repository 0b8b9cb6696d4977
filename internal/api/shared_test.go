package api_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/spf13/afero"

	"github.com/ecmwf-projects/cgul/internal/api"
)

const registryBasePath = "/cgul/models/v0"

type registryContents []registryFile

type registryFile struct {
	Path     string
	Contents string
}

const cadsLikeModelYAML = `always_lower_case: true
coordinates:
  lat:
    out_name: latitude
    units: degrees_north
  lon:
    out_name: longitude
    units: degrees_east
`

func setupTest(location api.Location, contents registryContents) (
	modelAPI api.ModelAPI, registryServer *httptest.Server, err error,
) {
	localFS := afero.NewMemMapFs()

	for _, f := range contents {
		err = afero.WriteFile(localFS, f.Path, []byte(f.Contents), 0644)
		if err != nil {
			return
		}
	}

	if location == api.Remote {
		fileServer := http.FileServer(afero.NewHttpFs(localFS).Dir(registryBasePath))
		registryServer = httptest.NewServer(fileServer)

		modelAPI, err = api.NewRemoteAPI(localFS, registryServer.URL)
		if err != nil {
			return
		}

		return
	}

	if location == api.Local {
		modelAPI, err = api.NewLocalAPI(localFS, registryBasePath)
		if err != nil {
			return
		}
	}

	return
}
