package api

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/afero"
)

type remoteAPI struct {
	BaseURL *url.URL
	LocalFS afero.Fs
}

func (a remoteAPI) GetContents(path string) (found bool, contents []byte, err error) {
	var resp *http.Response
	resp, err = http.Get(a.BaseURL.ResolveReference(&url.URL{Path: path}).String())
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	contents, err = io.ReadAll(resp.Body)
	if err != nil {
		return
	}
	found = true

	return
}

// GetLocalFS returns the underlying local filesystem.
func (a remoteAPI) GetLocalFS() (fs afero.Fs) {
	return a.LocalFS
}

func (a remoteAPI) GetLocation() Location {
	return Remote
}

// The remote registry is read-only.
func (a remoteAPI) SaveContents(path string, contents []byte) (err error) {
	return fmt.Errorf("not implemented")
}

func NewRemoteAPI(localFS afero.Fs, remoteBaseURL string) (ModelAPI, error) {
	var baseURL *url.URL
	baseURL, err := url.Parse(remoteBaseURL)
	if err != nil {
		return nil, err
	}

	return &remoteAPI{
		LocalFS: localFS,
		BaseURL: baseURL,
	}, nil
}
