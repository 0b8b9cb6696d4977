package api

import (
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func Test_localAPI_GetLocalFS(t *testing.T) {
	testFS := afero.NewMemMapFs()

	a := localAPI{
		BasePath: "",
		LocalFS:  testFS,
	}
	if got := a.GetLocalFS(); !reflect.DeepEqual(got, testFS) {
		t.Errorf("localAPI.GetLocalFS() = %v, want %v", got, testFS)
	}
}

func Test_localAPI_GetLocation(t *testing.T) {
	a := localAPI{}
	if got := a.GetLocation(); got != Local {
		t.Errorf("localAPI.GetLocation() = %v, want %v", got, Local)
	}
}

func Test_localAPI_GetContents(t *testing.T) {
	testFS := afero.NewMemMapFs()
	err := afero.WriteFile(testFS, "/models/cads.yaml", []byte("contents"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	a := localAPI{BasePath: "/models", LocalFS: testFS}

	found, contents, err := a.GetContents("cads.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !found || string(contents) != "contents" {
		t.Errorf("GetContents() = %v, %q", found, contents)
	}

	found, _, err = a.GetContents("nope.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("GetContents() found a file that does not exist")
	}
}
