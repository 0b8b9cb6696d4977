package api

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ecmwf-projects/cgul/internal/coordmodel"
)

// GetModel returns the coordinate model with the given name from the registry.
func GetModel(modelAPI ModelAPI, name string) (model *coordmodel.Model, err error) {
	var found bool
	var contents []byte
	found, contents, err = modelAPI.GetContents(name + ".yaml")
	if err != nil {
		return
	}
	if !found {
		err = fmt.Errorf("coordinate model %s %w", name, NotFoundError{})
		return
	}

	model, err = coordmodel.Decode(contents)

	return
}

// SaveModel writes the coordinate model with the given name to the registry.
func SaveModel(modelAPI ModelAPI, name string, model *coordmodel.Model) (err error) {
	yamlBuffer := &bytes.Buffer{}

	yamlEncoder := yaml.NewEncoder(yamlBuffer)
	yamlEncoder.SetIndent(2)
	err = yamlEncoder.Encode(model)
	if err != nil {
		return
	}
	err = yamlEncoder.Close()
	if err != nil {
		return
	}

	err = modelAPI.SaveContents(name+".yaml", yamlBuffer.Bytes())
	if err != nil {
		return
	}

	return
}
