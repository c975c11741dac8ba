package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	partwireerrors "github.com/alexisbeaulieu97/partwire/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseManifest loads a manifest file from disk, validates it, and returns the resulting model.
func ParseManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, partwireerrors.NewParseError(path, 0, err)
	}
	return LoadManifest(path, data)
}

// LoadManifest decodes and validates manifest content. source is only used in error messages.
func LoadManifest(source string, data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, partwireerrors.NewParseError(source, extractLine(err), err)
	}

	if err := ValidateManifest(&manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
