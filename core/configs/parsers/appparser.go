// Package parsers reads the application configuration files and fills in
// the defaults of the Fabric test network for anything the file omits.
package parsers

import (
	"asset-transfer-client/core/configs"
	"asset-transfer-client/core/configs/validators"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ParseAppConfig parses the application configuration file.
// An empty path returns the defaults.
func ParseAppConfig(filePath string) (*configs.AppConfig, error) {
	if filePath == "" {
		config := configs.Default()
		return config, validate(config)
	}

	// Get the bytes of the file
	configFileBytes, err := ioutil.ReadFile(filePath)

	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}

	config, err := parseAppYaml(configFileBytes)

	if err != nil {
		return nil, err
	}

	config.Path = filePath

	return config, nil
}

// parseAppYaml unmarshals on top of the defaults, so a partial file only
// overrides the fields it names.
func parseAppYaml(fileContents []byte) (*configs.AppConfig, error) {
	appConfig := configs.Default()

	err := yaml.Unmarshal(fileContents, appConfig)

	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	return appConfig, validate(appConfig)
}

func validate(config *configs.AppConfig) error {
	if ok, err := validators.ValidateAppConfig(config); !ok {
		return err
	}
	return nil
}
