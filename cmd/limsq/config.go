package main

import (
	"io"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/openlims/lims-client/pkg/lims/entities"
)

type Config struct {
	BaseURL  string `yaml:"baseurl"`
	Version  string `yaml:"version"`
	Username string `yaml:"username"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {

	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Version: entities.DefaultAPIVersion}
	err = yaml.Unmarshal(buf, &cfg)

	return cfg, err
}

func LoadConfigurationFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadConfiguration(f)
}
