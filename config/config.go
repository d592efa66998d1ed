// Package config holds the viewer tool configuration.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Listen is the inspection server address, e.g. ":8000".
	Listen string `yaml:"listen"`
	// Models are glTF files loaded at startup.
	Models []string `yaml:"models"`
	// Dump names a mesh to spew-dump after loading.
	Dump string `yaml:"dump,omitempty"`
}

func Default() *Config {
	return &Config{Listen: ":8000"}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %q", path)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %q", path)
	}
	return cfg, nil
}
