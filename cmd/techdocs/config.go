package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// defaultProjectName is shown on the cover when neither --name nor the
// config file names the project.
const defaultProjectName = "BusinessConnect"

// configPath is relative to the working directory.
var configPath = filepath.Join(".techdocs", "config.yaml")

// ProjectConfig holds the contents of .techdocs/config.yaml.
type ProjectConfig struct {
	ProjectName string `yaml:"project_name"`
	Language    string `yaml:"language"`
	TypesDir    string `yaml:"types_dir"`
	StoresDir   string `yaml:"stores_dir"`
}

// loadProjectConfig reads .techdocs/config.yaml from the current directory.
// A missing file yields the zero config.
func loadProjectConfig() (*ProjectConfig, error) {
	var cfg ProjectConfig
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	return &cfg, nil
}

// resolve applies the fallback chain: explicit flag, then config value,
// then the built-in default.
func resolve(flagValue, configValue, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return def
}
