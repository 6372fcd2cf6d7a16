package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectConfig_Missing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadProjectConfig()
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{}, cfg)
}

func TestLoadProjectConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	writeFile(t, filepath.Join(".techdocs", "config.yaml"), `
project_name: BusinessConnect
language: en
types_dir: src/types
stores_dir: src/state
`)

	cfg, err := loadProjectConfig()
	require.NoError(t, err)
	assert.Equal(t, &ProjectConfig{
		ProjectName: "BusinessConnect",
		Language:    "en",
		TypesDir:    "src/types",
		StoresDir:   "src/state",
	}, cfg)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "flag", resolve("flag", "config", "default"))
	assert.Equal(t, "config", resolve("", "config", "default"))
	assert.Equal(t, "default", resolve("", "", "default"))
}

func TestCommand_ParseInterleaved(t *testing.T) {
	cmd := newCommand("components", "techdocs components <directory>")
	output := cmd.fs.String("output", "", "")

	positional, err := cmd.parse([]string{"--verbose", "src", "--output", "out.json"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"src"}, positional)
	assert.Equal(t, "out.json", *output)
	assert.True(t, *cmd.verbose)
}
