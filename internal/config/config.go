package config

import (
	"os"
	"path/filepath"
)

// AppName is the name of the application
const AppName = "vmforge"

// Config holds the application's configuration.
type Config struct {
	workDir string
	homeDir string
}

// New creates a new Config instance. The working directory is where the ISO
// and the block-storage image end up; both directories can be overridden
// through environment variables, which is useful for testing.
var New = func() (*Config, error) {
	workDir := os.Getenv("VMFORGE_DIR")
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}

	homeDir := os.Getenv("VMFORGE_HOME")
	if homeDir == "" {
		var err error
		homeDir, err = os.UserHomeDir()
		if err != nil {
			return nil, err
		}
	}

	return &Config{workDir: workDir, homeDir: homeDir}, nil
}

// WorkDir returns the directory artifacts are written to.
func (c *Config) WorkDir() string {
	return c.workDir
}

// SetWorkDir sets the working directory.
func (c *Config) SetWorkDir(dir string) {
	c.workDir = dir
}

// SetHomeDir sets the home directory.
func (c *Config) SetHomeDir(dir string) {
	c.homeDir = dir
}

// GetAppDir returns the path to the application's hidden directory.
func (c *Config) GetAppDir() string {
	return filepath.Join(c.homeDir, "."+AppName)
}

// CatalogPath returns the path of the optional user catalog file that is
// merged over the built-in distribution entries.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.GetAppDir(), "catalog.yaml")
}
