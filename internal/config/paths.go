// Package config manages modunpack configuration and filesystem paths.
//
// Configuration is read from a TOML file, overridden by MODUNPACK_*
// environment variables and finally by command-line flags. The default
// configuration home is $XDG_CONFIG_HOME/modunpack (or the platform
// equivalent) and can be moved with MODUNPACK_HOME.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// AppName is the application name.
	AppName = "modunpack"

	// ConfigFileName is the name of the config file inside the config home.
	ConfigFileName = "config.toml"

	// LocalConfigFileName is the config file picked up from the working directory.
	LocalConfigFileName = "modunpack.toml"

	// RunsDirName is the directory of run records inside the config home.
	RunsDirName = "runs"

	// HomeEnv overrides the config home directory.
	HomeEnv = "MODUNPACK_HOME"
)

// Paths contains the filesystem paths used by modunpack.
type Paths struct {
	// Root is the config home (default: <user config dir>/modunpack)
	Root string

	// Config is the path to the global config file
	Config string

	// Runs holds the record of the last run
	Runs string
}

// DefaultPaths returns the default paths for modunpack.
// Paths can be overridden with environment variables:
// - MODUNPACK_HOME: Override the config home directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(HomeEnv)
	if root == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user config directory: %w", err)
		}
		root = filepath.Join(dir, AppName)
	}

	return &Paths{
		Root:   root,
		Config: filepath.Join(root, ConfigFileName),
		Runs:   filepath.Join(root, RunsDirName),
	}, nil
}

// EnsureRoot creates the config home if it doesn't exist.
func (p *Paths) EnsureRoot() error {
	if err := os.MkdirAll(p.Root, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.Root, err)
	}
	return nil
}

// ResolveConfigFile picks the config file to load. An explicit path wins,
// then ./modunpack.toml, then the global config file. An empty result means
// no file was found and defaults apply.
func (p *Paths) ResolveConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if !fileExists(explicit) {
			return "", fmt.Errorf("%w: config file not found: %s", ErrInvalidConfig, explicit)
		}
		return explicit, nil
	}
	if fileExists(LocalConfigFileName) {
		return LocalConfigFileName, nil
	}
	if fileExists(p.Config) {
		return p.Config, nil
	}
	return "", nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
