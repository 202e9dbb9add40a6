package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// configFileName is the name of the configuration file in the config directory.
const configFileName = "config.yaml"

// GetConfigDir returns the path to the tablectl configuration directory.
// TABLECTL_HOME takes precedence over ~/.tablectl.
func GetConfigDir(lookupEnv func(string) (string, bool)) (string, error) {
	if home, ok := lookupEnv("TABLECTL_HOME"); ok && home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tablectl"), nil
}

// DefaultPath returns the path of the global configuration file.
func DefaultPath(lookupEnv func(string) (string, bool)) (string, error) {
	dir, err := GetConfigDir(lookupEnv)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Resolve loads the configuration used by a command invocation: the file at
// path (or the global file when path is empty), overlaid with the nearest
// project file found from startDir, then environment overrides. The result is
// validated.
func Resolve(path, startDir string, lookupEnv func(string) (string, bool)) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(lookupEnv); err != nil {
			return nil, err
		}
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if overlay := FindProjectFile(startDir); overlay != "" {
		if err = ShallowMergeYAML(cfg, overlay); err != nil {
			return nil, err
		}
	}

	if err = cfg.ApplyEnv(lookupEnv); err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
