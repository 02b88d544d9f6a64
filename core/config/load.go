package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load reads the configuration at path, which is either a config.yaml file
// or a directory containing one. Settings missing from the file keep their
// default values.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	dir, file := path, filepath.Join(path, ConfigurationName)
	if info, err := fsys.Stat(path); err == nil && !info.IsDir() {
		dir, file = filepath.Dir(path), path
	}

	configContents, err := afero.ReadFile(fsys, file)
	if err != nil {
		return nil, err
	}

	out := defaultConfig()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", file, err)
	}

	out.configFs = fsys
	out.configDir = dir
	return out, nil
}

// Initialize writes the default configuration to dir unless one already
// exists there, then loads it.
func Initialize(fsys afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	switch exists, err := afero.Exists(fsys, configPath); {
	case err != nil:
		return nil, err
	case exists:
		logger.Printf("%s already exists, leaving it alone", configPath)
	default:
		if err := afero.WriteFile(fsys, configPath, defaultConfigData, 0644); err != nil {
			return nil, err
		}
		logger.Printf("wrote default configuration to %s", configPath)
	}

	return Load(fsys, dir)
}
