package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"arenashooter/game"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DEFAULT []byte

var ErrUnsupportedFormat = errors.New("not in a valid format")

func decodeInto(cfg *game.Config, data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err := decoder.Decode(cfg)
	if errors.Is(err, io.EOF) {
		// Empty document
		return nil
	}
	return err
}

func readFile(cfg *game.Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("does not exist")
	}

	switch filepath.Ext(path) {
	// YAML is a superset of JSON, so one decoder covers both
	case ".yaml", ".yml", ".json":
	default:
		return ErrUnsupportedFormat
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return decodeInto(cfg, data)
}

// Default returns the embedded default configuration.
func Default() (game.Config, error) {
	var cfg game.Config
	if err := decodeInto(&cfg, DEFAULT); err != nil {
		return game.Config{}, fmt.Errorf("default config: %w", err)
	}
	return cfg, nil
}

// Process reads the provided configuration files in order and layers each
// one over the defaults. Keys a file leaves out keep their previous value.
// If no configuration files are provided, the default configuration is used.
func Process(configPaths []string) (*game.Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	for _, path := range configPaths {
		if err := readFile(&cfg, path); err != nil {
			return nil, fmt.Errorf("could not read %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
