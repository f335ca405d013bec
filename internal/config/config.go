// Package config loads the optional velac.yaml compiler configuration file.
// Grounded on ailang's internal/eval_harness/models.go and spec.go, which
// load run configuration the same way: a plain struct with `yaml` tags,
// read with os.ReadFile and gopkg.in/yaml.v3.Unmarshal, returning an error
// wrapped with context rather than a bare yaml.UnmarshalError.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultIntSign is spelled "signed" or "unsigned" and DefaultIntSize is a
// plain bit width, so this package doesn't need to import internal/ast.
// The driver reads only EmitIR; the two integer defaults are parsed but
// not applied anywhere.
type Config struct {
	DefaultIntSign string `yaml:"default_int_sign"`
	DefaultIntSize int    `yaml:"default_int_size"`
	EmitIR         bool   `yaml:"emit_ir"`
}

// Default returns the compiled-in defaults applied when no velac.yaml is
// present, matching spec.md §3's numeric-default invariant (signed,
// 32-bit).
func Default() *Config {
	return &Config{
		DefaultIntSign: "signed",
		DefaultIntSize: 32,
	}
}

// Load reads and parses the velac.yaml at path. A missing file is not an
// error: it returns the compiled-in Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
