package registry

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed demos.yaml
var builtinYAML []byte

var (
	builtinOnce sync.Once
	builtinReg  *Registry
	builtinErr  error
)

// document is the on-disk registry layout.
type document struct {
	Demos []DemoConfig `yaml:"demos"`
}

// Builtin returns the registry of the five shipped demos.
func Builtin() (*Registry, error) {
	builtinOnce.Do(func() {
		builtinReg, builtinErr = Parse(builtinYAML)
		if builtinErr != nil {
			builtinErr = fmt.Errorf("failed to parse built-in registry: %w", builtinErr)
		}
	})
	return builtinReg, builtinErr
}

// Parse validates data against the registry schema and decodes it.
func Parse(data []byte) (*Registry, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}
	return New(doc.Demos...)
}

// Load reads a registry YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return r, nil
}

// LoadOrBuiltin loads path, or returns the built-in registry when path is empty.
func LoadOrBuiltin(path string) (*Registry, error) {
	if path == "" {
		return Builtin()
	}
	return Load(path)
}
