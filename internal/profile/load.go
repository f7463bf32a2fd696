package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// profileExtensions are tried in order when resolving a profile file.
// YAML is a superset of JSON, so legacy .json profile files parse unchanged.
var profileExtensions = []string{".yaml", ".yml", ".json"}

// Resolve returns the profile for name. When dir is non-empty, a profile
// file <dir>/<name>.{yaml,yml,json} takes precedence over builtins.
// Unknown names yield an error wrapping ErrUnknown.
func Resolve(name, dir string) (*Profile, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknown)
	}

	if dir != "" {
		for _, ext := range profileExtensions {
			path := filepath.Join(dir, key+ext)
			if _, err := os.Stat(path); err == nil {
				return Load(path)
			}
		}
	}

	if build, ok := builtins[key]; ok {
		return build(), nil
	}
	return nil, fmt.Errorf("%w: %q (available: %s)",
		ErrUnknown, name, strings.Join(BuiltinNames(), ", "))
}

// Load reads and validates a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return &p, nil
}
