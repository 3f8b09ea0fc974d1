// Package profiles loads named strategy profiles from a YAML file. A profile
// bundles the splitter/strategy settings and the fee model for one class of
// inventory, so callers construct immutable per-call configuration from a
// preset instead of assembling loose fields.
package profiles

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/crosslist/pricer/internal/pricing"
)

// Profile is one named pricing configuration.
type Profile struct {
	Settings pricing.Settings    `yaml:"settings"`
	Floor    pricing.FloorInputs `yaml:"floor"`
}

// File is the parsed profiles document.
type File struct {
	Default  string             `yaml:"default"`
	Profiles map[string]Profile `yaml:"profiles"`
}

// Load reads and validates a profiles YAML file. Every profile must pass the
// pricing validation rules; a misconfigured fee model is rejected here, once,
// rather than on every pricing call.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse profiles file: %w", err)
	}

	if len(f.Profiles) == 0 {
		return nil, fmt.Errorf("profiles file %s defines no profiles", path)
	}
	for name, p := range f.Profiles {
		if err := p.Settings.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		if err := p.Floor.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
	}
	if f.Default == "" {
		return nil, fmt.Errorf("profiles file %s has no default profile", path)
	}
	if _, ok := f.Profiles[f.Default]; !ok {
		return nil, fmt.Errorf("default profile %q is not defined", f.Default)
	}
	return &f, nil
}

// Get returns the named profile, falling back to the default when name is
// empty. Unknown names are an error: silently pricing with the wrong fee
// model is worse than failing the request.
func (f *File) Get(name string) (Profile, error) {
	if name == "" {
		name = f.Default
	}
	p, ok := f.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown pricing profile %q", name)
	}
	return p, nil
}
