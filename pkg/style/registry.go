package style

import (
	"os"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/betterplot/pkg/errors"
)

// Registry is a table of named presets.
type Registry struct {
	mu      sync.RWMutex
	presets map[string]Config
}

// NewRegistry returns a registry holding the built-in presets.
func NewRegistry() *Registry {
	r := &Registry{presets: make(map[string]Config)}
	for _, c := range builtins() {
		r.presets[c.Name] = c
	}
	return r
}

// Register validates c and stores it under c.Name. Built-in presets cannot
// be replaced.
func (r *Registry) Register(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if IsBuiltin(c.Name) {
		return errors.New(errors.ErrCodeInvalidArgument, "cannot redefine built-in style %q", c.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[c.Name] = c.Clone()
	return nil
}

// Get returns a copy of the named preset. Unknown names fail with
// INVALID_ARGUMENT.
func (r *Registry) Get(name string) (Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.presets[name]
	if !ok {
		return Config{}, errors.New(errors.ErrCodeInvalidArgument, "unknown style %q", name)
	}
	return c.Clone(), nil
}

// Names returns the registered preset names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.presets))
	for n := range r.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadTOML decodes a style file and registers it. Fields the file leaves
// out are taken from the preset named by its "base" key, or from the
// default preset.
func (r *Registry) LoadTOML(data []byte) (Config, error) {
	var head struct {
		Base string `toml:"base"`
	}
	if err := toml.Unmarshal(data, &head); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse style file")
	}
	base := head.Base
	if base == "" {
		base = Default
	}
	c, err := r.Get(base)
	if err != nil {
		return Config{}, err
	}
	c.Name = ""
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse style file")
	}
	if err := r.Register(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadFile reads and registers a style file from disk.
func (r *Registry) LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "style file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeIO, err, "read style file %s", path)
	}
	return r.LoadTOML(data)
}

// IsBuiltin reports whether name is one of the built-in presets.
func IsBuiltin(name string) bool {
	switch name {
	case Default, Presentation, White, Latex:
		return true
	}
	return false
}
