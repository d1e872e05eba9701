package style

import "sync"

// The process-wide default configuration. Plot surfaces never read it
// implicitly: callers that do not hold a Config of their own pass
// Current().
var (
	global    = NewRegistry()
	currentMu sync.RWMutex
	current   = defaultPreset()
)

// Presets returns the process-wide registry.
func Presets() *Registry { return global }

// Use makes the named preset the process-wide default. Unknown names fail
// with INVALID_ARGUMENT and leave the current configuration untouched.
// Using the same preset twice leaves the same configuration as using it
// once.
func Use(name string) error {
	_, err := Apply(name)
	return err
}

// Apply is Use returning the configuration that is now current.
func Apply(name string) (Config, error) {
	c, err := global.Get(name)
	if err != nil {
		return Config{}, err
	}
	currentMu.Lock()
	defer currentMu.Unlock()
	current = c
	return c.Clone(), nil
}

// Current returns a copy of the process-wide default configuration.
func Current() Config {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current.Clone()
}

// SetCurrent validates c and makes it the process-wide default.
func SetCurrent(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	currentMu.Lock()
	defer currentMu.Unlock()
	current = c.Clone()
	return nil
}

// Get returns the named preset from the process-wide registry.
func Get(name string) (Config, error) { return global.Get(name) }

// LoadFile reads a style file and registers it in the process-wide
// registry.
func LoadFile(path string) (Config, error) { return global.LoadFile(path) }
