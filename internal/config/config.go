package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/livemark/internal/config/layer"
	"github.com/dshills/livemark/internal/config/loader"
	"github.com/dshills/livemark/internal/config/notify"
	"github.com/dshills/livemark/internal/config/watcher"
)

// ReloadListener receives the settings produced by a successful reload.
type ReloadListener func(Settings)

// ErrorListener receives reload failures. The previous settings stay active.
type ErrorListener func(error)

// Config loads, merges and reloads Livemark settings.
type Config struct {
	mu sync.RWMutex

	layers   *layer.Manager
	notifier *notify.Notifier
	watcher  *watcher.Watcher

	userPath    string
	projectPath string
	env         *loader.EnvLoader
	args        map[string]any

	settings Settings
	merged   map[string]any
	loaded   bool

	listeners []ReloadListener
	onError   ErrorListener
}

// Option configures a Config instance.
type Option func(*Config)

// WithUserPath sets the user configuration file. An empty path disables the
// user layer.
func WithUserPath(path string) Option {
	return func(c *Config) {
		c.userPath = path
	}
}

// WithProjectPath sets the project configuration file.
func WithProjectPath(path string) Option {
	return func(c *Config) {
		c.projectPath = path
	}
}

// WithEnvLoader replaces the environment loader. Nil disables the layer.
func WithEnvLoader(l *loader.EnvLoader) Option {
	return func(c *Config) {
		c.env = l
	}
}

// WithOverride sets a command-line override, e.g.
// WithOverride("logging.level", "debug").
func WithOverride(path string, value any) Option {
	return func(c *Config) {
		layer.SetByPath(c.args, path, value)
	}
}

// WithErrorListener sets the callback for failed reloads.
func WithErrorListener(l ErrorListener) Option {
	return func(c *Config) {
		c.onError = l
	}
}

// New creates a Config. Nothing is read until Load.
func New(opts ...Option) *Config {
	c := &Config{
		layers:   layer.NewManager(),
		notifier: notify.New(),
		userPath: DefaultUserPath(),
		env:      loader.NewEnvLoader(loader.DefaultEnvPrefix),
		args:     make(map[string]any),
		settings: Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultUserPath returns ~/.config/livemark/config.toml, or the YAML file
// next to it if only that exists. Returns "" if no config dir is known.
func DefaultUserPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	base := filepath.Join(dir, "livemark")
	yml := filepath.Join(base, "config.yaml")
	if _, err := os.Stat(yml); err == nil {
		return yml
	}
	return filepath.Join(base, "config.toml")
}

// Load reads every layer, validates the merged result and makes it current.
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.layers.Clear()
	c.layers.AddLayer(layer.New(layer.SourceBuiltin, defaultMap()))

	for _, f := range []struct {
		source layer.Source
		path   string
	}{
		{layer.SourceUser, c.userPath},
		{layer.SourceProject, c.projectPath},
	} {
		if err := c.loadFileLocked(f.source, f.path); err != nil {
			return err
		}
	}

	if c.env != nil {
		data, err := c.env.Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		c.layers.AddLayer(layer.New(layer.SourceEnv, data))
	}
	c.layers.AddLayer(layer.New(layer.SourceArgs, loader.Clone(c.args)))

	merged := c.layers.Merge()
	s, err := decode(merged)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	c.settings, c.merged, c.loaded = s, merged, true
	return nil
}

func (c *Config) loadFileLocked(source layer.Source, path string) error {
	if path == "" {
		return nil
	}
	ld, err := loader.ForPath(path)
	if err != nil {
		return err
	}
	data, err := ld.Load()
	if err != nil {
		return err
	}
	// Missing files still get an empty layer so a later create is picked up
	// by Reload.
	c.layers.AddLayer(layer.FromFile(source, path, data))
	return nil
}

// Reload re-reads the file layers. On success the new settings become
// current, path observers are notified of each changed value and reload
// listeners are called. On failure the previous settings are kept.
func (c *Config) Reload() error {
	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}

	prevLayers := c.layers.Layers()
	restore := func() {
		c.layers.Clear()
		for _, l := range prevLayers {
			c.layers.AddLayer(l)
		}
	}

	for _, l := range prevLayers {
		if l.Path == "" {
			continue
		}
		if err := c.loadFileLocked(l.Source, l.Path); err != nil {
			restore()
			c.mu.Unlock()
			return err
		}
	}

	merged := c.layers.Merge()
	s, err := decode(merged)
	if err == nil {
		err = s.Validate()
	}
	if err != nil {
		restore()
		c.mu.Unlock()
		return err
	}

	old := c.merged
	c.settings, c.merged = s, merged
	listeners := make([]ReloadListener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	c.notifier.NotifyDiff(old, merged, "reload")
	for _, l := range listeners {
		l(s)
	}
	return nil
}

// Settings returns the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.settings
	s.Plugins.Scripts = append([]string(nil), c.settings.Plugins.Scripts...)
	return s
}

// Get returns a merged value by dot-separated path.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return layer.GetByPath(c.merged, path)
}

// Source returns the name of the layer providing the value at path.
func (c *Config) Source(path string) string {
	return c.layers.WhichLayer(path)
}

// Files returns the configured file paths, lowest priority first.
func (c *Config) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var files []string
	for _, p := range []string{c.userPath, c.projectPath} {
		if p != "" {
			files = append(files, p)
		}
	}
	return files
}

// OnReload registers a listener for successful reloads.
func (c *Config) OnReload(l ReloadListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// SubscribePath registers an observer for changes at or below path.
func (c *Config) SubscribePath(path string, o notify.Observer) *notify.Subscription {
	return c.notifier.SubscribePath(path, o)
}

// Watch starts watching the configuration files and reloads on change.
// Files whose directory does not exist are skipped.
func (c *Config) Watch(opts ...watcher.Option) error {
	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	if c.watcher != nil {
		c.mu.Unlock()
		return nil
	}
	w, err := watcher.New(opts...)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("creating config watcher: %w", err)
	}
	c.watcher = w
	c.mu.Unlock()

	for _, f := range c.Files() {
		if _, err := os.Stat(filepath.Dir(f)); err != nil {
			continue
		}
		if err := w.Watch(f); err != nil {
			return fmt.Errorf("watching %s: %w", f, err)
		}
	}
	w.OnChange(func(watcher.Event) {
		if err := c.Reload(); err != nil {
			c.reportError(err)
		}
	})
	return w.Start()
}

func (c *Config) reportError(err error) {
	c.mu.RLock()
	h := c.onError
	c.mu.RUnlock()
	if h != nil {
		h(err)
	}
}

// Close stops the file watcher.
func (c *Config) Close() error {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		return w.Stop()
	}
	return nil
}
