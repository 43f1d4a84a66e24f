// Package config provides the Livemark configuration system.
//
// Settings are merged from layers in increasing priority:
//
//   - built-in defaults
//   - the user file (~/.config/livemark/config.toml or .yaml)
//   - the project file (.livemark.toml or .livemark.yaml)
//   - LIVEMARK_ environment variables
//   - command-line overrides
//
// Basic usage:
//
//	cfg := config.New(config.WithProjectPath(".livemark.toml"))
//	if err := cfg.Load(); err != nil {
//	    return err
//	}
//	s := cfg.Settings()
//
// Live reload watches the file layers with fsnotify and hands each valid
// reloaded Settings to the registered listeners:
//
//	cfg.OnReload(func(s config.Settings) { ... })
//	cfg.Watch()
//	defer cfg.Close()
package config
