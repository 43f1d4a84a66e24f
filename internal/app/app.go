// Package app provides the main application structure and coordination
// for livemark. It wires configuration, logging, Lua hooks, the autoformat
// dispatcher and the editor together and runs the terminal event loop.
package app

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/livemark/internal/autoformat"
	"github.com/dshills/livemark/internal/config"
	"github.com/dshills/livemark/internal/engine"
	"github.com/dshills/livemark/internal/export"
	"github.com/dshills/livemark/internal/plugin"
	"github.com/dshills/livemark/internal/renderer"
)

// ProjectConfigFile is looked up in the working directory at startup.
const ProjectConfigFile = ".livemark.toml"

// Options configures the application.
type Options struct {
	// ConfigPath replaces the user configuration file.
	ConfigPath string

	// LogLevel overrides logging.level from the configuration.
	LogLevel string

	// LogFile overrides logging.file from the configuration.
	LogFile string

	// Debug forces debug logging.
	Debug bool

	// LogOutput receives log lines when no log file is configured.
	// Defaults to io.Discard so the terminal screen is not disturbed.
	LogOutput io.Writer

	// OutputPath receives the document as markdown, or HTML for .html
	// paths, on Ctrl-S and when the event loop exits.
	OutputPath string

	// ProjectDir is searched for ProjectConfigFile. Defaults to the working
	// directory.
	ProjectDir string
}

// Application is the central coordinator for all livemark components.
type Application struct {
	mu sync.Mutex

	opts Options

	logger  *Logger
	logFile *os.File

	config     *config.Config
	plugins    *plugin.Manager
	dispatcher *autoformat.Dispatcher
	editor     *engine.Editor

	screen   tcell.Screen
	renderer *renderer.Renderer

	running  atomic.Bool
	quit     atomic.Bool
	stopOnce sync.Once
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		app.release()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	app.config = config.New(app.configOptions()...)
	if err := app.config.Load(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	settings := app.config.Settings()

	// 2. Logger
	out := app.opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	if settings.Logging.File != "" {
		f, err := os.OpenFile(settings.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return &InitError{Component: "log file", Err: err}
		}
		app.logFile = f
		out = f
	}
	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(settings.Logging.Level),
		Output: out,
		Prefix: "livemark",
	})
	SetLogger(app.logger)
	app.logger.Debug("config loaded from %v", app.config.Files())

	// 3. Plugins
	pluginLog := app.logger.WithComponent("plugin")
	app.plugins = plugin.NewManager(
		plugin.WithLogger(pluginLog),
		plugin.WithRules(settings.Rules()...),
	)
	app.plugins.OnEvent(func(ev plugin.ManagerEvent) {
		if ev.Error != nil {
			pluginLog.WithField("script", ev.Script).Warn("%s: %v", ev.Type, ev.Error)
			return
		}
		pluginLog.WithField("script", ev.Script).Debug("%s", ev.Type)
	})
	if err := app.plugins.LoadAll(settings.Plugins.Scripts); err != nil {
		// Scripts that fail to load are skipped.
		pluginLog.Warn("%v", NewComponentError("plugin", "load", err))
	}

	// 4. Dispatcher
	app.dispatcher = autoformat.New(
		autoformat.WithRules(settings.Rules()...),
		autoformat.WithLogger(app.logger.WithComponent("autoformat")),
		autoformat.WithFilter(app.plugins),
		autoformat.WithObserver(app.plugins),
		autoformat.WithMetrics(),
	)

	// 5. Editor
	app.editor = engine.New(
		engine.WithDispatcher(app.dispatcher),
		engine.WithLogger(app.logger.WithComponent("editor")),
		engine.WithMaxUndoEntries(settings.History.MaxEntries),
	)
	app.editor.AddListener(func(c engine.Change) {
		if c.Rule != "" {
			app.setStatus("formatted: " + c.Rule)
		}
	})

	app.config.OnReload(app.applySettings)
	return nil
}

func (app *Application) configOptions() []config.Option {
	opts := []config.Option{
		config.WithErrorListener(func(err error) {
			if app.logger != nil {
				app.logger.WithComponent("config").Warn("reload failed: %v", err)
			}
			app.setStatus("config: " + err.Error())
		}),
	}
	if app.opts.ConfigPath != "" {
		opts = append(opts, config.WithUserPath(app.opts.ConfigPath))
	}

	dir := app.opts.ProjectDir
	if dir == "" {
		dir, _ = os.Getwd()
	}
	if dir != "" {
		project := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(project); err == nil {
			opts = append(opts, config.WithProjectPath(project))
		}
	}

	switch {
	case app.opts.Debug:
		opts = append(opts, config.WithOverride("logging.level", "debug"))
	case app.opts.LogLevel != "":
		opts = append(opts, config.WithOverride("logging.level", app.opts.LogLevel))
	}
	if app.opts.LogFile != "" {
		opts = append(opts, config.WithOverride("logging.file", app.opts.LogFile))
	}
	return opts
}

// applySettings pushes reloaded settings into the running components.
// The log file is only opened at startup.
func (app *Application) applySettings(s config.Settings) {
	app.logger.SetLevel(ParseLogLevel(s.Logging.Level))
	app.dispatcher.SetRules(s.Rules()...)
	app.editor.SetMaxUndoEntries(s.History.MaxEntries)
	if err := app.plugins.Reload(s.Plugins.Scripts); err != nil {
		app.logger.WithComponent("plugin").Warn("%v", NewComponentError("plugin", "reload", err))
	}
	app.logger.Info("configuration reloaded")
	app.setStatus("configuration reloaded")
	app.redraw()
}

// SetScreen sets the terminal screen.
// Must be called before Run().
func (app *Application) SetScreen(s tcell.Screen) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.screen = s
	return nil
}

// Run starts the application main loop.
// Blocks until the user quits or Shutdown is called.
func (app *Application) Run() (err error) {
	app.mu.Lock()
	screen := app.screen
	app.mu.Unlock()
	if screen == nil {
		return ErrNoScreen
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	app.quit.Store(false)

	if err := screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer screen.Fini()

	app.mu.Lock()
	app.renderer = renderer.New(screen)
	app.mu.Unlock()

	if err := app.config.Watch(); err != nil {
		app.logger.WithComponent("config").Warn("not watching config files: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			app.logger.Error("%v", err)
		}
	}()

	app.logger.Info("started")
	if err := app.eventLoop(screen); err != nil {
		return err
	}
	if app.opts.OutputPath != "" {
		return app.Save()
	}
	return nil
}

// Save writes the document to OutputPath.
func (app *Application) Save() error {
	if app.opts.OutputPath == "" {
		return ErrNoOutput
	}
	if err := export.WriteFile(app.opts.OutputPath, app.editor.State().Document()); err != nil {
		return NewComponentError("export", "save", err)
	}
	app.logger.Info("saved %s", app.opts.OutputPath)
	return nil
}

// eventLoop renders, then blocks on the next terminal event.
func (app *Application) eventLoop(screen tcell.Screen) error {
	for !app.quit.Load() {
		app.render()

		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if err := app.handleKey(ev); errors.Is(err, ErrQuit) {
				return nil
			}
		}
	}
	return nil
}

func (app *Application) render() {
	app.mu.Lock()
	r := app.renderer
	app.mu.Unlock()
	if r != nil {
		r.Render(app.editor.State())
	}
}

func (app *Application) setStatus(msg string) {
	app.mu.Lock()
	r := app.renderer
	app.mu.Unlock()
	if r != nil {
		r.SetStatus(msg)
	}
}

// redraw wakes the event loop from another goroutine.
func (app *Application) redraw() {
	app.mu.Lock()
	s := app.screen
	app.mu.Unlock()
	if s != nil && app.running.Load() {
		_ = s.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// Shutdown stops the event loop if it is running and releases resources.
// Safe to call more than once.
func (app *Application) Shutdown() {
	if app.running.Load() {
		app.quit.Store(true)
		app.redraw()
		return
	}
	app.release()
}

// release performs cleanup in reverse initialization order.
func (app *Application) release() {
	app.stopOnce.Do(func() {
		if app.dispatcher != nil && app.logger != nil {
			if m := app.dispatcher.Metrics(); m != nil {
				app.logger.Info("keystrokes=%d formatted=%d", m.TotalKeystrokes(), m.TotalHandled())
			}
		}
		if app.config != nil {
			if err := app.config.Close(); err != nil && app.logger != nil {
				app.logger.Warn("closing config watcher: %v", err)
			}
		}
		if app.plugins != nil {
			app.plugins.Close()
		}
		if app.logFile != nil {
			_ = app.logFile.Close()
		}
	})
}

// IsRunning returns true if the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Editor returns the editor.
func (app *Application) Editor() *engine.Editor {
	return app.editor
}

// Config returns the configuration system.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	if app.logger == nil {
		return GetLogger()
	}
	return app.logger
}
