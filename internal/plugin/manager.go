package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/livemark/internal/autoformat"
	"github.com/dshills/livemark/internal/autoformat/detect"
	"github.com/dshills/livemark/internal/plugin/lua"
)

// Hook function names looked up in each script.
const (
	FilterHook   = "should_format"
	ObserverHook = "on_format"
)

// Logger is the logging surface the manager needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// EventHandler handles plugin manager events.
// Handlers must not call back into the Manager.
type EventHandler func(event ManagerEvent)

// ManagerEvent represents a plugin manager event.
type ManagerEvent struct {
	Type   ManagerEventType
	Script string
	Error  error
}

// ManagerEventType is the type of manager event.
type ManagerEventType int

const (
	// EventScriptLoaded is emitted when a script is loaded.
	EventScriptLoaded ManagerEventType = iota
	// EventScriptUnloaded is emitted when scripts are dropped on reload or close.
	EventScriptUnloaded
	// EventScriptError is emitted when a hook call fails.
	EventScriptError
)

// String returns a string representation of the event type.
func (t ManagerEventType) String() string {
	switch t {
	case EventScriptLoaded:
		return "loaded"
	case EventScriptUnloaded:
		return "unloaded"
	case EventScriptError:
		return "error"
	default:
		return "unknown"
	}
}

// script is one loaded hook script.
type script struct {
	name     string
	path     string
	state    *lua.State
	filter   bool
	observer bool
}

// Manager owns the loaded hook scripts.
type Manager struct {
	mu       sync.RWMutex
	scripts  []*script
	handlers []EventHandler
	logger   Logger
	timeout  time.Duration
	rules    []string
	closed   bool
}

var (
	_ autoformat.Filter   = (*Manager)(nil)
	_ autoformat.Observer = (*Manager)(nil)
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for script output and hook failures.
func WithLogger(l Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTimeout sets the per-call deadline for hook functions.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.timeout = d
	}
}

// WithRules sets the rule names exposed to scripts as livemark.rules.
func WithRules(rules ...detect.Kind) Option {
	return func(m *Manager) {
		m.rules = m.rules[:0]
		for _, r := range rules {
			m.rules = append(m.rules, r.String())
		}
	}
}

// NewManager creates an empty plugin manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		logger:  nopLogger{},
		timeout: lua.DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnEvent registers an event handler.
func (m *Manager) OnEvent(h EventHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, h)
}

// LoadFile loads a hook script from disk. The script name is its base name.
func (m *Manager) LoadFile(path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading plugin %s: %w", path, err)
	}
	return m.load(filepath.Base(path), path, string(code))
}

// LoadString loads a hook script from source.
func (m *Manager) LoadString(name, code string) error {
	return m.load(name, "", code)
}

// LoadAll loads every path, continuing past failures.
func (m *Manager) LoadAll(paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := m.LoadFile(p); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to load %d scripts: %w", len(errs), errors.Join(errs...))
	}
	return nil
}

// Reload drops every loaded script and loads paths.
func (m *Manager) Reload(paths []string) error {
	m.unloadAll()
	return m.LoadAll(paths)
}

func (m *Manager) load(name, path, code string) error {
	m.mu.RLock()
	closed := m.closed
	exists := m.findLocked(name) != nil
	m.mu.RUnlock()
	if closed {
		return ErrManagerClosed
	}
	if exists {
		return fmt.Errorf("%s: %w", name, ErrAlreadyLoaded)
	}

	logger := m.logger
	st := lua.NewState(
		lua.WithExecutionTimeout(m.timeout),
		lua.WithRules(m.rules...),
		lua.WithLog(func(level, msg string) {
			switch level {
			case "debug":
				logger.Debug("plugin %s: %s", name, msg)
			case "warn", "error":
				logger.Warn("plugin %s: %s", name, msg)
			default:
				logger.Info("plugin %s: %s", name, msg)
			}
		}),
	)
	if err := st.DoString(code); err != nil {
		st.Close()
		return fmt.Errorf("loading plugin %s: %w", name, err)
	}

	s := &script{
		name:     name,
		path:     path,
		state:    st,
		filter:   st.HasFunction(FilterHook),
		observer: st.HasFunction(ObserverHook),
	}
	if !s.filter && !s.observer {
		st.Close()
		return fmt.Errorf("%s: %w", name, ErrNoHooks)
	}

	m.mu.Lock()
	if m.closed || m.findLocked(name) != nil {
		m.mu.Unlock()
		st.Close()
		return fmt.Errorf("%s: %w", name, ErrAlreadyLoaded)
	}
	m.scripts = append(m.scripts, s)
	m.mu.Unlock()

	m.logger.Debug("plugin %s loaded (filter=%t, observer=%t)", name, s.filter, s.observer)
	m.emit(ManagerEvent{Type: EventScriptLoaded, Script: name})
	return nil
}

// Scripts returns the loaded script names in load order.
func (m *Manager) Scripts() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.scripts))
	for i, s := range m.scripts {
		names[i] = s.name
	}
	return names
}

// Allow implements autoformat.Filter. Every script defining should_format
// is consulted in load order; an explicit false vetoes. A failing hook is
// logged and does not veto.
func (m *Manager) Allow(rule detect.Kind, text string) bool {
	for _, s := range m.snapshot() {
		if !s.filter {
			continue
		}
		ret, err := s.state.Call(FilterHook, rule.String(), text)
		if err != nil {
			m.hookError(s, err)
			continue
		}
		if ret == glua.LFalse {
			m.logger.Debug("plugin %s vetoed %s", s.name, rule)
			return false
		}
	}
	return true
}

// Formatted implements autoformat.Observer by calling
// on_format(rule, after, before) in every script defining it.
func (m *Manager) Formatted(rule detect.Kind, before, after string) {
	for _, s := range m.snapshot() {
		if !s.observer {
			continue
		}
		if _, err := s.state.Call(ObserverHook, rule.String(), after, before); err != nil {
			m.hookError(s, err)
		}
	}
}

func (m *Manager) hookError(s *script, err error) {
	m.logger.Warn("plugin %s: %v", s.name, err)
	m.emit(ManagerEvent{Type: EventScriptError, Script: s.name, Error: err})
}

func (m *Manager) snapshot() []*script {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*script, len(m.scripts))
	copy(out, m.scripts)
	return out
}

func (m *Manager) findLocked(name string) *script {
	for _, s := range m.scripts {
		if s.name == name {
			return s
		}
	}
	return nil
}

func (m *Manager) unloadAll() {
	m.mu.Lock()
	scripts := m.scripts
	m.scripts = nil
	m.mu.Unlock()

	for _, s := range scripts {
		s.state.Close()
		m.emit(ManagerEvent{Type: EventScriptUnloaded, Script: s.name})
	}
}

// Close unloads every script. Further loads fail with ErrManagerClosed.
func (m *Manager) Close() {
	m.unloadAll()
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

// emit calls handlers outside the lock, recovering handler panics.
func (m *Manager) emit(ev ManagerEvent) {
	m.mu.RLock()
	handlers := make([]EventHandler, len(m.handlers))
	copy(handlers, m.handlers)
	m.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() { _ = recover() }()
			h(ev)
		}()
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
