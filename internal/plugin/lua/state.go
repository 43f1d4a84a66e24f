package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds a single script run or hook call.
const DefaultExecutionTimeout = 100 * time.Millisecond

// LogFunc receives messages from livemark.log(level, msg).
type LogFunc func(level, msg string)

// State is a sandboxed Lua state. It is safe for concurrent use; calls are
// serialized.
type State struct {
	mu sync.Mutex
	L  *lua.LState

	timeout time.Duration
	log     LogFunc
	rules   []string
	modules map[string]*lua.LTable
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the deadline for each run or call.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLog routes livemark.log calls to fn.
func WithLog(fn LogFunc) StateOption {
	return func(s *State) {
		s.log = fn
	}
}

// WithRules exposes the enabled rule names as livemark.rules.
func WithRules(names ...string) StateOption {
	return func(s *State) {
		s.rules = names
	}
}

// NewState creates a sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout: DefaultExecutionTimeout,
		modules: make(map[string]*lua.LTable),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.modules[ModuleName] = s.hostModule()
	installSandbox(s.L, s.modules)
	return s
}

// hostModule builds the "livemark" module table.
func (s *State) hostModule() *lua.LTable {
	mod := s.L.NewTable()
	rules := s.L.NewTable()
	for _, r := range s.rules {
		rules.Append(lua.LString(r))
	}
	s.L.SetField(mod, "rules", rules)
	s.L.SetField(mod, "log", s.L.NewFunction(func(L *lua.LState) int {
		level := L.CheckString(1)
		msg := L.CheckString(2)
		if s.log != nil {
			s.log(level, msg)
		}
		return 0
	}))
	return mod
}

// DoString runs a chunk of Lua source.
func (s *State) DoString(code string) error {
	return s.run(func(L *lua.LState) error { return L.DoString(code) })
}

// DoFile runs a Lua file.
func (s *State) DoFile(path string) error {
	return s.run(func(L *lua.LState) error { return L.DoFile(path) })
}

// HasFunction reports whether a global function named fn exists.
func (s *State) HasFunction(fn string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	return s.L.GetGlobal(fn).Type() == lua.LTFunction
}

// Call calls a global Lua function with string arguments and returns its
// first result, or lua.LNil if it returned nothing.
func (s *State) Call(fn string, args ...string) (lua.LValue, error) {
	var ret lua.LValue = lua.LNil
	err := s.run(func(L *lua.LState) error {
		f := L.GetGlobal(fn)
		if f.Type() != lua.LTFunction {
			return fmt.Errorf("%w: %s", ErrNotFunction, fn)
		}
		largs := make([]lua.LValue, len(args))
		for i, a := range args {
			largs[i] = lua.LString(a)
		}
		if err := L.CallByParam(lua.P{Fn: f, NRet: 1, Protect: true}, largs...); err != nil {
			return err
		}
		ret = L.Get(-1)
		L.Pop(1)
		return nil
	})
	return ret, err
}

// run executes fn under the state lock with a deadline.
func (s *State) run(fn func(L *lua.LState) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	top := s.L.GetTop()
	err = fn(s.L)
	s.L.SetTop(top)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	}
	return err
}

// Close releases the Lua state.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.L.Close()
		s.closed = true
	}
}
