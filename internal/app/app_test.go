package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/livemark/internal/autoformat/detect"
	"github.com/dshills/livemark/internal/config"
	"github.com/dshills/livemark/internal/engine/block"
)

// newTestApp creates an application whose user config is path (which may
// not exist) and whose project dir is empty.
func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()
	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join(t.TempDir(), "config.toml")
	}
	if opts.ProjectDir == "" {
		opts.ProjectDir = t.TempDir()
	}
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(app.Shutdown)
	return app
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeKeys(t *testing.T, app *Application, text string) {
	t.Helper()
	for _, r := range text {
		if err := app.handleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)); err != nil {
			t.Fatalf("handleKey(%q) error = %v", r, err)
		}
	}
}

func focusBlock(app *Application) block.Block {
	s := app.Editor().State()
	b, _ := s.Document().Block(s.Selection().FocusKey)
	return b
}

func TestNew_Defaults(t *testing.T) {
	app := newTestApp(t, Options{})

	if app.Editor() == nil || app.Config() == nil {
		t.Fatal("expected editor and config")
	}
	for _, k := range autoformatRules() {
		if !app.dispatcher.Enabled(k) {
			t.Errorf("rule %s should be enabled by default", k)
		}
	}
	if app.Logger().Level() != LogLevelInfo {
		t.Errorf("level = %s, expected INFO", app.Logger().Level())
	}
}

func autoformatRules() []detect.Kind {
	return []detect.Kind{detect.KindHeader, detect.KindBold, detect.KindItalic, detect.KindInlineCode}
}

func TestNew_ConfigFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", `
[autoformat]
bold = false

[logging]
level = "error"
`)
	writeFile(t, dir, ProjectConfigFile, `
[history]
maxEntries = 5
`)

	app := newTestApp(t, Options{ConfigPath: cfg, ProjectDir: dir, LogLevel: "warn"})

	if app.dispatcher.Enabled(detect.KindBold) {
		t.Error("bold should be disabled by the user file")
	}
	if app.Logger().Level() != LogLevelWarn {
		t.Errorf("level = %s, expected the -log-level override", app.Logger().Level())
	}
	if got := app.Config().Settings().History.MaxEntries; got != 5 {
		t.Errorf("maxEntries = %d, expected project value 5", got)
	}

	typeKeys(t, app, "**b**x")
	if got := app.Editor().Text(); got != "**b**x" {
		t.Errorf("Text() = %q, expected bold to stay literal", got)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "config.toml", "[history]\nmaxEntries = 0\n")

	_, err := New(Options{ConfigPath: cfg, ProjectDir: t.TempDir()})

	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "config" {
		t.Fatalf("expected config InitError, got %v", err)
	}
	if !errors.Is(err, config.ErrInvalidMaxEntries) {
		t.Errorf("expected ErrInvalidMaxEntries, got %v", err)
	}
}

func TestNew_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "livemark.log")
	app := newTestApp(t, Options{LogFile: logPath, Debug: true})

	typeKeys(t, app, "#### ")
	app.Shutdown()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{"[DEBUG] livemark: config loaded", "component=autoformat", "keystrokes=5"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestNew_PluginVeto(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "veto.lua", `
function should_format(rule, text)
  return rule ~= "italic"
end
`)
	cfg := writeFile(t, dir, "config.toml", "[plugins]\nscripts = [\""+filepath.ToSlash(script)+"\"]\n")

	var logs bytes.Buffer
	app := newTestApp(t, Options{ConfigPath: cfg, LogOutput: &logs})

	typeKeys(t, app, "*a* ")
	b := focusBlock(app)
	if b.Text() != "*a* " {
		t.Errorf("Text() = %q, expected the italic rule to be vetoed", b.Text())
	}

	if err := app.handleKey(key(tcell.KeyEnter)); err != nil {
		t.Fatal(err)
	}
	typeKeys(t, app, "**b**x")
	if got := focusBlock(app).Text(); got != "bx" {
		t.Errorf("Text() = %q, expected bold to apply", got)
	}
}

func TestHandleKey(t *testing.T) {
	app := newTestApp(t, Options{})

	typeKeys(t, app, "# ")
	if b := focusBlock(app); b.Type() != block.TypeHeaderOne || b.Text() != "" {
		t.Fatalf("block = %s %q, expected empty header-one", b.Type(), b.Text())
	}

	if err := app.handleKey(key(tcell.KeyCtrlZ)); err != nil {
		t.Fatal(err)
	}
	if b := focusBlock(app); b.Type() != block.TypeUnstyled || b.Text() != "#" {
		t.Errorf("after undo block = %s %q", b.Type(), b.Text())
	}

	if err := app.handleKey(key(tcell.KeyCtrlY)); err != nil {
		t.Fatal(err)
	}
	typeKeys(t, app, "Title")
	if err := app.handleKey(key(tcell.KeyEnter)); err != nil {
		t.Fatal(err)
	}
	typeKeys(t, app, "ab")
	if err := app.handleKey(key(tcell.KeyBackspace2)); err != nil {
		t.Fatal(err)
	}
	if got := app.Editor().Text(); got != "Title\na" {
		t.Errorf("Text() = %q", got)
	}

	if err := app.handleKey(key(tcell.KeyUp)); err != nil {
		t.Fatal(err)
	}
	if got := focusBlock(app).Text(); got != "Title" {
		t.Errorf("caret block = %q after KeyUp", got)
	}

	// Errors from the editor are reported, not returned.
	fresh := newTestApp(t, Options{})
	if err := fresh.handleKey(key(tcell.KeyCtrlZ)); err != nil {
		t.Errorf("undo on empty history returned %v", err)
	}

	for _, k := range []tcell.Key{tcell.KeyCtrlQ, tcell.KeyCtrlC} {
		if err := app.handleKey(key(k)); !errors.Is(err, ErrQuit) {
			t.Errorf("key %v: expected ErrQuit, got %v", k, err)
		}
	}
}

func TestApplySettings(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", "[logging]\nlevel = \"info\"\n")
	app := newTestApp(t, Options{ConfigPath: cfg})

	writeFile(t, dir, "config.toml", `
[autoformat]
header = false

[logging]
level = "debug"
`)
	if err := app.Config().Reload(); err != nil {
		t.Fatal(err)
	}

	if app.dispatcher.Enabled(detect.KindHeader) {
		t.Error("header rule should be disabled after reload")
	}
	if app.Logger().Level() != LogLevelDebug {
		t.Errorf("level = %s after reload", app.Logger().Level())
	}
	typeKeys(t, app, "# ")
	if b := focusBlock(app); b.Type() != block.TypeUnstyled {
		t.Errorf("block type = %s, expected unstyled", b.Type())
	}
}

func TestRun_NoScreen(t *testing.T) {
	app := newTestApp(t, Options{})
	if err := app.Run(); !errors.Is(err, ErrNoScreen) {
		t.Errorf("expected ErrNoScreen, got %v", err)
	}
}

func TestSave(t *testing.T) {
	app := newTestApp(t, Options{})
	if err := app.Save(); !errors.Is(err, ErrNoOutput) {
		t.Errorf("expected ErrNoOutput, got %v", err)
	}

	out := filepath.Join(t.TempDir(), "doc.html")
	app = newTestApp(t, Options{OutputPath: out})
	typeKeys(t, app, "# Hi")
	if err := app.handleKey(key(tcell.KeyCtrlS)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<h1>Hi</h1>") {
		t.Errorf("saved html = %q", data)
	}
}

func TestRun_SimulationScreen(t *testing.T) {
	out := filepath.Join(t.TempDir(), "doc.md")
	app := newTestApp(t, Options{OutputPath: out})
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := app.SetScreen(screen); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	waitFor(t, func() bool {
		app.mu.Lock()
		defer app.mu.Unlock()
		return app.renderer != nil
	})
	if err := app.SetScreen(screen); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("SetScreen while running: expected ErrAlreadyRunning, got %v", err)
	}

	for _, r := range "## Hi" {
		screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	waitFor(t, func() bool { return app.Editor().Text() == "Hi" })

	if b := focusBlock(app); b.Type() != block.TypeHeaderTwo {
		t.Errorf("block type = %s, expected header-two", b.Type())
	}
	if got := app.renderer.Status(); got != "" {
		t.Errorf("status = %q, expected it cleared by plain typing", got)
	}

	screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after Ctrl-Q")
	}
	if app.IsRunning() {
		t.Error("expected IsRunning false after Run returns")
	}
	if data, err := os.ReadFile(out); err != nil || string(data) != "## Hi\n" {
		t.Errorf("document written on exit = %q, %v", data, err)
	}
}

func TestShutdownStopsRun(t *testing.T) {
	app := newTestApp(t, Options{})
	screen := tcell.NewSimulationScreen("UTF-8")
	_ = app.SetScreen(screen)

	done := make(chan error, 1)
	go func() { done <- app.Run() }()
	waitFor(t, app.IsRunning)
	waitFor(t, func() bool {
		app.mu.Lock()
		defer app.mu.Unlock()
		return app.renderer != nil
	})

	app.Shutdown()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before timeout")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

