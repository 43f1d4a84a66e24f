package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "livemark.toml")
	if err := os.WriteFile(path, []byte("[autoformat]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	events := make(chan Event, 10)
	w.OnChange(func(e Event) { events <- e })
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != ErrAlreadyRunning {
		t.Errorf("second Start = %v", err)
	}

	if err := os.WriteFile(path, []byte("[autoformat]\nbold = false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, events)
	abs, _ := filepath.Abs(path)
	if ev.Path != abs {
		t.Errorf("Path = %q, want %q", ev.Path, abs)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "livemark.yaml")

	w, err := New(WithDebounce(0))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	events := make(chan Event, 10)
	w.OnChange(func(e Event) { events <- e })
	_ = w.Start()

	_ = os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644)
	_ = os.WriteFile(path, []byte("history: {}\n"), 0644)

	ev := waitEvent(t, events)
	if filepath.Base(ev.Path) != "livemark.yaml" {
		t.Errorf("unexpected event for %s", ev.Path)
	}
}

func TestWatcher_UnwatchAndStop(t *testing.T) {
	dir := t.TempDir()
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}

	a, b := filepath.Join(dir, "a.toml"), filepath.Join(dir, "b.toml")
	_ = w.Watch(a)
	_ = w.Watch(b)
	_ = w.Watch(a)
	if n := len(w.WatchedFiles()); n != 2 {
		t.Errorf("WatchedFiles = %d, want 2", n)
	}
	if err := w.Unwatch(a); err != nil {
		t.Fatal(err)
	}
	if err := w.Unwatch(b); err != nil {
		t.Fatal(err)
	}
	if len(w.WatchedFiles()) != 0 {
		t.Error("all files should be unwatched")
	}

	if err := w.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := w.Stop(); err != nil {
		t.Error("Stop should be idempotent")
	}
	if err := w.Watch(a); err != ErrClosed {
		t.Errorf("Watch after Stop = %v", err)
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if err := w.Watch(filepath.Join(t.TempDir(), "nope", "c.toml")); err == nil {
		t.Error("watching inside a missing directory should fail")
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Operation
		ok   bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, tt := range tests {
		got, ok := convertOp(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("convertOp(%v) = %v, %v", tt.in, got, ok)
		}
	}
}
