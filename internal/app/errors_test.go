package app

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestComponentError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ComponentError
		expected string
	}{
		{"full", NewComponentError("plugin", "load", io.EOF), "plugin: load: EOF"},
		{"no action", NewComponentError("plugin", "", io.EOF), "plugin: EOF"},
		{"no error", NewComponentError("plugin", "load", nil), "plugin: load"},
		{"component only", NewComponentError("plugin", "", nil), "plugin"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestComponentError_Unwrap(t *testing.T) {
	err := error(NewComponentError("editor", "type", ErrQuit))
	if !errors.Is(err, ErrQuit) {
		t.Error("expected errors.Is to find the wrapped error")
	}
	var nilErr *ComponentError
	if nilErr.Unwrap() != nil {
		t.Error("expected nil Unwrap on nil receiver")
	}
}

func TestInitError(t *testing.T) {
	err := error(&InitError{Component: "config", Err: io.ErrUnexpectedEOF})
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("expected errors.Is to find the wrapped error")
	}
	if err.Error() != "initializing config: unexpected EOF" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestRecoveredPanicError(t *testing.T) {
	err := &RecoveredPanicError{Value: "boom"}
	if err.Error() != "panic: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	err.Stack = "goroutine 1"
	if !strings.HasSuffix(err.Error(), "\ngoroutine 1") {
		t.Errorf("expected stack in %q", err.Error())
	}
}
