package autoformat

import "github.com/dshills/livemark/internal/autoformat/detect"

// Filter decides whether a matched rule may be applied to a block.
// Returning false leaves the keystroke unhandled.
type Filter interface {
	Allow(rule detect.Kind, text string) bool
}

// Observer is notified after a rule has been applied.
// before is the block text prior to the keystroke, after the resulting text.
type Observer interface {
	Formatted(rule detect.Kind, before, after string)
}

// FilterFunc wraps a function as a Filter.
type FilterFunc func(rule detect.Kind, text string) bool

// Allow implements Filter.
func (f FilterFunc) Allow(rule detect.Kind, text string) bool {
	return f(rule, text)
}

// ObserverFunc wraps a function as an Observer.
type ObserverFunc func(rule detect.Kind, before, after string)

// Formatted implements Observer.
func (f ObserverFunc) Formatted(rule detect.Kind, before, after string) {
	f(rule, before, after)
}

// Logger is the logging surface the dispatcher needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
