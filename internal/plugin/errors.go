package plugin

import "errors"

// Plugin system errors.
var (
	// ErrNoHooks is returned when a script defines neither hook function.
	ErrNoHooks = errors.New("script defines neither should_format nor on_format")

	// ErrAlreadyLoaded is returned when a script name is loaded twice.
	ErrAlreadyLoaded = errors.New("script is already loaded")

	// ErrManagerClosed is returned when loading into a closed manager.
	ErrManagerClosed = errors.New("plugin manager is closed")
)
