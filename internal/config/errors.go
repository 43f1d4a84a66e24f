package config

import "errors"

// Errors returned by configuration operations.
var (
	// ErrInvalidLevel indicates an unknown logging level.
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrInvalidMaxEntries indicates a non-positive history size.
	ErrInvalidMaxEntries = errors.New("history.maxEntries must be positive")

	// ErrNotLoaded indicates Watch or Reload was called before Load.
	ErrNotLoaded = errors.New("configuration not loaded")
)
