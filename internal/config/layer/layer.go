// Package layer provides configuration layer management for Livemark.
//
// Each configuration source (built-in defaults, user file, project file,
// environment, command-line flags) is a Layer with a priority. Higher
// priority layers override values from lower priority layers when merged.
package layer

import (
	"time"

	"github.com/dshills/livemark/internal/config/loader"
)

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceBuiltin represents built-in default configuration.
	SourceBuiltin Source = iota
	// SourceUser represents the user config (~/.config/livemark/).
	SourceUser
	// SourceProject represents a project config (.livemark.toml).
	SourceProject
	// SourceEnv represents LIVEMARK_ environment variables.
	SourceEnv
	// SourceArgs represents command-line arguments.
	SourceArgs
)

// Standard priority levels for configuration layers.
const (
	PriorityBuiltin = 0
	PriorityUser    = 100
	PriorityProject = 200
	PriorityEnv     = 500
	PriorityArgs    = 600
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceUser:
		return "user"
	case SourceProject:
		return "project"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	default:
		return "unknown"
	}
}

// Priority returns the default priority for the source.
func (s Source) Priority() int {
	switch s {
	case SourceUser:
		return PriorityUser
	case SourceProject:
		return PriorityProject
	case SourceEnv:
		return PriorityEnv
	case SourceArgs:
		return PriorityArgs
	default:
		return PriorityBuiltin
	}
}

// Layer represents a single configuration layer.
type Layer struct {
	// Name identifies the layer (e.g., "user", "project", "defaults").
	Name string

	// Priority determines merge order (higher overrides lower).
	Priority int

	Source Source

	// Path is the file path, if loaded from a file.
	Path string

	// Data holds the configuration values as a nested map.
	Data map[string]any

	ModTime time.Time

	// ReadOnly prevents Set and UpdateLayer.
	ReadOnly bool
}

// New creates a layer named after its source with the source's default
// priority.
func New(source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     source.String(),
		Source:   source,
		Priority: source.Priority(),
		Data:     data,
		ModTime:  time.Now(),
	}
}

// FromFile creates a layer for a configuration file.
func FromFile(source Source, path string, data map[string]any) *Layer {
	l := New(source, data)
	l.Path = path
	return l
}

// Clone creates a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Data = loader.Clone(l.Data)
	return &c
}
