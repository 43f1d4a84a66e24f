package layer

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/livemark/internal/config/loader"
)

// Manager manages configuration layers and provides merged access.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer       // Sorted by priority (ascending)
	merged map[string]any // Cached merged result
	dirty  bool
}

// NewManager creates a new layer manager.
func NewManager() *Manager {
	return &Manager{dirty: true}
}

// AddLayer adds a layer, replacing any existing layer with the same name.
func (m *Manager) AddLayer(l *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.layers {
		if existing.Name == l.Name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			break
		}
	}
	m.layers = append(m.layers, l)
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
	m.dirty = true
}

// RemoveLayer removes a layer by name.
func (m *Manager) RemoveLayer(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, l := range m.layers {
		if l.Name == name {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			m.dirty = true
			return true
		}
	}
	return false
}

// GetLayer returns a layer by name, or nil.
func (m *Manager) GetLayer(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findLayer(name)
}

// Layers returns the layers sorted by priority.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Layer, len(m.layers))
	copy(result, m.layers)
	return result
}

// Merge combines all layers into a single configuration map.
// Results are cached until a layer changes.
func (m *Manager) Merge() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dirty || m.merged == nil {
		result := make(map[string]any)
		for _, l := range m.layers {
			result = loader.DeepMerge(result, l.Data)
		}
		m.merged = result
		m.dirty = false
	}
	return loader.Clone(m.merged)
}

// Get returns the effective value for a setting path and the layer it came
// from.
func (m *Manager) Get(path string) (any, *Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		if val, ok := GetByPath(m.layers[i].Data, path); ok {
			return val, m.layers[i], true
		}
	}
	return nil, nil, false
}

// WhichLayer returns the name of the layer that provides a value.
func (m *Manager) WhichLayer(path string) string {
	_, l, found := m.Get(path)
	if !found {
		return ""
	}
	return l.Name
}

// Set sets a value in a specific layer.
func (m *Manager) Set(layerName, path string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.writableLayer(layerName)
	if err != nil {
		return err
	}
	SetByPath(l.Data, path, value)
	m.dirty = true
	return nil
}

// UpdateLayer replaces a layer's data entirely.
func (m *Manager) UpdateLayer(name string, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.writableLayer(name)
	if err != nil {
		return err
	}
	l.Data = loader.Clone(data)
	if l.Data == nil {
		l.Data = make(map[string]any)
	}
	m.dirty = true
	return nil
}

func (m *Manager) writableLayer(name string) (*Layer, error) {
	l := m.findLayer(name)
	if l == nil {
		return nil, fmt.Errorf("layer not found: %s", name)
	}
	if l.ReadOnly {
		return nil, fmt.Errorf("layer is read-only: %s", name)
	}
	if l.Data == nil {
		l.Data = make(map[string]any)
	}
	return l, nil
}

// findLayer must be called with the lock held.
func (m *Manager) findLayer(name string) *Layer {
	for _, l := range m.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Clear removes all layers.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.layers = nil
	m.merged = nil
	m.dirty = true
}
