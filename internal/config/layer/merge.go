package layer

import (
	"reflect"
	"sort"
	"strings"
)

// GetByPath retrieves a value from a nested map using a dot-separated path.
func GetByPath(data map[string]any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}
	var current any = data
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

// SetByPath sets a value in a nested map, creating intermediate maps.
func SetByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// DeleteByPath removes a value from a nested map.
// Returns true if the value existed.
func DeleteByPath(data map[string]any, path string) bool {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			return false
		}
		current = next
	}
	last := parts[len(parts)-1]
	if _, ok := current[last]; !ok {
		return false
	}
	delete(current, last)
	return true
}

// Flatten converts a nested map to dot-separated keys.
func Flatten(data map[string]any) map[string]any {
	out := make(map[string]any)
	flatten(data, "", out)
	return out
}

func flatten(data map[string]any, prefix string, out map[string]any) {
	for k, v := range data {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if m, ok := v.(map[string]any); ok {
			flatten(m, key, out)
			continue
		}
		out[key] = v
	}
}

// ChangedPaths returns the sorted dot-separated paths whose values differ
// between old and new, including added and removed ones.
func ChangedPaths(old, new map[string]any) []string {
	of, nf := Flatten(old), Flatten(new)
	var paths []string
	for k, nv := range nf {
		if ov, ok := of[k]; !ok || !reflect.DeepEqual(ov, nv) {
			paths = append(paths, k)
		}
	}
	for k := range of {
		if _, ok := nf[k]; !ok {
			paths = append(paths, k)
		}
	}
	sort.Strings(paths)
	return paths
}
