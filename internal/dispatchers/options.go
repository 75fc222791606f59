package dispatchers

import (
	"maps"
	"slices"
	"sort"
	"strconv"
)

// Options provides typed, read-only access to the resolved option values of
// an invocation.
type Options struct {
	values map[string]any
}

// NewOptions creates Options from a map of resolved values. The map is copied.
func NewOptions(values map[string]any) Options {
	copied := make(map[string]any, len(values))
	for k, v := range values {
		copied[k] = cloneValue(v)
	}
	return Options{values: copied}
}

// Has returns true if the key has a value (supplied or defaulted).
func (o Options) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Value returns the raw value stored under key.
func (o Options) Value(key string) (any, bool) {
	v, ok := o.values[key]
	return cloneValue(v), ok
}

// String returns the string value of key, or defaultVal if absent or not a string.
func (o Options) String(key, defaultVal string) string {
	if s, ok := o.values[key].(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean value of key; absent or non-boolean values are false.
func (o Options) Bool(key string) bool {
	b, _ := o.values[key].(bool)
	return b
}

// Strings returns a copy of the list stored under key.
func (o Options) Strings(key string) []string {
	switch v := o.values[key].(type) {
	case []string:
		return slices.Clone(v)
	case string:
		return []string{v}
	default:
		return nil
	}
}

// Int returns the integer value of key, or defaultVal if absent or invalid.
func (o Options) Int(key string, defaultVal int) int {
	switch v := o.values[key].(type) {
	case int:
		return v
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return defaultVal
		}
		return n
	default:
		return defaultVal
	}
}

// Keys returns the option keys in sorted order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o.values))
	for k := range o.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of all values.
func (o Options) Map() map[string]any {
	out := maps.Clone(o.values)
	for k, v := range out {
		out[k] = cloneValue(v)
	}
	if out == nil {
		out = map[string]any{}
	}
	return out
}

func cloneValue(v any) any {
	if s, ok := v.([]string); ok {
		return slices.Clone(s)
	}
	return v
}
