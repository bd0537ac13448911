package usecase

import (
	"strconv"
	"strings"
)

// Record is one raw provider object. Transformers navigate it by
// dot-separated paths so missing branches read as absent values instead of
// panics.
type Record map[string]any

// Raw returns the underlying map, the form payload hashing operates on.
func (r Record) Raw() map[string]any {
	return map[string]any(r)
}

func (r Record) lookup(path string) (any, bool) {
	if r == nil {
		return nil, false
	}

	var current any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[part]
		if !ok {
			return nil, false
		}
	}

	if current == nil {
		return nil, false
	}
	return current, true
}

// String reads a string at path. Numbers are formatted, which keeps fields
// the provider reports inconsistently (e.g. percentages) usable.
func (r Record) String(path string) (string, bool) {
	value, ok := r.lookup(path)
	if !ok {
		return "", false
	}

	switch v := value.(type) {
	case string:
		trimmed := strings.TrimSpace(v)
		return trimmed, trimmed != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// Int64 reads an integer at path, tolerating the float64 and string forms
// the provider mixes freely.
func (r Record) Int64(path string) (int64, bool) {
	value, ok := r.lookup(path)
	if !ok {
		return 0, false
	}

	switch v := value.(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func (r Record) Int(path string) (int, bool) {
	v, ok := r.Int64(path)
	return int(v), ok
}

func (r Record) Bool(path string) (bool, bool) {
	value, ok := r.lookup(path)
	if !ok {
		return false, false
	}

	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}

// StringValue reads a string at path, with the zero value standing in for an
// absent branch.
func (r Record) StringValue(path string) string {
	v, _ := r.String(path)
	return v
}

func (r Record) BoolValue(path string) bool {
	v, _ := r.Bool(path)
	return v
}

// StringPtr and IntPtr return nil when the path is absent, matching nullable
// columns directly.
func (r Record) StringPtr(path string) *string {
	if v, ok := r.String(path); ok {
		return &v
	}
	return nil
}

func (r Record) IntPtr(path string) *int {
	if v, ok := r.Int(path); ok {
		return &v
	}
	return nil
}

func (r Record) Int64Ptr(path string) *int64 {
	if v, ok := r.Int64(path); ok {
		return &v
	}
	return nil
}
