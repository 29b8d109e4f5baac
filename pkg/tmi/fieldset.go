package tmi

import (
	"fmt"
	"strconv"

	"github.com/Thg-prog/laba8sem/internal/stats"
)

// FieldSet offers typed helpers on top of the flat statistics map of a
// result.
type FieldSet struct {
	data map[string]any
}

// FieldSet returns the statistics, truncation flag and capture identity of
// the result keyed by the selectable statistic names.
func (r Result) FieldSet() FieldSet {
	data := map[string]any{
		"digest":      r.Digest,
		"compression": r.Compression,
	}
	if r.Stream != nil {
		st := r.Stream.Stats()
		for _, it := range stats.GeneralItems {
			v, _ := st.Value(it.Key)
			data[it.Key] = v
		}
		data["truncated"] = r.Stream.Truncated()
		data["bytes"] = r.Stream.BytesRead()
	}
	return FieldSet{data: data}
}

// Map exposes the underlying map for callers that still need raw access.
func (fs FieldSet) Map() map[string]any {
	return fs.data
}

// Raw returns the stored value without conversions.
func (fs FieldSet) Raw(key string) (any, bool) {
	if fs.data == nil {
		return nil, false
	}
	v, ok := fs.data[key]
	return v, ok
}

// Int returns the field coerced to int64.
func (fs FieldSet) Int(key string) (int64, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q is not integer: %w", key, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
}

// String returns the field as a string.
func (fs FieldSet) String(key string) (string, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return "", fmt.Errorf("field %q missing", key)
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", v), nil
}

// Bool returns the field coerced to bool.
func (fs FieldSet) Bool(key string) (bool, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return false, fmt.Errorf("field %q missing", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("field %q has unsupported type %T", key, v)
	}
	return b, nil
}
