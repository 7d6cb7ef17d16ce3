package model

import (
	"time"

	"github.com/atelier-lab/atelier/pkg/domain/types"
)

// PropertyValue represents a single custom property value attached to one
// record. Each value is its own row keyed by (entity type, record ID, key)
// rather than a field inside one shared JSON blob, so concurrent edits to
// different keys on the same record never overwrite each other.
type PropertyValue struct {
	EntityType types.EntityType
	RecordID   int64
	Key        types.PropertyKey
	Value      any // Go type depends on property type
	UpdatedAt  time.Time
}

// FileRef is a stored file value: a name and an externally hosted URL.
// There is no binary upload pathway; files are references only.
type FileRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ToStringSlice converts a stored multi-valued field defensively. JSON
// decoding yields []any; older writers may have stored a bare string.
func ToStringSlice(v any) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out, true
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case string:
		// Single stored value, accepted and normalized to a one-element set
		return []string{val}, true
	default:
		return nil, false
	}
}

// ToNumber converts a stored numeric value. JSON decoding yields float64,
// but values written through Go code may be typed integers.
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ToFileRefs converts a stored files value. Accepts both typed slices and
// the []any of map[string]any shape produced by JSON decoding.
func ToFileRefs(v any) ([]FileRef, bool) {
	switch val := v.(type) {
	case []FileRef:
		out := make([]FileRef, len(val))
		copy(out, val)
		return out, true
	case []any:
		out := make([]FileRef, 0, len(val))
		for _, item := range val {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			name, _ := m["name"].(string)
			url, ok := m["url"].(string)
			if !ok || url == "" {
				return nil, false
			}
			out = append(out, FileRef{Name: name, URL: url})
		}
		return out, true
	default:
		return nil, false
	}
}

// CopyValue deep-copies a stored property value payload
func CopyValue(v any) any {
	switch val := v.(type) {
	case []string:
		s := make([]string, len(val))
		copy(s, val)
		return s
	case []any:
		s := make([]any, len(val))
		copy(s, val)
		return s
	case []FileRef:
		s := make([]FileRef, len(val))
		copy(s, val)
		return s
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = item
		}
		return m
	default:
		// Simple types (string, float64, bool, time.Time) are safe to share
		return val
	}
}

// Clone returns a deep copy of the property value
func (pv *PropertyValue) Clone() *PropertyValue {
	return &PropertyValue{
		EntityType: pv.EntityType,
		RecordID:   pv.RecordID,
		Key:        pv.Key,
		Value:      CopyValue(pv.Value),
		UpdatedAt:  pv.UpdatedAt,
	}
}

// ValueMap indexes a list of property values by key
func ValueMap(values []*PropertyValue) map[types.PropertyKey]*PropertyValue {
	m := make(map[types.PropertyKey]*PropertyValue, len(values))
	for _, v := range values {
		m[v.Key] = v
	}
	return m
}
