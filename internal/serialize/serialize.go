// Package serialize normalizes raw Firestore document values for JSON
// responses. Decoded documents carry time.Time values (and, at the
// RPC edge, protobuf timestamps) that should leave the API as plain
// ISO-8601 strings.
package serialize

import "time"

// timestampLike covers store-native timestamp wrappers that expose a
// conversion to time.Time, such as protobuf timestamps.
type timestampLike interface {
	AsTime() time.Time
}

// Clean recursively walks a value and converts every timestamp-like
// entry to an RFC 3339 UTC string. Maps are walked key-by-key and
// slices element-wise into fresh containers; primitives pass through
// unchanged. The input is never mutated, and Clean is idempotent:
// Clean(Clean(x)) == Clean(x), since strings pass through untouched.
func Clean(value interface{}) interface{} {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.UTC().Format(time.RFC3339)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, entry := range v {
			out[key] = Clean(entry)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, entry := range v {
			out[i] = Clean(entry)
		}
		return out
	default:
		if ts, ok := value.(timestampLike); ok {
			return ts.AsTime().UTC().Format(time.RFC3339)
		}
		return value
	}
}

// CleanMap is Clean specialized for a document map, preserving the
// map type for callers.
func CleanMap(doc map[string]interface{}) map[string]interface{} {
	cleaned, _ := Clean(doc).(map[string]interface{})
	return cleaned
}
