package document

import (
	"github.com/depictio/depictio-models/oid"
)

// Type-safe accessors for decoding validated documents into typed records.
// All functions handle nil maps and missing keys gracefully and return the
// zero value or the given default on type mismatch.

// GetString extracts a string value with a default fallback.
func GetString(doc Document, key, defaultVal string) string {
	if doc == nil {
		return defaultVal
	}
	val, ok := doc[key]
	if !ok || val == nil {
		return defaultVal
	}
	s, ok := val.(string)
	if !ok {
		return defaultVal
	}
	return s
}

// GetInt extracts an int value, coercing the numeric shapes a JSON or YAML
// decoder produces.
func GetInt(doc Document, key string, defaultVal int) int {
	if doc == nil {
		return defaultVal
	}
	val, ok := doc[key]
	if !ok || val == nil {
		return defaultVal
	}
	switch v := val.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return defaultVal
	}
}

// GetBool extracts a bool value with a default fallback.
func GetBool(doc Document, key string, defaultVal bool) bool {
	if doc == nil {
		return defaultVal
	}
	val, ok := doc[key]
	if !ok || val == nil {
		return defaultVal
	}
	b, ok := val.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// GetDoc extracts a nested document. Returns nil when absent or mistyped.
func GetDoc(doc Document, key string) Document {
	if doc == nil {
		return nil
	}
	switch v := doc[key].(type) {
	case Document:
		return v
	case map[string]any:
		return Document(v)
	default:
		return nil
	}
}

// GetList extracts a list value. Returns nil when absent or mistyped.
func GetList(doc Document, key string) []any {
	if doc == nil {
		return nil
	}
	list, ok := doc[key].([]any)
	if !ok {
		return nil
	}
	return list
}

// GetDocList extracts a list of nested documents, skipping mistyped items.
func GetDocList(doc Document, key string) []Document {
	list := GetList(doc, key)
	if list == nil {
		return nil
	}
	out := make([]Document, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case Document:
			out = append(out, v)
		case map[string]any:
			out = append(out, Document(v))
		}
	}
	return out
}

// GetStringList extracts a list of strings, skipping mistyped items.
func GetStringList(doc Document, key string) []string {
	list := GetList(doc, key)
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// GetOID extracts an identifier stored either as an oid.ObjectID or as its
// hex string form. Returns oid.Nil when absent or invalid.
func GetOID(doc Document, key string) oid.ObjectID {
	if doc == nil {
		return oid.Nil
	}
	val, ok := doc[key]
	if !ok || val == nil {
		return oid.Nil
	}
	id, err := oid.FromAny(val)
	if err != nil {
		return oid.Nil
	}
	return id
}
