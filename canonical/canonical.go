// Package canonical derives the deterministic byte form of a record's field
// map, used for content hashing, deduplication, and change detection.
//
// The canonical form is independent of field insertion order (object keys
// are serialized sorted) and of non-semantic fields: registration
// timestamps and record identifiers are stripped recursively at every
// nesting level before serialization. Identifiers are generated when
// absent, so leaving them in would make two validations of the same input
// hash differently. The resulting hash is a function only of semantic
// configuration.
//
// Two hash variants exist across the entity set and are deliberately kept
// separate: SHA-256 (64 hex characters) for file and run integrity, and MD5
// (32 hex characters) for project and workflow change detection.
package canonical

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/depictio/depictio-models/oid"
)

// VolatileFields are the timestamp keys stripped recursively before
// hashing.
var VolatileFields = []string{"registration_time", "registration_date"}

// IdentityFields are the identifier keys stripped recursively before
// hashing. Identifiers are assigned on validation when missing, so they
// carry no semantic content.
var IdentityFields = []string{"id", "_id"}

// Normalize recursively converts non-primitive values (identifiers,
// timestamps) into their plain string forms so the structure serializes to
// JSON-compatible primitives only.
func Normalize(value any) any {
	if m, ok := asMap(value); ok {
		out := make(map[string]any, len(m))
		for key, item := range m {
			out[key] = Normalize(item)
		}
		return out
	}
	switch v := value.(type) {
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	case oid.ObjectID:
		return v.Hex()
	case *oid.ObjectID:
		if v == nil {
			return nil
		}
		return v.Hex()
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case fmt.Stringer:
		return v.String()
	default:
		return v
	}
}

// StripVolatile returns a deep copy of value with every volatile and
// identity key removed, at every nesting level, not just the top one.
func StripVolatile(value any) any {
	if m, ok := asMap(value); ok {
		out := make(map[string]any, len(m))
		for key, item := range m {
			if isVolatile(key) {
				continue
			}
			out[key] = StripVolatile(item)
		}
		return out
	}
	switch v := value.(type) {
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = StripVolatile(item)
		}
		return out
	default:
		return value
	}
}

// asMap converts any string-keyed map, including named map types such as
// the mapping layer's document type, which a plain type switch would miss.
func asMap(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func isVolatile(key string) bool {
	for _, volatile := range VolatileFields {
		if key == volatile {
			return true
		}
	}
	for _, identity := range IdentityFields {
		if key == identity {
			return true
		}
	}
	return false
}

// Bytes serializes a field map into its canonical byte form: volatile and
// identity fields stripped recursively, non-primitives normalized to
// strings, and object keys sorted (encoding/json marshals map keys in
// sorted order).
func Bytes(fields map[string]any) ([]byte, error) {
	normalized := Normalize(StripVolatile(fields))
	data, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("canonical: cannot serialize fields: %w", err)
	}
	return data, nil
}

// SHA256 computes the 64-hex-character content hash of a field map.
func SHA256(fields map[string]any) (string, error) {
	data, err := Bytes(fields)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// MD5 computes the 32-hex-character content hash of a field map. Kept as a
// distinct variant from SHA256: the two are selected per entity type and
// never interchangeable.
func MD5(fields map[string]any) (string, error) {
	data, err := Bytes(fields)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}
