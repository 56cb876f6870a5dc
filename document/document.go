// Package document implements the mapping layer between validated records
// and the generic nested-document representation used at the storage and
// API boundary.
//
// A Document is a JSON-compatible tree of maps, lists, strings, numbers,
// booleans, and nulls. On the way in, FromStore renames the storage-layer
// primary-key field "_id" to the canonical "id" key at every nesting level;
// on the way out, ToStore applies the inverse rename at the top level and
// coerces non-primitive values (identifiers, timestamps, filesystem paths)
// to plain strings.
package document

import (
	"github.com/depictio/depictio-models/canonical"
)

// StoreIDKey is the storage-layer primary-key field name.
const StoreIDKey = "_id"

// IDKey is the canonical identity field name on validated records.
const IDKey = "id"

// Document is a JSON-compatible nested map structure.
type Document map[string]any

// Clone returns a deep copy of the document.
func Clone(doc Document) Document {
	if doc == nil {
		return nil
	}
	return deepCopy(doc).(Document)
}

func deepCopy(value any) any {
	switch v := value.(type) {
	case Document:
		out := make(Document, len(v))
		for key, item := range v {
			out[key] = deepCopy(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return value
	}
}

// FromStore converts a stored document into record-construction shape:
// the "_id" key is renamed to "id" recursively, inside nested maps and
// lists at every level. The input is not modified.
//
// An explicit "hash" field in the incoming document is carried through
// verbatim; entity constructors treat its presence as "loaded from the
// canonical store" and do not recompute it, in contrast to the
// fresh-validation entry point where the hash is always computed.
func FromStore(doc Document) Document {
	if doc == nil {
		return nil
	}
	return renameStoreIDs(deepCopy(doc)).(Document)
}

func renameStoreIDs(value any) any {
	switch v := value.(type) {
	case Document:
		return renameInMap(map[string]any(v))
	case map[string]any:
		return renameInMap(v)
	case []any:
		for i, item := range v {
			v[i] = renameStoreIDs(item)
		}
		return v
	default:
		return value
	}
}

func renameInMap(m map[string]any) Document {
	out := make(Document, len(m))
	for key, item := range m {
		out[key] = renameStoreIDs(item)
	}
	if id, ok := out[StoreIDKey]; ok && id != nil {
		delete(out, StoreIDKey)
		out[IDKey] = id
	}
	return out
}

// StoreOption configures ToStore and Sparse.
type StoreOption func(*storeOptions)

type storeOptions struct {
	byAlias  bool
	unsetRef Document
}

// ByAlias controls whether the canonical "id" key is renamed to the storage
// alias "_id" at the top level. It defaults to true.
func ByAlias(enabled bool) StoreOption {
	return func(o *storeOptions) { o.byAlias = enabled }
}

// ExcludeUnset omits top-level fields the caller never explicitly supplied,
// judged against the raw input document the record was constructed from.
// The identity field always survives.
func ExcludeUnset(raw Document) StoreOption {
	return func(o *storeOptions) { o.unsetRef = raw }
}

// ToStore converts a validated record's field map into its storage
// document: non-primitive values are recursively coerced to plain strings
// and, in by-alias mode, the top-level "id" key becomes "_id".
func ToStore(doc Document, opts ...StoreOption) Document {
	options := storeOptions{byAlias: true}
	for _, opt := range opts {
		opt(&options)
	}

	out := make(Document, len(doc))
	for key, item := range doc {
		if options.unsetRef != nil && !suppliedKey(options.unsetRef, key) {
			continue
		}
		out[key] = canonical.Normalize(deepCopy(item))
	}
	if options.byAlias {
		if id, ok := out[IDKey]; ok {
			delete(out, IDKey)
			out[StoreIDKey] = id
		}
	}
	return out
}

func suppliedKey(raw Document, key string) bool {
	if key == IDKey || key == StoreIDKey {
		return true
	}
	_, ok := raw[key]
	return ok
}

// Sparse converts a record like ToStore and then drops null-valued fields
// entirely, at every nesting level. It is used by lightweight-store write
// paths that must not overwrite existing values with nulls.
func Sparse(doc Document, opts ...StoreOption) Document {
	return dropNulls(ToStore(doc, opts...)).(Document)
}

func dropNulls(value any) any {
	switch v := value.(type) {
	case Document:
		return dropNullsInMap(map[string]any(v))
	case map[string]any:
		return dropNullsInMap(v)
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, dropNulls(item))
		}
		return out
	default:
		return value
	}
}

func dropNullsInMap(m map[string]any) Document {
	out := make(Document, len(m))
	for key, item := range m {
		if item == nil {
			continue
		}
		out[key] = dropNulls(item)
	}
	return out
}
