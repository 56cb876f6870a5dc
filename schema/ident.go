package schema

import "github.com/depictio/depictio-models/oid"

// Identifier is the field rule for identifier-valued fields other than the
// record's own id (back-references such as a run's workflow_id). It accepts
// an ObjectID, a 24-character hex string, or a raw 12-byte value.
func Identifier(value any) (any, error) {
	return oid.FromAny(value)
}
