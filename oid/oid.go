// Package oid implements the 12-byte object identifier used as record
// identity throughout the depictio model layer.
//
// The binary layout follows the document-store convention: a 4-byte
// big-endian creation timestamp (seconds), 5 bytes of per-process entropy,
// and a 3-byte monotonically increasing counter seeded randomly at startup.
// The canonical string form is 24 lowercase hexadecimal characters, and
// string round-trips are exact: Parse(s).Hex() == strings.ToLower(s) for
// every valid s.
package oid

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	depictio "github.com/depictio/depictio-models"
)

// ObjectID is a 12-byte globally unique identifier. Equality is byte-wise;
// the zero value is the nil identifier.
type ObjectID [12]byte

// Nil is the zero-valued identifier.
var Nil ObjectID

var (
	processEntropy = readEntropy()
	counter        = readCounterSeed()
)

func readEntropy() [5]byte {
	var b [5]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		panic(fmt.Errorf("oid: cannot seed process entropy: %w", err))
	}
	return b
}

func readCounterSeed() *uint32 {
	var b [4]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		panic(fmt.Errorf("oid: cannot seed counter: %w", err))
	}
	c := binary.BigEndian.Uint32(b[:])
	return &c
}

// New generates a fresh identifier from the current time, the per-process
// entropy, and the next counter value. No collision checking is performed;
// callers trust the underlying entropy and time sources.
func New() ObjectID {
	return NewFromTime(time.Now())
}

// NewFromTime generates a fresh identifier whose timestamp section encodes t.
func NewFromTime(t time.Time) ObjectID {
	var id ObjectID
	binary.BigEndian.PutUint32(id[0:4], uint32(t.Unix()))
	copy(id[4:9], processEntropy[:])
	n := atomic.AddUint32(counter, 1)
	id[9] = byte(n >> 16)
	id[10] = byte(n >> 8)
	id[11] = byte(n)
	return id
}

// Parse decodes a 24-character hexadecimal string into an ObjectID.
// Any other length or non-hex input fails with an invalid-identifier error.
func Parse(s string) (ObjectID, error) {
	var id ObjectID
	if len(s) != 24 {
		return Nil, depictio.NewFieldError(depictio.KindInvalidIdentifier,
			"invalid identifier %q: must be 24 hexadecimal characters, got %d", s, len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return Nil, depictio.NewFieldError(depictio.KindInvalidIdentifier,
			"invalid identifier %q: %v", s, err)
	}
	return id, nil
}

// FromBytes builds an ObjectID from a raw 12-byte value.
func FromBytes(b []byte) (ObjectID, error) {
	var id ObjectID
	if len(b) != 12 {
		return Nil, depictio.NewFieldError(depictio.KindInvalidIdentifier,
			"invalid identifier: must be 12 bytes, got %d", len(b))
	}
	copy(id[:], b)
	return id, nil
}

// FromAny coerces the accepted input shapes into an ObjectID: an ObjectID
// (copied as-is), a 24-character hex string, or a raw 12-byte value.
func FromAny(v any) (ObjectID, error) {
	switch value := v.(type) {
	case ObjectID:
		return value, nil
	case *ObjectID:
		if value == nil {
			return Nil, depictio.NewFieldError(depictio.KindInvalidIdentifier, "invalid identifier: nil")
		}
		return *value, nil
	case string:
		return Parse(value)
	case []byte:
		return FromBytes(value)
	default:
		return Nil, depictio.NewFieldError(depictio.KindInvalidIdentifier,
			"invalid identifier: unsupported type %T", v)
	}
}

// Hex returns the canonical lowercase hexadecimal form.
func (id ObjectID) Hex() string {
	return hex.EncodeToString(id[:])
}

// String implements fmt.Stringer.
func (id ObjectID) String() string {
	return id.Hex()
}

// Bytes returns a copy of the raw 12-byte value.
func (id ObjectID) Bytes() []byte {
	b := make([]byte, 12)
	copy(b, id[:])
	return b
}

// IsZero reports whether the identifier is the nil value.
func (id ObjectID) IsZero() bool {
	return id == Nil
}

// Timestamp returns the creation time encoded in the identifier.
func (id ObjectID) Timestamp() time.Time {
	return time.Unix(int64(binary.BigEndian.Uint32(id[0:4])), 0)
}

// MarshalText implements encoding.TextMarshaler, rendering the hex form.
// This covers JSON and YAML string marshaling as well.
func (id ObjectID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ObjectID) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalJSON renders the identifier as a JSON string.
func (id ObjectID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.Hex() + `"`), nil
}

// UnmarshalJSON accepts a JSON string in hex form.
func (id *ObjectID) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return depictio.NewFieldError(depictio.KindInvalidIdentifier,
			"invalid identifier: expected JSON string, got %s", string(data))
	}
	return id.UnmarshalText(data[1 : len(data)-1])
}
