package depictio

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds categorize validation failures. Every *FieldError produced by
// the library carries exactly one of these.
const (
	// KindInvalidIdentifier indicates a value that is not a valid 12-byte
	// object identifier (24 hexadecimal characters in string form).
	KindInvalidIdentifier = "invalid_identifier"

	// KindMissingRequiredField indicates a required field that was absent
	// or null in the input.
	KindMissingRequiredField = "missing_required_field"

	// KindUnexpectedField indicates a field not declared by a closed schema.
	KindUnexpectedField = "unexpected_field"

	// KindInvalidEnum indicates a value outside a fixed allowed set.
	KindInvalidEnum = "invalid_enum"

	// KindInvalidPattern indicates a value that does not compile as a
	// regular expression.
	KindInvalidPattern = "invalid_pattern"

	// KindUnsafeContent indicates markup that survived sanitization.
	KindUnsafeContent = "unsafe_content"

	// KindTooLong indicates a value exceeding its length bound.
	KindTooLong = "too_long"

	// KindInvalidDatetime indicates a value that could not be parsed as a
	// datetime.
	KindInvalidDatetime = "invalid_datetime"

	// KindMissingEnvVar indicates a {NAME} placeholder referencing an unset
	// environment variable.
	KindMissingEnvVar = "missing_env_var"

	// KindPathNotFound indicates a path that does not exist on the local
	// filesystem.
	KindPathNotFound = "path_not_found"

	// KindNotADirectory indicates a path that exists but is not a directory.
	KindNotADirectory = "not_a_directory"

	// KindNotAFile indicates a path that exists but is not a regular file.
	KindNotAFile = "not_a_file"

	// KindNotReadable indicates a path the process cannot read.
	KindNotReadable = "not_readable"

	// KindDisjointnessViolation indicates a user appearing in more than one
	// permission role.
	KindDisjointnessViolation = "disjointness_violation"

	// KindDuplicateMember indicates a duplicated identifier in a member set.
	KindDuplicateMember = "duplicate_member"

	// KindInvalidHashLength indicates a content hash of the wrong length for
	// its algorithm.
	KindInvalidHashLength = "invalid_hash_length"

	// KindDiscriminatorMismatch indicates an unrecognized type tag in a
	// discriminated union field.
	KindDiscriminatorMismatch = "discriminator_mismatch"

	// KindInvalidEmail indicates a malformed email address.
	KindInvalidEmail = "invalid_email"

	// KindInvalidURL indicates a malformed URL.
	KindInvalidURL = "invalid_url"

	// KindInvalidValue indicates a value rejected by a field rule not
	// covered by a more specific kind (wrong type, out of range, failed
	// complexity or expiry checks).
	KindInvalidValue = "invalid_value"
)

// FieldError is the structured validation error produced by every validator
// in the library. It carries the dotted path of the offending field
// (including list indices, e.g. "workflows.0.engine.name"), the taxonomy
// kind, and a human-readable reason.
//
// FieldError implements the error interface and supports errors.Is and
// errors.As.
type FieldError struct {
	// Path is the dotted path of the failing field. Validators that do not
	// know their position leave it empty; the schema engine fills it in as
	// validation unwinds.
	Path string

	// Kind is one of the Kind* constants.
	Kind string

	// Reason is the human-readable failure description.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// NewFieldError creates a FieldError with a formatted reason and no path.
func NewFieldError(kind, format string, args ...any) *FieldError {
	return &FieldError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Kind, e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is matches another *FieldError by kind; a target with an empty Path
// matches any path. This lets callers write
// errors.Is(err, &FieldError{Kind: KindTooLong}).
func (e *FieldError) Is(target error) bool {
	t, ok := target.(*FieldError)
	if !ok {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	if t.Path != "" && t.Path != e.Path {
		return false
	}
	return t.Kind != "" || t.Path != ""
}

// AtPath returns a copy of the error rooted at path. The existing path, if
// any, becomes a suffix.
func (e *FieldError) AtPath(path string) *FieldError {
	clone := *e
	switch {
	case clone.Path == "":
		clone.Path = path
	case path != "":
		clone.Path = path + "." + clone.Path
	}
	return &clone
}

// Prefix roots err at segment. *FieldError and List values are rewritten;
// any other error is wrapped in a *FieldError with KindInvalidValue so the
// path information is never lost.
func Prefix(err error, segment string) error {
	if err == nil {
		return nil
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.AtPath(segment)
	}
	var list List
	if errors.As(err, &list) {
		prefixed := make(List, len(list))
		for i, item := range list {
			prefixed[i] = item.AtPath(segment)
		}
		return prefixed
	}
	return &FieldError{Path: segment, Kind: KindInvalidValue, Reason: err.Error(), Err: err}
}

// KindOf returns the taxonomy kind of err, or "" when err carries none.
func KindOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// PathOf returns the field path of err, or "" when err carries none.
func PathOf(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Path
	}
	return ""
}

// List aggregates multiple field errors, one per record, for batch
// validation entry points.
type List []*FieldError

// Error implements the error interface.
func (l List) Error() string {
	if len(l) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d validation error(s): %s", len(l), strings.Join(msgs, "; "))
}

// ErrOrNil returns the list as an error, or nil when it is empty.
func (l List) ErrOrNil() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
