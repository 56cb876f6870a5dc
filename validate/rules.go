package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	depictio "github.com/depictio/depictio-models"
)

// Rule is a pure validation step: it receives a field value and returns the
// value (possibly normalized) or a structured error.
type Rule func(value any) (any, error)

// Chain composes rules into one, applied left to right. The first failing
// rule aborts the chain.
func Chain(rules ...Rule) Rule {
	return func(value any) (any, error) {
		var err error
		for _, rule := range rules {
			value, err = rule(value)
			if err != nil {
				return nil, err
			}
		}
		return value, nil
	}
}

// String requires a string value.
func String(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, depictio.NewFieldError(depictio.KindInvalidValue, "expected a string, got %T", value)
	}
	return s, nil
}

// NonEmpty requires a non-empty string.
func NonEmpty(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, depictio.NewFieldError(depictio.KindInvalidValue, "expected a string, got %T", value)
	}
	if s == "" {
		return nil, depictio.NewFieldError(depictio.KindMissingRequiredField, "value cannot be empty")
	}
	return s, nil
}

// Bool requires a boolean value.
func Bool(value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, depictio.NewFieldError(depictio.KindInvalidValue, "expected a boolean, got %T", value)
	}
	return b, nil
}

// Int requires an integer value, accepting the numeric shapes a JSON or
// YAML decoder produces.
func Int(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int64(v)) {
			return nil, depictio.NewFieldError(depictio.KindInvalidValue, "expected an integer, got %v", v)
		}
		return int(v), nil
	default:
		return nil, depictio.NewFieldError(depictio.KindInvalidValue, "expected an integer, got %T", value)
	}
}

// Positive requires a strictly positive integer; zero is rejected.
func Positive(value any) (any, error) {
	v, err := Int(value)
	if err != nil {
		return nil, err
	}
	n := v.(int)
	if n == 0 {
		return nil, depictio.NewFieldError(depictio.KindInvalidValue, "value cannot be zero")
	}
	if n < 0 {
		return nil, depictio.NewFieldError(depictio.KindInvalidValue, "value cannot be negative, got %d", n)
	}
	return n, nil
}

// Range requires an integer within [min, max] inclusive.
func Range(min, max int) Rule {
	return func(value any) (any, error) {
		v, err := Int(value)
		if err != nil {
			return nil, err
		}
		n := v.(int)
		if n < min || n > max {
			return nil, depictio.NewFieldError(depictio.KindInvalidValue,
				"value must be between %d and %d, got %d", min, max, n)
		}
		return n, nil
	}
}

// MaxLen bounds a string's length.
func MaxLen(max int) Rule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, depictio.NewFieldError(depictio.KindInvalidValue, "expected a string, got %T", value)
		}
		if len(s) > max {
			return nil, depictio.NewFieldError(depictio.KindTooLong,
				"value must be at most %d characters, got %d", max, len(s))
		}
		return s, nil
	}
}

// Enum requires the value, case-insensitively, to be a member of a fixed
// allowed set and normalizes it to the canonical (lowercase) member.
func Enum(allowed ...string) Rule {
	canonical := make(map[string]string, len(allowed))
	for _, a := range allowed {
		canonical[strings.ToLower(a)] = strings.ToLower(a)
	}
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, depictio.NewFieldError(depictio.KindInvalidEnum,
				"expected one of %v, got %T", allowed, value)
		}
		member, ok := canonical[strings.ToLower(s)]
		if !ok {
			return nil, depictio.NewFieldError(depictio.KindInvalidEnum,
				"value %q must be one of %v", s, allowed)
		}
		return member, nil
	}
}

// Pattern requires the value to compile as a regular expression.
func Pattern(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, depictio.NewFieldError(depictio.KindInvalidPattern, "expected a string, got %T", value)
	}
	if _, err := regexp.Compile(s); err != nil {
		return nil, depictio.NewFieldError(depictio.KindInvalidPattern, "invalid regex pattern %q: %v", s, err)
	}
	return s, nil
}

var (
	sha256HexRe = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)
	md5HexRe    = regexp.MustCompile(`^[a-fA-F0-9]{32}$`)
)

// SHA256Hex requires a 64-character hexadecimal SHA-256 digest. Used for
// file and run integrity hashes.
func SHA256Hex(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, depictio.NewFieldError(depictio.KindInvalidHashLength, "expected a string, got %T", value)
	}
	if !sha256HexRe.MatchString(s) {
		return nil, depictio.NewFieldError(depictio.KindInvalidHashLength,
			"invalid hash: must be 64 hexadecimal characters, got %d", len(s))
	}
	return s, nil
}

// MD5Hex requires a 32-character hexadecimal MD5 digest. Used for project
// and workflow change-detection hashes; distinct from SHA256Hex by design.
func MD5Hex(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, depictio.NewFieldError(depictio.KindInvalidHashLength, "expected a string, got %T", value)
	}
	if !md5HexRe.MatchString(s) {
		return nil, depictio.NewFieldError(depictio.KindInvalidHashLength,
			"invalid hash: must be 32 hexadecimal characters, got %d", len(s))
	}
	return s, nil
}

// Email requires an RFC 5322 address with a dotted domain and no display
// name. Dotless domains such as "user@localhost" are rejected.
func Email(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, depictio.NewFieldError(depictio.KindInvalidEmail, "expected a string, got %T", value)
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return nil, depictio.NewFieldError(depictio.KindInvalidEmail, "invalid email address %q", s)
	}
	if !strings.Contains(strings.SplitN(s, "@", 2)[1], ".") {
		return nil, depictio.NewFieldError(depictio.KindInvalidEmail, "invalid email address %q", s)
	}
	return s, nil
}

// URL requires the value to start with one of the given schemes
// (e.g. "https", "git") followed by "://".
func URL(schemes ...string) Rule {
	re := regexp.MustCompile(fmt.Sprintf(`^(%s)://\S+$`, strings.Join(schemes, "|")))
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, depictio.NewFieldError(depictio.KindInvalidURL, "expected a string, got %T", value)
		}
		if !re.MatchString(s) {
			return nil, depictio.NewFieldError(depictio.KindInvalidURL,
				"invalid URL %q: expected scheme %v", s, schemes)
		}
		return s, nil
	}
}
