package validate

import (
	"strings"
	"unicode"

	depictio "github.com/depictio/depictio-models"
)

// Access token length bounds.
const (
	MinAccessTokenLen = 8
	MaxAccessTokenLen = 128
)

// bcrypt digests are the only password shapes the model layer accepts;
// plaintext never crosses this boundary.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// HashedPassword accepts only pre-hashed password values matching a known
// bcrypt prefix and rejects anything that looks like plaintext.
func HashedPassword(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, depictio.NewFieldError(depictio.KindInvalidValue, "expected a string, got %T", value)
	}
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(s, prefix) {
			return s, nil
		}
	}
	return nil, depictio.NewFieldError(depictio.KindInvalidValue,
		"password must be a bcrypt hash, plaintext is rejected")
}

// AccessToken enforces token length bounds and minimum complexity: at least
// one uppercase letter, one lowercase letter, and one digit.
func AccessToken(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, depictio.NewFieldError(depictio.KindInvalidValue, "expected a string, got %T", value)
	}
	if len(s) < MinAccessTokenLen {
		return nil, depictio.NewFieldError(depictio.KindInvalidValue,
			"access token must be at least %d characters, got %d", MinAccessTokenLen, len(s))
	}
	if len(s) > MaxAccessTokenLen {
		return nil, depictio.NewFieldError(depictio.KindTooLong,
			"access token must be at most %d characters, got %d", MaxAccessTokenLen, len(s))
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return nil, depictio.NewFieldError(depictio.KindInvalidValue,
			"access token must contain uppercase, lowercase, and numeric characters")
	}
	return s, nil
}
