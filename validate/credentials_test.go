package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashedPassword(t *testing.T) {
	const digest = "$2b$12$LQv3c1yqBWVHxkd0LHAkCOYz6TtxMQJqhN8/LewGyBxaLxxPjOG2u"

	v, err := HashedPassword(digest)
	require.NoError(t, err)
	assert.Equal(t, digest, v)

	for _, bad := range []any{"hunter2", "plaintext-password", "", 42} {
		_, err := HashedPassword(bad)
		assert.Errorf(t, err, "expected rejection for %v", bad)
	}
}

func TestAccessToken(t *testing.T) {
	v, err := AccessToken("Abc12345")
	require.NoError(t, err)
	assert.Equal(t, "Abc12345", v)

	tests := []struct {
		name  string
		token string
	}{
		{"too short", "Ab1"},
		{"too long", "Ab1" + strings.Repeat("x", MaxAccessTokenLen)},
		{"no uppercase", "abc12345"},
		{"no lowercase", "ABC12345"},
		{"no digit", "Abcdefgh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AccessToken(tt.token)
			assert.Error(t, err)
		})
	}
}
