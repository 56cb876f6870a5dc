package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	depictio "github.com/depictio/depictio-models"
)

func TestSanitizeDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "quality control report", "quality control report"},
		{"script removed with content", "<script>alert(1)</script>hello", "hello"},
		{"style removed with content", "<style>body{}</style>text", "text"},
		{"inline tags stripped", "<b>bold</b> and <i>italic</i>", "bold and italic"},
		{"escaped script removed", "&lt;script&gt;alert(1)&lt;/script&gt;safe", "safe"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeDescription(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeDescriptionRejectsSurvivingMarkup(t *testing.T) {
	// a bare < never closes, so stripping cannot remove it
	_, err := SanitizeDescription("a < b")
	require.Error(t, err)
	assert.Equal(t, depictio.KindUnsafeContent, depictio.KindOf(err))
}

func TestSanitizeDescriptionLengthBound(t *testing.T) {
	ok := strings.Repeat("a", MaxDescriptionLen)
	got, err := SanitizeDescription(ok)
	require.NoError(t, err)
	assert.Len(t, got, MaxDescriptionLen)

	_, err = SanitizeDescription(ok + "a")
	require.Error(t, err)
	assert.Equal(t, depictio.KindTooLong, depictio.KindOf(err))
}

func TestSanitizeLengthCheckedAfterStripping(t *testing.T) {
	// markup pushes the raw input over the bound, but the sanitized text fits
	padded := "<b>" + strings.Repeat("a", MaxDescriptionLen) + "</b>"
	got, err := SanitizeDescription(padded)
	require.NoError(t, err)
	assert.Len(t, got, MaxDescriptionLen)
}

func TestDescriptionRule(t *testing.T) {
	v, err := Description("<p>fine</p>")
	require.NoError(t, err)
	assert.Equal(t, "fine", v)

	_, err = Description(99)
	require.Error(t, err)
}
