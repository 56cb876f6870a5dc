package depictio

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrorMessage(t *testing.T) {
	err := NewFieldError(KindInvalidEnum, "value %q not allowed", "bogus")
	assert.Equal(t, `invalid_enum: value "bogus" not allowed`, err.Error())

	at := err.AtPath("engine.name")
	assert.Equal(t, `engine.name: invalid_enum: value "bogus" not allowed`, at.Error())
	assert.Equal(t, "", err.Path, "AtPath must not mutate the original")
}

func TestFieldErrorIsMatchesByKind(t *testing.T) {
	err := NewFieldError(KindTooLong, "too big").AtPath("description")

	assert.True(t, errors.Is(err, &FieldError{Kind: KindTooLong}))
	assert.False(t, errors.Is(err, &FieldError{Kind: KindInvalidEnum}))
	assert.True(t, errors.Is(err, &FieldError{Path: "description"}))
	assert.False(t, errors.Is(err, &FieldError{Path: "name"}))
}

func TestAtPathPrepends(t *testing.T) {
	err := NewFieldError(KindInvalidValue, "bad").AtPath("name").AtPath("engine").AtPath("workflows.0")
	assert.Equal(t, "workflows.0.engine.name", err.Path)
}

func TestPrefixWrapsForeignErrors(t *testing.T) {
	err := Prefix(fmt.Errorf("boom"), "config")
	require.Error(t, err)
	assert.Equal(t, KindInvalidValue, KindOf(err))
	assert.Equal(t, "config", PathOf(err))

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.EqualError(t, fe.Unwrap(), "boom")
}

func TestPrefixRewritesLists(t *testing.T) {
	list := List{
		NewFieldError(KindMissingRequiredField, "name is required").AtPath("name"),
		NewFieldError(KindInvalidEnum, "bad engine").AtPath("engine"),
	}
	err := Prefix(list.ErrOrNil(), "workflows.2")

	var out List
	require.ErrorAs(t, err, &out)
	require.Len(t, out, 2)
	assert.Equal(t, "workflows.2.name", out[0].Path)
	assert.Equal(t, "workflows.2.engine", out[1].Path)
}

func TestPrefixNil(t *testing.T) {
	assert.NoError(t, Prefix(nil, "anything"))
}

func TestListErrOrNil(t *testing.T) {
	assert.NoError(t, List{}.ErrOrNil())

	list := List{NewFieldError(KindInvalidValue, "bad")}
	require.Error(t, list.ErrOrNil())
	assert.Contains(t, list.Error(), "1 validation error(s)")
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, "", KindOf(fmt.Errorf("plain")))
	assert.Equal(t, "", PathOf(fmt.Errorf("plain")))
}
