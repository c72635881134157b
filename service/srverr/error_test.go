package srverr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestE(t *testing.T) {
	err := E(NotFound, "no such object %q", "x")
	assert.Equal(t, "item does not exist: no such object \"x\"", err.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsInvalid(err))
}

func TestEWrapsErrors(t *testing.T) {
	inner := errors.New("boom")
	err := E(Invalid, inner)
	assert.True(t, IsInvalid(err))
	assert.ErrorIs(t, err, inner)
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("context: %w", ErrNotFound("gone"))
	assert.True(t, IsNotFound(err))
}

func TestMessageOmitsKind(t *testing.T) {
	var e *Error
	assert.True(t, errors.As(ErrInvalid("bad argument"), &e))
	assert.Equal(t, "bad argument", e.Message())
	assert.Equal(t, "invalid operation: bad argument", e.Error())
}

func TestRecoverError(t *testing.T) {
	inner := errors.New("boom")
	assert.Same(t, inner, RecoverError(inner))
	assert.EqualError(t, RecoverError("oops"), "panic: oops")
}
