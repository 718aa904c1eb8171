package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches the outermost code", func(t *testing.T) {
		err := New(CodeUnauthorized, "invalid credentials")
		assert.True(t, HasCode(err, CodeUnauthorized))
		assert.False(t, HasCode(err, CodeNotFound))
	})

	t.Run("finds codes deeper in the chain", func(t *testing.T) {
		inner := New(CodeNotFound, "session not found")
		outer := Wrap(inner, CodeInternal, "failed to load session")
		assert.True(t, HasCode(outer, CodeInternal))
		assert.True(t, HasCode(outer, CodeNotFound))
	})

	t.Run("nil and foreign errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(nil, CodeInternal))
		assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	t.Run("preserves the cause for errors.Is", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(cause, CodeInternal, "something failed")
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("wrapping nil yields nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
	})

	t.Run("wrapping with fmt %w keeps the code reachable", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeValidation, "bad field"))
		assert.True(t, HasCode(err, CodeValidation))
	})
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeValidation))
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeInvalidInput))
	assert.Equal(t, http.StatusUnauthorized, ToHTTPStatus(CodeUnauthorized))
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusConflict, ToHTTPStatus(CodeInvariantViolation))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(CodeInternal))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(Code("unknown")))
}
