package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindConflict:        http.StatusBadRequest,
		KindUnauthenticated: http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindInternal:        http.StatusInternalServerError,
		Kind("unknown"):     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), "kind %s", kind)
	}
}

func TestKindOf(t *testing.T) {
	t.Run("Application error", func(t *testing.T) {
		assert.Equal(t, KindForbidden, KindOf(Forbidden("nope")))
	})

	t.Run("Wrapped application error", func(t *testing.T) {
		err := fmt.Errorf("toggle: %w", NotFound("Post not found"))
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.True(t, Is(err, KindNotFound))
	})

	t.Run("Foreign error is internal", func(t *testing.T) {
		assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
		assert.False(t, Is(errors.New("boom"), KindNotFound))
	})
}

func TestErrorMessage(t *testing.T) {
	origin := errors.New("connection reset")
	err := Internal(origin)

	assert.Equal(t, "Internal server error: connection reset", err.Error())
	assert.ErrorIs(t, err, origin)
	assert.Equal(t, "Email already registered", Conflict("Email already registered").Error())
}
