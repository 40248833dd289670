package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindConflict, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestKindOfUnwrapsChains(t *testing.T) {
	wrapped := fmt.Errorf("service layer: %w", NotFound("Artist not found"))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "User not found", ""))
	})

	t.Run("no rows becomes not found", func(t *testing.T) {
		err := Wrap(sql.ErrNoRows, "User not found", "")

		var appErr *Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, KindNotFound, appErr.Kind)
		assert.Equal(t, "User not found", appErr.Message)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("unique violation becomes conflict", func(t *testing.T) {
		err := Wrap(&pq.Error{Code: "23505"}, "User not found", "Email already exists")

		assert.Equal(t, KindConflict, KindOf(err))
	})

	t.Run("tagged errors pass through", func(t *testing.T) {
		original := Validation("Invalid role")

		assert.Same(t, original, Wrap(original, "User not found", ""))
	})

	t.Run("anything else is internal", func(t *testing.T) {
		err := Wrap(errors.New("connection reset"), "User not found", "")

		var appErr *Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, KindInternal, appErr.Kind)
		assert.Equal(t, "Internal server error", appErr.Message)
	})
}
