package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{NotFound("movie not found"), http.StatusNotFound},
		{FieldError("text", "required"), http.StatusBadRequest},
		{AuthenticationInvalid("bad"), http.StatusUnauthorized},
		{AuthenticationRequired("missing"), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{Conflict("taken"), http.StatusConflict},
		{Internal("boom", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		appErr, ok := As(tc.err)
		assert.True(t, ok)
		assert.Equal(t, tc.status, appErr.Status(), tc.err.Error())
	}
}

func TestKindChecksSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading review: %w", NotFound("review not found"))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsForbidden(err))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestValidationCarriesFields(t *testing.T) {
	err := Validation("Validation failed", map[string]string{"email": "must be a valid email"})

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "must be a valid email", appErr.Fields["email"])
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_user_profiles_username"`)))
	assert.True(t, IsDuplicateError(errors.New("UNIQUE constraint failed: user_profiles.username")))
	assert.False(t, IsDuplicateError(errors.New("connection refused")))
	assert.False(t, IsDuplicateError(nil))
}
