package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestApiErrUnwrapsSentinel(t *testing.T) {
	err := NewNotFound("portfolio")
	assert.True(t, IsNotFound(err))
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "portfolio not found", err.Error())
}

func TestValidationErrorCarriesField(t *testing.T) {
	err := NewValidationError("username", "username is required")
	assert.True(t, IsValidation(err))
	assert.Equal(t, "username", err.Field)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
}

func TestAuthFailureIsUniform(t *testing.T) {
	a := NewAuthFailure()
	b := NewAuthFailure()
	assert.True(t, IsAuthFailure(a))
	assert.Equal(t, a.Error(), b.Error())
	assert.Equal(t, http.StatusUnauthorized, a.StatusCode)
}

func TestIsUniqueViolationDriverWordings(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"postgres", errors.New(`duplicate key value violates unique constraint "idx_users_username"`), true},
		{"sqlite", errors.New("UNIQUE constraint failed: users.username"), true},
		{"gorm sentinel", gorm.ErrDuplicatedKey, true},
		{"unrelated", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsUniqueViolation(tc.err))
		})
	}
}

func TestNewDatabaseErrorClassification(t *testing.T) {
	conflict := NewDatabaseError("create", "user", errors.New("UNIQUE constraint failed: users.username"))
	assert.Equal(t, http.StatusConflict, conflict.StatusCode)
	assert.True(t, IsAlreadyExists(conflict))

	missing := NewDatabaseError("find", "portfolio", gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	assert.True(t, IsNotFound(missing))

	unavailable := NewDatabaseError("find", "portfolio", errors.New("connection refused"))
	assert.Equal(t, http.StatusServiceUnavailable, unavailable.StatusCode)

	unknown := NewDatabaseError("find", "portfolio", errors.New("syntax error"))
	assert.Equal(t, http.StatusInternalServerError, unknown.StatusCode)
}

func TestGetFullErrorChainsCauses(t *testing.T) {
	err := NewDatabaseError("create", "user", errors.New("disk full"))
	full := err.GetFullError()
	assert.Contains(t, full, "failed to create user")
	assert.Contains(t, full, "disk full")

	// The raw cause never reaches the client-facing message.
	assert.NotContains(t, err.Error(), "disk full")
}
