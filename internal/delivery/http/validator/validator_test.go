package validator

import (
	"testing"

	domainerrors "fitpulse/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestValidate_Valid(t *testing.T) {
	v := New()

	err := v.Validate(&signupForm{Name: "Jamie", Email: "jamie@example.com", Password: "secret1"})

	assert.NoError(t, err)
}

func TestValidate_ReportsEachFailingField(t *testing.T) {
	v := New()

	err := v.Validate(&signupForm{Name: "Jamie", Email: "not-an-email", Password: "abc"})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "email must be a valid email address")
	assert.Contains(t, appErr.Details(), "password must be at least 6 characters")
	assert.NotContains(t, appErr.Details(), "name")
}

func TestValidate_RequiredFields(t *testing.T) {
	v := New()

	err := v.Validate(&signupForm{})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "name is required")
	assert.Contains(t, appErr.Details(), "email is required")
	assert.Contains(t, appErr.Details(), "password is required")
}
