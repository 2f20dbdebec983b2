package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Name     string `validate:"required,min=2"`
}

func TestRequestValidatorPasses(t *testing.T) {
	v := NewRequestValidator()
	err := v.Validate(&registerForm{Email: "a@b.com", Password: "hunter22", Name: "Ada"})
	assert.NoError(t, err)
}

func TestRequestValidatorReportsBadRequest(t *testing.T) {
	v := NewRequestValidator()
	err := v.Validate(&registerForm{Email: "not-an-email", Password: "x", Name: ""})
	require.Error(t, err)

	var apiErr *ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Validation Error", apiErr.Message)
	assert.Len(t, apiErr.Errs, 3)
}
