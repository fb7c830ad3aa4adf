package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValidatorNamesFirstField(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
	}
	err := FromValidator(validator.New().Struct(payload{}))
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Email", verr.Field)
	assert.Contains(t, verr.Message, "required")
	assert.True(t, IsValidation(err))
}

func TestExternalWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := External("object storage", cause)

	assert.ErrorIs(t, err, cause)
	assert.Nil(t, External("x", nil))

	var ext *ExternalServiceError
	require.True(t, errors.As(fmt.Errorf("upload: %w", err), &ext))
	assert.Equal(t, "object storage", ext.Service)
}

func TestPaymentGatewayErrorMessage(t *testing.T) {
	err := &PaymentGatewayError{Provider: "midtrans", Message: "gross_amount must be greater than 0"}
	assert.Equal(t, "midtrans: gross_amount must be greater than 0", err.Error())
	assert.False(t, IsValidation(err))
}
