package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	id := uuid.MustParse("6f1c2f0e-8a4b-4f5d-9a53-2d9a4c1e7b10")
	err := NotFound("Property", id)

	assert.Equal(t, CodeNotFound, err.Code)
	assert.Equal(t, "Property with id 6f1c2f0e-8a4b-4f5d-9a53-2d9a4c1e7b10 was not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidState))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(map[string][]string{
		"name":     {"Name is required"},
		"postcode": {"Postcode is required", "Postcode must be a valid UK postcode"},
	})

	assert.Equal(t, "One or more validation errors occurred: name: Name is required, postcode: Postcode is required; Postcode must be a valid UK postcode", err.Error())

	var target *ValidationError
	require.True(t, errors.As(fmt.Errorf("handler: %w", err), &target))
	assert.Len(t, target.Fields["postcode"], 2)

	assert.True(t, errors.Is(err, NewDomainError(CodeValidationFailed, "")))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("email", "Email is already in use")
	assert.Equal(t, map[string][]string{"email": {"Email is already in use"}}, err.Fields)
}
