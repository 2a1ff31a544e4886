package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseError(cause)

	assert.Equal(t, "Database error: connection refused", err.Error())
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.True(t, errors.Is(err, cause))

	assert.Equal(t, "Car not found", NewNotFoundError("Car not found").Error())
}

func TestIsNotFound(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NewNotFoundError("Car not found"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsNotFound(NewValidationError("year is required")))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestAsAppError(t *testing.T) {
	validation := NewValidationError("missing fields")
	assert.Same(t, validation, AsAppError(fmt.Errorf("create: %w", validation)))

	internal := AsAppError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, internal.StatusCode)
	assert.Equal(t, "Internal server error", internal.Message)

	assert.Equal(t, http.StatusUnprocessableEntity, NewJSONError(errors.New("eof")).StatusCode)
}
