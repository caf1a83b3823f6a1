package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("opening shift: %w", apperrors.NewConflictError("terminal already closed today"))

	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))

	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.Code)
	assert.Contains(t, err.Error(), "terminal already closed today")
}

func TestAppErrorWithoutCause(t *testing.T) {
	err := apperrors.NewAppError(500, "boom", nil)
	assert.Equal(t, "boom", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
