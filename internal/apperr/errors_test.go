package apperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Message(t *testing.T) {
	err := Invalid("latitude", 91.5, "must be between -90 and 90")
	assert.Equal(t, "invalid latitude 91.5: must be between -90 and 90", err.Error())
}

func TestIsValidation_Wrapped(t *testing.T) {
	err := fmt.Errorf("calculate: %w", Invalid("month", 13, "must be 1..12"))
	assert.True(t, IsValidation(err))
	assert.False(t, IsValidation(fmt.Errorf("plain")))
}

func TestToAppError(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		ae := ToAppError(fmt.Errorf("wrap: %w", Invalid("day", 31, "out of range")))
		require.NotNil(t, ae)
		assert.Equal(t, CodeValidation, ae.Code)
		assert.Equal(t, http.StatusBadRequest, ae.StatusCode)
		assert.Equal(t, "day", ae.Details["field"])
	})

	t.Run("app error passes through", func(t *testing.T) {
		ae := ToAppError(fmt.Errorf("lookup: %w", ErrNotFound))
		assert.Same(t, ErrNotFound, ae)
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Same(t, ErrInternal, ToAppError(fmt.Errorf("boom")))
	})
}

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	d := ErrNotFound.WithDetails(map[string]any{"place": "Atlantis"})
	assert.Equal(t, "Atlantis", d.Details["place"])
	assert.Nil(t, ErrNotFound.Details)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusOf(nil))
	assert.Equal(t, http.StatusBadRequest, StatusOf(Invalid("lat", 100, "out of range")))
	assert.Equal(t, http.StatusNotFound, StatusOf(fmt.Errorf("place: %w", ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(fmt.Errorf("boom")))
}
