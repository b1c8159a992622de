package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "ORIGIN_UNRESOLVED: Unable to determine location for start postcode", ErrOriginUnresolved.Error())
}

func TestAppError_WithDetailsKeepsSentinel(t *testing.T) {
	detailed := ErrInvalidRequest.WithDetails(map[string]interface{}{"field": "origin_postcode"})

	assert.Equal(t, "origin_postcode", detailed.Details["field"])
	assert.Empty(t, ErrInvalidRequest.Details)
	assert.True(t, stderrors.Is(detailed, ErrInvalidRequest))
	assert.Equal(t, http.StatusBadRequest, detailed.StatusCode)
}

func TestAppError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("%w: status ZERO_RESULTS", ErrOriginUnresolved)

	assert.True(t, stderrors.Is(err, ErrOriginUnresolved))
	assert.False(t, stderrors.Is(err, ErrCommuteUnavailable))

	var appErr *AppError
	assert.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
}
