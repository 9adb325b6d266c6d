package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewValidation("bad").StatusCode())
	assert.Equal(t, http.StatusNotFound, NewNotFound("shift").StatusCode())
	assert.Equal(t, http.StatusConflict, NewInvalidState("done").StatusCode())
	assert.Equal(t, http.StatusBadGateway, NewUpstream("smtp", nil).StatusCode())
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading schedule: %w", NewNotFound("shift"))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.False(t, IsInvalidState(err))
}

func TestNotFoundMessage(t *testing.T) {
	assert.EqualError(t, NewNotFound("swap request"), "swap request not found")
}
