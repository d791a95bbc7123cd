package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAppErrorIsMatchesByCodeAndDomain(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrInvalidCredentials)
	assert.True(t, errors.Is(wrapped, ErrInvalidCredentials))
	assert.False(t, errors.Is(wrapped, ErrInvalidToken))

	// Copies with details still match their origin.
	withDetails := ErrWeakPassword.WithDetails([]string{"too short"})
	assert.True(t, errors.Is(withDetails, ErrWeakPassword))
}

func TestWithDetailsDoesNotMutateOriginal(t *testing.T) {
	clone := ErrWeakPassword.WithDetails([]string{"too short"})
	assert.NotNil(t, clone.Details)
	assert.Nil(t, ErrWeakPassword.Details, "predefined errors stay immutable")
}

func TestWithErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := ErrUserNotFound.WithError(cause)
	assert.True(t, errors.Is(err, cause))
	assert.Nil(t, ErrUserNotFound.Err)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := InternalError(cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode)
}

func TestHandleErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, ErrInvalidCredentials)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, CodeInvalidCredentials, resp.Code)
	assert.NotEmpty(t, resp.Message)
}

func TestHandleErrorHidesInternalsInRelease(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	handler := &GinErrorHandler{Debug: false}
	handler.HandleGinError(c, errors.New("pq: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestHandleErrorWrapsPlainErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleError(c, errors.New("some plain failure"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, CodeInternalError, resp.Code)
}
