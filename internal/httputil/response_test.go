package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/drive-proxy/internal/errors"
)

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "invalid input exposes message",
			err:            apperrors.Wrap(apperrors.ErrInvalidInput, "fileId: cannot be blank"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid_input","message":"fileId: cannot be blank: invalid input"}`,
		},
		{
			name:           "unauthenticated is generic",
			err:            apperrors.Wrap(apperrors.ErrUnauthenticated, "signature invalid"),
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"error":"forbidden","message":"Unable to verify the request"}`,
		},
		{
			name:           "invalid capability is generic",
			err:            apperrors.Wrap(apperrors.ErrInvalidCapability, "capability expired"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid_capability","message":"The presigned URL is invalid or has expired"}`,
		},
		{
			name:           "upstream failure",
			err:            apperrors.Wrap(apperrors.ErrUpstream, "origin returned 404"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"upstream_error","message":"Unable to fetch the requested asset"}`,
		},
		{
			name:           "dependency unavailable",
			err:            apperrors.Wrap(apperrors.ErrUnavailable, "jwks timeout"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"unavailable","message":"A required service is unavailable"}`,
		},
		{
			name:           "unknown error",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal_error","message":"An internal error occurred"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestHandleErrorGin_NilError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleErrorGin(c, nil, nil)

	assert.Empty(t, w.Body.String())
}

func TestHandleBadRequestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"unexpected EOF"}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleValidationErrorGin(c, errors.New("fileId: cannot be blank."), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"validation_error","message":"fileId: cannot be blank."}`, w.Body.String())
}
