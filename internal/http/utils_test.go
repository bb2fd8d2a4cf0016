package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ypamar/newsletter/internal/domain"
	pkgmocks "github.com/ypamar/newsletter/pkg/mocks"
)

// newMockLogger returns a logger mock accepting any call
func newMockLogger(ctrl *gomock.Controller) *pkgmocks.MockLogger {
	mockLogger := pkgmocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().WithField(gomock.Any(), gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().WithFields(gomock.Any()).Return(mockLogger).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()
	return mockLogger
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp["error"]
}

func TestWriteJSONError(t *testing.T) {
	testCases := []struct {
		name       string
		message    string
		statusCode int
	}{
		{name: "bad_request", message: "Bad request", statusCode: http.StatusBadRequest},
		{name: "not_found", message: "Not found", statusCode: http.StatusNotFound},
		{name: "internal_error", message: "Internal server error", statusCode: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteJSONError(w, tc.message, tc.statusCode)

			assert.Equal(t, tc.statusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tc.message, decodeError(t, w))
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "validation",
			err:        domain.NewValidationError("name is required"),
			wantStatus: http.StatusBadRequest,
			wantError:  "validation error: name is required",
		},
		{
			name:       "wrapped validation",
			err:        fmt.Errorf("open: %w", domain.NewValidationError("bad design")),
			wantStatus: http.StatusBadRequest,
			wantError:  "open: validation error: bad design",
		},
		{
			name:       "session not found",
			err:        &domain.ErrSessionNotFound{SessionID: "s1"},
			wantStatus: http.StatusNotFound,
			wantError:  "editor session not found: s1",
		},
		{
			name:       "entity not found",
			err:        &domain.ErrNotFound{Entity: "template", ID: "k1"},
			wantStatus: http.StatusNotFound,
			wantError:  "template not found with ID: k1",
		},
		{
			name:       "cancelled",
			err:        fmt.Errorf("render: %w", context.Canceled),
			wantStatus: http.StatusRequestTimeout,
			wantError:  "Request cancelled",
		},
		{
			name:       "internal",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to do it",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			w := httptest.NewRecorder()
			writeServiceError(w, newMockLogger(ctrl), tc.err, "Failed to do it")

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantError, decodeError(t, w))
		})
	}
}

func TestWriteServiceError_RateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	w := httptest.NewRecorder()
	writeServiceError(w, newMockLogger(ctrl), &domain.ErrRateLimited{Action: "test send", RetryAfter: 2500 * time.Millisecond}, "Failed")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3", w.Header().Get("Retry-After"))
	assert.Equal(t, "too many test send requests, retry in 3s", decodeError(t, w))
}

func TestDecodeJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockLogger := newMockLogger(ctrl)

	t.Run("valid body", func(t *testing.T) {
		var req domain.SessionRequest
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"session_id":"s1"}`))

		assert.True(t, decodeJSON(w, r, mockLogger, &req))
		assert.Equal(t, "s1", req.SessionID)
	})

	t.Run("malformed body", func(t *testing.T) {
		var req domain.SessionRequest
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"session_id":`))

		assert.False(t, decodeJSON(w, r, mockLogger, &req))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeError(t, w))
	})

	t.Run("body too large", func(t *testing.T) {
		var req domain.SessionRequest
		w := httptest.NewRecorder()
		body := `{"session_id":"` + strings.Repeat("x", maxBodySize) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

		assert.False(t, decodeJSON(w, r, mockLogger, &req))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
