package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ordersim/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse_MapsErrorKindsToStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", errs.NewObjectNotFoundError("orderId", "GLW-1-AAAAAAAA"), http.StatusNotFound},
		{"already exists", errs.NewObjectAlreadyExistsError("orderId", "GLW-1-AAAAAAAA"), http.StatusConflict},
		{"terminal status", errs.NewStatusIsTerminalError("cancelled"), http.StatusConflict},
		{"invalid transition", errs.NewTransitionIsInvalidError("pending", "completed"), http.StatusConflict},
		{"required value", errs.NewValueIsRequiredError("userId"), http.StatusBadRequest},
		{"invalid value", errs.NewValueIsInvalidError("limit"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("limit", 500, 1, 200), http.StatusBadRequest},
		{"storage down", errs.NewStorageUnavailableError("get order", errors.New("connection refused")), http.StatusServiceUnavailable},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, errorResponse(ctx, tt.err))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestErrorResponse_NeverLeaksStorageDetail(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, errorResponse(ctx, errs.NewStorageUnavailableError("get order", errors.New("dial tcp 10.0.0.5:5432"))))
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Contains(t, rec.Body.String(), "Storage unavailable")

	rec = httptest.NewRecorder()
	ctx = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, errorResponse(ctx, errors.New("pq: relation orders does not exist")))
	assert.NotContains(t, rec.Body.String(), "relation")
	assert.Contains(t, rec.Body.String(), "Internal server error")
}
