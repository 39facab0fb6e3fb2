package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourbook/shared/dto"
	"tourbook/shared/failure"
	"tourbook/transport/http/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithMessage(rec, http.StatusOK, "Tour updated successfully")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"message":"Tour updated successfully"}`, rec.Body.String())
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusOK, map[string]string{"site_name": "Arabian Adventure"})

	assert.JSONEq(t, `{"success":true,"data":{"site_name":"Arabian Adventure"}}`, rec.Body.String())
}

func TestWithPaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithPaginated(rec, dto.Paginated[string]{
		Pagination: dto.Pagination{Total: 0, Page: 1, Limit: 10, TotalPages: 0},
	})

	assert.JSONEq(t, `{"success":true,"data":[],"pagination":{"total":0,"page":1,"limit":10,"totalPages":0}}`, rec.Body.String())
}

func TestWithCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithCreated(rec, "Booking created successfully", "bookingId", "b-1")

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Booking created successfully", body["message"])
	assert.Equal(t, "b-1", body["bookingId"])
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{name: "not found", err: failure.NotFound("Booking not found"), wantCode: http.StatusNotFound, wantMessage: "Booking not found"},
		{name: "bad request", err: failure.BadRequestFromString("status must be one of pending confirmed cancelled completed"), wantCode: http.StatusBadRequest, wantMessage: "status must be one of pending confirmed cancelled completed"},
		{name: "unauthorized", err: failure.InvalidCredentials, wantCode: http.StatusUnauthorized, wantMessage: "Invalid credentials"},
		{name: "internal detail hidden", err: errors.New("pq: connection refused"), wantCode: http.StatusInternalServerError, wantMessage: "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMessage, body["message"])
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}

func TestDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithRequestLimitExceeded(rec)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	response.WithPreparingShutdown(rec)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])

	rec = httptest.NewRecorder()
	response.WithUnhealthy(rec)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
