package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourbook/config"
	"tourbook/infras/otel/mocks"
	"tourbook/permissions"
	"tourbook/transport/http/middleware"
	"tourbook/transport/http/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *HTTP {
	t.Helper()

	cfg := &config.Config{}
	otl := mocks.NewOtel()

	return New(
		cfg,
		router.New(router.DomainHandlers{}),
		middleware.NewAppMiddleware(otl, cfg, nil),
		middleware.NewAuthRoleMiddleware(nil, otl, permissions.Get(), cfg),
		Resources{},
	)
}

func get(h http.Handler, method, target string) (int, map[string]any) {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	body := map[string]any{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)

	return rec.Code, body
}

func TestHealth(t *testing.T) {
	server := newServer(t)

	code, body := get(server, http.MethodGet, "/api/health")

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Server is running", body["message"])

	server.setState(ServerStateInGracePeriod)

	code, body = get(server, http.MethodGet, "/api/health")

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, false, body["success"])
}

func TestProtectedRouteNeedsToken(t *testing.T) {
	server := newServer(t)

	code, body := get(server, http.MethodDelete, "/api/tours/1")

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Missing authorization header", body["message"])
}
