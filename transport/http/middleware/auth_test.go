package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourbook/config"
	"tourbook/infras/jwt"
	jwtMocks "tourbook/infras/jwt/mocks"
	"tourbook/infras/otel/mocks"
	"tourbook/permissions"
	"tourbook/shared/constant"
	"tourbook/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testPermissions = `{
  "endpoints": [
    {"path": "/api/tours", "method": "GET", "skip": true},
    {"path": "/api/tours", "method": "POST", "permissions": ["admin", "manager"]},
    {"path": "/api/tours/{id}", "method": "DELETE", "permissions": ["admin"]}
  ]
}`

const apiKey = "internal-key"

func newRouter(t *testing.T) (*chi.Mux, *jwtMocks.MockJWT) {
	t.Helper()

	data, err := permissions.Load([]byte(testPermissions))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	jwtService := jwtMocks.NewMockJWT(gomock.NewController(t))
	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), data, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		_ = json.NewEncoder(w).Encode(map[string]string{"user": userID})
	}

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)

			r.Route("/tours", func(r chi.Router) {
				r.Get("/", echo)
				r.Post("/", echo)
				r.Delete("/{id}", echo)
			})
			r.Get("/auth/profile", echo)
		})
	})

	return router, jwtService
}

func do(router http.Handler, method, target string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	body := map[string]any{}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)

	return rec, body
}

func bearer(token string) map[string]string {
	return map[string]string{constant.RequestHeaderAuthorization: "Bearer " + token}
}

func claims(role string) *jwt.Claims {
	return &jwt.Claims{UserID: "user-1", Email: "staff@example.com", Role: role, TokenID: "tok-1"}
}

func TestAuth_PublicRoute(t *testing.T) {
	router, _ := newRouter(t)

	rec, body := do(router, http.MethodGet, "/api/tours", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", body["user"])
}

func TestAuth_MissingToken(t *testing.T) {
	router, _ := newRouter(t)

	rec, body := do(router, http.MethodPost, "/api/tours", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing authorization header", body["message"])
}

func TestAuth_MalformedHeader(t *testing.T) {
	router, _ := newRouter(t)

	rec, _ := do(router, http.MethodPost, "/api/tours", map[string]string{constant.RequestHeaderAuthorization: "Token abc"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_TokenErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"expired", jwt.ErrExpiredToken, "Token has expired"},
		{"invalid", jwt.ErrInvalidToken, "Invalid token"},
		{"claims", jwt.ErrInvalidClaim, "Invalid token claims"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, jwtService := newRouter(t)

			jwtService.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(nil, tt.err)

			rec, body := do(router, http.MethodPost, "/api/tours", bearer("abc"))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestAuth_EmptyClaims(t *testing.T) {
	router, jwtService := newRouter(t)

	jwtService.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(&jwt.Claims{Role: constant.RoleAdmin}, nil)

	rec, _ := do(router, http.MethodPost, "/api/tours", bearer("abc"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRBAC(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		role   string
		code   int
	}{
		{"manager creates tour", http.MethodPost, "/api/tours", constant.RoleManager, http.StatusOK},
		{"admin creates tour", http.MethodPost, "/api/tours", constant.RoleAdmin, http.StatusOK},
		{"manager cannot delete", http.MethodDelete, "/api/tours/42", constant.RoleManager, http.StatusForbidden},
		{"admin deletes", http.MethodDelete, "/api/tours/42", constant.RoleAdmin, http.StatusOK},
		{"unlisted route needs any user", http.MethodGet, "/api/auth/profile", constant.RoleManager, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, jwtService := newRouter(t)

			jwtService.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(claims(tt.role), nil)

			rec, body := do(router, tt.method, tt.target, bearer("abc"))

			assert.Equal(t, tt.code, rec.Code)

			if tt.code == http.StatusOK {
				assert.Equal(t, "user-1", body["user"])
			}
		})
	}
}

func TestAPIKey(t *testing.T) {
	t.Run("valid key bypasses auth", func(t *testing.T) {
		router, _ := newRouter(t)

		rec, _ := do(router, http.MethodDelete, "/api/tours/42", map[string]string{constant.RequestHeaderAPIKey: apiKey})

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong key is forbidden", func(t *testing.T) {
		router, _ := newRouter(t)

		rec, _ := do(router, http.MethodGet, "/api/tours", map[string]string{constant.RequestHeaderAPIKey: "guess"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
