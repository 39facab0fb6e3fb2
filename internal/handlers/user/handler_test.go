package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tourbook/infras/otel/mocks"
	"tourbook/internal/domains/user/model/dto"
	userMocks "tourbook/internal/domains/user/service/mocks"
	"tourbook/internal/handlers/user"
	"tourbook/shared/failure"
)

const userID = "c1d2e3f4-a5b6-4c7d-8e9f-0a1b2c3d4e5f"

func newRouter(t *testing.T) (*chi.Mux, *userMocks.MockUser) {
	t.Helper()

	svc := userMocks.NewMockUser(gomock.NewController(t))
	handler := user.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/auth", handler.Router)

	return router, svc
}

func serve(router http.Handler, method, target, body string) (int, map[string]any) {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	res := map[string]any{}
	_ = json.Unmarshal(rec.Body.Bytes(), &res)

	return rec.Code, res
}

func TestHandler_GetUsers(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().List(gomock.Any()).Return([]dto.UserResponse{{ID: userID}}, nil)

	code, body := serve(router, http.MethodGet, "/auth/users", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)
}

func TestHandler_UpdateUser(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Update(gomock.Any(), userID, dto.UpdateUserRequest{Username: "layla", Email: "layla@example.com", Role: "manager"}).
			Return(int64(1), nil)

		code, body := serve(router, http.MethodPut, "/auth/users/"+userID, `{"username":"layla","email":"layla@example.com","role":"manager"}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "User updated successfully", body["message"])
	})

	t.Run("unknown role", func(t *testing.T) {
		router, _ := newRouter(t)

		code, _ := serve(router, http.MethodPut, "/auth/users/"+userID, `{"username":"layla","email":"layla@example.com","role":"owner"}`)

		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestHandler_UpdatePassword(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().UpdatePassword(gomock.Any(), userID, dto.UpdatePasswordRequest{NewPassword: "new-secret-1"}).Return(int64(1), nil)

	code, _ := serve(router, http.MethodPatch, "/auth/users/"+userID+"/password", `{"newPassword":"new-secret-1"}`)
	assert.Equal(t, http.StatusOK, code)

	code, _ = serve(router, http.MethodPatch, "/auth/users/"+userID+"/password", `{"newPassword":"short"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandler_DeleteUser(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Delete(gomock.Any(), userID).Return(int64(0), failure.BadRequestFromString("you cannot delete your own account"))

	code, body := serve(router, http.MethodDelete, "/auth/users/"+userID, "")

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "you cannot delete your own account", body["message"])
}
