package setting_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tourbook/infras/otel/mocks"
	"tourbook/internal/domains/setting/model/dto"
	settingMocks "tourbook/internal/domains/setting/service/mocks"
	"tourbook/internal/handlers/setting"
)

func newRouter(t *testing.T) (*chi.Mux, *settingMocks.MockSetting) {
	t.Helper()

	svc := settingMocks.NewMockSetting(gomock.NewController(t))
	handler := setting.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func serve(router http.Handler, method, body string) (int, map[string]any) {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, "/settings", strings.NewReader(body)))

	res := map[string]any{}
	_ = json.Unmarshal(rec.Body.Bytes(), &res)

	return rec.Code, res
}

func TestHandler_GetSettings(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().GetAll(gomock.Any()).Return(dto.SettingsResponse{"site_name": "Arabian Adventure", "contact_phone": "+974 7780 7165"}, nil)

	code, body := serve(router, http.MethodGet, "")

	require.Equal(t, http.StatusOK, code)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Arabian Adventure", data["site_name"])
}

func TestHandler_UpdateSettings(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Update(gomock.Any(), dto.UpdateSettingsRequest{"site_name": "Arabian Adventures", "nope": "x"}).
			Return(dto.UpdateSettingsResponse{Updated: []string{"site_name"}, Skipped: []string{"nope"}}, nil)

		code, body := serve(router, http.MethodPut, `{"site_name":"Arabian Adventures","nope":"x"}`)

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Settings updated successfully", body["message"])

		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, []any{"nope"}, data["skipped"])
	})

	t.Run("empty body", func(t *testing.T) {
		router, _ := newRouter(t)

		code, _ := serve(router, http.MethodPut, `{}`)

		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("not an object", func(t *testing.T) {
		router, _ := newRouter(t)

		code, _ := serve(router, http.MethodPut, `["site_name"]`)

		assert.Equal(t, http.StatusBadRequest, code)
	})
}
