package announcement_test

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
	"tourbook/internal/domains/announcement/model/dto"
	announcementMocks "tourbook/internal/domains/announcement/service/mocks"
	"tourbook/internal/handlers/announcement"
)

const announcementID = "4e5f6a7b-8c9d-4e0f-a1b2-c3d4e5f6a7b8"

func newRouter(t *testing.T) (*chi.Mux, *announcementMocks.MockAnnouncement) {
	t.Helper()

	svc := announcementMocks.NewMockAnnouncement(gomock.NewController(t))
	handler := announcement.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func serve(router http.Handler, method, target, body string) (int, map[string]any) {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	res := map[string]any{}
	_ = json.Unmarshal(rec.Body.Bytes(), &res)

	return rec.Code, res
}

func TestHandler_GetActiveAnnouncements(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().ListActive(gomock.Any()).Return([]dto.AnnouncementResponse{{ID: announcementID, Message: "Eid offer"}}, nil)

	code, body := serve(router, http.MethodGet, "/announcements/active", "")

	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)
}

func TestHandler_CreateAnnouncement(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantCode int
	}{
		{name: "created", payload: `{"message":"Eid offer","type":"offer","background_color":"#8B1538","start_date":"2026-03-01","end_date":"2026-03-10"}`, wantCode: http.StatusCreated},
		{name: "admin form without window", payload: `{"id":null,"message":"Eid offer","type":"offer","background_color":"#FFD700","text_color":"#8B1538","is_active":1,"start_date":"","end_date":""}`, wantCode: http.StatusCreated},
		{name: "bad type", payload: `{"message":"Eid offer","type":"promo"}`, wantCode: http.StatusBadRequest},
		{name: "is_active out of range", payload: `{"message":"Eid offer","is_active":2}`, wantCode: http.StatusBadRequest},
		{name: "bad color", payload: `{"message":"Eid offer","text_color":"white"}`, wantCode: http.StatusBadRequest},
		{name: "end before start", payload: `{"message":"Eid offer","start_date":"2026-03-10","end_date":"2026-03-01"}`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)

			if tt.wantCode == http.StatusCreated {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(announcementID, nil)
			}

			code, body := serve(router, http.MethodPost, "/announcements", tt.payload)

			assert.Equal(t, tt.wantCode, code)

			if code == http.StatusCreated {
				assert.Equal(t, announcementID, body["announcementId"])
			}
		})
	}
}

func TestHandler_UpdateAndDeleteAnnouncement(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Update(gomock.Any(), announcementID, gomock.Any()).Return(int64(1), nil)
	svc.EXPECT().Delete(gomock.Any(), announcementID).Return(int64(1), nil)

	code, body := serve(router, http.MethodPut, "/announcements/"+announcementID, `{"message":"Updated"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Announcement updated successfully", body["message"])

	code, _ = serve(router, http.MethodDelete, "/announcements/"+announcementID, "")
	assert.Equal(t, http.StatusOK, code)
}
