package contact_test

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
	"tourbook/internal/domains/contact/model/dto"
	contactMocks "tourbook/internal/domains/contact/service/mocks"
	"tourbook/internal/handlers/contact"
	"tourbook/shared/failure"
)

const contactID = "2a6e8c1f-4b3d-4f7a-9c2e-5d1b0a9f8e7c"

func newRouter(t *testing.T) (*chi.Mux, *contactMocks.MockContact) {
	t.Helper()

	svc := contactMocks.NewMockContact(gomock.NewController(t))
	handler := contact.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestHandler_CreateContact(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Create(gomock.Any(), dto.CreateContactRequest{
		Name:    "Omar",
		Email:   "omar@example.com",
		Subject: "Private tour",
		Message: "Do you run private dhow cruises?",
	}).Return(contactID, nil)

	rec := serve(router, http.MethodPost, "/contact",
		`{"name":"Omar","email":"omar@example.com","subject":"Private tour","message":"Do you run private dhow cruises?"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	body := message(t, rec)
	assert.Equal(t, "Message sent successfully", body["message"])
	assert.Equal(t, contactID, body["contactId"])
}

func TestHandler_CreateContactRequiresEveryField(t *testing.T) {
	router, _ := newRouter(t)

	rec := serve(router, http.MethodPost, "/contact", `{"name":"Omar","email":"omar@example.com","message":"hi"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ReplyContact(t *testing.T) {
	t.Run("sent", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Reply(gomock.Any(), contactID, dto.ReplyRequest{ReplyMessage: "Yes, every evening."}).Return(int64(1), nil)

		rec := serve(router, http.MethodPost, "/contact/"+contactID+"/reply", `{"replyMessage":"Yes, every evening."}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Reply sent successfully", message(t, rec)["message"])
	})

	t.Run("empty reply", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := serve(router, http.MethodPost, "/contact/"+contactID+"/reply", `{"replyMessage":""}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown message", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Reply(gomock.Any(), contactID, gomock.Any()).Return(int64(0), failure.NotFound("contact not found"))

		rec := serve(router, http.MethodPost, "/contact/"+contactID+"/reply", `{"replyMessage":"hello"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_UpdateContactStatus(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().UpdateStatus(gomock.Any(), contactID, dto.UpdateStatusRequest{Status: "read"}).Return(int64(1), nil)

	rec := serve(router, http.MethodPatch, "/contact/"+contactID+"/status", `{"status":"read"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodPatch, "/contact/"+contactID+"/status", `{"status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ListGetDelete(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().List(gomock.Any()).Return([]dto.ContactResponse{{ID: contactID}}, nil)
	svc.EXPECT().Get(gomock.Any(), contactID).Return(dto.ContactResponse{ID: contactID, Status: "new"}, nil)
	svc.EXPECT().Delete(gomock.Any(), contactID).Return(int64(1), nil)

	rec := serve(router, http.MethodGet, "/contact", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, message(t, rec)["data"], 1)

	rec = serve(router, http.MethodGet, "/contact/"+contactID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodDelete, "/contact/"+contactID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Contact deleted successfully", message(t, rec)["message"])
}
