package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tourbook/infras/otel/mocks"
	"tourbook/internal/domains/contact/model"
	"tourbook/internal/domains/contact/model/dto"
	contactMocks "tourbook/internal/domains/contact/repository/mocks"
	"tourbook/internal/domains/contact/service"
	notificationModel "tourbook/internal/domains/notification/model"
	notificationMocks "tourbook/internal/domains/notification/service/mocks"
	gDto "tourbook/shared/dto"
	"tourbook/shared/failure"
)

const contactID = "9a7c1f0e-2b3d-4e5f-8a9b-0c1d2e3f4a5b"

func newService(t *testing.T) (service.Contact, *contactMocks.MockContact, *notificationMocks.MockNotification) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := contactMocks.NewMockContact(ctrl)
	notification := notificationMocks.NewMockNotification(ctrl)

	return service.New(repo, notification, mocks.NewOtel()), repo, notification
}

func TestContactService_Create(t *testing.T) {
	svc, repo, _ := newService(t)

	var inserted model.Contact
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, contact model.Contact) error {
		inserted = contact

		return nil
	})

	id, err := svc.Create(context.Background(), dto.CreateContactRequest{
		Name:    " Omar ",
		Email:   "omar@example.com",
		Subject: "Private tour",
		Message: "Do you run tours on Fridays?",
	})

	require.NoError(t, err)
	assert.Equal(t, inserted.ID, id)
	assert.Equal(t, "Omar", inserted.Name)
	assert.Equal(t, model.StatusNew, inserted.Status)
	assert.Nil(t, inserted.ReplyMessage)
}

func TestContactService_List(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Contact, error) {
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []model.Contact{{ID: contactID, Name: "Omar", Status: model.StatusNew}}, nil
		})

	res, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Omar", res[0].Name)
}

func TestContactService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repliedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Contact{ID: contactID, Status: model.StatusReplied, RepliedAt: &repliedAt}, nil)

		res, err := svc.Get(context.Background(), contactID)

		require.NoError(t, err)
		assert.Equal(t, contactID, res.ID)
		require.NotNil(t, res.RepliedAt)
	})

	t.Run("missing", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Contact{}, nil)

		_, err := svc.Get(context.Background(), contactID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Get(context.Background(), "abc")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestContactService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		affected int64
		repoErr  error
		wantCode int
		callRepo bool
	}{
		{name: "read", status: model.StatusRead, affected: 1, callRepo: true},
		{name: "unknown contact", status: model.StatusRead, affected: 0, wantCode: http.StatusNotFound, callRepo: true},
		{name: "invalid status", status: "archived", wantCode: http.StatusBadRequest},
		{name: "database error", status: model.StatusNew, repoErr: errors.New("boom"), wantCode: http.StatusInternalServerError, callRepo: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)

			if tt.callRepo {
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, tt.status, fields[model.FieldStatus])

						return tt.affected, tt.repoErr
					})
			}

			affected, err := svc.UpdateStatus(context.Background(), contactID, dto.UpdateStatusRequest{Status: tt.status})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.affected, affected)
		})
	}
}

func TestContactService_Reply(t *testing.T) {
	t.Run("marks replied and mails the sender", func(t *testing.T) {
		svc, repo, notification := newService(t)

		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusReplied, fields[model.FieldStatus])
				assert.Equal(t, "Yes, every Friday.", fields[model.FieldReplyMessage])
				assert.IsType(t, time.Time{}, fields[model.FieldRepliedAt])

				return 1, nil
			})
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Contact{ID: contactID, Name: "Omar", Email: "omar@example.com", Subject: "Private tour"}, nil)

		var dispatched notificationModel.Event
		notification.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Do(func(_ context.Context, event notificationModel.Event) {
			dispatched = event
		})

		affected, err := svc.Reply(context.Background(), contactID, dto.ReplyRequest{ReplyMessage: "Yes, every Friday."})

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.Equal(t, notificationModel.KindContactReplied, dispatched.Kind)
		require.NotNil(t, dispatched.Contact)
		assert.Equal(t, "omar@example.com", dispatched.Contact.Email)
		assert.Equal(t, "Yes, every Friday.", dispatched.Contact.ReplyMessage)
	})

	t.Run("unknown contact sends nothing", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := svc.Reply(context.Background(), contactID, dto.ReplyRequest{ReplyMessage: "hi"})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("reload failure still reports success", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Contact{}, errors.New("boom"))

		affected, err := svc.Reply(context.Background(), contactID, dto.ReplyRequest{ReplyMessage: "hi"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})
}

func TestContactService_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)

		affected, err := svc.Delete(context.Background(), contactID)

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("unknown", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := svc.Delete(context.Background(), contactID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
