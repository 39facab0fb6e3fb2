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

	"tourbook/config"
	"tourbook/infras/otel/mocks"
	"tourbook/internal/domains/announcement/model"
	"tourbook/internal/domains/announcement/model/dto"
	announcementMocks "tourbook/internal/domains/announcement/repository/mocks"
	"tourbook/internal/domains/announcement/service"
	cacheMocks "tourbook/shared/cache/mocks"
	gDto "tourbook/shared/dto"
	"tourbook/shared/failure"
	"tourbook/shared/timezone"
)

const announcementID = "7d1e2f3a-4b5c-4d6e-8f90-a1b2c3d4e5f6"

var errCacheMiss = errors.New("cache miss")

func newService(t *testing.T) (service.Announcement, *announcementMocks.MockAnnouncement, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := announcementMocks.NewMockAnnouncement(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(repo, cfg, cache, mocks.NewOtel()), repo, cache
}

func day(offset int) *time.Time {
	d, _ := time.Parse(time.DateOnly, timezone.Today())
	d = d.AddDate(0, 0, offset)

	return &d
}

func TestActiveFilter(t *testing.T) {
	filter := service.ActiveFilter("2025-06-01")

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(announcements.is_active = :is_active AND "+
		"(announcements.start_date IS NULL OR announcements.start_date <= :window_start) AND "+
		"(announcements.end_date IS NULL OR announcements.end_date >= :window_end))", where)
	assert.Equal(t, map[string]any{"is_active": true, "window_start": "2025-06-01", "window_end": "2025-06-01"}, args)
}

func TestAnnouncementService_ListActive(t *testing.T) {
	t.Run("open window is shown and future start is not", func(t *testing.T) {
		svc, repo, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), "announcement:active:"+timezone.Today(), gomock.Any()).Return(errCacheMiss)
		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Announcement, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, timezone.Today(), args["window_start"])

				return []model.Announcement{
					{ID: "tomorrow", Message: "soon", IsActive: true, StartDate: day(1)},
					{ID: announcementID, Message: "always", IsActive: true},
				}, nil
			})

		res, err := svc.ListActive(context.Background())

		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, announcementID, res[0].ID)
		assert.Nil(t, res[0].StartDate)
		assert.Nil(t, res[0].EndDate)
	})

	t.Run("starting tomorrow only yields an empty list", func(t *testing.T) {
		svc, repo, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Announcement{{ID: "tomorrow", IsActive: true, StartDate: day(1)}}, nil)

		res, err := svc.ListActive(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("served from the daily cache", func(t *testing.T) {
		svc, _, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*[]dto.AnnouncementResponse) = []dto.AnnouncementResponse{{ID: announcementID}}

				return nil
			})

		res, err := svc.ListActive(context.Background())

		require.NoError(t, err)
		require.Len(t, res, 1)
	})
}

func TestAnnouncementService_ListAll(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Announcement, error) {
			assert.Equal(t, "announcements.created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []model.Announcement{{ID: announcementID, IsActive: false, EndDate: day(-3)}}, nil
		})

	res, err := svc.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 1)
	require.NotNil(t, res[0].EndDate)
}

func TestAnnouncementService_Get(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Announcement{}, nil)

	_, err := svc.Get(context.Background(), announcementID)

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestAnnouncementService_Create(t *testing.T) {
	svc, repo, _ := newService(t)

	var inserted model.Announcement
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, announcement model.Announcement) error {
		inserted = announcement

		return nil
	})

	id, err := svc.Create(context.Background(), dto.AnnouncementRequest{Message: "Eid offer", Type: model.TypeAlert})

	require.NoError(t, err)
	assert.Equal(t, inserted.ID, id)
	assert.Equal(t, model.TypeAlert, inserted.Type)
}

func TestAnnouncementService_UpdateAndDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		repoErr  error
		wantCode int
	}{
		{name: "changed", affected: 1},
		{name: "unknown", affected: 0, wantCode: http.StatusNotFound},
		{name: "database error", repoErr: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run("update "+tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)

			repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.affected, tt.repoErr)

			_, err := svc.Update(context.Background(), announcementID, dto.AnnouncementRequest{Message: "x"})

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})

		t.Run("delete "+tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)

			repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(tt.affected, tt.repoErr)

			_, err := svc.Delete(context.Background(), announcementID)

			if tt.wantCode == 0 {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}
