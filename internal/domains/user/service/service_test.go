package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tourbook/config"
	"tourbook/infras/otel/mocks"
	"tourbook/internal/domains/user/model"
	"tourbook/internal/domains/user/model/dto"
	userMocks "tourbook/internal/domains/user/repository/mocks"
	"tourbook/internal/domains/user/service"
	cacheMocks "tourbook/shared/cache/mocks"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/failure"
	"tourbook/shared/password"
)

const (
	userID  = "c1d2e3f4-a5b6-4c7d-8e9f-0a1b2c3d4e5f"
	adminID = "a0b1c2d3-e4f5-4a6b-9c8d-7e6f5a4b3c2d"
)

var errCacheMiss = errors.New("cache miss")

func newService(t *testing.T) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := userMocks.NewMockUser(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(repo, cfg, cache, mocks.NewOtel()), repo, cache
}

func asAdmin() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, adminID)
}

func TestUserService_Create(t *testing.T) {
	t.Run("hashes the password and defaults the role", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		var inserted model.User
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user model.User) error {
			inserted = user

			return nil
		})

		id, err := svc.Create(asAdmin(), dto.CreateUserRequest{Username: "layla", Email: " Layla@Example.com ", Password: "secret-pass"})

		require.NoError(t, err)
		assert.Equal(t, inserted.ID, id)
		assert.Equal(t, "layla@example.com", inserted.Email)
		assert.Equal(t, constant.RoleManager, inserted.Role)
		assert.Equal(t, adminID, inserted.CreatedBy)
		assert.NotEqual(t, "secret-pass", inserted.Password)
		assert.NoError(t, password.Verify("secret-pass", inserted.Password))
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Create(asAdmin(), dto.CreateUserRequest{Username: "x", Email: "taken@example.com", Password: "secret-pass"})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "User already exists", err.Error())
	})
}

func TestUserService_GetByEmail(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "owner@example.com", args[model.FieldEmail])
			assert.Empty(t, columns)

			return model.User{ID: userID, Password: "hash"}, nil
		})

	user, err := svc.GetByEmail(context.Background(), "OWNER@example.com")

	require.NoError(t, err)
	assert.Equal(t, "hash", user.Password)
}

func TestUserService_GetAndListSkipPassword(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		svc, repo, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.FilterGroup, columns ...string) (model.User, error) {
				assert.NotContains(t, columns, model.FieldPassword)

				return model.User{ID: userID, Username: "layla", Role: constant.RoleAdmin}, nil
			})

		res, err := svc.Get(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, "layla", res.Username)
	})

	t.Run("get unknown", func(t *testing.T) {
		svc, repo, cache := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
		repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), userID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("list", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup, columns ...string) ([]model.User, error) {
				assert.NotContains(t, columns, model.FieldPassword)
				assert.Contains(t, columns, model.FieldEmail)

				return []model.User{{ID: userID}, {ID: adminID}}, nil
			})

		res, err := svc.List(context.Background())

		require.NoError(t, err)
		assert.Len(t, res, 2)
	})
}

func TestUserService_Update(t *testing.T) {
	req := dto.UpdateUserRequest{Username: "layla", Email: "layla@example.com", Role: constant.RoleAdmin}

	t.Run("updated", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
				where, _ := filter.GetWhereClause()
				assert.Contains(t, where, "users.id != :id")

				return false, nil
			})
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		affected, err := svc.Update(asAdmin(), userID, req)

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("email used by someone else", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Update(asAdmin(), userID, req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := svc.Update(asAdmin(), userID, req)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_UpdatePassword(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
			hash, ok := fields[model.FieldPassword].(string)
			require.True(t, ok)
			assert.NoError(t, password.Verify("new-secret-1", hash))

			return 1, nil
		})

	affected, err := svc.UpdatePassword(asAdmin(), userID, dto.UpdatePasswordRequest{NewPassword: "new-secret-1"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestUserService_Delete(t *testing.T) {
	t.Run("deletes another account", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)

		affected, err := svc.Delete(asAdmin(), userID)

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("refuses to delete yourself", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Delete(asAdmin(), adminID)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := svc.Delete(asAdmin(), userID)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
