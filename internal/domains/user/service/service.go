//go:generate mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks
package service

import (
	"context"
	"fmt"

	"tourbook/config"
	"tourbook/infras/otel"
	"tourbook/internal/domains/user/model"
	"tourbook/internal/domains/user/model/dto"
	"tourbook/internal/domains/user/repository"
	"tourbook/shared"
	"tourbook/shared/cache"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/failure"
	"tourbook/shared/password"
	"tourbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser = "user:get"

	errUserNotFound   = "user not found"
	errUserExists     = "User already exists"
	errEmailInUse     = "email is already used by another user"
	errDeleteYourself = "you cannot delete your own account"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (string, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateUserRequest) (int64, error)
	UpdatePassword(ctx context.Context, id string, req dto.UpdatePasswordRequest) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func emailFilter(email string, excludeID string) gDto.FilterGroup {
	filters := []any{gDto.Filter{Field: model.FieldEmail, Value: dto.NormalizeEmail(email), Operator: gDto.FilterOperatorEq, Table: model.TableName}}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{Field: model.FieldID, Value: excludeID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName})
	}

	return gDto.And(filters...)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.repo.Exist(ctx, emailFilter(req.Email, constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return "", fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return "", failure.BadRequestFromString(errUserExists)
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(shared.UserFromContext(ctx), hashedPassword, timezone.Now())

	if err = s.repo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return user.ID, nil
}

// GetByEmail returns the full row including the password hash. A zero User
// means no account uses the email.
func (s *serviceImpl) GetByEmail(ctx context.Context, email string) (user model.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err = s.repo.Get(ctx, emailFilter(email, constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by email")

		return user, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return res, failure.NotFound(errUserNotFound)
	}

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName), model.PublicColumns...)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound(errUserNotFound)
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{}
	params.SanitizeSort(model.TableName, constant.DefaultValueSortBy, gDto.SortDirDesc)

	users, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{}, model.PublicColumns...)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	return dto.FromModels(users), nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return 0, failure.NotFound(errUserNotFound)
	}

	taken, err := s.repo.Exist(ctx, emailFilter(req.Email, id))
	if err != nil {
		log.Error().Err(err).Msg("failed to check email availability")

		return 0, fmt.Errorf("failed to check email availability: %w", err)
	}

	if taken {
		return 0, failure.BadRequestFromString(errEmailInUse)
	}

	return s.update(ctx, id, req.ToUpdateMap(shared.UserFromContext(ctx)))
}

func (s *serviceImpl) UpdatePassword(ctx context.Context, id string, req dto.UpdatePasswordRequest) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return 0, failure.NotFound(errUserNotFound)
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.update(ctx, id, shared.WithModified(map[string]any{model.FieldPassword: hashedPassword}, shared.UserFromContext(ctx)))
}

func (s *serviceImpl) update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	affected, err := s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return 0, fmt.Errorf("failed to update user: %w", err)
	}

	if affected == 0 {
		return 0, failure.NotFound(errUserNotFound)
	}

	s.invalidate(ctx, id)

	return affected, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if id == shared.UserFromContext(ctx) {
		return 0, failure.BadRequestFromString(errDeleteYourself)
	}

	if !shared.IsValidID(id) {
		return 0, failure.NotFound(errUserNotFound)
	}

	affected, err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return 0, fmt.Errorf("failed to delete user: %w", err)
	}

	if affected == 0 {
		return 0, failure.NotFound(errUserNotFound)
	}

	s.invalidate(ctx, id)

	return affected, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		if err := s.cache.Delete(context.WithoutCancel(ctx), shared.BuildCacheKey(cacheGetUser, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}
	}()
}
