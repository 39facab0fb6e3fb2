//go:generate mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks
package service

import (
	"context"
	"fmt"

	"tourbook/config"
	"tourbook/infras/otel"
	"tourbook/internal/domains/tour/model"
	"tourbook/internal/domains/tour/model/dto"
	"tourbook/internal/domains/tour/repository"
	"tourbook/shared"
	"tourbook/shared/cache"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/failure"
	"tourbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTour    = "tour:get"
	cacheGetsTour   = "tour:gets"
	cacheCountTour  = "tour:count"
	cacheSearchTour = "tour:search"

	errTourNotFound = "tour not found"
)

type Tour interface {
	List(ctx context.Context, params gDto.QueryParams) (dto.ListToursResponse, error)
	Search(ctx context.Context, keyword string) ([]dto.TourResponse, error)
	Get(ctx context.Context, id string) (dto.TourResponse, error)
	Create(ctx context.Context, req dto.TourRequest) (string, error)
	Update(ctx context.Context, id string, req dto.TourRequest) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type serviceImpl struct {
	repo  repository.Tour
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Tour, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Tour {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func activeFilter(filters ...any) gDto.FilterGroup {
	return gDto.And(append([]any{
		gDto.Filter{Field: model.FieldIsActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}, filters...)...)
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams) (res dto.ListToursResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	params.SanitizeSort(model.TableName, constant.DefaultValueSortBy, gDto.SortDirDesc)

	filter := activeFilter(gDto.Or(
		gDto.Filter{Field: model.FieldTitle, Value: params.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
		gDto.Filter{Field: model.FieldCategory, Value: params.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
	))

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetsTour, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tours")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		return res, err
	}

	tours, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tours")

		return res, fmt.Errorf("failed to get tours: %w", err)
	}

	res.Items = dto.FromModels(tours)
	res.Pagination = gDto.NewPagination(total, params)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tours to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTour, params, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tours")

		return 0, fmt.Errorf("failed to count tours: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tour count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Search(ctx context.Context, keyword string) (res []dto.TourResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheSearchTour, keyword)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tour search")

		return res, nil
	}

	params := gDto.QueryParams{}
	params.SanitizeSort(model.TableName, constant.DefaultValueSortBy, gDto.SortDirDesc)

	filter := activeFilter(gDto.Or(
		gDto.Filter{Field: model.FieldTitle, Value: keyword, Operator: gDto.FilterOperatorLike, Table: model.TableName},
		gDto.Filter{Field: model.FieldDescription, Value: keyword, Operator: gDto.FilterOperatorLike, Table: model.TableName},
	))

	tours, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str("keyword", keyword).Msg("failed to search tours")

		return nil, fmt.Errorf("failed to search tours: %w", err)
	}

	res = dto.FromModels(tours)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tour search to cache")
		}
	}()

	return res, nil
}

// Get returns inactive tours as well so bookings keep resolving their tour.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TourResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return res, failure.NotFound(errTourNotFound)
	}

	cacheKey := shared.BuildCacheKey(cacheGetTour, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tour")

		return res, nil
	}

	tour, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tour")

		return res, fmt.Errorf("failed to get tour: %w", err)
	}

	if tour.ID == constant.Empty {
		return res, failure.NotFound(errTourNotFound)
	}

	res.FromModel(tour)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tour to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.TourRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	tour := req.ToModel(shared.UserFromContext(ctx), timezone.Now())

	if err = s.repo.Insert(ctx, tour); err != nil {
		log.Error().Err(err).Msg("failed to create tour")

		return "", fmt.Errorf("failed to create tour: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	return tour.ID, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.TourRequest) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return 0, failure.NotFound(errTourNotFound)
	}

	affected, err = s.repo.Update(ctx, req.ToUpdateMap(shared.UserFromContext(ctx)), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update tour")

		return 0, fmt.Errorf("failed to update tour: %w", err)
	}

	if affected == 0 {
		return 0, failure.NotFound(errTourNotFound)
	}

	s.invalidate(ctx, id)

	return affected, nil
}

// Delete only deactivates the tour. Bookings reference tours, so rows are never removed.
func (s *serviceImpl) Delete(ctx context.Context, id string) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return 0, failure.NotFound(errTourNotFound)
	}

	fields := shared.WithModified(map[string]any{model.FieldIsActive: false}, shared.UserFromContext(ctx))

	affected, err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete tour")

		return 0, fmt.Errorf("failed to delete tour: %w", err)
	}

	if affected == 0 {
		return 0, failure.NotFound(errTourNotFound)
	}

	s.invalidate(ctx, id)

	return affected, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTour, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete tour cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetsTour)
		shared.InvalidateCaches(c, s.cache, cacheCountTour)
		shared.InvalidateCaches(c, s.cache, cacheSearchTour)
	}()
}
