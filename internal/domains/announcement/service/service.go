//go:generate mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks
package service

import (
	"context"
	"fmt"

	"tourbook/config"
	"tourbook/infras/otel"
	"tourbook/internal/domains/announcement/model"
	"tourbook/internal/domains/announcement/model/dto"
	"tourbook/internal/domains/announcement/repository"
	"tourbook/shared"
	"tourbook/shared/cache"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/failure"
	"tourbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAnnouncement    = "announcement:get"
	cacheActiveAnnouncement = "announcement:active"

	errAnnouncementNotFound = "announcement not found"
)

type Announcement interface {
	ListActive(ctx context.Context) ([]dto.AnnouncementResponse, error)
	ListAll(ctx context.Context) ([]dto.AnnouncementResponse, error)
	Get(ctx context.Context, id string) (dto.AnnouncementResponse, error)
	Create(ctx context.Context, req dto.AnnouncementRequest) (string, error)
	Update(ctx context.Context, id string, req dto.AnnouncementRequest) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type serviceImpl struct {
	repo  repository.Announcement
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Announcement, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Announcement {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// ActiveFilter selects announcements switched on whose window contains today.
func ActiveFilter(today string) gDto.FilterGroup {
	return gDto.And(
		gDto.Filter{Field: model.FieldIsActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Or(
			gDto.Filter{Field: model.FieldStartDate, Operator: gDto.FilterIsNull, Table: model.TableName},
			gDto.Filter{Field: model.FieldStartDate, Value: today, Operator: gDto.FilterOperatorLessEq, Table: model.TableName, ArgName: "window_start"},
		),
		gDto.Or(
			gDto.Filter{Field: model.FieldEndDate, Operator: gDto.FilterIsNull, Table: model.TableName},
			gDto.Filter{Field: model.FieldEndDate, Value: today, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName, ArgName: "window_end"},
		),
	)
}

func newestFirst() gDto.QueryParams {
	params := gDto.QueryParams{}
	params.SanitizeSort(model.TableName, constant.DefaultValueSortBy, gDto.SortDirDesc)

	return params
}

// ListActive is cached per calendar day so the window rolls over at midnight in
// the application timezone.
func (s *serviceImpl) ListActive(ctx context.Context) (res []dto.AnnouncementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	today := timezone.Today()
	cacheKey := shared.BuildCacheKey(cacheActiveAnnouncement, today)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for active announcements")

		return res, nil
	}

	announcements, err := s.repo.GetAll(ctx, newestFirst(), ActiveFilter(today))
	if err != nil {
		log.Error().Err(err).Msg("failed to get active announcements")

		return nil, fmt.Errorf("failed to get active announcements: %w", err)
	}

	active := make([]model.Announcement, 0, len(announcements))

	for _, announcement := range announcements {
		if announcement.ActiveOn(today) {
			active = append(active, announcement)
		}
	}

	res = dto.FromModels(active)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save active announcements to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ListAll(ctx context.Context) (res []dto.AnnouncementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	announcements, err := s.repo.GetAll(ctx, newestFirst(), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get announcements")

		return nil, fmt.Errorf("failed to get announcements: %w", err)
	}

	return dto.FromModels(announcements), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AnnouncementResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return res, failure.NotFound(errAnnouncementNotFound)
	}

	cacheKey := shared.BuildCacheKey(cacheGetAnnouncement, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	announcement, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get announcement")

		return res, fmt.Errorf("failed to get announcement: %w", err)
	}

	if announcement.ID == constant.Empty {
		return res, failure.NotFound(errAnnouncementNotFound)
	}

	res.FromModel(announcement)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save announcement to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.AnnouncementRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	announcement := req.ToModel(shared.UserFromContext(ctx), timezone.Now())

	if err = s.repo.Insert(ctx, announcement); err != nil {
		log.Error().Err(err).Msg("failed to create announcement")

		return "", fmt.Errorf("failed to create announcement: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	return announcement.ID, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.AnnouncementRequest) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return 0, failure.NotFound(errAnnouncementNotFound)
	}

	affected, err = s.repo.Update(ctx, req.ToUpdateMap(shared.UserFromContext(ctx)), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update announcement")

		return 0, fmt.Errorf("failed to update announcement: %w", err)
	}

	if affected == 0 {
		return 0, failure.NotFound(errAnnouncementNotFound)
	}

	s.invalidate(ctx, id)

	return affected, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return 0, failure.NotFound(errAnnouncementNotFound)
	}

	affected, err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete announcement")

		return 0, fmt.Errorf("failed to delete announcement: %w", err)
	}

	if affected == 0 {
		return 0, failure.NotFound(errAnnouncementNotFound)
	}

	s.invalidate(ctx, id)

	return affected, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAnnouncement, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete announcement cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheActiveAnnouncement)
	}()
}
