//go:generate mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks
package service

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"tourbook/config"
	"tourbook/infras/otel"
	"tourbook/internal/domains/setting/model"
	"tourbook/internal/domains/setting/model/dto"
	"tourbook/internal/domains/setting/repository"
	"tourbook/shared"
	"tourbook/shared/cache"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"

	"github.com/rs/zerolog/log"
)

const cacheSettings = "setting:all"

type Setting interface {
	GetAll(ctx context.Context) (dto.SettingsResponse, error)
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (dto.UpdateSettingsResponse, error)
}

type serviceImpl struct {
	repo  repository.Setting
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Setting, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Setting {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.SettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.cache.Get(ctx, cacheSettings, &res); err == nil {
		log.Info().Str("cacheKey", cacheSettings).Msg("cache hit for settings")

		return res, nil
	}

	settings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get settings")

		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	res = dto.FromModels(settings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheSettings, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save settings to cache")
		}
	}()

	return res, nil
}

// Update writes each key on its own. Keys that match no row are skipped, and a
// failure part way leaves the keys written before it in place.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSettingsRequest) (res dto.UpdateSettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user := shared.UserFromContext(ctx)
	res.Updated = []string{}

	defer func() {
		if len(res.Updated) > 0 {
			go func() {
				if err := s.cache.Delete(context.WithoutCancel(ctx), cacheSettings); err != nil {
					log.Error().Err(err).Msg("failed to delete settings cache")
				}
			}()
		}
	}()

	for _, key := range slices.Sorted(maps.Keys(req)) {
		fields := shared.WithModified(map[string]any{model.FieldValue: req[key]}, user)
		filter := gDto.And(gDto.Filter{Field: model.FieldKey, Value: key, Operator: gDto.FilterOperatorEq, Table: model.TableName})

		var affected int64

		affected, err = s.repo.Update(ctx, fields, filter)
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to update setting")

			return res, fmt.Errorf("failed to update setting %s: %w", key, err)
		}

		if affected == 0 {
			log.Warn().Str("key", key).Msg("unknown setting key skipped")

			res.Skipped = append(res.Skipped, key)

			continue
		}

		res.Updated = append(res.Updated, key)
	}

	return res, nil
}
