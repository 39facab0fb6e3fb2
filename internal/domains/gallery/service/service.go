//go:generate mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks
package service

import (
	"context"
	"fmt"

	"tourbook/config"
	"tourbook/infras/otel"
	"tourbook/infras/s3"
	"tourbook/internal/domains/gallery/model"
	"tourbook/internal/domains/gallery/model/dto"
	"tourbook/internal/domains/gallery/repository"
	"tourbook/shared"
	"tourbook/shared/base64"
	"tourbook/shared/cache"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/failure"
	"tourbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetGallery    = "gallery:get"
	cacheActiveGallery = "gallery:active"
	cacheAllGallery    = "gallery:all"

	errImageNotFound = "gallery image not found"
	errImageTooLarge = "image must not exceed %d MB"
)

type Gallery interface {
	ListActive(ctx context.Context) ([]dto.ImageResponse, error)
	ListAll(ctx context.Context) ([]dto.ImageResponse, error)
	Get(ctx context.Context, id string) (dto.ImageResponse, error)
	Create(ctx context.Context, req dto.ImageRequest) (string, error)
	Update(ctx context.Context, id string, req dto.ImageRequest) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	UploadImage(ctx context.Context, req dto.UploadImageRequest) (dto.UploadImageResponse, error)
	UploadBase64(ctx context.Context, req dto.UploadBase64Request) (dto.UploadImageResponse, error)
}

type serviceImpl struct {
	repo  repository.Gallery
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Gallery, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Gallery {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

// displayOrder sorts by display_order first and newest first within a position.
func displayOrder() gDto.QueryParams {
	return gDto.QueryParams{
		SortBy:  fmt.Sprintf("%s.%s %s, %s.%s", model.TableName, model.FieldDisplayOrder, gDto.SortDirAsc, model.TableName, constant.FieldCreatedAt),
		SortDir: gDto.SortDirDesc,
	}
}

func (s *serviceImpl) list(ctx context.Context, cacheKey string, filter gDto.FilterGroup) (res []dto.ImageResponse, err error) {
	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for gallery")

		return res, nil
	}

	images, err := s.repo.GetAll(ctx, displayOrder(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery images")

		return nil, fmt.Errorf("failed to get gallery images: %w", err)
	}

	res = dto.FromModels(images)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery images to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ListActive(ctx context.Context) (res []dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.And(gDto.Filter{Field: model.FieldIsActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName})

	return s.list(ctx, shared.BuildCacheKey(cacheActiveGallery, "list"), filter)
}

func (s *serviceImpl) ListAll(ctx context.Context) (res []dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.list(ctx, shared.BuildCacheKey(cacheAllGallery, "list"), gDto.FilterGroup{})
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Image, error) {
	if !shared.IsValidID(id) {
		return model.Image{}, failure.NotFound(errImageNotFound)
	}

	image, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery image")

		return image, fmt.Errorf("failed to get gallery image: %w", err)
	}

	if image.ID == constant.Empty {
		return image, failure.NotFound(errImageNotFound)
	}

	return image, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetGallery, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	image, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(image)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save gallery image to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.ImageRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	image := req.ToModel(shared.UserFromContext(ctx), timezone.Now())

	if err = s.repo.Insert(ctx, image); err != nil {
		log.Error().Err(err).Msg("failed to create gallery image")

		return "", fmt.Errorf("failed to create gallery image: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	return image.ID, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.ImageRequest) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return 0, failure.NotFound(errImageNotFound)
	}

	affected, err = s.repo.Update(ctx, req.ToUpdateMap(shared.UserFromContext(ctx)), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update gallery image")

		return 0, fmt.Errorf("failed to update gallery image: %w", err)
	}

	if affected == 0 {
		return 0, failure.NotFound(errImageNotFound)
	}

	s.invalidate(ctx, id)

	return affected, nil
}

// Delete removes the row and, when the image was uploaded to our bucket, the
// stored object as well.
func (s *serviceImpl) Delete(ctx context.Context, id string) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	image, err := s.get(ctx, id)
	if err != nil {
		return 0, err
	}

	affected, err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete gallery image")

		return 0, fmt.Errorf("failed to delete gallery image: %w", err)
	}

	if affected == 0 {
		return 0, failure.NotFound(errImageNotFound)
	}

	s.invalidate(ctx, id)

	if objectName := s.s3.GetObjectNameFromURL(image.ImageURL); objectName != constant.Empty {
		go func() {
			if err := s.s3.DeleteFile(context.WithoutCancel(ctx), objectName); err != nil {
				log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete gallery object")
			}
		}()
	}

	return affected, nil
}

func (s *serviceImpl) checkSize(size int64) error {
	limit := s.cfg.External.S3.MaxUploadMB
	if limit > 0 && size > int64(limit)<<20 {
		return failure.BadRequestFromString(fmt.Sprintf(errImageTooLarge, limit))
	}

	return nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, req dto.UploadImageRequest) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.checkSize(req.Image.Size); err != nil {
		return res, err
	}

	contentType := req.Image.Header.Get(constant.RequestHeaderContentType)
	fileName := dto.FileName(req.Image.Filename, contentType)

	url, err := s.s3.UploadFile(ctx, model.UploadDirectory, fileName, contentType, req.ImageFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	res.ImageURL = url
	res.FileName = fileName

	return res, nil
}

func (s *serviceImpl) UploadBase64(ctx context.Context, req dto.UploadBase64Request) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadBase64")
	defer scope.End()
	defer scope.TraceIfError(err)

	contentType, data, err := base64.Decode(req.Image)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	if err = s.checkSize(int64(len(data))); err != nil {
		return res, err
	}

	fileName := dto.FileName(constant.Empty, contentType)

	url, err := s.s3.UploadFileBytes(ctx, model.UploadDirectory, fileName, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	res.ImageURL = url
	res.FileName = fileName

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetGallery, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete gallery image cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheActiveGallery)
		shared.InvalidateCaches(c, s.cache, cacheAllGallery)
	}()
}
