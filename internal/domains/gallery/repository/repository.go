//go:generate mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks
package repository

import (
	"context"

	"tourbook/infras/otel"
	"tourbook/infras/postgres"
	"tourbook/internal/domains/gallery/model"
	gDto "tourbook/shared/dto"
	gRepo "tourbook/shared/repository"
)

type Gallery interface {
	Insert(ctx context.Context, model model.Image) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Image, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Image, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Image]
}

func New(db *postgres.Connection, otel otel.Otel) Gallery {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Image](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
