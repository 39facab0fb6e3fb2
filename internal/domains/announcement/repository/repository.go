//go:generate mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks
package repository

import (
	"context"

	"tourbook/infras/otel"
	"tourbook/infras/postgres"
	"tourbook/internal/domains/announcement/model"
	gDto "tourbook/shared/dto"
	gRepo "tourbook/shared/repository"
)

type Announcement interface {
	Insert(ctx context.Context, model model.Announcement) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Announcement, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Announcement, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Announcement]
}

func New(db *postgres.Connection, otel otel.Otel) Announcement {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Announcement](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
