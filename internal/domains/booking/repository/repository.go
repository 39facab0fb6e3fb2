//go:generate mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks
package repository

import (
	"context"
	"fmt"

	"tourbook/infras/otel"
	"tourbook/infras/postgres"
	"tourbook/internal/domains/booking/model"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/logger"
	gRepo "tourbook/shared/repository"
)

const querySumPeople = `SELECT COALESCE(SUM(number_of_people), 0) FROM bookings
	WHERE tour_id = $1 AND booking_date = $2 AND status IN ('pending', 'confirmed')`

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	SumPeople(ctx context.Context, tourID, date string) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// SumPeople counts the seats held on a tour date by pending and confirmed bookings.
func (r *repositoryImpl) SumPeople(ctx context.Context, tourID, date string) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.SumPeople")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, querySumPeople)

	var booked int

	if err := r.db.Read.GetContext(ctx, &booked, querySumPeople, tourID, date); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum booked people: %w", err)
	}

	return booked, nil
}
