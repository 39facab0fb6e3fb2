//go:generate mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks
package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"tourbook/config"
	"tourbook/infras/otel"
	"tourbook/internal/domains/booking/model"
	"tourbook/internal/domains/booking/model/dto"
	"tourbook/internal/domains/booking/repository"
	notificationModel "tourbook/internal/domains/notification/model"
	notification "tourbook/internal/domains/notification/service"
	tourModel "tourbook/internal/domains/tour/model"
	tourRepo "tourbook/internal/domains/tour/repository"
	"tourbook/shared"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/failure"
	gModel "tourbook/shared/model"
	"tourbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	errBookingNotFound = "booking not found"
	errTourNotFound    = "tour not found"
	errTourMissing     = "tour does not exist"
	errTourInactive    = "tour is not available for booking"
	errInvalidStatus   = "invalid booking status"
	errInvalidDate     = "booking_date must be a valid date"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (string, error)
	List(ctx context.Context, params gDto.QueryParams) (dto.ListBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (int64, error)
	GetByEmail(ctx context.Context, email string) ([]dto.BookingResponse, error)
	Delete(ctx context.Context, id string) (int64, error)
	CheckAvailability(ctx context.Context, query dto.AvailabilityQuery) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	tourRepo     tourRepo.Tour
	notification notification.Notification
	cfg          *config.Config
	otel         otel.Otel
}

func New(repo repository.Booking, tourRepo tourRepo.Tour, notification notification.Notification, cfg *config.Config, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:         repo,
		tourRepo:     tourRepo,
		notification: notification,
		cfg:          cfg,
		otel:         otel,
	}
}

func (s *serviceImpl) getTour(ctx context.Context, id string) (tourModel.Tour, error) {
	if !shared.IsValidID(id) {
		return tourModel.Tour{}, nil
	}

	tour, err := s.tourRepo.Get(ctx, shared.FilterByID(id, tourModel.FieldID, tourModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("tourId", id).Msg("failed to get tour")

		return tour, fmt.Errorf("failed to get tour: %w", err)
	}

	return tour, nil
}

// Create prices the booking from the stored tour. Prices sent by the client are
// never trusted.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	tour, err := s.getTour(ctx, req.TourID)
	if err != nil {
		return "", err
	}

	if tour.ID == constant.Empty {
		return "", failure.BadRequestFromString(errTourMissing)
	}

	if !tour.IsActive {
		return "", failure.BadRequestFromString(errTourInactive)
	}

	date, err := timezone.ParseDate(req.BookingDate)
	if err != nil {
		return "", failure.BadRequestFromString(errInvalidDate)
	}

	people := req.People()

	if s.cfg.App.Booking.EnforceCapacity && tour.MaxParticipants > 0 {
		booked, err := s.repo.SumPeople(ctx, tour.ID, req.BookingDate)
		if err != nil {
			log.Error().Err(err).Msg("failed to check tour capacity")

			return "", fmt.Errorf("failed to check tour capacity: %w", err)
		}

		if booked+people > tour.MaxParticipants {
			return "", failure.Conflict(fmt.Sprintf("only %d places left for this tour on %s", max(0, tour.MaxParticipants-booked), req.BookingDate))
		}
	}

	booking := model.Booking{
		ID:              uuid.NewString(),
		TourID:          tour.ID,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		BookingDate:     date,
		BookingTime:     req.BookingTime,
		NumberOfPeople:  people,
		Adults:          req.Adults,
		Children:        req.Children,
		TotalPrice:      shared.RoundMoney(tour.Price * float64(people)),
		SpecialRequests: req.SpecialRequests,
		Status:          model.StatusPending,
		Metadata:        gModel.NewMetadata(shared.UserFromContext(ctx), timezone.Now()),
	}

	if tour.PriceUSD != nil {
		totalUSD := shared.RoundMoney(*tour.PriceUSD * float64(people))
		booking.TotalPriceUSD = &totalUSD
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return "", fmt.Errorf("failed to create booking: %w", err)
	}

	booking.TourTitle = &tour.Title
	snapshot := toSnapshot(booking)

	s.notification.Dispatch(ctx, notificationModel.Event{Kind: notificationModel.KindBookingCreatedCustomer, Booking: snapshot})
	s.notification.Dispatch(ctx, notificationModel.Event{Kind: notificationModel.KindBookingCreatedAdmin, Booking: snapshot})

	return booking.ID, nil
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams) (res dto.ListBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	params.SanitizeSort(model.TableName, constant.DefaultValueSortBy, gDto.SortDirDesc)

	filter := gDto.And(gDto.Or(
		gDto.Filter{Field: model.FieldCustomerName, Value: params.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
		gDto.Filter{Field: model.FieldCustomerEmail, Value: params.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
		gDto.Filter{Field: model.FieldCustomerPhone, Value: params.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
		gDto.Filter{Field: model.FieldTourTitle, Value: params.Search, Operator: gDto.FilterOperatorLike, Table: model.TourTableName, ArgName: "tour_title"},
	))

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.Items = dto.FromModels(bookings)
	res.Pagination = gDto.NewPagination(total, params)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	if !shared.IsValidID(id) {
		return model.Booking{}, failure.NotFound(errBookingNotFound)
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(errBookingNotFound)
	}

	return booking, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// UpdateStatus does not guard transitions, any status may follow any other.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !slices.Contains(model.Statuses, req.Status) {
		return 0, failure.BadRequestFromString(errInvalidStatus)
	}

	if !shared.IsValidID(id) {
		return 0, failure.NotFound(errBookingNotFound)
	}

	fields := shared.WithModified(map[string]any{model.FieldStatus: req.Status}, shared.UserFromContext(ctx))

	affected, err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return 0, fmt.Errorf("failed to update booking status: %w", err)
	}

	if affected == 0 {
		return 0, failure.NotFound(errBookingNotFound)
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("bookingId", id).Msg("failed to reload booking for notification")

		return affected, nil
	}

	s.notification.Dispatch(ctx, notificationModel.Event{
		Kind:    notificationModel.KindBookingStatusChanged,
		Booking: toSnapshot(booking),
		Status:  req.Status,
		Remarks: req.Remarks,
	})

	return affected, nil
}

func (s *serviceImpl) GetByEmail(ctx context.Context, email string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{}
	params.SanitizeSort(model.TableName, constant.DefaultValueSortBy, gDto.SortDirDesc)

	filter := gDto.And(gDto.Filter{Field: model.FieldCustomerEmail, Value: strings.TrimSpace(email), Operator: gDto.FilterOperatorEqFold, Table: model.TableName})

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings by email")

		return nil, fmt.Errorf("failed to get bookings by email: %w", err)
	}

	return dto.FromModels(bookings), nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return 0, failure.NotFound(errBookingNotFound)
	}

	affected, err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return 0, fmt.Errorf("failed to delete booking: %w", err)
	}

	if affected == 0 {
		return 0, failure.NotFound(errBookingNotFound)
	}

	return affected, nil
}

// CheckAvailability is advisory. Nothing is reserved.
func (s *serviceImpl) CheckAvailability(ctx context.Context, query dto.AvailabilityQuery) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = timezone.ParseDate(query.Date); err != nil {
		return res, failure.BadRequestFromString(errInvalidDate)
	}

	tour, err := s.getTour(ctx, query.TourID)
	if err != nil {
		return res, err
	}

	if tour.ID == constant.Empty {
		return res, failure.NotFound(errTourNotFound)
	}

	booked, err := s.repo.SumPeople(ctx, tour.ID, query.Date)
	if err != nil {
		log.Error().Err(err).Msg("failed to check availability")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	res.FromModel(model.Availability{
		TourID:          tour.ID,
		Date:            query.Date,
		Booked:          booked,
		MaxParticipants: tour.MaxParticipants,
		Remaining:       max(0, tour.MaxParticipants-booked),
	})

	return res, nil
}

func toSnapshot(booking model.Booking) *notificationModel.BookingSnapshot {
	var res dto.BookingResponse
	res.FromModel(booking)

	snapshot := &notificationModel.BookingSnapshot{
		ID:              res.ID,
		TourTitle:       res.TourTitle,
		CustomerName:    res.CustomerName,
		CustomerEmail:   res.CustomerEmail,
		CustomerPhone:   res.CustomerPhone,
		BookingDate:     res.BookingDate,
		NumberOfPeople:  res.NumberOfPeople,
		TotalPrice:      res.TotalPrice,
		TotalPriceUSD:   res.TotalPriceUSD,
		SpecialRequests: res.SpecialRequests,
	}

	if res.BookingTime != nil {
		snapshot.BookingTime = *res.BookingTime
	}

	return snapshot
}
