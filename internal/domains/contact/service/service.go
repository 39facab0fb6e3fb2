//go:generate mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks
package service

import (
	"context"
	"fmt"
	"slices"

	"tourbook/infras/otel"
	"tourbook/internal/domains/contact/model"
	"tourbook/internal/domains/contact/model/dto"
	"tourbook/internal/domains/contact/repository"
	notificationModel "tourbook/internal/domains/notification/model"
	notification "tourbook/internal/domains/notification/service"
	"tourbook/shared"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/failure"
	"tourbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	errContactNotFound = "contact not found"
	errInvalidStatus   = "invalid contact status"
)

type Contact interface {
	Create(ctx context.Context, req dto.CreateContactRequest) (string, error)
	List(ctx context.Context) ([]dto.ContactResponse, error)
	Get(ctx context.Context, id string) (dto.ContactResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (int64, error)
	Reply(ctx context.Context, id string, req dto.ReplyRequest) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type serviceImpl struct {
	repo         repository.Contact
	notification notification.Notification
	otel         otel.Otel
}

func New(repo repository.Contact, notification notification.Notification, otel otel.Otel) Contact {
	return &serviceImpl{
		repo:         repo,
		notification: notification,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateContactRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	contact := req.ToModel(shared.UserFromContext(ctx), timezone.Now())

	if err = s.repo.Insert(ctx, contact); err != nil {
		log.Error().Err(err).Msg("failed to create contact")

		return "", fmt.Errorf("failed to create contact: %w", err)
	}

	return contact.ID, nil
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{}
	params.SanitizeSort(model.TableName, constant.DefaultValueSortBy, gDto.SortDirDesc)

	contacts, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get contacts")

		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}

	return dto.FromModels(contacts), nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Contact, error) {
	if !shared.IsValidID(id) {
		return model.Contact{}, failure.NotFound(errContactNotFound)
	}

	contact, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get contact")

		return contact, fmt.Errorf("failed to get contact: %w", err)
	}

	if contact.ID == constant.Empty {
		return contact, failure.NotFound(errContactNotFound)
	}

	return contact, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	contact, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(contact)

	return res, nil
}

func (s *serviceImpl) update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	if !shared.IsValidID(id) {
		return 0, failure.NotFound(errContactNotFound)
	}

	affected, err := s.repo.Update(ctx, shared.WithModified(fields, shared.UserFromContext(ctx)), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update contact")

		return 0, fmt.Errorf("failed to update contact: %w", err)
	}

	if affected == 0 {
		return 0, failure.NotFound(errContactNotFound)
	}

	return affected, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !slices.Contains(model.Statuses, req.Status) {
		return 0, failure.BadRequestFromString(errInvalidStatus)
	}

	return s.update(ctx, id, map[string]any{model.FieldStatus: req.Status})
}

// Reply marks the message replied in a single update and mails the reply to the sender.
func (s *serviceImpl) Reply(ctx context.Context, id string, req dto.ReplyRequest) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reply")
	defer scope.End()
	defer scope.TraceIfError(err)

	affected, err = s.update(ctx, id, map[string]any{
		model.FieldStatus:       model.StatusReplied,
		model.FieldReplyMessage: req.ReplyMessage,
		model.FieldRepliedAt:    timezone.Now(),
	})
	if err != nil {
		return 0, err
	}

	contact, err := s.get(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("contactId", id).Msg("failed to reload contact for notification")

		return affected, nil
	}

	s.notification.Dispatch(ctx, notificationModel.Event{
		Kind: notificationModel.KindContactReplied,
		Contact: &notificationModel.ContactReply{
			Name:         contact.Name,
			Email:        contact.Email,
			Subject:      contact.Subject,
			ReplyMessage: req.ReplyMessage,
		},
	})

	return affected, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (affected int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return 0, failure.NotFound(errContactNotFound)
	}

	affected, err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete contact")

		return 0, fmt.Errorf("failed to delete contact: %w", err)
	}

	if affected == 0 {
		return 0, failure.NotFound(errContactNotFound)
	}

	return affected, nil
}
