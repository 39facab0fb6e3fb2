package contact

import (
	"net/http"

	"tourbook/infras/otel"
	"tourbook/internal/domains/contact/model/dto"
	"tourbook/internal/domains/contact/service"
	"tourbook/shared"
	"tourbook/shared/constant"
	"tourbook/shared/validator"
	"tourbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const idKey = "contactId"

type Handler struct {
	service service.Contact
	otel    otel.Otel
}

func New(service service.Contact, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contact", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateContact)
		routerGroup.Get("/", handler.GetContacts)
		routerGroup.Get("/{id}", handler.GetContactByID)
		routerGroup.Patch("/{id}/status", handler.UpdateContactStatus)
		routerGroup.Post("/{id}/reply", handler.ReplyContact)
		routerGroup.Delete("/{id}", handler.DeleteContact)
	})
}

// CreateContact stores a message from the public contact form.
// @Summary Send a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Message"
// @Success 201 {object} response.Envelope "Message sent successfully"
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /contact [post]
func (handler *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContact")
	defer scope.End()

	req := dto.CreateContactRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact message")

		response.WithError(w, err)

		return
	}

	response.WithCreated(w, "Message sent successfully", idKey, id)
}

// GetContacts lists contact messages, newest first.
// @Summary List contact messages
// @Tags Contact
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.ContactResponse}
// @Failure 500 {object} response.Envelope
// @Router /contact [get]
// @Security BearerAuth
func (handler *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContacts")
	defer scope.End()

	contacts, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact messages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, contacts)
}

// GetContactByID returns one contact message.
// @Summary Get a contact message
// @Tags Contact
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Envelope{data=dto.ContactResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /contact/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetContactByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactByID")
	defer scope.End()

	contact, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact message")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, contact)
}

// UpdateContactStatus marks a message new, read or replied.
// @Summary Update contact status
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.UpdateStatusRequest true "Status"
// @Success 200 {object} response.Envelope "Status updated successfully"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /contact/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContactStatus")
	defer scope.End()

	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if _, err := handler.service.UpdateStatus(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update contact status")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Status updated successfully")
}

// ReplyContact records a reply and emails it to the sender.
// @Summary Reply to a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.ReplyRequest true "Reply"
// @Success 200 {object} response.Envelope "Reply sent successfully"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /contact/{id}/reply [post]
// @Security BearerAuth
func (handler *Handler) ReplyContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplyContact")
	defer scope.End()

	req := dto.ReplyRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if _, err := handler.service.Reply(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reply to contact message")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact replied by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Reply sent successfully")
}

// DeleteContact removes a contact message.
// @Summary Delete a contact message
// @Tags Contact
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Envelope "Contact deleted successfully"
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /contact/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContact")
	defer scope.End()

	if _, err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete contact message")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Contact deleted successfully")
}
