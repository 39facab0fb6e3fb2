package announcement

import (
	"net/http"

	"tourbook/infras/otel"
	"tourbook/internal/domains/announcement/model/dto"
	"tourbook/internal/domains/announcement/service"
	"tourbook/shared"
	"tourbook/shared/constant"
	"tourbook/shared/validator"
	"tourbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const idKey = "announcementId"

type Handler struct {
	service service.Announcement
	otel    otel.Otel
}

func New(service service.Announcement, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/announcements", func(routerGroup chi.Router) {
		routerGroup.Get("/active", handler.GetActiveAnnouncements)
		routerGroup.Get("/", handler.GetAnnouncements)
		routerGroup.Get("/{id}", handler.GetAnnouncementByID)
		routerGroup.Post("/", handler.CreateAnnouncement)
		routerGroup.Put("/{id}", handler.UpdateAnnouncement)
		routerGroup.Delete("/{id}", handler.DeleteAnnouncement)
	})
}

// GetActiveAnnouncements lists the banners to show today.
// @Summary Active announcements
// @Description Active announcements whose date window covers today.
// @Tags Announcement
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.AnnouncementResponse}
// @Failure 500 {object} response.Envelope
// @Router /announcements/active [get]
func (handler *Handler) GetActiveAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveAnnouncements")
	defer scope.End()

	announcements, err := handler.service.ListActive(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active announcements")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, announcements)
}

// GetAnnouncements lists every announcement.
// @Summary List announcements
// @Tags Announcement
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.AnnouncementResponse}
// @Failure 500 {object} response.Envelope
// @Router /announcements [get]
// @Security BearerAuth
func (handler *Handler) GetAnnouncements(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAnnouncements")
	defer scope.End()

	announcements, err := handler.service.ListAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get announcements")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, announcements)
}

// GetAnnouncementByID returns one announcement.
// @Summary Get an announcement
// @Tags Announcement
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Envelope{data=dto.AnnouncementResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /announcements/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAnnouncementByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAnnouncementByID")
	defer scope.End()

	announcement, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get announcement")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, announcement)
}

// CreateAnnouncement handles the creation of a new announcement.
// @Summary Create an announcement
// @Tags Announcement
// @Accept json
// @Produce json
// @Param request body dto.AnnouncementRequest true "Announcement"
// @Success 201 {object} response.Envelope "Announcement created successfully"
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /announcements [post]
// @Security BearerAuth
func (handler *Handler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAnnouncement")
	defer scope.End()

	req := dto.AnnouncementRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create announcement")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Announcement created by user " + shared.UserFromContext(ctx))

	response.WithCreated(w, "Announcement created successfully", idKey, id)
}

// UpdateAnnouncement overwrites an announcement, dates included.
// @Summary Update an announcement
// @Tags Announcement
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param request body dto.AnnouncementRequest true "Announcement"
// @Success 200 {object} response.Envelope "Announcement updated successfully"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /announcements/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAnnouncement")
	defer scope.End()

	req := dto.AnnouncementRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if _, err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update announcement")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Announcement updated successfully")
}

// DeleteAnnouncement removes an announcement.
// @Summary Delete an announcement
// @Tags Announcement
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Envelope "Announcement deleted successfully"
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /announcements/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAnnouncement")
	defer scope.End()

	if _, err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete announcement")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Announcement deleted successfully")
}
