package tour

import (
	"net/http"

	"tourbook/infras/otel"
	"tourbook/internal/domains/tour/model/dto"
	"tourbook/internal/domains/tour/service"
	"tourbook/shared"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	"tourbook/shared/validator"
	"tourbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const idKey = "tourId"

type Handler struct {
	service service.Tour
	otel    otel.Otel
}

func New(service service.Tour, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tours", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTours)
		routerGroup.Get("/search", handler.SearchTours)
		routerGroup.Get("/{id}", handler.GetTourByID)
		routerGroup.Post("/", handler.CreateTour)
		routerGroup.Put("/{id}", handler.UpdateTour)
		routerGroup.Delete("/{id}", handler.DeleteTour)
	})
}

// GetTours lists active tours page by page.
// @Summary List tours
// @Description Active tours, newest first. search matches title or category, case insensitive.
// @Tags Tour
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Search text"
// @Success 200 {object} response.Envelope{data=[]dto.TourResponse,pagination=gDto.Pagination}
// @Failure 500 {object} response.Envelope
// @Router /tours [get]
func (handler *Handler) GetTours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTours")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	tours, err := handler.service.List(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tours")

		response.WithError(w, err)

		return
	}

	response.WithPaginated(w, tours)
}

// SearchTours matches active tours by keyword.
// @Summary Search tours
// @Description Active tours whose title or description contains keyword, case insensitive.
// @Tags Tour
// @Produce json
// @Param keyword query string true "Keyword"
// @Success 200 {object} response.Envelope{data=[]dto.TourResponse}
// @Failure 500 {object} response.Envelope
// @Router /tours/search [get]
func (handler *Handler) SearchTours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchTours")
	defer scope.End()

	keyword := r.URL.Query().Get(constant.RequestParamKeyword)

	tours, err := handler.service.Search(ctx, keyword)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search tours")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tours)
}

// GetTourByID returns one tour, including soft-deleted ones.
// @Summary Get a tour
// @Tags Tour
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} response.Envelope{data=dto.TourResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /tours/{id} [get]
func (handler *Handler) GetTourByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTourByID")
	defer scope.End()

	tour, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tour by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tour)
}

// CreateTour handles the creation of a new tour.
// @Summary Create a tour
// @Tags Tour
// @Accept json
// @Produce json
// @Param request body dto.TourRequest true "Tour"
// @Success 201 {object} response.Envelope "Tour created successfully"
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /tours [post]
// @Security BearerAuth
func (handler *Handler) CreateTour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTour")
	defer scope.End()

	req := dto.TourRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create tour")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tour created successfully by user " + shared.UserFromContext(ctx))

	response.WithCreated(w, "Tour created successfully", idKey, id)
}

// UpdateTour overwrites a tour.
// @Summary Update a tour
// @Tags Tour
// @Accept json
// @Produce json
// @Param id path string true "Tour ID"
// @Param request body dto.TourRequest true "Tour"
// @Success 200 {object} response.Envelope "Tour updated successfully"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /tours/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateTour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTour")
	defer scope.End()

	req := dto.TourRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if _, err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update tour")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tour updated successfully by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Tour updated successfully")
}

// DeleteTour deactivates a tour. Bookings keep pointing at it.
// @Summary Delete a tour
// @Tags Tour
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} response.Envelope "Tour deleted successfully"
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /tours/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTour")
	defer scope.End()

	if _, err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete tour")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tour deleted successfully by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Tour deleted successfully")
}
