package gallery

import (
	"net/http"

	"tourbook/infras/otel"
	"tourbook/internal/domains/gallery/model/dto"
	"tourbook/internal/domains/gallery/service"
	"tourbook/shared"
	"tourbook/shared/constant"
	"tourbook/shared/validator"
	"tourbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const idKey = "imageId"

type Handler struct {
	service service.Gallery
	otel    otel.Otel
}

func New(service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/gallery", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetActiveImages)
		routerGroup.Get("/all", handler.GetAllImages)
		routerGroup.Get("/{id}", handler.GetImageByID)
		routerGroup.Post("/", handler.CreateImage)
		routerGroup.Put("/{id}", handler.UpdateImage)
		routerGroup.Delete("/{id}", handler.DeleteImage)
	})
}

// GetActiveImages lists the images shown on the public gallery page.
// @Summary List active gallery images
// @Tags Gallery
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.ImageResponse}
// @Failure 500 {object} response.Envelope
// @Router /gallery [get]
func (handler *Handler) GetActiveImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveImages")
	defer scope.End()

	images, err := handler.service.ListActive(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery images")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, images)
}

// GetAllImages lists every image, hidden ones included.
// @Summary List all gallery images
// @Tags Gallery
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.ImageResponse}
// @Failure 500 {object} response.Envelope
// @Router /gallery/all [get]
// @Security BearerAuth
func (handler *Handler) GetAllImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAllImages")
	defer scope.End()

	images, err := handler.service.ListAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery images")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, images)
}

// GetImageByID returns one gallery image.
// @Summary Get a gallery image
// @Tags Gallery
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Envelope{data=dto.ImageResponse}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /gallery/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetImageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImageByID")
	defer scope.End()

	image, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, image)
}

// CreateImage adds an image to the gallery.
// @Summary Add a gallery image
// @Tags Gallery
// @Accept json
// @Produce json
// @Param request body dto.ImageRequest true "Image"
// @Success 201 {object} response.Envelope "Gallery image added successfully"
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /gallery [post]
// @Security BearerAuth
func (handler *Handler) CreateImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateImage")
	defer scope.End()

	req := dto.ImageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create gallery image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gallery image added by user " + shared.UserFromContext(ctx))

	response.WithCreated(w, "Gallery image added successfully", idKey, id)
}

// UpdateImage overwrites a gallery image.
// @Summary Update a gallery image
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Image ID"
// @Param request body dto.ImageRequest true "Image"
// @Success 200 {object} response.Envelope "Gallery image updated successfully"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /gallery/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateImage")
	defer scope.End()

	req := dto.ImageRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if _, err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update gallery image")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Gallery image updated successfully")
}

// DeleteImage removes an image and its stored object.
// @Summary Delete a gallery image
// @Tags Gallery
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Envelope "Gallery image deleted successfully"
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /gallery/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	if _, err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete gallery image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gallery image deleted by user " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Gallery image deleted successfully")
}
