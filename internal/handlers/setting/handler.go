package setting

import (
	"net/http"

	"tourbook/infras/otel"
	"tourbook/internal/domains/setting/model/dto"
	"tourbook/internal/domains/setting/service"
	"tourbook/shared"
	"tourbook/shared/constant"
	"tourbook/shared/validator"
	"tourbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Setting
	otel    otel.Otel
}

func New(service service.Setting, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSettings)
		routerGroup.Put("/", handler.UpdateSettings)
	})
}

// GetSettings returns the site settings as a flat key/value object.
// @Summary Get settings
// @Tags Setting
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.SettingsResponse}
// @Failure 500 {object} response.Envelope
// @Router /settings [get]
func (handler *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	settings, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get settings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, settings)
}

// UpdateSettings writes the given keys. Unknown keys are reported back as skipped.
// @Summary Update settings
// @Tags Setting
// @Accept json
// @Produce json
// @Param request body dto.UpdateSettingsRequest true "Key/value pairs"
// @Success 200 {object} response.Envelope{data=dto.UpdateSettingsResponse} "Settings updated successfully"
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /settings [put]
// @Security BearerAuth
func (handler *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSettings")
	defer scope.End()

	req := dto.UpdateSettingsRequest{}

	if err := validator.Decode(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(w, err)

		return
	}

	if err := validator.ValidateVar(req, dto.ValidationTag); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate settings")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update settings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Settings updated by user " + shared.UserFromContext(ctx))

	response.WithFields(w, http.StatusOK, "Settings updated successfully", map[string]any{"data": res})
}
