package response

import (
	"encoding/json"
	"maps"
	"net/http"

	"tourbook/shared/constant"
	"tourbook/shared/dto"
	"tourbook/shared/failure"
	"tourbook/shared/logger"

	"github.com/rs/zerolog/log"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Data       any             `json:"data,omitempty"`
	Pagination *dto.Pagination `json:"pagination,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Envelope{Success: code < http.StatusBadRequest, Message: message})
}

// WithJSON sends a successful response carrying data
func WithJSON(writer http.ResponseWriter, code int, data any) {
	response(writer, code, Envelope{Success: true, Data: data})
}

// WithPaginated sends a page of items with its pagination block
func WithPaginated[T any](writer http.ResponseWriter, page dto.Paginated[T]) {
	items := page.Items
	if items == nil {
		items = []T{}
	}

	response(writer, http.StatusOK, Envelope{Success: true, Data: items, Pagination: &page.Pagination})
}

// WithCreated sends 201 with the new id rendered under idKey
func WithCreated(writer http.ResponseWriter, message, idKey, id string) {
	WithFields(writer, http.StatusCreated, message, map[string]any{idKey: id})
}

// WithFields sends a successful message response with extra top level keys
func WithFields(writer http.ResponseWriter, code int, message string, fields map[string]any) {
	payload := map[string]any{
		"success": code < http.StatusBadRequest,
		"message": message,
	}
	maps.Copy(payload, fields)

	response(writer, code, payload)
}

// WithError sends the failure carried by err. Anything that is not a failure is
// logged and answered with a generic 500.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	if code >= http.StatusInternalServerError {
		logger.ErrorWithStack(err)
		response(writer, code, Envelope{Success: false, Message: constant.ResponseErrorServer})

		return
	}

	response(writer, code, Envelope{Success: false, Message: err.Error()})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
