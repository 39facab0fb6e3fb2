package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"tourbook/config"
	"tourbook/infras/otel"
	"tourbook/internal/domains/gallery/model/dto"
	"tourbook/internal/domains/gallery/service"
	"tourbook/shared/constant"
	"tourbook/shared/failure"
	"tourbook/shared/validator"
	"tourbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	fieldImageURL = "imageUrl"
	fieldFileName = "fileName"

	messageUploaded = "Image uploaded successfully"
	errTooLarge     = "image must not exceed %d MB"

	// room for multipart boundaries and the other form fields
	formOverhead = 1 << 20
)

type Handler struct {
	config  *config.Config
	service service.Gallery
	otel    otel.Otel
}

func New(config *config.Config, service service.Gallery, otel otel.Otel) Handler {
	return Handler{
		config:  config,
		service: service,
		otel:    otel,
	}
}

// bodyLimit is the largest request body accepted for an image of the
// configured size. Base64 bodies grow by a third.
func (handler *Handler) bodyLimit(base64 bool) int64 {
	limit := int64(handler.config.External.S3.MaxUploadMB) << 20
	if limit <= 0 {
		limit = constant.RequestMaxMemory
	}

	if base64 {
		limit = limit * 4 / 3 //nolint:mnd
	}

	return limit + formOverhead
}

func (handler *Handler) tooLarge(err error) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return failure.BadRequestFromString(fmt.Sprintf(errTooLarge, handler.config.External.S3.MaxUploadMB))
	}

	return nil
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/upload", func(routerGroup chi.Router) {
		routerGroup.Post("/image", handler.UploadImage)
		routerGroup.Post("/image/base64", handler.UploadBase64)
	})
}

// UploadImage stores an image in object storage and returns its public URL.
// @Summary Upload an image
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "PNG, JPEG or WebP image"
// @Success 200 {object} response.Envelope "Image uploaded successfully"
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /upload/image [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	r.Body = http.MaxBytesReader(w, r.Body, handler.bodyLimit(false))

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		if sizeErr := handler.tooLarge(err); sizeErr != nil {
			response.WithError(w, sizeErr)

			return
		}

		response.WithError(w, failure.BadRequestFromString("No file uploaded"))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFileImage)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequestFromString("No file uploaded"))

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		Image:     fileHeader,
		ImageFile: file,
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate uploaded file")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadImage(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload file")

		response.WithError(w, err)

		return
	}

	response.WithFields(w, http.StatusOK, messageUploaded, map[string]any{
		fieldImageURL: res.ImageURL,
		fieldFileName: res.FileName,
	})
}

// UploadBase64 accepts the image as a data URI for clients that cannot send multipart bodies.
// @Summary Upload an image as a data URI
// @Tags Upload
// @Accept json
// @Produce json
// @Param request body dto.UploadBase64Request true "Data URI"
// @Success 200 {object} response.Envelope "Image uploaded successfully"
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /upload/image/base64 [post]
// @Security BearerAuth
func (handler *Handler) UploadBase64(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadBase64")
	defer scope.End()

	req := dto.UploadBase64Request{}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, handler.bodyLimit(true)))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read request body")

		if sizeErr := handler.tooLarge(err); sizeErr != nil {
			err = sizeErr
		}

		response.WithError(w, err)

		return
	}

	if err = validator.Validate(bytes.NewReader(body), &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadBase64(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload file")

		response.WithError(w, err)

		return
	}

	response.WithFields(w, http.StatusOK, messageUploaded, map[string]any{
		fieldImageURL: res.ImageURL,
		fieldFileName: res.FileName,
	})
}
