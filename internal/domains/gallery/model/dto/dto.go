package dto

import (
	"mime/multipart"
	"strings"
	"time"

	"tourbook/internal/domains/gallery/model"
	"tourbook/shared"
	"tourbook/shared/constant"
	gDto "tourbook/shared/dto"
	gModel "tourbook/shared/model"

	"github.com/google/uuid"
)

// ImageRequest is the body of both create and update. Update overwrites every
// column, so omitted fields fall back to their defaults.
type ImageRequest struct {
	ImageURL     string       `json:"image_url"     validate:"required,max=500"`
	Title        string       `json:"title"         validate:"max=255"`
	Description  string       `json:"description"   validate:"max=2000"`
	DisplayOrder *int         `json:"display_order" validate:"omitempty,gte=0"`
	IsActive     *gModel.Flag `json:"is_active"`
}

func (r *ImageRequest) displayOrder() int {
	if r.DisplayOrder == nil {
		return 0
	}

	return *r.DisplayOrder
}

func (r *ImageRequest) isActive() bool {
	return gModel.FlagOr(r.IsActive, true)
}

func (r *ImageRequest) ToModel(user string, now time.Time) model.Image {
	return model.Image{
		ID:           uuid.NewString(),
		ImageURL:     strings.TrimSpace(r.ImageURL),
		Title:        strings.TrimSpace(r.Title),
		Description:  r.Description,
		DisplayOrder: r.displayOrder(),
		IsActive:     r.isActive(),
		Metadata:     gModel.NewMetadata(user, now),
	}
}

func (r *ImageRequest) ToUpdateMap(user string) map[string]any {
	return shared.WithModified(map[string]any{
		model.FieldImageURL:     strings.TrimSpace(r.ImageURL),
		model.FieldTitle:        strings.TrimSpace(r.Title),
		model.FieldDescription:  r.Description,
		model.FieldDisplayOrder: r.displayOrder(),
		model.FieldIsActive:     r.isActive(),
	}, user)
}

type ImageResponse struct {
	ID           string `json:"id"`
	ImageURL     string `json:"image_url"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
	gDto.Metadata
}

func (r *ImageResponse) FromModel(image model.Image) {
	r.ID = image.ID
	r.ImageURL = image.ImageURL
	r.Title = image.Title
	r.Description = image.Description
	r.DisplayOrder = image.DisplayOrder
	r.IsActive = image.IsActive
	r.Metadata.FromModel(image.Metadata)
}

func FromModels(images []model.Image) []ImageResponse {
	res := make([]ImageResponse, len(images))
	for i, image := range images {
		res[i].FromModel(image)
	}

	return res
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpeg image/jpg image/webp"`
	ImageFile multipart.File        `json:"-"`
}

// UploadBase64Request carries the image as a data URI, for clients that cannot
// send multipart bodies.
type UploadBase64Request struct {
	Image string `json:"image" validate:"required,mimetypes=image/png image/jpeg image/jpg image/webp"`
}

type UploadImageResponse struct {
	ImageURL string `json:"imageUrl"`
	FileName string `json:"fileName"`
}

// FileName builds a collision free object name keeping the extension of the
// original upload when it has one.
func FileName(original, contentType string) string {
	ext := strings.ToLower(original[strings.LastIndex(original, ".")+1:])
	if !strings.Contains(original, ".") || ext == constant.Empty {
		_, ext, _ = strings.Cut(contentType, "/")
	}

	return uuid.NewString() + "." + ext
}
