package model

import "tourbook/shared/model"

const (
	TableName  = "gallery_images"
	EntityName = "gallery"

	FieldID           = "id"
	FieldImageURL     = "image_url"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldDisplayOrder = "display_order"
	FieldIsActive     = "is_active"
)

// UploadDirectory is the object prefix for uploaded images.
const UploadDirectory = "images"

type Image struct {
	ID           string `db:"id"`
	ImageURL     string `db:"image_url"`
	Title        string `db:"title"`
	Description  string `db:"description"`
	DisplayOrder int    `db:"display_order"`
	IsActive     bool   `db:"is_active"`
	model.Metadata
}
