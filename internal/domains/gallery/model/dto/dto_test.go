package dto_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/internal/domains/gallery/model"
	"tourbook/internal/domains/gallery/model/dto"
	"tourbook/shared/constant"
	gModel "tourbook/shared/model"
	"tourbook/shared/validator"
)

func TestImageRequest_Defaults(t *testing.T) {
	req := dto.ImageRequest{ImageURL: " https://cdn.example.com/dunes.jpg ", Title: "Dunes"}

	image := req.ToModel("admin", time.Now())

	assert.Equal(t, "https://cdn.example.com/dunes.jpg", image.ImageURL)
	assert.Equal(t, 0, image.DisplayOrder)
	assert.True(t, image.IsActive)
	assert.Equal(t, "admin", image.CreatedBy)
}

func TestImageRequest_ToUpdateMap(t *testing.T) {
	order := 3
	inactive := gModel.Flag(false)
	req := dto.ImageRequest{ImageURL: "https://cdn.example.com/a.jpg", DisplayOrder: &order, IsActive: &inactive}

	fields := req.ToUpdateMap("manager")

	assert.Equal(t, 3, fields[model.FieldDisplayOrder])
	assert.Equal(t, false, fields[model.FieldIsActive])
	assert.Equal(t, "", fields[model.FieldTitle])
	assert.Equal(t, "manager", fields[constant.FieldModifiedBy])
}

func TestImageRequest_DecodeFormPayload(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantActive bool
	}{
		{name: "switch on", body: `{"id":null,"image_url":"https://cdn.example.com/dunes.jpg","title":"Dunes","description":"","display_order":0,"is_active":1}`, wantActive: true},
		{name: "switch off", body: `{"image_url":"https://cdn.example.com/dunes.jpg","title":"Dunes","display_order":2,"is_active":0}`},
		{name: "boolean", body: `{"image_url":"https://cdn.example.com/dunes.jpg","is_active":true}`, wantActive: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.ImageRequest

			require.NoError(t, validator.Validate(strings.NewReader(tt.body), &req))

			assert.Equal(t, tt.wantActive, req.ToModel("admin", time.Now()).IsActive)
			assert.Equal(t, tt.wantActive, req.ToUpdateMap("admin")[model.FieldIsActive])
		})
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name        string
		original    string
		contentType string
		wantExt     string
	}{
		{name: "keeps extension", original: "Camel.JPG", contentType: "image/jpeg", wantExt: ".jpg"},
		{name: "falls back to content type", original: "camel", contentType: "image/webp", wantExt: ".webp"},
		{name: "trailing dot", original: "camel.", contentType: "image/png", wantExt: ".png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dto.FileName(tt.original, tt.contentType)

			assert.True(t, strings.HasSuffix(got, tt.wantExt), got)
			assert.Len(t, strings.TrimSuffix(got, tt.wantExt), 36)
		})
	}
}
