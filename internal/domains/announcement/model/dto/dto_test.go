package dto_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/internal/domains/announcement/model"
	"tourbook/internal/domains/announcement/model/dto"
	gModel "tourbook/shared/model"
	"tourbook/shared/validator"
)

func strPtr(v string) *string { return &v }

func TestAnnouncementRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.AnnouncementRequest
		wantErr bool
	}{
		{name: "minimal", req: dto.AnnouncementRequest{Message: "Eid offer"}},
		{name: "full", req: dto.AnnouncementRequest{Message: "Eid offer", Type: "alert", BackgroundColor: "#fff", TextColor: "#000000", StartDate: strPtr("2025-06-01"), EndDate: strPtr("2025-06-10")}},
		{name: "same day window", req: dto.AnnouncementRequest{Message: "x", StartDate: strPtr("2025-06-01"), EndDate: strPtr("2025-06-01")}},
		{name: "missing message", req: dto.AnnouncementRequest{}, wantErr: true},
		{name: "unknown type", req: dto.AnnouncementRequest{Message: "x", Type: "promo"}, wantErr: true},
		{name: "bad color", req: dto.AnnouncementRequest{Message: "x", BackgroundColor: "red"}, wantErr: true},
		{name: "blank dates", req: dto.AnnouncementRequest{Message: "x", StartDate: strPtr(""), EndDate: strPtr(" ")}},
		{name: "bad date", req: dto.AnnouncementRequest{Message: "x", StartDate: strPtr("01/06/2025")}, wantErr: true},
		{name: "bad end date", req: dto.AnnouncementRequest{Message: "x", EndDate: strPtr("2025-13-01")}, wantErr: true},
		{name: "end before start", req: dto.AnnouncementRequest{Message: "x", StartDate: strPtr("2025-06-10"), EndDate: strPtr("2025-06-01")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			assert.Equal(t, tt.wantErr, err != nil, err)
		})
	}
}

func TestAnnouncementRequest_ToModel(t *testing.T) {
	req := dto.AnnouncementRequest{Message: " Ramadan hours ", StartDate: strPtr("2025-03-01")}

	announcement := req.ToModel("admin", time.Now())

	assert.Equal(t, "Ramadan hours", announcement.Message)
	assert.Equal(t, model.TypeOffer, announcement.Type)
	assert.Equal(t, model.DefaultBackgroundColor, announcement.BackgroundColor)
	assert.True(t, announcement.IsActive)
	require.NotNil(t, announcement.StartDate)
	assert.Equal(t, "2025-03-01", announcement.StartDate.Format(time.DateOnly))
	assert.Nil(t, announcement.EndDate)
}

func TestAnnouncementRequest_ToUpdateMapClearsDates(t *testing.T) {
	inactive := gModel.Flag(false)
	req := dto.AnnouncementRequest{Message: "x", IsActive: &inactive}

	fields := req.ToUpdateMap("admin")

	assert.Equal(t, false, fields[model.FieldIsActive])
	assert.Nil(t, fields[model.FieldStartDate])
	assert.Contains(t, fields, model.FieldEndDate)
}

func TestAnnouncementRequest_DecodeFormPayload(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantActive bool
		wantStart  string
	}{
		{
			name:       "switch on without window",
			body:       `{"id":null,"message":"Eid offer","type":"offer","background_color":"#FFD700","text_color":"#8B1538","is_active":1,"start_date":"","end_date":""}`,
			wantActive: true,
		},
		{
			name: "switch off with start date",
			body: `{"message":"Eid offer","type":"news","background_color":"#FFD700","text_color":"#8B1538","is_active":0,"start_date":"2025-06-01","end_date":""}`,
			wantStart: "2025-06-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.AnnouncementRequest

			require.NoError(t, validator.Validate(strings.NewReader(tt.body), &req))

			announcement := req.ToModel("admin", time.Now())

			assert.Equal(t, tt.wantActive, announcement.IsActive)
			assert.Nil(t, announcement.EndDate)

			if tt.wantStart == "" {
				assert.Nil(t, announcement.StartDate)

				return
			}

			require.NotNil(t, announcement.StartDate)
			assert.Equal(t, tt.wantStart, announcement.StartDate.Format(time.DateOnly))
		})
	}
}
