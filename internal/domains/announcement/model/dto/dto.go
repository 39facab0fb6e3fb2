package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tourbook/internal/domains/announcement/model"
	"tourbook/shared"
	gDto "tourbook/shared/dto"
	gModel "tourbook/shared/model"
	"tourbook/shared/timezone"

	"github.com/google/uuid"
)

var ErrDateRange = errors.New("end_date must be on or after start_date")

// AnnouncementRequest is the body of both create and update. Update overwrites
// the dates too, so a missing date clears that bound.
type AnnouncementRequest struct {
	Message         string       `json:"message"          validate:"required,max=1000"`
	Type            string       `json:"type"             validate:"omitempty,oneof=offer news alert"`
	BackgroundColor string       `json:"background_color" validate:"hexcolor_or_empty"`
	TextColor       string       `json:"text_color"       validate:"hexcolor_or_empty"`
	IsActive        *gModel.Flag `json:"is_active"`
	StartDate       *string      `json:"start_date"`
	EndDate         *string      `json:"end_date"`
}

// Validate checks the date window. A blank date is an open bound.
func (r *AnnouncementRequest) Validate() error {
	start, end := dateValue(r.StartDate), dateValue(r.EndDate)

	for _, date := range []struct{ field, value string }{{"start_date", start}, {"end_date", end}} {
		if date.value == "" {
			continue
		}

		if _, err := time.Parse(time.DateOnly, date.value); err != nil {
			return fmt.Errorf("%s must be a date in the format %s", date.field, time.DateOnly)
		}
	}

	if start != "" && end != "" && end < start {
		return ErrDateRange
	}

	return nil
}

func (r *AnnouncementRequest) apply(announcement *model.Announcement) {
	announcement.Message = strings.TrimSpace(r.Message)
	announcement.Type = orDefault(r.Type, model.TypeOffer)
	announcement.BackgroundColor = orDefault(r.BackgroundColor, model.DefaultBackgroundColor)
	announcement.TextColor = orDefault(r.TextColor, model.DefaultTextColor)
	announcement.IsActive = gModel.FlagOr(r.IsActive, true)
	announcement.StartDate = parseDate(r.StartDate)
	announcement.EndDate = parseDate(r.EndDate)
}

func (r *AnnouncementRequest) ToModel(user string, now time.Time) model.Announcement {
	announcement := model.Announcement{
		ID:       uuid.NewString(),
		Metadata: gModel.NewMetadata(user, now),
	}
	r.apply(&announcement)

	return announcement
}

func (r *AnnouncementRequest) ToUpdateMap(user string) map[string]any {
	var announcement model.Announcement
	r.apply(&announcement)

	return shared.WithModified(map[string]any{
		model.FieldMessage:         announcement.Message,
		model.FieldType:            announcement.Type,
		model.FieldBackgroundColor: announcement.BackgroundColor,
		model.FieldTextColor:       announcement.TextColor,
		model.FieldIsActive:        announcement.IsActive,
		model.FieldStartDate:       announcement.StartDate,
		model.FieldEndDate:         announcement.EndDate,
	}, user)
}

type AnnouncementResponse struct {
	ID              string  `json:"id"`
	Message         string  `json:"message"`
	Type            string  `json:"type"`
	BackgroundColor string  `json:"background_color"`
	TextColor       string  `json:"text_color"`
	IsActive        bool    `json:"is_active"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	gDto.Metadata
}

func (r *AnnouncementResponse) FromModel(announcement model.Announcement) {
	r.ID = announcement.ID
	r.Message = announcement.Message
	r.Type = announcement.Type
	r.BackgroundColor = announcement.BackgroundColor
	r.TextColor = announcement.TextColor
	r.IsActive = announcement.IsActive
	r.StartDate = formatDate(announcement.StartDate)
	r.EndDate = formatDate(announcement.EndDate)
	r.Metadata.FromModel(announcement.Metadata)
}

func FromModels(announcements []model.Announcement) []AnnouncementResponse {
	res := make([]AnnouncementResponse, len(announcements))
	for i, announcement := range announcements {
		res[i].FromModel(announcement)
	}

	return res
}

func orDefault(value, def string) string {
	if value = strings.TrimSpace(value); value == "" {
		return def
	}

	return value
}

func dateValue(value *string) string {
	if value == nil {
		return ""
	}

	return strings.TrimSpace(*value)
}

func parseDate(value *string) *time.Time {
	raw := dateValue(value)
	if raw == "" {
		return nil
	}

	date, err := timezone.ParseDate(raw)
	if err != nil {
		return nil
	}

	return &date
}

// formatDate reads a DATE column without a zone conversion.
func formatDate(date *time.Time) *string {
	if date == nil {
		return nil
	}

	formatted := date.Format(time.DateOnly)

	return &formatted
}
