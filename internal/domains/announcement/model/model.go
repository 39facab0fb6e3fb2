package model

import (
	"time"

	"tourbook/shared/model"
)

const (
	TableName  = "announcements"
	EntityName = "announcement"

	FieldID              = "id"
	FieldMessage         = "message"
	FieldType            = "type"
	FieldBackgroundColor = "background_color"
	FieldTextColor       = "text_color"
	FieldIsActive        = "is_active"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
)

const (
	TypeOffer = "offer"
	TypeNews  = "news"
	TypeAlert = "alert"

	DefaultBackgroundColor = "#8B1538"
	DefaultTextColor       = "#FFFFFF"
)

type Announcement struct {
	ID              string     `db:"id"`
	Message         string     `db:"message"`
	Type            string     `db:"type"`
	BackgroundColor string     `db:"background_color"`
	TextColor       string     `db:"text_color"`
	IsActive        bool       `db:"is_active"`
	StartDate       *time.Time `db:"start_date"`
	EndDate         *time.Time `db:"end_date"`
	model.Metadata
}

// ActiveOn reports whether the announcement shows on day, a YYYY-MM-DD date.
// Missing bounds leave that side of the window open.
func (a Announcement) ActiveOn(day string) bool {
	if !a.IsActive {
		return false
	}

	if a.StartDate != nil && a.StartDate.Format(time.DateOnly) > day {
		return false
	}

	if a.EndDate != nil && a.EndDate.Format(time.DateOnly) < day {
		return false
	}

	return true
}
