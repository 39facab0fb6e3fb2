package dto

import (
	"errors"
	"time"

	"tourbook/internal/domains/booking/model"
	gDto "tourbook/shared/dto"
)

var ErrNoPeople = errors.New("number_of_people must be greater than 0")

type CreateBookingRequest struct {
	TourID          string  `json:"tour_id"          validate:"required"`
	CustomerName    string  `json:"customer_name"    validate:"required,max=255"`
	CustomerEmail   string  `json:"customer_email"   validate:"required,email,max=255"`
	CustomerPhone   string  `json:"customer_phone"   validate:"required,max=50"`
	BookingDate     string  `json:"booking_date"     validate:"required,datetime=2006-01-02"`
	BookingTime     *string `json:"booking_time"     validate:"omitempty,clock"`
	NumberOfPeople  int     `json:"number_of_people" validate:"gte=0"`
	Adults          *int    `json:"adults"           validate:"omitempty,gte=0"`
	Children        *int    `json:"children"         validate:"omitempty,gte=0"`
	SpecialRequests string  `json:"special_requests" validate:"max=2000"`
}

// People is the head count of the booking. When adults are given the split wins
// over number_of_people.
func (r *CreateBookingRequest) People() int {
	if r.Adults != nil && *r.Adults > 0 {
		people := *r.Adults
		if r.Children != nil {
			people += *r.Children
		}

		return people
	}

	return r.NumberOfPeople
}

func (r *CreateBookingRequest) Validate() error {
	if r.People() <= 0 {
		return ErrNoPeople
	}

	return nil
}

type UpdateStatusRequest struct {
	Status  string `json:"status"  validate:"required,oneof=pending confirmed cancelled completed"`
	Remarks string `json:"remarks" validate:"max=2000"`
}

type BookingResponse struct {
	ID              string   `json:"id"`
	TourID          string   `json:"tour_id"`
	TourTitle       string   `json:"tour_title"`
	TourDescription string   `json:"tour_description,omitempty"`
	CustomerName    string   `json:"customer_name"`
	CustomerEmail   string   `json:"customer_email"`
	CustomerPhone   string   `json:"customer_phone"`
	BookingDate     string   `json:"booking_date"`
	BookingTime     *string  `json:"booking_time"`
	NumberOfPeople  int      `json:"number_of_people"`
	Adults          *int     `json:"adults"`
	Children        *int     `json:"children"`
	TotalPrice      float64  `json:"total_price"`
	TotalPriceUSD   *float64 `json:"total_price_usd"`
	SpecialRequests string   `json:"special_requests"`
	Status          string   `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.TourID = booking.TourID
	r.TourTitle = deref(booking.TourTitle)
	r.TourDescription = deref(booking.TourDescription)
	r.CustomerName = booking.CustomerName
	r.CustomerEmail = booking.CustomerEmail
	r.CustomerPhone = booking.CustomerPhone
	r.BookingDate = formatDate(booking.BookingDate)
	r.BookingTime = booking.BookingTime
	r.NumberOfPeople = booking.NumberOfPeople
	r.Adults = booking.Adults
	r.Children = booking.Children
	r.TotalPrice = booking.TotalPrice
	r.TotalPriceUSD = booking.TotalPriceUSD
	r.SpecialRequests = booking.SpecialRequests
	r.Status = booking.Status
	r.Metadata.FromModel(booking.Metadata)
}

func FromModels(bookings []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking)
	}

	return res
}

type ListBookingsResponse = gDto.Paginated[BookingResponse]

type AvailabilityResponse struct {
	TourID          string `json:"tour_id"`
	Date            string `json:"date"`
	Booked          int    `json:"booked"`
	MaxParticipants int    `json:"max_participants"`
	Remaining       int    `json:"remaining"`
}

func (r *AvailabilityResponse) FromModel(availability model.Availability) {
	r.TourID = availability.TourID
	r.Date = availability.Date
	r.Booked = availability.Booked
	r.MaxParticipants = availability.MaxParticipants
	r.Remaining = availability.Remaining
}

type AvailabilityQuery struct {
	TourID string `json:"tourId" validate:"required"`
	Date   string `json:"date"   validate:"required,datetime=2006-01-02"`
}

func deref(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}

// formatDate renders a DATE column. The driver returns midnight UTC, so the
// calendar date is read without a zone conversion.
func formatDate(date time.Time) string {
	if date.IsZero() {
		return ""
	}

	return date.Format(time.DateOnly)
}
