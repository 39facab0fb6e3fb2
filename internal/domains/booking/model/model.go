package model

import (
	"time"

	"tourbook/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldTourID          = "tour_id"
	FieldCustomerName    = "customer_name"
	FieldCustomerEmail   = "customer_email"
	FieldCustomerPhone   = "customer_phone"
	FieldBookingDate     = "booking_date"
	FieldBookingTime     = "booking_time"
	FieldNumberOfPeople  = "number_of_people"
	FieldAdults          = "adults"
	FieldChildren        = "children"
	FieldTotalPrice      = "total_price"
	FieldTotalPriceUSD   = "total_price_usd"
	FieldSpecialRequests = "special_requests"
	FieldStatus          = "status"

	TourTableName  = "tours"
	FieldTourTitle = "title"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Statuses lists every booking status in lifecycle order.
var Statuses = []string{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

// OccupyingStatuses are the statuses that count against a departure's capacity.
var OccupyingStatuses = []string{StatusPending, StatusConfirmed}

type Booking struct {
	ID              string    `db:"id"`
	TourID          string    `db:"tour_id"`
	CustomerName    string    `db:"customer_name"`
	CustomerEmail   string    `db:"customer_email"`
	CustomerPhone   string    `db:"customer_phone"`
	BookingDate     time.Time `db:"booking_date"`
	BookingTime     *string   `db:"booking_time"`
	NumberOfPeople  int       `db:"number_of_people"`
	Adults          *int      `db:"adults"`
	Children        *int      `db:"children"`
	TotalPrice      float64   `db:"total_price"`
	TotalPriceUSD   *float64  `db:"total_price_usd"`
	SpecialRequests string    `db:"special_requests"`
	Status          string    `db:"status"`
	TourTitle       *string   `db:"tour_title"       table:"tours" column:"title"`
	TourDescription *string   `db:"tour_description" table:"tours" column:"description"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "LEFT JOIN tours ON tours.id = bookings.tour_id"
}

// Availability is the advisory capacity picture for one tour on one date.
type Availability struct {
	TourID          string
	Date            string
	Booked          int
	MaxParticipants int
	Remaining       int
}
