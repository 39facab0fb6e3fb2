package model

type Kind string

const (
	KindBookingCreatedCustomer Kind = "booking_created_customer"
	KindBookingCreatedAdmin    Kind = "booking_created_admin"
	KindBookingStatusChanged   Kind = "booking_status_changed"
	KindContactReplied         Kind = "contact_replied"
)

// BookingSnapshot carries the booking fields a notification needs, copied at
// dispatch time so a queued event does not read the database again.
type BookingSnapshot struct {
	ID              string   `json:"id"`
	TourTitle       string   `json:"tour_title"`
	CustomerName    string   `json:"customer_name"`
	CustomerEmail   string   `json:"customer_email"`
	CustomerPhone   string   `json:"customer_phone"`
	BookingDate     string   `json:"booking_date"`
	BookingTime     string   `json:"booking_time,omitempty"`
	NumberOfPeople  int      `json:"number_of_people"`
	TotalPrice      float64  `json:"total_price"`
	TotalPriceUSD   *float64 `json:"total_price_usd,omitempty"`
	SpecialRequests string   `json:"special_requests,omitempty"`
}

type ContactReply struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Subject      string `json:"subject"`
	ReplyMessage string `json:"reply_message"`
}

type Event struct {
	Kind    Kind             `json:"kind"`
	Booking *BookingSnapshot `json:"booking,omitempty"`
	Status  string           `json:"status,omitempty"`
	Remarks string           `json:"remarks,omitempty"`
	Contact *ContactReply    `json:"contact,omitempty"`
}

// Key is the partition key used when the event is published.
func (e Event) Key() string {
	switch {
	case e.Booking != nil:
		return e.Booking.ID
	case e.Contact != nil:
		return e.Contact.Email
	default:
		return string(e.Kind)
	}
}
