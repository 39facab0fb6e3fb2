// Package content renders notification events into mail messages.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"tourbook/infras/mail"
	bookingModel "tourbook/internal/domains/booking/model"
	"tourbook/internal/domains/notification/model"
)

const (
	colorConfirmed = "#28a745"
	colorCancelled = "#dc3545"

	layoutName = "layout"
)

var (
	ErrUnknownKind   = errors.New("unknown notification kind")
	ErrMissingTarget = errors.New("notification event is missing its payload")
)

//go:embed templates/*.html
var files embed.FS

var views = parse("booking_customer", "booking_admin", "booking_status", "contact_reply")

// Brand holds the sender identity shown in every message.
type Brand struct {
	Name       string
	Color      string
	Phone      string
	Email      string
	AdminEmail string
}

type view struct {
	Brand     Brand
	Accent    string
	Heading   string
	Lead      string
	Closing   string
	Status    string
	Remarks   string
	Signature bool
	Booking   *model.BookingSnapshot
	Contact   *model.ContactReply
}

type statusCopy struct {
	subject string
	lead    string
	closing string
	accent  string
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"price": Price,
		"lines": Lines,
	}
}

func parse(names ...string) map[string]*template.Template {
	base := template.Must(template.New("layout.html").Funcs(funcs()).ParseFS(files, "templates/layout.html"))

	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.Must(base.Clone()).ParseFS(files, "templates/"+name+".html"))
	}

	return out
}

// Price renders an amount in riyal, followed by the dollar amount when known.
func Price(amount float64, usd *float64) string {
	if usd == nil {
		return fmt.Sprintf("QAR %.2f", amount)
	}

	return fmt.Sprintf("QAR %.2f (USD %.2f)", amount, *usd)
}

// Lines splits text into its non-blank lines.
func Lines(text string) []string {
	var out []string

	for line := range strings.SplitSeq(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}

	return out
}

func statusText(brand Brand, status string) (statusCopy, bool) {
	switch status {
	case bookingModel.StatusConfirmed:
		return statusCopy{
			subject: "Booking Confirmed - " + brand.Name,
			lead:    "Great news! Your booking has been confirmed.",
			closing: "We look forward to seeing you on your tour date!",
			accent:  colorConfirmed,
		}, true
	case bookingModel.StatusCancelled:
		return statusCopy{
			subject: "Booking Cancelled - " + brand.Name,
			lead:    "Your booking has been cancelled.",
			closing: "If you have any questions, please contact us.",
			accent:  colorCancelled,
		}, true
	case bookingModel.StatusCompleted:
		return statusCopy{
			subject: "Thank You for Touring with " + brand.Name,
			lead:    fmt.Sprintf("Thank you for choosing %s! We hope you enjoyed your tour.", brand.Name),
			accent:  brand.Color,
		}, true
	default:
		return statusCopy{}, false
	}
}

// Render builds the message for event. The second result is false when the
// event sends nothing, which is the case for status changes other than
// confirmed, cancelled and completed.
func Render(brand Brand, event model.Event) (mail.Message, bool, error) {
	data := view{Brand: brand, Accent: brand.Color, Signature: true, Booking: event.Booking, Contact: event.Contact}

	var (
		msg  mail.Message
		name string
	)

	switch event.Kind {
	case model.KindBookingCreatedCustomer:
		if event.Booking == nil {
			return msg, false, ErrMissingTarget
		}

		name = "booking_customer"
		data.Heading = "Booking Confirmation"
		msg.Subject = "Booking Confirmation - " + brand.Name
		msg.To = mail.Address{Email: event.Booking.CustomerEmail, Name: event.Booking.CustomerName}
	case model.KindBookingCreatedAdmin:
		if event.Booking == nil {
			return msg, false, ErrMissingTarget
		}

		name = "booking_admin"
		data.Heading = "New Booking Received"
		data.Signature = false
		msg.Subject = "New Booking Received - " + event.Booking.TourTitle
		msg.To = mail.Address{Email: brand.AdminEmail}
	case model.KindBookingStatusChanged:
		if event.Booking == nil {
			return msg, false, ErrMissingTarget
		}

		text, ok := statusText(brand, event.Status)
		if !ok {
			return msg, false, nil
		}

		name = "booking_status"
		data.Heading = "Booking Status Update"
		data.Accent = text.accent
		data.Lead = text.lead
		data.Closing = text.closing
		data.Status = event.Status
		data.Remarks = strings.TrimSpace(event.Remarks)
		msg.Subject = text.subject
		msg.To = mail.Address{Email: event.Booking.CustomerEmail, Name: event.Booking.CustomerName}
	case model.KindContactReplied:
		if event.Contact == nil {
			return msg, false, ErrMissingTarget
		}

		name = "contact_reply"
		data.Heading = brand.Name
		msg.Subject = "Re: " + event.Contact.Subject
		msg.To = mail.Address{Email: event.Contact.Email, Name: event.Contact.Name}
	default:
		return msg, false, fmt.Errorf("%w: %s", ErrUnknownKind, event.Kind)
	}

	var buf bytes.Buffer
	if err := views[name].ExecuteTemplate(&buf, layoutName, data); err != nil {
		return msg, false, fmt.Errorf("failed to render %s: %w", event.Kind, err)
	}

	msg.HTML = buf.String()

	return msg, true, nil
}
