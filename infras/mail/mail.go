package mail

//go:generate go run go.uber.org/mock/mockgen -source=./mail.go -destination=./mocks/mail_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tourbook/config"
	"tourbook/infras/otel"
	"tourbook/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	DriverMailjet = "mailjet"
	DriverSMTP    = "smtp"
	DriverLog     = "log"

	otelAttrRecipient = "recipient"
	otelAttrSubject   = "subject"
)

var (
	ErrNoRecipient = errors.New("mail has no recipient")
	ErrSendFailed  = errors.New("mail provider rejected the message")
)

type Address struct {
	Email string
	Name  string
}

func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}

	return fmt.Sprintf("%q <%s>", a.Name, a.Email)
}

type Message struct {
	From    Address
	To      Address
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type sender interface {
	send(ctx context.Context, msg Message) error
	name() string
}

type mailerImpl struct {
	from   Address
	sender sender
	otel   otel.Otel
}

// New picks the transport named by MAIL_DRIVER. Unknown drivers and drivers
// missing credentials fall back to the log transport.
func New(cfg *config.Config, otl otel.Otel) Mailer {
	var transport sender

	switch strings.ToLower(cfg.Mail.Driver) {
	case DriverMailjet:
		if cfg.Mail.Mailjet.PublicKey == "" || cfg.Mail.Mailjet.PrivateKey == "" {
			log.Warn().Msg("Mailjet keys are not configured, falling back to log mailer")

			transport = newLogSender()

			break
		}

		transport = newMailjetSender(cfg.Mail.Mailjet.PublicKey, cfg.Mail.Mailjet.PrivateKey)
	case DriverSMTP:
		if cfg.Mail.SMTP.Host == "" {
			log.Warn().Msg("SMTP host is not configured, falling back to log mailer")

			transport = newLogSender()

			break
		}

		transport = newSMTPSender(cfg.Mail.SMTP.Host, cfg.Mail.SMTP.Port, cfg.Mail.SMTP.Username, cfg.Mail.SMTP.Password)
	default:
		transport = newLogSender()
	}

	log.Info().Str("driver", transport.name()).Msg("Mailer initialized")

	return &mailerImpl{
		from:   Address{Email: cfg.Mail.FromEmail, Name: cfg.Mail.FromName},
		sender: transport,
		otel:   otl,
	}
}

func (m *mailerImpl) Send(ctx context.Context, msg Message) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	if msg.To.Email == "" {
		return ErrNoRecipient
	}

	if msg.From.Email == "" {
		msg.From = m.from
	}

	scope.SetAttributes(map[string]any{
		otelAttrRecipient: msg.To.Email,
		otelAttrSubject:   msg.Subject,
	})

	err = m.sender.send(ctx, msg)
	if err != nil {
		log.Error().Err(err).Str("driver", m.sender.name()).Str("to", msg.To.Email).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail via %s: %w", m.sender.name(), err)
	}

	log.Info().Str("driver", m.sender.name()).Str("to", msg.To.Email).Str("subject", msg.Subject).Msg("Mail sent")

	return nil
}
