package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"tourbook/config"
	"tourbook/infras/otel/mocks"

	"github.com/mailjet/mailjet-apiv3-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailjet struct {
	got    *mailjet.MessagesV31
	status string
	err    error
}

func (f *fakeMailjet) SendMailV31(data *mailjet.MessagesV31) (*mailjet.ResultsV31, error) {
	f.got = data

	if f.err != nil {
		return nil, f.err
	}

	return &mailjet.ResultsV31{ResultsV31: []mailjet.ResultV31{{Status: f.status}}}, nil
}

func newTestConfig(driver string) *config.Config {
	cfg := &config.Config{}
	cfg.Mail.Driver = driver
	cfg.Mail.FromEmail = "no-reply@arabianadventure.com"
	cfg.Mail.FromName = "Arabian Adventure"

	return cfg
}

func sample() Message {
	return Message{
		To:      Address{Email: "guest@example.com", Name: "Guest"},
		Subject: "Booking Confirmation - Arabian Adventure",
		HTML:    "<p>Thanks</p>",
		Text:    "Thanks",
	}
}

func TestNew_DriverSelection(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
		want   string
	}{
		{name: "log by default", mutate: func(cfg *config.Config) { cfg.Mail.Driver = "" }, want: DriverLog},
		{name: "mailjet without keys falls back", mutate: func(cfg *config.Config) { cfg.Mail.Driver = DriverMailjet }, want: DriverLog},
		{name: "mailjet with keys", mutate: func(cfg *config.Config) {
			cfg.Mail.Driver = "MAILJET"
			cfg.Mail.Mailjet.PublicKey = "pub"
			cfg.Mail.Mailjet.PrivateKey = "priv"
		}, want: DriverMailjet},
		{name: "smtp without host falls back", mutate: func(cfg *config.Config) { cfg.Mail.Driver = DriverSMTP }, want: DriverLog},
		{name: "smtp with host", mutate: func(cfg *config.Config) {
			cfg.Mail.Driver = DriverSMTP
			cfg.Mail.SMTP.Host = "smtp.example.com"
			cfg.Mail.SMTP.Port = "587"
		}, want: DriverSMTP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig("")
			tt.mutate(cfg)

			mailer, ok := New(cfg, mocks.NewOtel()).(*mailerImpl)
			require.True(t, ok)
			assert.Equal(t, tt.want, mailer.sender.name())
		})
	}
}

func TestSend_DefaultsFromAndRequiresRecipient(t *testing.T) {
	fake := &fakeMailjet{status: "success"}
	mailer := &mailerImpl{
		from:   Address{Email: "no-reply@arabianadventure.com", Name: "Arabian Adventure"},
		sender: &mailjetSender{client: fake},
		otel:   mocks.NewOtel(),
	}

	require.NoError(t, mailer.Send(context.Background(), sample()))

	info := fake.got.Info[0]
	assert.Equal(t, "no-reply@arabianadventure.com", info.From.Email)
	assert.Equal(t, "Arabian Adventure", info.From.Name)
	assert.Equal(t, "guest@example.com", (*info.To)[0].Email)
	assert.Equal(t, "Booking Confirmation - Arabian Adventure", info.Subject)
	assert.Equal(t, "<p>Thanks</p>", info.HTMLPart)
	assert.Equal(t, "Thanks", info.TextPart)

	err := mailer.Send(context.Background(), Message{Subject: "no one"})
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestMailjetSender_Failures(t *testing.T) {
	sender := &mailjetSender{client: &fakeMailjet{status: "error"}}
	err := sender.send(context.Background(), sample())
	assert.ErrorIs(t, err, ErrSendFailed)

	sender = &mailjetSender{client: &fakeMailjet{err: errors.New("401 unauthorized")}}
	err = sender.send(context.Background(), sample())
	assert.ErrorContains(t, err, "401 unauthorized")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = sender.send(ctx, sample())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSMTPSender(t *testing.T) {
	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotBody string
	)

	sender := newSMTPSender("smtp.example.com", "587", "user", "pass")
	sender.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotBody = addr, from, to, string(msg)

		return nil
	}

	msg := sample()
	msg.From = Address{Email: "no-reply@arabianadventure.com", Name: "Arabian Adventure"}

	require.NoError(t, sender.send(context.Background(), msg))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "no-reply@arabianadventure.com", gotFrom)
	assert.Equal(t, []string{"guest@example.com"}, gotTo)
	assert.Contains(t, gotBody, "Content-Type: text/html")
	assert.Contains(t, gotBody, "<p>Thanks</p>")

	sender.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}
	assert.ErrorContains(t, sender.send(context.Background(), msg), "connection refused")
}

func TestBuildMIME(t *testing.T) {
	msg := sample()
	msg.From = Address{Email: "no-reply@arabianadventure.com", Name: "Arabian Adventure"}

	body := string(buildMIME(msg, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)))

	assert.Contains(t, body, "From: \"Arabian Adventure\" <no-reply@arabianadventure.com>\r\n")
	assert.Contains(t, body, "To: \"Guest\" <guest@example.com>\r\n")
	assert.Contains(t, body, "Subject: Booking Confirmation - Arabian Adventure\r\n")
	assert.Contains(t, body, "Date: Thu, 02 Jan 2025 03:04:05 +0000\r\n")
	assert.True(t, strings.HasSuffix(body, "--"+mimeBoundary+"--\r\n"))
	assert.Less(t, strings.Index(body, "text/plain"), strings.Index(body, "text/html"))
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, newLogSender().send(context.Background(), sample()))
}
