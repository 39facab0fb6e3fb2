package mail

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const mimeBoundary = "tourbook-alternative"

type smtpSender struct {
	addr string
	host string
	auth smtp.Auth
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newSMTPSender(host, port, username, password string) *smtpSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &smtpSender{
		addr:     net.JoinHostPort(host, port),
		host:     host,
		auth:     auth,
		sendMail: smtp.SendMail,
	}
}

func (s *smtpSender) name() string {
	return DriverSMTP
}

func (s *smtpSender) send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	if err := s.sendMail(s.addr, s.auth, msg.From.Email, []string{msg.To.Email}, buildMIME(msg, time.Now())); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}

	return nil
}

// buildMIME renders a multipart/alternative message with a plain text and an
// HTML part.
func buildMIME(msg Message, date time.Time) []byte {
	var buf bytes.Buffer

	header := func(key, value string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", key, value)
	}

	header("From", msg.From.String())
	header("To", msg.To.String())
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date", date.Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mimeBoundary))
	buf.WriteString("\r\n")

	part := func(contentType, body string) {
		fmt.Fprintf(&buf, "--%s\r\n", mimeBoundary)
		fmt.Fprintf(&buf, "Content-Type: %s; charset=\"utf-8\"\r\n\r\n", contentType)
		buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
		buf.WriteString("\r\n")
	}

	if msg.Text != "" {
		part("text/plain", msg.Text)
	}

	part("text/html", msg.HTML)
	fmt.Fprintf(&buf, "--%s--\r\n", mimeBoundary)

	return buf.Bytes()
}
