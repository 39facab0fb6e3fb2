package mail

import (
	"context"

	"github.com/rs/zerolog/log"
)

// logSender only records the envelope. It is the development transport.
type logSender struct{}

func newLogSender() *logSender {
	return &logSender{}
}

func (s *logSender) name() string {
	return DriverLog
}

func (s *logSender) send(_ context.Context, msg Message) error {
	log.Info().
		Str("from", msg.From.Email).
		Str("to", msg.To.Email).
		Str("subject", msg.Subject).
		Int("html_bytes", len(msg.HTML)).
		Msg("Mail not delivered, log driver active")

	return nil
}
