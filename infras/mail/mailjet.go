package mail

import (
	"context"
	"fmt"

	"github.com/mailjet/mailjet-apiv3-go"
)

type mailjetClient interface {
	SendMailV31(data *mailjet.MessagesV31) (*mailjet.ResultsV31, error)
}

type mailjetSender struct {
	client mailjetClient
}

func newMailjetSender(publicKey, privateKey string) *mailjetSender {
	return &mailjetSender{client: mailjet.NewMailjetClient(publicKey, privateKey)}
}

func (s *mailjetSender) name() string {
	return DriverMailjet
}

func (s *mailjetSender) send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	result, err := s.client.SendMailV31(toMailjet(msg))
	if err != nil {
		return fmt.Errorf("mailjet: %w", err)
	}

	for _, res := range result.ResultsV31 {
		if res.Status != "success" {
			return fmt.Errorf("%w: mailjet status %s", ErrSendFailed, res.Status)
		}
	}

	return nil
}

func toMailjet(msg Message) *mailjet.MessagesV31 {
	return &mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: msg.From.Email,
					Name:  msg.From.Name,
				},
				To: &mailjet.RecipientsV31{
					mailjet.RecipientV31{
						Email: msg.To.Email,
						Name:  msg.To.Name,
					},
				},
				Subject:  msg.Subject,
				TextPart: msg.Text,
				HTMLPart: msg.HTML,
			},
		},
	}
}
