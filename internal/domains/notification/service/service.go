//go:generate mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks
package service

import (
	"context"
	"fmt"
	"strings"

	"tourbook/config"
	"tourbook/infras/kafka"
	"tourbook/infras/mail"
	"tourbook/infras/otel"
	"tourbook/internal/domains/notification/content"
	"tourbook/internal/domains/notification/model"
	"tourbook/shared/constant"
	"tourbook/shared/worker"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	QueueMemory = "memory"
	QueueKafka  = "kafka"
)

// Notification hands events off without blocking the caller and delivers them
// later on a worker or a Kafka consumer.
type Notification interface {
	Dispatch(ctx context.Context, event model.Event)
	Deliver(ctx context.Context, event model.Event) error
}

type serviceImpl struct {
	queue    string
	topic    string
	brand    content.Brand
	mailer   mail.Mailer
	pool     worker.Submitter
	producer kafka.Client
	otel     otel.Otel
}

func New(cfg *config.Config, mailer mail.Mailer, pool worker.Submitter, producer kafka.Client, otel otel.Otel) Notification {
	queue := strings.ToLower(cfg.Notification.Queue)
	if queue == QueueKafka && producer == nil {
		log.Warn().Msg("Kafka producer unavailable, notifications fall back to the in-process queue")

		queue = QueueMemory
	}

	adminEmail := cfg.Mail.AdminEmail
	if adminEmail == "" {
		adminEmail = cfg.App.Brand.Email
	}

	return &serviceImpl{
		queue: queue,
		topic: cfg.Kafka.Topic.Notification,
		brand: content.Brand{
			Name:       cfg.App.Brand.Name,
			Color:      cfg.App.Brand.Color,
			Phone:      cfg.App.Brand.Phone,
			Email:      cfg.App.Brand.Email,
			AdminEmail: adminEmail,
		},
		mailer:   mailer,
		pool:     pool,
		producer: producer,
		otel:     otel,
	}
}

func (s *serviceImpl) Dispatch(ctx context.Context, event model.Event) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Dispatch")
	defer scope.End()

	scope.SetAttribute("kind", string(event.Kind))

	if s.queue == QueueKafka {
		c := context.WithoutCancel(ctx)

		if err := s.producer.SendMessages(c, s.topic, kafka.Message{Key: event.Key(), Value: event}); err != nil {
			log.Error().Err(err).Str("kind", string(event.Kind)).Msg("failed to publish notification")
		}

		return
	}

	if !s.pool.Submit(string(event.Kind), func(c context.Context) error {
		return s.Deliver(c, event)
	}) {
		log.Error().Str("kind", string(event.Kind)).Msg("notification queue is full, event dropped")
	}
}

func (s *serviceImpl) Deliver(ctx context.Context, event model.Event) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Deliver")
	defer scope.End()
	defer scope.TraceIfError(err)

	msg, send, err := content.Render(s.brand, event)
	if err != nil {
		log.Error().Err(err).Str("kind", string(event.Kind)).Msg("failed to render notification")

		return fmt.Errorf("failed to render notification: %w", err)
	}

	if !send {
		log.Debug().Str("kind", string(event.Kind)).Str("status", event.Status).Msg("notification skipped")

		return nil
	}

	if err = s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to deliver %s: %w", event.Kind, err)
	}

	return nil
}

// Handler adapts Deliver to a Kafka consumer.
func Handler(notification Notification) kafka.Handler {
	return func(ctx context.Context, message kafkaGo.Message) error {
		event, err := kafka.Decode[model.Event](message)
		if err != nil {
			return err
		}

		return notification.Deliver(ctx, event)
	}
}
