// Package event runs the Kafka side of notification delivery: events published
// by the API are read here and handed to the notification service.
package event

import (
	"context"
	"time"

	"tourbook/config"
	"tourbook/infras/kafka"
	"tourbook/infras/otel"
	"tourbook/internal/domains/notification/service"
	"tourbook/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type Consumer struct {
	config       *config.Config
	client       kafka.Client
	notification service.Notification
	otel         otel.Otel
}

func New(cfg *config.Config, client kafka.Client, notification service.Notification, otel otel.Otel) *Consumer {
	return &Consumer{
		config:       cfg,
		client:       client,
		notification: notification,
		otel:         otel,
	}
}

// Run blocks until ctx ends. Each message gets the worker task timeout.
func (c *Consumer) Run(ctx context.Context) {
	topic := c.config.Kafka.Topic.Notification

	log.Info().Str("topic", topic).Str("group", c.config.Kafka.ConsumerGroup).Msg("Starting notification consumer")

	c.client.Consume(ctx, c.config.Kafka.ConsumerGroup, topic, c.handle(service.Handler(c.notification)))
}

func (c *Consumer) handle(next kafka.Handler) kafka.Handler {
	timeout := time.Duration(c.config.Worker.TaskTimeoutSeconds) * time.Second

	return func(ctx context.Context, message kafkaGo.Message) (err error) {
		ctx, scope := c.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".Consume")
		defer scope.End()
		defer scope.TraceIfError(err)

		scope.SetAttributes(map[string]any{
			"messaging.destination": message.Topic,
			"messaging.key":         string(message.Key),
		})

		if timeout > 0 {
			var cancel context.CancelFunc

			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		return next(ctx, message)
	}
}

// Close releases the Kafka client and flushes traces.
func (c *Consumer) Close(ctx context.Context) {
	if err := c.client.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close kafka client")
	}

	if err := c.otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to flush traces")
	}
}
