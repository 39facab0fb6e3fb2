package event_test

import (
	"context"
	"errors"
	"testing"

	"tourbook/config"
	"tourbook/infras/kafka"
	kafkaMocks "tourbook/infras/kafka/mocks"
	"tourbook/infras/otel/mocks"
	"tourbook/internal/domains/notification/model"
	notificationMocks "tourbook/internal/domains/notification/service/mocks"
	"tourbook/transport/event"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newConsumer(t *testing.T) (*event.Consumer, *kafkaMocks.MockClient, *notificationMocks.MockNotification) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "tourbook-notification"
	cfg.Kafka.Topic.Notification = "tourbook.notification"
	cfg.Worker.TaskTimeoutSeconds = 5

	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	notification := notificationMocks.NewMockNotification(ctrl)

	return event.New(cfg, client, notification, mocks.NewOtel()), client, notification
}

func encode(t *testing.T, evt model.Event) kafkaGo.Message {
	t.Helper()

	msg, err := (&kafka.Message{Key: evt.Key(), Value: evt}).ToKafkaMessage("tourbook.notification")
	require.NoError(t, err)

	return msg
}

func TestConsumer_Run(t *testing.T) {
	consumer, client, notification := newConsumer(t)

	evt := model.Event{
		Kind:    model.KindBookingStatusChanged,
		Booking: &model.BookingSnapshot{ID: "booking-1", CustomerEmail: "guest@example.com"},
		Status:  "cancelled",
		Remarks: "customer request",
	}

	notification.EXPECT().Deliver(gomock.Any(), evt).
		DoAndReturn(func(ctx context.Context, _ model.Event) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)

			return nil
		})

	client.EXPECT().Consume(gomock.Any(), "tourbook-notification", "tourbook.notification", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string, handler kafka.Handler) {
			assert.NoError(t, handler(ctx, encode(t, evt)))
		})

	consumer.Run(context.Background())
}

func TestConsumer_DeliveryFailure(t *testing.T) {
	consumer, client, notification := newConsumer(t)

	notification.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(errors.New("smtp unavailable"))

	client.EXPECT().Consume(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string, handler kafka.Handler) {
			err := handler(ctx, encode(t, model.Event{Kind: model.KindContactReplied, Contact: &model.ContactReply{Email: "a@example.com"}}))
			assert.Error(t, err)

			assert.Error(t, handler(ctx, kafkaGo.Message{Value: []byte("not json")}))
		})

	consumer.Run(context.Background())
}

func TestConsumer_Close(t *testing.T) {
	consumer, client, _ := newConsumer(t)

	client.EXPECT().Close().Return(nil)

	consumer.Close(context.Background())
}
