package kafka_test

import (
	"testing"

	"tourbook/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Kind    string `json:"kind"`
	Remarks string `json:"remarks"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "booking-1", Value: payload{Kind: "booking_status_changed", Remarks: "customer request"}}

	encoded, err := msg.ToKafkaMessage("tourbook.notification")
	require.NoError(t, err)
	assert.Equal(t, "tourbook.notification", encoded.Topic)
	assert.Equal(t, []byte("booking-1"), encoded.Key)
	assert.JSONEq(t, `{"kind":"booking_status_changed","remarks":"customer request"}`, string(encoded.Value))

	decoded, err := kafka.Decode[payload](encoded)
	require.NoError(t, err)
	assert.Equal(t, "customer request", decoded.Remarks)
}

func TestToKafkaMessage_Unmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage("topic")
	assert.Error(t, err)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := kafka.Decode[payload](kafkaGo.Message{Value: []byte("not json")})
	assert.Error(t, err)
}
