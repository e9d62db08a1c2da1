package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	pkgkafka "ordering/internal/pkg/kafka"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return w.err
}

func TestNewClient_ParsesBrokerList(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		brokers []string
		enabled bool
	}{
		{"empty", "", []string{}, false},
		{"single", "localhost:9092", []string{"localhost:9092"}, true},
		{"trims and skips blanks", " a:9092, ,b:9092 ", []string{"a:9092", "b:9092"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := pkgkafka.NewClient(tt.csv)
			assert.Equal(t, tt.brokers, c.Brokers)
			assert.Equal(t, tt.enabled, c.Enabled())
		})
	}
}

func TestNewWriter_HashesKeys(t *testing.T) {
	w := pkgkafka.NewClient("localhost:9092").NewWriter("payment-request")

	assert.Equal(t, "payment-request", w.Topic)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
}

func TestPublishJSON(t *testing.T) {
	w := &recordingWriter{}
	before := time.Now().UTC()

	err := pkgkafka.PublishJSON(context.Background(), w, "order-1", map[string]string{"status": "PENDING"})
	require.NoError(t, err)

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, []byte("order-1"), msg.Key)
	assert.JSONEq(t, `{"status":"PENDING"}`, string(msg.Value))
	assert.False(t, msg.Time.Before(before))
	assert.Equal(t, time.UTC, msg.Time.Location())
}

func TestPublishJSON_Errors(t *testing.T) {
	t.Run("unencodable payload", func(t *testing.T) {
		w := &recordingWriter{}
		err := pkgkafka.PublishJSON(context.Background(), w, "k", make(chan int))

		var unsupported *json.UnsupportedTypeError
		require.ErrorAs(t, err, &unsupported)
		assert.Empty(t, w.messages)
	})

	t.Run("writer failure", func(t *testing.T) {
		w := &recordingWriter{err: errors.New("broker down")}
		err := pkgkafka.PublishJSON(context.Background(), w, "k", struct{}{})
		require.EqualError(t, err, "broker down")
	})
}
