package kafka

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(context.Background(), nil)
	assert.Error(t, err)

	_, err = NewProducer(context.Background(), &ProducerConfig{})
	assert.Error(t, err)
}

func TestToRecord(t *testing.T) {
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rec := toRecord(&Message{
		Topic:     "cage-booking-events",
		Key:       []byte("cage-1"),
		Value:     []byte(`{}`),
		Headers:   map[string]string{"event_type": "cage.booked"},
		Timestamp: ts,
	})

	assert.Equal(t, "cage-booking-events", rec.Topic)
	assert.Equal(t, []byte("cage-1"), rec.Key)
	assert.Equal(t, ts, rec.Timestamp)
	require.Len(t, rec.Headers, 1)
	assert.Equal(t, "event_type", rec.Headers[0].Key)
	assert.Equal(t, []byte("cage.booked"), rec.Headers[0].Value)
}

// Integration tests - require Kafka to be running

func TestProducer_Integration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run")
	}

	brokers := "localhost:9092"
	if b := os.Getenv("TEST_KAFKA_BROKERS"); b != "" {
		brokers = b
	}

	ctx := context.Background()
	p, err := NewProducer(ctx, &ProducerConfig{Brokers: strings.Split(brokers, ","), ClientID: "snake-bnb-test"})
	require.NoError(t, err)
	defer p.Close()

	err = p.Produce(ctx, &Message{Topic: "snake-bnb-test", Key: []byte("k"), Value: []byte("v"), Timestamp: time.Now()})
	assert.NoError(t, err)
}
