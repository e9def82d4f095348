package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/pkg/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProducer is a mock implementation of MessageProducer
type MockProducer struct {
	ProduceFunc func(ctx context.Context, msg *kafka.Message) error
	messages    []*kafka.Message
	closed      bool
}

func (m *MockProducer) Produce(ctx context.Context, msg *kafka.Message) error {
	m.messages = append(m.messages, msg)
	if m.ProduceFunc != nil {
		return m.ProduceFunc(ctx, msg)
	}
	return nil
}

func (m *MockProducer) Close() {
	m.closed = true
}

func TestNewKafkaEventPublisher(t *testing.T) {
	_, err := NewKafkaEventPublisher(nil, nil)
	assert.Error(t, err)

	p, err := NewKafkaEventPublisher(&MockProducer{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "cage-booking-events", p.topic)
	assert.Equal(t, "snake-bnb", p.serviceName)

	p, err = NewKafkaEventPublisher(&MockProducer{}, &EventPublisherConfig{Topic: "t", ServiceName: "s"})
	require.NoError(t, err)
	assert.Equal(t, "t", p.topic)
	assert.Equal(t, "s", p.serviceName)
}

func TestKafkaEventPublisher_PublishCageBooked(t *testing.T) {
	producer := &MockProducer{}
	p, err := NewKafkaEventPublisher(producer, &EventPublisherConfig{Topic: "cages"})
	require.NoError(t, err)

	cage := &domain.Cage{ID: "cage-1", Name: "Palace", Price: 12.5}
	window := domain.Booking{GuestOwnerID: "o", GuestSnakeID: "s", CheckIn: day("2024-01-02"), CheckOut: day("2024-01-05")}

	require.NoError(t, p.PublishCageBooked(context.Background(), cage, window))
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, "cages", msg.Topic)
	assert.Equal(t, []byte("cage-1"), msg.Key)
	assert.Equal(t, "cage.booked", msg.Headers["event_type"])
	assert.Equal(t, "snake-bnb", msg.Headers["source"])
	assert.Equal(t, "application/json", msg.Headers["content_type"])
	assert.NotEmpty(t, msg.Headers["event_id"])

	var event domain.CageEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, msg.Headers["event_id"], event.EventID)
	assert.Equal(t, "Palace", event.CageName)
	assert.Equal(t, 12.5, event.Price)
	assert.Equal(t, "s", event.Window.GuestSnakeID)
}

func TestKafkaEventPublisher_PublishAvailabilityAdded(t *testing.T) {
	producer := &MockProducer{}
	p, err := NewKafkaEventPublisher(producer, nil)
	require.NoError(t, err)

	cage := &domain.Cage{ID: "cage-2"}
	require.NoError(t, p.PublishAvailabilityAdded(context.Background(), cage, domain.NewAvailability(day("2024-01-01"), 3)))
	require.Len(t, producer.messages, 1)
	assert.Equal(t, "cage.availability_added", producer.messages[0].Headers["event_type"])
}

func TestKafkaEventPublisher_ProduceError(t *testing.T) {
	producer := &MockProducer{ProduceFunc: func(ctx context.Context, msg *kafka.Message) error {
		return errors.New("broker down")
	}}
	p, err := NewKafkaEventPublisher(producer, nil)
	require.NoError(t, err)

	err = p.PublishCageBooked(context.Background(), &domain.Cage{ID: "c"}, domain.Booking{})
	assert.ErrorContains(t, err, "broker down")

	require.NoError(t, p.Close())
	assert.True(t, producer.closed)
}

func TestNoOpEventPublisher(t *testing.T) {
	p := NewNoOpEventPublisher()
	assert.NoError(t, p.PublishCageBooked(context.Background(), &domain.Cage{}, domain.Booking{}))
	assert.NoError(t, p.PublishAvailabilityAdded(context.Background(), &domain.Cage{}, domain.Booking{}))
	assert.NoError(t, p.Close())
}
