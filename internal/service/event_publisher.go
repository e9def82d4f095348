package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/VB6Enjoyer/snakebnb/internal/domain"
	"github.com/VB6Enjoyer/snakebnb/pkg/kafka"
	"github.com/VB6Enjoyer/snakebnb/pkg/telemetry"
	"github.com/google/uuid"
)

// EventPublisher defines the interface for publishing cage events
type EventPublisher interface {
	// PublishCageBooked publishes a reservation of window on cage
	PublishCageBooked(ctx context.Context, cage *domain.Cage, window domain.Booking) error

	// PublishAvailabilityAdded publishes a new open window on cage
	PublishAvailabilityAdded(ctx context.Context, cage *domain.Cage, window domain.Booking) error

	// Close closes the event publisher
	Close() error
}

// MessageProducer is the part of kafka.Producer the publisher needs
type MessageProducer interface {
	Produce(ctx context.Context, msg *kafka.Message) error
	Close()
}

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer    MessageProducer
	topic       string
	serviceName string
}

// EventPublisherConfig contains configuration for the event publisher
type EventPublisherConfig struct {
	Topic       string
	ServiceName string
}

// NewKafkaEventPublisher creates a publisher writing to cfg.Topic through producer
func NewKafkaEventPublisher(producer MessageProducer, cfg *EventPublisherConfig) (*KafkaEventPublisher, error) {
	if producer == nil {
		return nil, errors.New("kafka producer is required")
	}

	topic := "cage-booking-events"
	serviceName := "snake-bnb"
	if cfg != nil {
		if cfg.Topic != "" {
			topic = cfg.Topic
		}
		if cfg.ServiceName != "" {
			serviceName = cfg.ServiceName
		}
	}

	return &KafkaEventPublisher{
		producer:    producer,
		topic:       topic,
		serviceName: serviceName,
	}, nil
}

// PublishCageBooked publishes a cage.booked event
func (p *KafkaEventPublisher) PublishCageBooked(ctx context.Context, cage *domain.Cage, window domain.Booking) error {
	return p.publish(ctx, domain.CageEventBooked, cage, window)
}

// PublishAvailabilityAdded publishes a cage.availability_added event
func (p *KafkaEventPublisher) PublishAvailabilityAdded(ctx context.Context, cage *domain.Cage, window domain.Booking) error {
	return p.publish(ctx, domain.CageEventAvailabilityAdded, cage, window)
}

// Close closes the event publisher
func (p *KafkaEventPublisher) Close() error {
	p.producer.Close()
	return nil
}

func (p *KafkaEventPublisher) publish(ctx context.Context, eventType domain.CageEventType, cage *domain.Cage, window domain.Booking) error {
	now := time.Now().UTC()
	event := domain.NewCageEvent(eventType, uuid.New().String(), cage, window, now)

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	headers := telemetry.InjectHeaders(ctx)
	headers["event_type"] = string(eventType)
	headers["event_id"] = event.EventID
	headers["source"] = p.serviceName
	headers["content_type"] = "application/json"

	msg := &kafka.Message{
		Topic:     p.topic,
		Key:       []byte(event.Key()),
		Value:     value,
		Headers:   headers,
		Timestamp: now,
	}

	if err := p.producer.Produce(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

// NoOpEventPublisher is used when Kafka is disabled
type NoOpEventPublisher struct{}

// NewNoOpEventPublisher creates a new no-op event publisher
func NewNoOpEventPublisher() *NoOpEventPublisher {
	return &NoOpEventPublisher{}
}

func (p *NoOpEventPublisher) PublishCageBooked(ctx context.Context, cage *domain.Cage, window domain.Booking) error {
	return nil
}

func (p *NoOpEventPublisher) PublishAvailabilityAdded(ctx context.Context, cage *domain.Cage, window domain.Booking) error {
	return nil
}

func (p *NoOpEventPublisher) Close() error {
	return nil
}
