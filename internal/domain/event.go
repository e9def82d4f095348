package domain

import "time"

// CageEventType names a cage event published to Kafka
type CageEventType string

const (
	CageEventBooked            CageEventType = "cage.booked"
	CageEventAvailabilityAdded CageEventType = "cage.availability_added"
)

// CageEvent is the payload for cage events
type CageEvent struct {
	EventID    string        `json:"event_id"`
	EventType  CageEventType `json:"event_type"`
	OccurredAt time.Time     `json:"occurred_at"`
	CageID     string        `json:"cage_id"`
	CageName   string        `json:"cage_name"`
	Price      float64       `json:"price"`
	Window     Booking       `json:"window"`
}

// NewCageEvent builds an event for window on cage
func NewCageEvent(eventType CageEventType, eventID string, cage *Cage, window Booking, now time.Time) *CageEvent {
	return &CageEvent{
		EventID:    eventID,
		EventType:  eventType,
		OccurredAt: now,
		CageID:     cage.ID,
		CageName:   cage.Name,
		Price:      cage.Price,
		Window:     window,
	}
}

// Key partitions events by cage so a cage's events stay ordered
func (e *CageEvent) Key() string {
	return e.CageID
}
