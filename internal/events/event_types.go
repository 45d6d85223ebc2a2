package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventJobCreated       EventType = "job_created"
	EventBidPlaced        EventType = "bid_placed"
	EventBidStatusChanged EventType = "bid_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// JobCreatedPayload payload.
type JobCreatedPayload struct {
	BuyerEmail string          `json:"buyer_email"`
	Category   domain.Category `json:"category"`
	JobTitle   string          `json:"job_title"`
}

// BidPlacedPayload payload.
type BidPlacedPayload struct {
	JobID       string  `json:"job_id"`
	SellerEmail string  `json:"seller_email"`
	BuyerEmail  string  `json:"buyer_email"`
	Price       float64 `json:"price"`
}

// BidStatusChangedPayload payload.
type BidStatusChangedPayload struct {
	NewStatus domain.BidStatus `json:"new_status"`
}

// NewJobCreated builds a job_created event for a freshly inserted job.
func NewJobCreated(jobID string, payload JobCreatedPayload) Event {
	return newEvent(EventJobCreated, jobID, payload)
}

// NewBidPlaced builds a bid_placed event for a freshly inserted bid.
func NewBidPlaced(bidID string, payload BidPlacedPayload) Event {
	return newEvent(EventBidPlaced, bidID, payload)
}

// NewBidStatusChanged builds a bid_status_changed event.
func NewBidStatusChanged(bidID string, payload BidStatusChangedPayload) Event {
	return newEvent(EventBidStatusChanged, bidID, payload)
}

func newEvent(eventType EventType, subject string, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}
