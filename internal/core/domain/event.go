package domain

import "time"

// EventType names a published domain event.
type EventType string

const (
	EventShiftOpened    EventType = "shift.opened"
	EventShiftClosed    EventType = "shift.closed"
	EventAuditApproved  EventType = "audit.approved"
	EventAuditContested EventType = "audit.contested"
	EventBillsGenerated EventType = "bills.generated"
)

// Event is the envelope published to the event bus.
type Event struct {
	Type        EventType      `json:"type"`
	AggregateID string         `json:"aggregateId"`
	OccurredAt  time.Time      `json:"occurredAt"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}
