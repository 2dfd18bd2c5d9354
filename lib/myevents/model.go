package myevents

import "time"

// EventEnvelope is what travels over the bus. UID identifies the content, so a re-emitted
// event carries the same UID as the first emission; CreatedAt is not part of it.
type EventEnvelope struct {
	UID           string
	CreatedAt     time.Time
	Topic         string
	AggregateUID  string
	EventTypeName string
	EventPayload  string `datastore:",noindex"`
}

func (e EventEnvelope) String() string {
	return e.Topic + "." + e.EventTypeName + "." + e.AggregateUID
}

// Event is implemented by every payload that can be enveloped. An event that also implements
// GetEventCreatedAt() time.Time keeps its own creation time in the envelope.
type Event interface {
	GetEventTypeName() string
	GetAggregateName() string
}
