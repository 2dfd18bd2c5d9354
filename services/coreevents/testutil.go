package coreevents

import (
	"encoding/json"

	"github.com/MarcGrol/productcomposite/lib/myevents"
)

// CreatePushMessage builds the body a push subscription posts for event, for use in handler tests.
func CreatePushMessage(topic string, event Event) string {
	eventBytes, _ := json.Marshal(event)
	envelope := myevents.EventEnvelope{
		UID:           "123",
		CreatedAt:     event.EventCreatedAt,
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(eventBytes),
	}
	envelopeBytes, _ := json.Marshal(envelope)

	reqBytes, _ := json.Marshal(myevents.NewPushRequest(topic, "m1", envelopeBytes))

	return string(reqBytes)
}
