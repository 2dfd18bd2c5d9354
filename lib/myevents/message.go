package myevents

import (
	"encoding/json"
	"fmt"
	"io"
)

// PushRequest is the body posted to a push subscription endpoint.
type PushRequest struct {
	Message      PushMessage
	Subscription string
}

type PushMessage struct {
	Attributes map[string]string
	Data       []byte
	ID         string `json:"message_id"`
}

func ParseEventEnvelope(r io.Reader) (EventEnvelope, error) {
	msg := PushRequest{}
	err := json.NewDecoder(r).Decode(&msg)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("error parsing push-request: %w", err)
	}
	envlp := EventEnvelope{}
	err = json.Unmarshal(msg.Message.Data, &envlp)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("error parsing envelope: %w", err)
	}

	return envlp, nil
}

// NewPushRequest wraps an already serialized envelope the way a push subscription delivers it.
func NewPushRequest(subscription string, messageID string, envelopeData []byte) PushRequest {
	return PushRequest{
		Message: PushMessage{
			Data: envelopeData,
			ID:   messageID,
		},
		Subscription: subscription,
	}
}
