package coreevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
	"github.com/MarcGrol/productcomposite/lib/myevents"
)

type EventService interface {
	Subscribe(c context.Context) error
	OnCreate(c context.Context, topic string, event Event) error
	OnDelete(c context.Context, topic string, event Event) error
}

func DispatchEvent(c context.Context, reader io.Reader, service EventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewBadRequestError(err)
	}

	event := Event{}
	err = json.Unmarshal([]byte(envelope.EventPayload), &event)
	if err != nil {
		return myerrors.NewBadRequestError(err)
	}
	event.EventCreatedAt = envelope.CreatedAt

	switch event.Type {
	case Create:
		return service.OnCreate(c, envelope.Topic, event)
	case Delete:
		return service.OnDelete(c, envelope.Topic, event)
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("event type %q", envelope.EventTypeName))
	}
}
