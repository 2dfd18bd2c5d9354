package mypublisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/productcomposite/lib/myevents"
	"github.com/MarcGrol/productcomposite/lib/mylog"
	"github.com/MarcGrol/productcomposite/lib/mypubsub"
	"github.com/MarcGrol/productcomposite/lib/mytime"
)

type publisher struct {
	enveloper enveloper
	pubsub    mypubsub.PubSub
	logger    mylog.Logger
}

func New(pubsub mypubsub.PubSub, nower mytime.Nower) *publisher {
	return &publisher{
		enveloper: newEnveloper(nower),
		pubsub:    pubsub,
		logger:    mylog.New("publisher"),
	}
}

func (p *publisher) CreateTopic(c context.Context, topicName string) error {
	return p.pubsub.CreateTopic(c, topicName)
}

func (p *publisher) Publish(c context.Context, topic string, event myevents.Event) error {
	envelope, err := p.enveloper.do(topic, event)
	if err != nil {
		return fmt.Errorf("error creating envelope: %w", err)
	}

	jsonBytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("error serializing envelope %s: %w", envelope.UID, err)
	}

	err = p.pubsub.Publish(c, envelope.Topic, string(jsonBytes))
	if err != nil {
		return fmt.Errorf("error publishing envelope %s: %w", envelope.UID, err)
	}

	p.logger.Log(c, envelope.AggregateUID, mylog.SeverityInfo, "Published event %s (%s)", envelope.String(), envelope.UID)

	return nil
}
