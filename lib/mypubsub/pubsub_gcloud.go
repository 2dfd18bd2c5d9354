package mypubsub

import (
	"context"
	"fmt"
	"log"
	"sync"

	"cloud.google.com/go/pubsub"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type gcloudPubSub struct {
	sync.Mutex
	client *pubsub.Client
	topics map[string]*pubsub.Topic
}

func newGcloudPubSub(c context.Context, projectID string) (PubSub, func(), error) {
	client, err := pubsub.NewClient(c, projectID)
	if err != nil {
		return nil, func() {}, fmt.Errorf("error creating pubsub-client: %w", err)
	}
	ps := &gcloudPubSub{
		client: client,
		topics: map[string]*pubsub.Topic{},
	}
	return ps, func() {
		ps.Lock()
		for _, t := range ps.topics {
			t.Stop()
		}
		ps.Unlock()
		client.Close()
	}, nil
}

func subscriptionName(topicName string, urlToPostTo string) string {
	return fmt.Sprintf("%s-%x", topicName, checksum(urlToPostTo))
}

func (ps *gcloudPubSub) Subscribe(c context.Context, topicName string, urlToPostTo string) error {
	err := ps.CreateTopic(c, topicName)
	if err != nil {
		return err
	}

	_, err = ps.client.CreateSubscription(c, subscriptionName(topicName, urlToPostTo), pubsub.SubscriptionConfig{
		Topic: ps.topic(topicName),
		PushConfig: pubsub.PushConfig{
			Endpoint: urlToPostTo,
		},
		RetryPolicy: &pubsub.RetryPolicy{
			MinimumBackoff: redeliveryDelay,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("error subscribing %s to topic %s: %w", urlToPostTo, topicName, err)
	}

	log.Printf("*** Subscribed %s to topic %s", urlToPostTo, topicName)

	return nil
}

func (ps *gcloudPubSub) CreateTopic(c context.Context, topicName string) error {
	topic := ps.topic(topicName)
	exists, err := topic.Exists(c)
	if err != nil {
		return fmt.Errorf("error checking if topic %s exists: %w", topicName, err)
	}

	if exists {
		return nil
	}

	_, err = ps.client.CreateTopic(c, topicName)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("error creating topic %s: %w", topicName, err)
	}

	log.Printf("*** Created topic %s", topicName)

	return nil
}

func (ps *gcloudPubSub) topic(topicName string) *pubsub.Topic {
	ps.Lock()
	defer ps.Unlock()

	topic, found := ps.topics[topicName]
	if !found {
		topic = ps.client.Topic(topicName)
		ps.topics[topicName] = topic
	}
	return topic
}

func (ps *gcloudPubSub) Publish(c context.Context, topicName string, data string) error {
	_, err := ps.topic(topicName).Publish(c, &pubsub.Message{Data: []byte(data)}).Get(c)
	if err != nil {
		return fmt.Errorf("error publishing event on topic %s: %w", topicName, err)
	}

	return nil
}
