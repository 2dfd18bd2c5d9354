package mypubsub

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/MarcGrol/productcomposite/lib/myhttpclient"
	"github.com/MarcGrol/productcomposite/lib/myuuid"
)

// InMemoryPubSub keeps every published message and pushes it asynchronously to the subscribed urls.
type InMemoryPubSub struct {
	sync.Mutex
	sender        myhttpclient.HTTPSender
	uuider        myuuid.UUIDer
	topics        map[string]bool
	subscriptions map[string][]string
	published     map[string][]string
	inFlight      sync.WaitGroup
}

func NewInMemoryPubSub(sender myhttpclient.HTTPSender, uuider myuuid.UUIDer) *InMemoryPubSub {
	return &InMemoryPubSub{
		sender:        sender,
		uuider:        uuider,
		topics:        map[string]bool{},
		subscriptions: map[string][]string{},
		published:     map[string][]string{},
	}
}

func (ps *InMemoryPubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.topics[topic] = true

	return nil
}

func (ps *InMemoryPubSub) Subscribe(c context.Context, topic string, urlToPostTo string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.topics[topic] = true
	for _, existing := range ps.subscriptions[topic] {
		if existing == urlToPostTo {
			return nil
		}
	}
	ps.subscriptions[topic] = append(ps.subscriptions[topic], urlToPostTo)

	log.Printf("*** Subscribed %s to topic %s", urlToPostTo, topic)

	return nil
}

func (ps *InMemoryPubSub) Publish(c context.Context, topic string, data string) error {
	ps.Lock()
	ps.topics[topic] = true
	ps.published[topic] = append(ps.published[topic], data)
	subscribers := append([]string{}, ps.subscriptions[topic]...)
	ps.Unlock()

	if ps.sender == nil {
		return nil
	}

	messageID := ps.uuider.Create()
	for _, url := range subscribers {
		ps.inFlight.Add(1)
		go func(url string) {
			defer ps.inFlight.Done()
			ps.deliver(context.WithoutCancel(c), topic, url, messageID, data)
		}(url)
	}

	return nil
}

func (ps *InMemoryPubSub) deliver(c context.Context, topic string, url string, messageID string, data string) {
	for attempt := 1; attempt <= maxDeliveryAttempts; attempt++ {
		err := push(c, ps.sender, topic, url, messageID, []byte(data))
		if err == nil {
			return
		}
		log.Printf("Delivery %d of %d of message %s on topic %s failed: %s", attempt, maxDeliveryAttempts, messageID, topic, err)
		time.Sleep(redeliveryDelay)
	}
	log.Printf("Dropped message %s on topic %s after %d attempts", messageID, topic, maxDeliveryAttempts)
}

// Published returns the messages published on topic in publication order.
func (ps *InMemoryPubSub) Published(topic string) []string {
	ps.Lock()
	defer ps.Unlock()

	return append([]string{}, ps.published[topic]...)
}

// Subscriptions returns the urls subscribed to topic.
func (ps *InMemoryPubSub) Subscriptions(topic string) []string {
	ps.Lock()
	defer ps.Unlock()

	return append([]string{}, ps.subscriptions[topic]...)
}

// Wait blocks until every pending delivery has completed.
func (ps *InMemoryPubSub) Wait() {
	ps.inFlight.Wait()
}
