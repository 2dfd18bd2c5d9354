package mypubsub

import (
	"context"
	"time"

	"github.com/MarcGrol/productcomposite/lib/myhttpclient"
	"github.com/MarcGrol/productcomposite/lib/myuuid"
)

const (
	// maxDeliveryAttempts bounds redelivery by the self-hosted backends before a message is dropped.
	maxDeliveryAttempts = 3
	redeliveryDelay     = 200 * time.Millisecond
)

type PubSub interface {
	Publish(c context.Context, topic string, data string) error
	CreateTopic(c context.Context, topic string) error
	Subscribe(c context.Context, topic string, urlToPostTo string) error
}

type Options struct {
	// ProjectID selects Google Cloud Pub/Sub.
	ProjectID string
	// RedisAddr selects Redis Streams when no ProjectID is given.
	RedisAddr string
	// Sender pushes messages to subscribers of the self-hosted backends.
	Sender myhttpclient.HTTPSender
	UUIDer myuuid.UUIDer
}

func New(c context.Context, opts Options) (PubSub, func(), error) {
	if opts.UUIDer == nil {
		opts.UUIDer = myuuid.RealUUIDer{}
	}

	switch {
	case opts.ProjectID != "":
		return newGcloudPubSub(c, opts.ProjectID)
	case opts.RedisAddr != "":
		return newRedisPubSub(c, opts.RedisAddr, opts.Sender)
	default:
		ps := NewInMemoryPubSub(opts.Sender, opts.UUIDer)
		return ps, ps.Wait, nil
	}
}
