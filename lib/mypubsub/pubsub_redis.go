package mypubsub

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MarcGrol/productcomposite/lib/myhttpclient"
)

const (
	redisDataField = "data"
	redisReadBlock = 5 * time.Second
	redisReadCount = 10
)

// redisPubSub maps a topic onto a stream and every push subscription onto a consumer group.
// A message is acknowledged once the subscriber accepted it or delivery was given up.
type redisPubSub struct {
	rdb      *goredis.Client
	sender   myhttpclient.HTTPSender
	consumer string
	stop     context.CancelFunc
	ctx      context.Context
	wg       sync.WaitGroup
}

func newRedisPubSub(c context.Context, addr string, sender myhttpclient.HTTPSender) (PubSub, func(), error) {
	if sender == nil {
		return nil, func() {}, fmt.Errorf("http sender required for redis push delivery")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(c, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, func() {}, fmt.Errorf("redis ping: %w", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "consumer"
	}

	ctx, stop := context.WithCancel(context.WithoutCancel(c))
	ps := &redisPubSub{
		rdb:      rdb,
		sender:   sender,
		consumer: hostname,
		stop:     stop,
		ctx:      ctx,
	}

	return ps, func() {
		ps.stop()
		ps.wg.Wait()
		_ = ps.rdb.Close()
	}, nil
}

func isBusyGroup(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP")
}

// CreateTopic is a no-op: streams come into existence on first publish or subscription.
func (ps *redisPubSub) CreateTopic(c context.Context, topic string) error {
	return nil
}

func (ps *redisPubSub) Subscribe(c context.Context, topic string, urlToPostTo string) error {
	err := ps.rdb.XGroupCreateMkStream(c, topic, urlToPostTo, "0").Err()
	if err != nil && !isBusyGroup(err) {
		return fmt.Errorf("error creating consumer group for %s on stream %s: %w", urlToPostTo, topic, err)
	}

	ps.wg.Add(1)
	go func() {
		defer ps.wg.Done()
		ps.consume(topic, urlToPostTo)
	}()

	log.Printf("*** Subscribed %s to stream %s", urlToPostTo, topic)

	return nil
}

func (ps *redisPubSub) Publish(c context.Context, topic string, data string) error {
	err := ps.rdb.XAdd(c, &goredis.XAddArgs{
		Stream: topic,
		Values: map[string]any{redisDataField: data},
	}).Err()
	if err != nil {
		return fmt.Errorf("error publishing event on stream %s: %w", topic, err)
	}

	return nil
}

func (ps *redisPubSub) consume(topic string, urlToPostTo string) {
	// Start with entries delivered to this consumer earlier but never acknowledged.
	cursor := "0"
	for ps.ctx.Err() == nil {
		streams, err := ps.rdb.XReadGroup(ps.ctx, &goredis.XReadGroupArgs{
			Group:    urlToPostTo,
			Consumer: ps.consumer,
			Streams:  []string{topic, cursor},
			Count:    redisReadCount,
			Block:    redisReadBlock,
		}).Result()
		if err != nil {
			if errors.Is(err, goredis.Nil) || ps.ctx.Err() != nil {
				continue
			}
			log.Printf("error reading stream %s for %s: %s", topic, urlToPostTo, err)
			time.Sleep(redeliveryDelay)
			continue
		}

		received := 0
		for _, stream := range streams {
			for _, msg := range stream.Messages {
				received++
				ps.deliver(topic, urlToPostTo, msg)
			}
		}
		if cursor == "0" && received == 0 {
			cursor = ">"
		}
	}
}

func (ps *redisPubSub) deliver(topic string, urlToPostTo string, msg goredis.XMessage) {
	data, _ := msg.Values[redisDataField].(string)

	for attempt := 1; attempt <= maxDeliveryAttempts; attempt++ {
		err := push(ps.ctx, ps.sender, topic, urlToPostTo, msg.ID, []byte(data))
		if err == nil {
			break
		}
		if ps.ctx.Err() != nil {
			// stays pending and is picked up again after restart
			return
		}
		log.Printf("Delivery %d of %d of message %s on stream %s failed: %s", attempt, maxDeliveryAttempts, msg.ID, topic, err)
		if attempt == maxDeliveryAttempts {
			log.Printf("Dropped message %s on stream %s after %d attempts", msg.ID, topic, maxDeliveryAttempts)
		}
		time.Sleep(redeliveryDelay)
	}

	err := ps.rdb.XAck(ps.ctx, topic, urlToPostTo, msg.ID).Err()
	if err != nil {
		log.Printf("error acknowledging message %s on stream %s: %s", msg.ID, topic, err)
	}
}
