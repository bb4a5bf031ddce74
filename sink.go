package main

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventSink receives a copy of every broadcast event. Publish is called from
// the game loop and must not block.
type EventSink interface {
	Publish(event string, payload any)
}

type nopSink struct{}

func (nopSink) Publish(string, any) {}

// RedisSink mirrors broadcast events onto a Redis pub/sub channel as JSON
// envelopes, for spectators and tooling outside the process.
type RedisSink struct {
	client  *redis.Client
	channel string
	codec   Codec
	queue   chan []byte
	dropped atomic.Uint64
	logger  Logger
}

// NewRedisSink creates a sink publishing to channel. Call Run to start delivering.
func NewRedisSink(client *redis.Client, channel string, logger Logger) *RedisSink {
	if logger == nil {
		logger = nopLogger{}
	}
	return &RedisSink{
		client:  client,
		channel: channel,
		codec:   jsonCodec{},
		queue:   make(chan []byte, SinkQueueSize),
		logger:  logger,
	}
}

// Publish encodes the event and queues it, dropping it when the queue is full.
func (s *RedisSink) Publish(event string, payload any) {
	data, err := s.codec.Encode(event, payload)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("encoding %s for redis: %v", event, err))
		return
	}
	select {
	case s.queue <- data:
	default:
		s.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded because Redis fell behind.
func (s *RedisSink) Dropped() uint64 {
	return s.dropped.Load()
}

// Ping checks the Redis connection.
func (s *RedisSink) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Run delivers queued events until ctx is cancelled.
func (s *RedisSink) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-s.queue:
			pubCtx, cancel := context.WithTimeout(ctx, time.Second)
			err := s.client.Publish(pubCtx, s.channel, data).Err()
			cancel()
			if err != nil {
				s.logger.Warning(fmt.Sprintf("publishing to %s: %v", s.channel, err))
			}
		}
	}
}
