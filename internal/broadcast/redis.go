package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBroadcaster publishes events over Redis pub/sub.
type RedisBroadcaster struct {
	client *redis.Client
}

// NewRedisBroadcaster connects to Redis and verifies the connection.
func NewRedisBroadcaster(ctx context.Context, addr, password string, db int) (*RedisBroadcaster, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisBroadcaster{client: client}, nil
}

// envelope is the wire shape of a published event.
type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Publish sends one event to one channel. Subscribers receive a JSON
// envelope {event, payload}.
func (b *RedisBroadcaster) Publish(ctx context.Context, channel, event string, payload any) error {
	msg, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal broadcast payload: %w", err)
	}
	if err := b.client.Publish(ctx, channel, msg).Err(); err != nil {
		return fmt.Errorf("publish to %q: %w", channel, err)
	}
	return nil
}

// Subscribe opens a raw subscription, used by tests and debugging tools.
func (b *RedisBroadcaster) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return b.client.Subscribe(ctx, channel)
}

// Close releases the Redis connection.
func (b *RedisBroadcaster) Close() error {
	return b.client.Close()
}

var _ Broadcaster = (*RedisBroadcaster)(nil)
