package ws

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go-campus-events/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// Relay publishes notifications through a Redis channel so that every API
// instance subscribed to it hands them to its own hub.
type Relay struct {
	client  *redis.Client
	channel string
	hub     *Hub
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewRedisClient connects to addr and pings it.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ws: redis ping: %w", err)
	}
	return client, nil
}

func NewRelay(client *redis.Client, channel string, hub *Hub, log *slog.Logger, m *metrics.Metrics) *Relay {
	return &Relay{client: client, channel: channel, hub: hub, log: log, metrics: m}
}

// Publish sends payload to the Redis channel.
func (r *Relay) Publish(ctx context.Context, payload []byte) error {
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("ws: publish: %w", err)
	}
	r.metrics.NotificationSent("redis")
	return nil
}

// Listen subscribes to the channel and forwards every message to the local
// hub. It returns once the subscription is confirmed; delivery continues in
// the background until ctx is done.
func (r *Relay) Listen(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("ws: subscribe %s: %w", r.channel, err)
	}
	go func() {
		defer func() { _ = pubsub.Close() }()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case r.hub.broadcast <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	r.log.Info("notification relay subscribed", "channel", r.channel)
	return nil
}
