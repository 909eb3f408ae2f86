package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "worklog:records:"

// RedisBroker shares changes between processes through Redis pub/sub
type RedisBroker struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewRedisBroker creates a broker on an existing client
func NewRedisBroker(rdb *redis.Client, logger *zap.Logger) *RedisBroker {
	return &RedisBroker{rdb: rdb, logger: logger}
}

// DialRedis connects and verifies the server is reachable
func DialRedis(ctx context.Context, addr, password string, db int, logger *zap.Logger) (*RedisBroker, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}

	logger.Info("Redis sync enabled", zap.String("addr", addr))
	return NewRedisBroker(rdb, logger), nil
}

// ChannelFor returns the pub/sub channel for a client
func ChannelFor(clientID string) string {
	return channelPrefix + clientID
}

// Publish implements Broker
func (b *RedisBroker) Publish(ctx context.Context, change Change) error {
	if change.At.IsZero() {
		change.At = time.Now()
	}

	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to encode change: %w", err)
	}

	if err := b.rdb.Publish(ctx, ChannelFor(change.ClientID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change: %w", err)
	}
	return nil
}

// Subscribe implements Broker. The subscription is confirmed before return.
func (b *RedisBroker) Subscribe(ctx context.Context, clientID string) (<-chan Change, func(), error) {
	var pubsub *redis.PubSub
	if clientID == "" {
		pubsub = b.rdb.PSubscribe(ctx, channelPrefix+"*")
	} else {
		pubsub = b.rdb.Subscribe(ctx, ChannelFor(clientID))
	}

	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan Change, subscriberBuffer)
	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			pubsub.Close()
		})
	}

	go func() {
		defer close(out)
		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				cancel()
				return
			case <-done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var change Change
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					b.logger.Warn("Dropping malformed change",
						zap.String("channel", msg.Channel),
						zap.Error(err))
					continue
				}
				select {
				case out <- change:
				default:
				}
			}
		}
	}()

	return out, cancel, nil
}

// Close closes the Redis client
func (b *RedisBroker) Close() error {
	return b.rdb.Close()
}
