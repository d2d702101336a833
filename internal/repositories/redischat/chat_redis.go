// Package redischat implements the chat repository on Redis: a sorted set
// per room for history (scored by the client timestamp) and pub/sub for live
// fan-out. Redis is the realtime tree here; it guarantees delivery to
// subscribers but not order, so consumers sort history by timestamp at read
// time.
package redischat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/class-union/union-server/internal/models"
	"github.com/class-union/union-server/internal/repositories"
)

// ErrNotConfigured is returned when no redis client was provided.
var ErrNotConfigured = errors.New("chat store not configured")

type ChatRedis struct {
	client *redis.Client
}

func NewChatRedis(client *redis.Client) repositories.ChatRepository {
	return &ChatRedis{client: client}
}

func historyKey(roomID string) string { return fmt.Sprintf("chats:%s:messages", roomID) }
func channelKey(roomID string) string { return fmt.Sprintf("chats:%s", roomID) }

func (c *ChatRedis) Append(ctx context.Context, msg *models.Message) error {
	if c.client == nil {
		return ErrNotConfigured
	}

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UnixMilli()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := c.client.ZAdd(ctx, historyKey(msg.RoomID), redis.Z{
		Score:  float64(msg.Timestamp),
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}

	if err := c.client.Publish(ctx, channelKey(msg.RoomID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

func (c *ChatRedis) History(ctx context.Context, roomID string, limit int64) ([]*models.Message, error) {
	if c.client == nil {
		return nil, ErrNotConfigured
	}

	// Sorted set range is ascending by score, so the oldest messages come
	// first; a positive limit keeps only the newest tail.
	start := int64(0)
	if limit > 0 {
		start = -limit
	}

	raw, err := c.client.ZRange(ctx, historyKey(roomID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	messages := make([]*models.Message, 0, len(raw))
	for _, item := range raw {
		var msg models.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		messages = append(messages, &msg)
	}

	return messages, nil
}

// Subscribe delivers live messages for a room. The subscription ends when ctx
// is cancelled or the returned cancel func runs; both tear down the redis
// subscription so delivery stops.
func (c *ChatRedis) Subscribe(ctx context.Context, roomID string) (<-chan *models.Message, func(), error) {
	if c.client == nil {
		return nil, nil, ErrNotConfigured
	}

	pubsub := c.client.Subscribe(ctx, channelKey(roomID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan *models.Message)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case payload, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				var msg models.Message
				if err := json.Unmarshal([]byte(payload.Payload), &msg); err != nil {
					continue
				}
				select {
				case out <- &msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	cancel := func() { _ = pubsub.Close() }
	return out, cancel, nil
}
