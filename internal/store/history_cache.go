package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/shubham-309/chatbot/internal/models"
)

// DefaultHistoryTTL is how long a chat's cached history lives after its
// last write.
const DefaultHistoryTTL = 24 * time.Hour

// HistoryCache keeps each chat's messages in a Redis list. A cache with a
// nil client is disabled and every call is a no-op.
type HistoryCache struct {
	client *redis.Client
	ttl    time.Duration

	// stale holds chats whose cached list may be missing a message. They
	// are served from the database until Store rewrites the list.
	mu    sync.Mutex
	stale map[uint]struct{}
}

// NewHistoryCache wraps a Redis client, which may be nil.
func NewHistoryCache(client *redis.Client, ttl time.Duration) *HistoryCache {
	if ttl <= 0 {
		ttl = DefaultHistoryTTL
	}
	return &HistoryCache{client: client, ttl: ttl, stale: make(map[uint]struct{})}
}

// Enabled reports whether a Redis client is attached.
func (c *HistoryCache) Enabled() bool {
	return c != nil && c.client != nil
}

// cachedMessage is the JSON form of a message inside the Redis list.
type cachedMessage struct {
	ID        uint      `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func toCached(msg models.Message) cachedMessage {
	return cachedMessage{ID: msg.ID, Sender: msg.Sender, Content: msg.Content, Timestamp: msg.Timestamp}
}

func historyKey(chatID uint) string {
	return fmt.Sprintf("chat:%d:messages", chatID)
}

// Append adds a message to an already cached history. A cold key is left
// alone so that a later read reloads the full history from the database.
func (c *HistoryCache) Append(ctx context.Context, chatID uint, msg models.Message) error {
	if !c.Enabled() {
		return nil
	}

	msgJSON, err := json.Marshal(toCached(msg))
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if c.isStale(chatID) {
		return c.Invalidate(ctx, chatID)
	}

	key := historyKey(chatID)
	msgPipe := c.client.Pipeline()
	msgPipe.RPushX(ctx, key, msgJSON)
	msgPipe.Expire(ctx, key, c.ttl)

	if _, err := msgPipe.Exec(ctx); err != nil {
		_ = c.Invalidate(ctx, chatID)
		return fmt.Errorf("failed to cache message: %w", err)
	}
	return nil
}

// Invalidate drops the cached history so the next read reloads it from the
// database. Until that reload succeeds the chat is treated as a miss.
func (c *HistoryCache) Invalidate(ctx context.Context, chatID uint) error {
	if !c.Enabled() {
		return nil
	}

	c.markStale(chatID)
	if err := c.client.Del(ctx, historyKey(chatID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached messages: %w", err)
	}
	return nil
}

func (c *HistoryCache) isStale(chatID uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.stale[chatID]
	return ok
}

func (c *HistoryCache) markStale(chatID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale[chatID] = struct{}{}
}

func (c *HistoryCache) clearStale(chatID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.stale, chatID)
}

// Get returns the cached history, or nil on a miss.
func (c *HistoryCache) Get(ctx context.Context, chatID uint) ([]models.Message, error) {
	if !c.Enabled() || c.isStale(chatID) {
		return nil, nil
	}

	cachedMsgs, err := c.client.LRange(ctx, historyKey(chatID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get messages from cache: %w", err)
	}

	messages := make([]models.Message, 0, len(cachedMsgs))
	for _, msgStr := range cachedMsgs {
		var msg cachedMessage
		if err := json.Unmarshal([]byte(msgStr), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		messages = append(messages, models.Message{
			ID:        msg.ID,
			ChatID:    chatID,
			Sender:    msg.Sender,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		})
	}
	return messages, nil
}

// Store replaces the cached history with messages.
func (c *HistoryCache) Store(ctx context.Context, chatID uint, messages []models.Message) error {
	if !c.Enabled() || len(messages) == 0 {
		return nil
	}

	key := historyKey(chatID)
	msgPipe := c.client.TxPipeline()
	msgPipe.Del(ctx, key)
	for _, msg := range messages {
		msgJSON, err := json.Marshal(toCached(msg))
		if err != nil {
			return fmt.Errorf("failed to marshal message: %w", err)
		}
		msgPipe.RPush(ctx, key, msgJSON)
	}
	msgPipe.Expire(ctx, key, c.ttl)

	if _, err := msgPipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache messages: %w", err)
	}
	c.clearStale(chatID)
	return nil
}
