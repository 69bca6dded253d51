package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shubham-309/chatbot/internal/logger"
	"github.com/shubham-309/chatbot/internal/models"
)

// ChatStore persists chats and their messages and keeps the history cache
// in step with the database.
type ChatStore struct {
	db     *gorm.DB
	cache  *HistoryCache
	logger logger.Logger
	now    func() time.Time
}

// NewChatStore creates a chat store. cache may be a disabled HistoryCache.
func NewChatStore(db *gorm.DB, cache *HistoryCache, logger logger.Logger) *ChatStore {
	return &ChatStore{db: db, cache: cache, logger: logger, now: time.Now}
}

// FindOrCreate returns the user's chat with the client chat id, creating it
// with the given name on first use. A chat id owned by another user yields
// models.ErrChatNotFound.
func (s *ChatStore) FindOrCreate(ctx context.Context, userID uint, chatID, name string) (*models.Chat, error) {
	var chat models.Chat
	err := s.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&chat).Error
	switch {
	case err == nil:
		if chat.UserID != userID {
			return nil, models.ErrChatNotFound
		}
		return &chat, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("failed to fetch chat: %w", err)
	}

	chat = models.Chat{
		ChatID: chatID,
		Name:   truncate(name, 255),
		UserID: userID,
	}
	if err := s.db.WithContext(ctx).Create(&chat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.FindForUser(ctx, userID, chatID)
		}
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	s.logger.Info("Created chat ", chat.ChatID, " for user ", userID)
	return &chat, nil
}

// FindForUser returns the user's chat or models.ErrChatNotFound.
func (s *ChatStore) FindForUser(ctx context.Context, userID uint, chatID string) (*models.Chat, error) {
	var chat models.Chat
	err := s.db.WithContext(ctx).Where("chat_id = ? AND user_id = ?", chatID, userID).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to fetch chat: %w", err)
	}
	return &chat, nil
}

// Latest returns a page of the user's chats, newest first.
func (s *ChatStore) Latest(ctx context.Context, userID uint, offset, limit int) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&chats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chats: %w", err)
	}
	return chats, nil
}

// AddMessage stores a message and appends it to the cached history.
func (s *ChatStore) AddMessage(ctx context.Context, chat *models.Chat, sender, content string) (*models.Message, error) {
	message := models.Message{
		ChatID:    chat.ID,
		Sender:    sender,
		Content:   content,
		Timestamp: s.now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	if err := s.cache.Append(ctx, chat.ID, message); err != nil {
		s.logger.Warn("Failed to cache message: ", err)
	}

	return &message, nil
}

// History returns the chat's messages in the order they were written,
// served from the cache when possible.
func (s *ChatStore) History(ctx context.Context, chat *models.Chat) ([]models.Message, error) {
	cached, err := s.cache.Get(ctx, chat.ID)
	if err != nil {
		s.logger.Warn("Failed to read cached history: ", err)
	}
	if len(cached) > 0 {
		return cached, nil
	}

	var messages []models.Message
	err = s.db.WithContext(ctx).
		Where("chat_id = ?", chat.ID).
		Order("timestamp ASC").
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	if err := s.cache.Store(ctx, chat.ID, messages); err != nil {
		s.logger.Warn("Failed to cache messages: ", err)
	}

	return messages, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
