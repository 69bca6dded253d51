package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/shubham-309/chatbot/internal/logger"
	"github.com/shubham-309/chatbot/internal/models"
)

// UserStore persists users.
type UserStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewUserStore creates a gorm-backed user store.
func NewUserStore(db *gorm.DB, logger logger.Logger) *UserStore {
	return &UserStore{db: db, logger: logger}
}

// Create inserts a user. A duplicate e-mail yields models.ErrUserExists.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	user.Email = normalizeEmail(user.Email)

	if _, err := s.ByEmail(ctx, user.Email); err == nil {
		return models.ErrUserExists
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return err
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Created user with id ", user.ID)
	return nil
}

// ByEmail looks a user up by e-mail.
func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// ByID looks a user up by primary key.
func (s *UserStore) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// FirstOrCreateByEmail returns the user with the e-mail, creating an OAuth
// account with the given username when none exists.
func (s *UserStore) FirstOrCreateByEmail(ctx context.Context, email, username string) (*models.User, error) {
	user, err := s.ByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	user = &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: models.OAuthPasswordHash,
	}
	if err := s.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrUserExists) {
			// lost a race with a concurrent sign-in
			return s.ByEmail(ctx, email)
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
