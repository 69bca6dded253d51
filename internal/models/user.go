package models

import (
	"time"
)

// OAuthPasswordHash marks accounts created through Google sign-in.
// It never matches a bcrypt hash, so password login is impossible for them.
const OAuthPasswordHash = "oauth_login"

// User represents the user model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Username     string    `gorm:"size:150;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
	Chats        []Chat    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// ToResponse strips everything but the public fields.
func (u *User) ToResponse() UserResponse {
	return UserResponse{Email: u.Email, Username: u.Username}
}
