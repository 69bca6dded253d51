package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shubham-309/chatbot/internal/logger"
	"github.com/shubham-309/chatbot/internal/models"
)

// UserLookup loads a user by id.
type UserLookup interface {
	ByID(ctx context.Context, id uint) (*models.User, error)
}

// AdminOnly lets through authenticated users whose e-mail passes isAdmin.
// It must run after AuthMiddleware.
func AdminOnly(users UserLookup, isAdmin func(email string) bool, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": `Missing cookie "access_token"`})
			return
		}

		user, err := users.ByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"msg": "User not found"})
				return
			}
			log.Error("Failed to load user for admin check: ", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
			return
		}

		if !isAdmin(user.Email) {
			log.Warn("Rejected admin request from user ", user.ID)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Admin access required"})
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}
