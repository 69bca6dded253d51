package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shubham-309/chatbot/internal/api/middleware"
	"github.com/shubham-309/chatbot/internal/auth"
	"github.com/shubham-309/chatbot/internal/models"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 600
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handler) RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" || req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email, password, and username are required."})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("Failed to hash password: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, models.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists."})
			return
		}
		h.logger.Error("Failed to register user: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully."})
}

func (h *handler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Email and password are required"})
		return
	}

	user, err := h.users.ByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, models.ErrUserNotFound) {
			h.logger.Error("Failed to load user: ", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Invalid credentials"})
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Invalid credentials"})
		return
	}

	if !h.setAccessToken(c, user) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

func (h *handler) CurrentUserHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	user, err := h.users.ByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		h.logger.Error("Failed to load current user: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse()})
}

func (h *handler) LogoutHandler(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.config.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully."})
}

func (h *handler) GoogleLoginHandler(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Google login is not configured"})
		return
	}

	state, err := auth.NewState()
	if err != nil {
		h.logger.Error("Failed to create oauth state: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", h.config.CookieSecure, true)
	c.Redirect(http.StatusFound, h.google.AuthCodeURL(state))
}

func (h *handler) GoogleAuthorizedHandler(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Google login is not configured"})
		return
	}

	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.config.CookieSecure, true)

	if reason := c.Query("error"); reason != "" {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Access denied: " + reason})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Authorization code is required"})
		return
	}

	profile, err := h.google.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("Google sign-in failed: ", err)
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Google sign-in failed"})
		return
	}

	user, err := h.users.FirstOrCreateByEmail(c.Request.Context(), profile.Email, profile.Name)
	if err != nil {
		h.logger.Error("Failed to provision Google user: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	if !h.setAccessToken(c, user) {
		return
	}

	c.Redirect(http.StatusFound, strings.TrimRight(h.config.FrontendURL, "/")+"/chat")
}

// setAccessToken writes the JWT cookie. On failure it has already responded.
func (h *handler) setAccessToken(c *gin.Context, user *models.User) bool {
	token, err := h.tokens.Generate(user)
	if err != nil {
		h.logger.Error("Failed to generate token: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return false
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.AccessTokenCookie, token, int(h.tokens.TTL().Seconds()), "/", "", h.config.CookieSecure, true)
	return true
}
