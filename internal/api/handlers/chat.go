package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/shubham-309/chatbot/internal/api/middleware"
	"github.com/shubham-309/chatbot/internal/models"
)

const (
	// ErrorReply is sent when the assistant could not produce an answer.
	ErrorReply = "I'm sorry, it seems some error occurred while generating the response."

	latestChatsPage = 5
	// matches the chat_id column size
	maxChatIDLength = 64
)

// AskRequest accepts chat_id as either a JSON string or number.
type AskRequest struct {
	ChatID  any    `json:"chat_id"`
	Message string `json:"message"`
}

func (r AskRequest) chatID() string {
	switch v := r.ChatID.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func (h *handler) AskHandler(c *gin.Context) {
	var req AskRequest
	_ = c.ShouldBindJSON(&req)
	chatID := req.chatID()
	if chatID == "" || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Chat ID and message are required"})
		return
	}
	if utf8.RuneCountInString(chatID) > maxChatIDLength {
		c.JSON(http.StatusBadRequest, gin.H{"msg": fmt.Sprintf("Chat ID must be at most %d characters", maxChatIDLength)})
		return
	}

	ctx := c.Request.Context()
	userID, _ := middleware.UserID(c)
	if _, err := h.users.ByID(ctx, userID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		h.logger.Error("Failed to load user: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	chat, err := h.chats.FindOrCreate(ctx, userID, chatID, req.Message)
	if err != nil {
		if errors.Is(err, models.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Chat not found for this user"})
			return
		}
		h.logger.Error("Failed to open chat: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	if _, err := h.chats.AddMessage(ctx, chat, models.SenderUser, req.Message); err != nil {
		h.logger.Error("Failed to save user message: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	messages, err := h.chats.History(ctx, chat)
	if err != nil {
		h.logger.Error("Failed to load chat history: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	history := make([]models.HistoryEntry, 0, len(messages))
	for _, m := range messages {
		history = append(history, m.ToHistoryEntry())
	}

	reply := h.reply(c, req.Message, history)

	if _, err := h.chats.AddMessage(ctx, chat, models.SenderAssistant, reply); err != nil {
		h.logger.Error("Failed to save assistant message: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}

func (h *handler) reply(c *gin.Context, query string, history []models.HistoryEntry) string {
	if h.responder == nil {
		h.logger.Error("Error generating response: ", models.ErrLLMDisabled)
		return ErrorReply
	}

	reply, err := h.responder.ProcessUserInput(c.Request.Context(), query, history)
	if err != nil {
		h.logger.Error("Error generating response: ", err)
		return ErrorReply
	}
	return reply
}

func (h *handler) LatestChatsHandler(c *gin.Context) {
	x, err := strconv.Atoi(c.DefaultQuery("x", strconv.Itoa(latestChatsPage)))
	if err != nil {
		x = latestChatsPage
	}
	offset := max(0, x-latestChatsPage)

	userID, _ := middleware.UserID(c)
	chats, err := h.chats.Latest(c.Request.Context(), userID, offset, latestChatsPage)
	if err != nil {
		h.logger.Error("Failed to list chats: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	summaries := make([]models.ChatSummary, 0, len(chats))
	for _, chat := range chats {
		summaries = append(summaries, models.ChatSummary{ChatID: chat.ChatID, Name: chat.Name})
	}

	c.JSON(http.StatusOK, gin.H{"latest_chats": summaries})
}

func (h *handler) ChatHistoryHandler(c *gin.Context) {
	chatID := strings.TrimSpace(c.Query("chat_id"))
	if chatID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Chat ID is required"})
		return
	}

	userID, _ := middleware.UserID(c)
	chat, err := h.chats.FindForUser(c.Request.Context(), userID, chatID)
	if err != nil {
		if errors.Is(err, models.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Chat not found for this user"})
			return
		}
		h.logger.Error("Failed to fetch chat: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}

	messages, err := h.chats.History(c.Request.Context(), chat)
	if err != nil {
		h.logger.Error("Failed to fetch chat history: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}

	c.JSON(http.StatusOK, gin.H{"chat_history": messages})
}
