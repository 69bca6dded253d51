package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shubham-309/chatbot/internal/api/handlers"
	"github.com/shubham-309/chatbot/internal/api/middleware"
)

// SetupRouter builds the gin engine with every route of the service.
func SetupRouter(deps handlers.Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger))

	// Configure CORS middleware
	if origin := strings.TrimRight(deps.Config.FrontendURL, "/"); origin != "" {
		headers := cors.DefaultConfig()
		headers.AllowOrigins = []string{origin}
		headers.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		headers.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
		headers.ExposeHeaders = []string{"Content-Length"}
		headers.AllowCredentials = true
		r.Use(cors.New(headers))
	}

	handler := handlers.NewHandler(deps)
	authMiddleware := middleware.NewAuthMiddleware(deps.Tokens)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", handler.RegisterHandler)
		authGroup.POST("/login", handler.LoginHandler)
		authGroup.POST("/logout", handler.LogoutHandler)
		authGroup.GET("/current", authMiddleware.AuthMiddleware(), handler.CurrentUserHandler)
		authGroup.GET("/google_login", handler.GoogleLoginHandler)
		authGroup.GET("/google_login/authorized", handler.GoogleAuthorizedHandler)
	}

	chatbot := r.Group("/chatbot", authMiddleware.AuthMiddleware())
	{
		chatbot.POST("/ask", handler.AskHandler)
		chatbot.GET("/latest-chats", handler.LatestChatsHandler)
		chatbot.GET("/chat-history", handler.ChatHistoryHandler)
	}

	admin := r.Group("/admin",
		authMiddleware.AuthMiddleware(),
		middleware.AdminOnly(deps.Users, deps.Config.IsAdmin, deps.Logger),
	)
	{
		admin.POST("/documents/extract", handler.ExtractDocumentsHandler)
		admin.POST("/documents/ingest", handler.IngestCompaniesHandler)
	}

	return r
}
