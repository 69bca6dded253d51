package handlers

import (
	"context"

	"github.com/shubham-309/chatbot/internal/auth"
	"github.com/shubham-309/chatbot/internal/config"
	"github.com/shubham-309/chatbot/internal/ingest"
	"github.com/shubham-309/chatbot/internal/logger"
	"github.com/shubham-309/chatbot/internal/models"
	"github.com/shubham-309/chatbot/internal/store"
)

// Responder produces the assistant reply for one user turn.
type Responder interface {
	ProcessUserInput(ctx context.Context, query string, history []models.HistoryEntry) (string, error)
}

// DocumentExtractor turns uploaded documents into candidate packages.
type DocumentExtractor interface {
	Process(ctx context.Context, files []ingest.File) (*ingest.Result, error)
}

// CompanyIngester indexes approved packages.
type CompanyIngester interface {
	Ingest(ctx context.Context, companies []models.CompanyInfo) (int, error)
}

// OAuthProvider runs the Google sign-in flow.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.GoogleUser, error)
}

// Deps groups everything the handlers need. Responder, Extractor, Ingester
// and Google may be nil when the matching integration is not configured.
type Deps struct {
	Config    *config.Config
	Logger    logger.Logger
	Users     *store.UserStore
	Chats     *store.ChatStore
	Tokens    *auth.TokenManager
	Google    OAuthProvider
	Responder Responder
	Extractor DocumentExtractor
	Ingester  CompanyIngester
}

// handler is the core struct with all dependencies
type handler struct {
	config    *config.Config
	logger    logger.Logger
	users     *store.UserStore
	chats     *store.ChatStore
	tokens    *auth.TokenManager
	google    OAuthProvider
	responder Responder
	extractor DocumentExtractor
	ingester  CompanyIngester
}

// NewHandler creates a new handler instance
func NewHandler(deps Deps) *handler {
	return &handler{
		config:    deps.Config,
		logger:    deps.Logger,
		users:     deps.Users,
		chats:     deps.Chats,
		tokens:    deps.Tokens,
		google:    deps.Google,
		responder: deps.Responder,
		extractor: deps.Extractor,
		ingester:  deps.Ingester,
	}
}
