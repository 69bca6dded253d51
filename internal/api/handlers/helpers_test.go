package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/shubham-309/chatbot/internal/api/middleware"
	"github.com/shubham-309/chatbot/internal/auth"
	"github.com/shubham-309/chatbot/internal/config"
	"github.com/shubham-309/chatbot/internal/models"
	"github.com/shubham-309/chatbot/internal/store"
	"github.com/shubham-309/chatbot/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDeps(t *testing.T) Deps {
	t.Helper()

	db := testutil.SetupTestDB(t)
	log, _ := testutil.SetupTestLogger(t)

	return Deps{
		Config: &config.Config{
			FrontendURL:  "http://localhost:3000",
			CookieSecure: true,
		},
		Logger: log,
		Users:  store.NewUserStore(db, log),
		Chats:  store.NewChatStore(db, store.NewHistoryCache(nil, store.DefaultHistoryTTL), log),
		Tokens: auth.NewTokenManager("test-secret", time.Hour),
	}
}

func createUser(t *testing.T, deps Deps, email, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{Email: email, Username: "tester", PasswordHash: hash}
	require.NoError(t, deps.Users.Create(context.Background(), user))
	return user
}

// asUser stands in for AuthMiddleware.
func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Next()
	}
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var r io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(v)
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
