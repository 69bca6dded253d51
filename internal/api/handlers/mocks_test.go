package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shubham-309/chatbot/internal/auth"
	"github.com/shubham-309/chatbot/internal/ingest"
	"github.com/shubham-309/chatbot/internal/models"
)

type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) ProcessUserInput(ctx context.Context, query string, history []models.HistoryEntry) (string, error) {
	args := m.Called(ctx, query, history)
	return args.String(0), args.Error(1)
}

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Process(ctx context.Context, files []ingest.File) (*ingest.Result, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingest.Result), args.Error(1)
}

type MockIngester struct {
	mock.Mock
}

func (m *MockIngester) Ingest(ctx context.Context, companies []models.CompanyInfo) (int, error) {
	args := m.Called(ctx, companies)
	return args.Int(0), args.Error(1)
}

type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (*auth.GoogleUser, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.GoogleUser), args.Error(1)
}
