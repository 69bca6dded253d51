package models

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrChatNotFound       = errors.New("chat not found")
	ErrInvalidToken       = errors.New("invalid token")

	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrNoCompanies     = errors.New("no companies to ingest")
	ErrInvalidCompany  = errors.New("invalid company")

	ErrLLMDisabled         = errors.New("llm is not configured")
	ErrVectorStoreDisabled = errors.New("vector store is not configured")
)
