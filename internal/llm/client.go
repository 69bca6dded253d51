package llm

import (
	"context"
	"fmt"

	embeddingopenai "github.com/cloudwego/eino-ext/components/embedding/openai"
	modelopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"

	"github.com/shubham-309/chatbot/internal/config"
	"github.com/shubham-309/chatbot/internal/models"
)

// NewChatModel creates an OpenAI-compatible chat model. The temperature set
// here is the default; chains override it per call.
func NewChatModel(ctx context.Context, cfg *config.Config) (model.BaseChatModel, error) {
	if !cfg.LLMEnabled() {
		return nil, models.ErrLLMDisabled
	}

	temperature := float32(0)
	chatModel, err := modelopenai.NewChatModel(ctx, &modelopenai.ChatModelConfig{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.OpenAIChatModel,
		Timeout:     cfg.OpenAITimeout,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return chatModel, nil
}

// NewEmbedder creates an OpenAI embedding client.
func NewEmbedder(ctx context.Context, cfg *config.Config) (embedding.Embedder, error) {
	if !cfg.LLMEnabled() {
		return nil, models.ErrLLMDisabled
	}

	embedder, err := embeddingopenai.NewEmbedder(ctx, &embeddingopenai.EmbeddingConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIEmbeddingModel,
		Timeout: cfg.OpenAITimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	return embedder, nil
}
