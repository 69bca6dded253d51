package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/shubham-309/chatbot/internal/chatbot"
	"github.com/shubham-309/chatbot/internal/config"
	"github.com/shubham-309/chatbot/internal/ingest"
	"github.com/shubham-309/chatbot/internal/llm"
	"github.com/shubham-309/chatbot/internal/logger"
	"github.com/shubham-309/chatbot/internal/models"
	"github.com/shubham-309/chatbot/internal/vectorstore"
)

// Services holds the language-model backed components. Each field is nil
// when the integration it needs is not configured.
type Services struct {
	Agent     *chatbot.Agent
	Extractor *ingest.Extractor
	Ingester  *ingest.Ingester

	closers []func() error
}

// NewServices builds the chat agent, document extractor and ingester from cfg.
func NewServices(ctx context.Context, cfg *config.Config, log logger.Logger) (*Services, error) {
	s := &Services{}

	chatModel, err := llm.NewChatModel(ctx, cfg)
	if err != nil {
		if errors.Is(err, models.ErrLLMDisabled) {
			log.Warn("Language model disabled: chatbot replies and document extraction are unavailable")
			return s, nil
		}
		return nil, err
	}

	var searcher chatbot.Searcher
	if cfg.VectorStoreEnabled() {
		retriever, err := s.newRetriever(ctx, cfg, log)
		if err != nil {
			s.Close()
			return nil, err
		}
		searcher = retriever
		s.Ingester = ingest.NewIngester(retriever, log)
	} else {
		log.Warn("Vector store disabled: freezone suggestions and ingestion are unavailable")
	}

	s.Agent, err = chatbot.NewAgent(ctx, chatModel, searcher, log)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	s.Extractor, err = ingest.NewExtractor(ctx, chatModel, log)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}

	return s, nil
}

func (s *Services) newRetriever(ctx context.Context, cfg *config.Config, log logger.Logger) (*vectorstore.Retriever, error) {
	embedder, err := llm.NewEmbedder(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var store vectorstore.Store
	switch cfg.VectorStore {
	case config.VectorStoreMemory:
		log.Warn("Using the in-memory vector store, indexed packages are lost on restart")
		store = vectorstore.NewMemory()
	default:
		pc, err := vectorstore.NewPinecone(ctx, cfg.PineconeAPIKey, cfg.PineconeIndexName, cfg.PineconeNamespace, log)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pc.Close)
		store = pc
	}

	return vectorstore.NewRetriever(embedder, store), nil
}

// Close releases vector store connections.
func (s *Services) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	s.closers = nil
	return errors.Join(errs...)
}
