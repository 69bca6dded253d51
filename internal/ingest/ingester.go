package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shubham-309/chatbot/internal/logger"
	"github.com/shubham-309/chatbot/internal/models"
	"github.com/shubham-309/chatbot/internal/vectorstore"
)

// DocumentAdder embeds and stores documents.
type DocumentAdder interface {
	AddDocuments(ctx context.Context, docs []vectorstore.Document) (int, error)
}

// Ingester writes approved packages into the vector store.
type Ingester struct {
	adder  DocumentAdder
	logger logger.Logger
}

// NewIngester creates an Ingester.
func NewIngester(adder DocumentAdder, logger logger.Logger) *Ingester {
	return &Ingester{adder: adder, logger: logger}
}

// Ingest validates the packages and indexes one document per package.
func (i *Ingester) Ingest(ctx context.Context, companies []models.CompanyInfo) (int, error) {
	if len(companies) == 0 {
		return 0, models.ErrNoCompanies
	}

	docs := make([]vectorstore.Document, 0, len(companies))
	for idx, c := range companies {
		if err := c.Validate(); err != nil {
			return 0, fmt.Errorf("%w: company %d: %w", models.ErrInvalidCompany, idx+1, err)
		}
		docs = append(docs, vectorstore.Document{
			ID:       uuid.NewString(),
			Text:     c.Text(),
			Metadata: c.Metadata(),
		})
	}

	n, err := i.adder.AddDocuments(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("ingest companies: %w", err)
	}

	i.logger.Info("Ingested ", n, " companies into the vector store")
	return n, nil
}
