package vectorstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/shubham-309/chatbot/internal/logger"
)

// Pinecone is a Store backed by a Pinecone index.
type Pinecone struct {
	conn   *pinecone.IndexConnection
	logger logger.Logger
}

// NewPinecone resolves the index host and opens a connection scoped to namespace.
func NewPinecone(ctx context.Context, apiKey, indexName, namespace string, logger logger.Logger) (*Pinecone, error) {
	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create pinecone client: %w", err)
	}

	idx, err := client.DescribeIndex(ctx, indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index %s: %w", indexName, err)
	}

	conn, err := client.Index(pinecone.NewIndexConnParams{Host: idx.Host, Namespace: namespace})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to index %s: %w", indexName, err)
	}

	logger.Info("Connected to Pinecone index ", indexName, " at ", idx.Host)
	return &Pinecone{conn: conn, logger: logger}, nil
}

// Upsert writes documents with their text stored under TextKey.
func (p *Pinecone) Upsert(ctx context.Context, docs []Document) (int, error) {
	vectors := make([]*pinecone.Vector, 0, len(docs))
	for _, doc := range docs {
		if len(doc.Vector) == 0 {
			return 0, fmt.Errorf("document %s has no vector", doc.ID)
		}
		md, err := structpb.NewStruct(withText(doc))
		if err != nil {
			return 0, fmt.Errorf("invalid metadata for %s: %w", doc.ID, err)
		}
		vectors = append(vectors, &pinecone.Vector{
			Id:       doc.ID,
			Values:   doc.Vector,
			Metadata: md,
		})
	}

	count, err := p.conn.UpsertVectors(ctx, vectors)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert vectors: %w", err)
	}

	p.logger.Info("Upserted ", count, " vectors into Pinecone")
	return int(count), nil
}

// Query returns the topK nearest documents.
func (p *Pinecone) Query(ctx context.Context, vector []float32, topK int) ([]Match, error) {
	if topK <= 0 {
		return nil, errors.New("topK must be positive")
	}

	res, err := p.conn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(topK),
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query vectors: %w", err)
	}

	matches := make([]Match, 0, len(res.Matches))
	for _, m := range res.Matches {
		if m == nil || m.Vector == nil {
			continue
		}
		var md map[string]any
		if m.Vector.Metadata != nil {
			md = m.Vector.Metadata.AsMap()
		}
		text, rest := splitText(md)
		matches = append(matches, Match{
			ID:       m.Vector.Id,
			Score:    m.Score,
			Text:     text,
			Metadata: rest,
		})
	}
	return matches, nil
}

// Close closes the index connection.
func (p *Pinecone) Close() error {
	return p.conn.Close()
}
