package vectorstore

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/google/uuid"
)

// Retriever embeds text and talks to a Store.
type Retriever struct {
	embedder embedding.Embedder
	store    Store
}

// NewRetriever creates a Retriever.
func NewRetriever(embedder embedding.Embedder, store Store) *Retriever {
	return &Retriever{embedder: embedder, store: store}
}

// SimilaritySearch returns the k documents closest to query.
func (r *Retriever) SimilaritySearch(ctx context.Context, query string, k int) ([]Match, error) {
	vectors, err := r.embedder.EmbedStrings(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(vectors))
	}

	return r.store.Query(ctx, toFloat32(vectors[0]), k)
}

// AddDocuments embeds the documents' text and upserts them. Documents
// without an ID get a random one.
func (r *Retriever) AddDocuments(ctx context.Context, docs []Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	vectors, err := r.embedder.EmbedStrings(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return 0, fmt.Errorf("expected %d embeddings, got %d", len(docs), len(vectors))
	}

	prepared := make([]Document, len(docs))
	for i, doc := range docs {
		if doc.ID == "" {
			doc.ID = uuid.NewString()
		}
		doc.Vector = toFloat32(vectors[i])
		prepared[i] = doc
	}

	return r.store.Upsert(ctx, prepared)
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
