package vectorstore

import (
	"context"
)

// TextKey is the metadata key that holds a document's text.
const TextKey = "text"

// Document is a piece of text to index together with its embedding.
type Document struct {
	ID       string
	Text     string
	Metadata map[string]any
	Vector   []float32
}

// Match is a search hit.
type Match struct {
	ID       string         `json:"id"`
	Score    float32        `json:"score"`
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

// Store is a vector index.
type Store interface {
	Upsert(ctx context.Context, docs []Document) (int, error)
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
}

func splitText(metadata map[string]any) (string, map[string]any) {
	rest := make(map[string]any, len(metadata))
	text := ""
	for k, v := range metadata {
		if k == TextKey {
			if s, ok := v.(string); ok {
				text = s
			}
			continue
		}
		rest[k] = v
	}
	return text, rest
}

func withText(doc Document) map[string]any {
	md := make(map[string]any, len(doc.Metadata)+1)
	for k, v := range doc.Metadata {
		md[k] = v
	}
	md[TextKey] = doc.Text
	return md
}
