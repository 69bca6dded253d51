package vectorstore

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
)

// Memory is an in-process Store ranking by cosine similarity.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]Document
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]Document)}
}

func (m *Memory) Upsert(_ context.Context, docs []Document) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range docs {
		if doc.ID == "" {
			return 0, errors.New("document id is required")
		}
		if len(doc.Vector) == 0 {
			return 0, errors.New("document " + doc.ID + " has no vector")
		}
		stored := doc
		stored.Metadata = withText(doc)
		m.docs[doc.ID] = stored
	}
	return len(docs), nil
}

func (m *Memory) Query(_ context.Context, vector []float32, topK int) ([]Match, error) {
	if topK <= 0 {
		return nil, errors.New("topK must be positive")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]Match, 0, len(m.docs))
	for _, doc := range m.docs {
		text, rest := splitText(doc.Metadata)
		matches = append(matches, Match{
			ID:       doc.ID,
			Score:    cosine(vector, doc.Vector),
			Text:     text,
			Metadata: rest,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Len is the number of stored documents.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
