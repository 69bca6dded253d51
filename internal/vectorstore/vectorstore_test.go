package vectorstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubham-309/chatbot/internal/testutil"
)

func TestMemoryQueryRanksByCosine(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	n, err := m.Upsert(ctx, []Document{
		{ID: "a", Text: "alpha", Vector: []float32{1, 0}, Metadata: map[string]any{"name": "A"}},
		{ID: "b", Text: "beta", Vector: []float32{0, 1}},
		{ID: "c", Text: "gamma", Vector: []float32{1, 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	matches, err := m.Query(ctx, []float32{1, 0.1}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].ID)
	assert.Equal(t, "alpha", matches[0].Text)
	assert.Equal(t, map[string]any{"name": "A"}, matches[0].Metadata)
	assert.Equal(t, "c", matches[1].ID)

	_, err = m.Query(ctx, []float32{1, 0}, 0)
	assert.Error(t, err)
}

func TestMemoryUpsertRejectsEmptyVector(t *testing.T) {
	_, err := NewMemory().Upsert(context.Background(), []Document{{ID: "x", Text: "no vector"}})
	assert.Error(t, err)
}

func TestRetrieverRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	embedder := testutil.NewHashEmbedder(64)
	r := NewRetriever(embedder, store)

	n, err := r.AddDocuments(ctx, []Document{
		{Text: "IFZA commercial licence with one visa", Metadata: map[string]any{"name": "IFZA"}},
		{ID: "shams", Text: "Shams media licence for freelancers", Metadata: map[string]any{"name": "Shams"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, store.Len())

	matches, err := r.SimilaritySearch(ctx, "media licence freelancers", 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "shams", matches[0].ID)
	assert.Equal(t, "Shams", matches[0].Metadata["name"])
}

func TestRetrieverEmbedError(t *testing.T) {
	embedder := testutil.NewHashEmbedder(8)
	embedder.Err = errors.New("quota exceeded")
	r := NewRetriever(embedder, NewMemory())

	_, err := r.SimilaritySearch(context.Background(), "anything", 5)
	assert.ErrorContains(t, err, "quota exceeded")

	_, err = r.AddDocuments(context.Background(), []Document{{Text: "x"}})
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestTextMetadataHelpers(t *testing.T) {
	md := withText(Document{Text: "body", Metadata: map[string]any{"cost": 100.0}})
	assert.Equal(t, map[string]any{"cost": 100.0, TextKey: "body"}, md)

	text, rest := splitText(md)
	assert.Equal(t, "body", text)
	assert.Equal(t, map[string]any{"cost": 100.0}, rest)
}
