package testutil

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/embedding"
)

// HashEmbedder maps text to a bag-of-words vector so that texts sharing
// words end up close together.
type HashEmbedder struct {
	Dims int

	mu    sync.Mutex
	Calls [][]string
	Err   error
}

// NewHashEmbedder creates an embedder producing vectors of dims entries.
func NewHashEmbedder(dims int) *HashEmbedder {
	return &HashEmbedder{Dims: dims}
}

func (e *HashEmbedder) EmbedStrings(_ context.Context, texts []string, _ ...embedding.Option) ([][]float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Calls = append(e.Calls, texts)
	if e.Err != nil {
		return nil, e.Err
	}
	if e.Dims <= 0 {
		return nil, errors.New("dims must be positive")
	}

	out := make([][]float64, len(texts))
	for i, text := range texts {
		vec := make([]float64, e.Dims)
		for _, word := range strings.Fields(strings.ToLower(text)) {
			h := fnv.New32a()
			_, _ = h.Write([]byte(strings.Trim(word, ".,;:!?")))
			vec[int(h.Sum32())%e.Dims]++
		}
		out[i] = vec
	}
	return out, nil
}
