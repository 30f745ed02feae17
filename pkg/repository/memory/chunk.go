package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
)

type chunkRepository struct {
	mu          sync.RWMutex
	collections map[string][]*model.Chunk
}

func newChunkRepository() *chunkRepository {
	return &chunkRepository{
		collections: make(map[string][]*model.Chunk),
	}
}

func copyChunk(c *model.Chunk) *model.Chunk {
	copied := &model.Chunk{
		ID:        c.ID,
		Index:     c.Index,
		Text:      c.Text,
		Title:     c.Title,
		SourceURL: c.SourceURL,
	}
	if c.Embedding != nil {
		copied.Embedding = make([]float32, len(c.Embedding))
		copy(copied.Embedding, c.Embedding)
	}
	return copied
}

func (r *chunkRepository) Put(ctx context.Context, collection string, chunks []*model.Chunk) error {
	if collection == "" {
		return goerr.New("collection is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, chunk := range chunks {
		stored := copyChunk(chunk)
		if stored.ID == "" {
			stored.ID = model.NewChunkID()
		}
		r.collections[collection] = append(r.collections[collection], stored)
	}

	return nil
}

func (r *chunkRepository) FindByEmbedding(ctx context.Context, collection string, embedding []float32, limit int) ([]*model.Chunk, error) {
	if len(embedding) == 0 {
		return nil, goerr.New("embedding is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		chunk *model.Chunk
		score float64
	}

	var candidates []scored
	for _, chunk := range r.collections[collection] {
		if len(chunk.Embedding) == 0 {
			continue
		}
		candidates = append(candidates, scored{
			chunk: chunk,
			score: cosineSimilarity(embedding, chunk.Embedding),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]*model.Chunk, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, copyChunk(c.chunk))
	}

	return results, nil
}

func (r *chunkRepository) Count(ctx context.Context, collection string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.collections[collection]), nil
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Returns 0 for mismatched dimensions or zero-length vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
