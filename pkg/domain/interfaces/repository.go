package interfaces

import (
	"context"

	"github.com/secmon-lab/tubeqa/pkg/domain/model"
)

// ChunkRepository defines the interface for embedded chunk persistence.
// Chunks are grouped into collections; one collection per session.
type ChunkRepository interface {
	// Put stores chunks into the collection
	Put(ctx context.Context, collection string, chunks []*model.Chunk) error

	// FindByEmbedding performs vector similarity search using cosine distance.
	// Returns up to limit chunks most similar to the given embedding.
	FindByEmbedding(ctx context.Context, collection string, embedding []float32, limit int) ([]*model.Chunk, error)

	// Count returns the number of chunks stored in the collection
	Count(ctx context.Context, collection string) (int, error)
}

// Repository is the set of persistence interfaces backed by one storage
type Repository interface {
	Chunk() ChunkRepository
	Close() error
}
