package model

import (
	"github.com/google/uuid"
)

// EmbeddingDimension is the dimension of the embedding vector requested from
// the LLM client for both chunks and queries
const EmbeddingDimension = 768

// ChunkID is a UUID-based identifier for Chunk
type ChunkID string

// NewChunkID generates a new UUID v4 ChunkID
func NewChunkID() ChunkID {
	return ChunkID(uuid.New().String())
}

// Chunk is one embedded slice of an indexed transcript. Chunks live in the
// per-session collection of the chunk repository and are retrieved by vector
// similarity when answering questions.
type Chunk struct {
	ID        ChunkID
	Index     int // position of the chunk within the source document
	Text      string
	Title     string
	SourceURL string
	Embedding []float32
}

// DocumentMetadata tags an indexed document with its origin
type DocumentMetadata struct {
	Title string
	URL   string
}
