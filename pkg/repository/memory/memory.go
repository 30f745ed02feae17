package memory

import (
	"github.com/secmon-lab/tubeqa/pkg/domain/interfaces"
)

// Memory is an in-memory repository for development and testing.
// Contents are lost when the process exits.
type Memory struct {
	chunk *chunkRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		chunk: newChunkRepository(),
	}
}

func (m *Memory) Chunk() interfaces.ChunkRepository {
	return m.chunk
}

func (m *Memory) Close() error {
	return nil
}
