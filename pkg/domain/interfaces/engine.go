package interfaces

import (
	"context"

	"github.com/secmon-lab/tubeqa/pkg/domain/model"
)

// KnowledgeEngine is the external indexing + answering capability consumed by
// the orchestration layer. One handle is bound to exactly one session and an
// isolated storage collection, so indexed transcripts never leak between
// sessions. Answer implicitly retrieves over all previously indexed content;
// no explicit retrieval API is exposed.
type KnowledgeEngine interface {
	// Index stores the document text tagged with metadata into the engine's
	// knowledge base. Must be called at most once per successfully ingested
	// video; idempotency is the caller's responsibility.
	Index(ctx context.Context, text string, meta model.DocumentMetadata) error

	// Answer generates a response to the prompt, grounded on the indexed
	// content where relevant.
	Answer(ctx context.Context, prompt string) (string, error)
}
