package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/tubeqa/pkg/domain/interfaces"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
)

const (
	defaultChunkSize    = 1200
	defaultChunkOverlap = 200
	defaultTopK         = 8
)

// defaultSystemPrompt grounds the answering session on retrieved transcript
// context only.
const defaultSystemPrompt = "You are an assistant answering questions about a YouTube video. " +
	"Base your answers on the provided transcript excerpts. " +
	"If the excerpts do not contain the answer, say so instead of guessing."

// Engine implements interfaces.KnowledgeEngine on top of a gollem LLM client
// and a chunk repository. One Engine is bound to one collection; collections
// map one-to-one to sessions so knowledge bases stay isolated.
type Engine struct {
	llmClient    gollem.LLMClient
	chunks       interfaces.ChunkRepository
	collection   string
	chunkSize    int
	chunkOverlap int
	topK         int
	systemPrompt string
}

var _ interfaces.KnowledgeEngine = &Engine{}

// Option is a functional option for Engine configuration
type Option func(*Engine)

// WithChunking overrides the chunk size and overlap (in runes)
func WithChunking(size, overlap int) Option {
	return func(e *Engine) {
		e.chunkSize = size
		e.chunkOverlap = overlap
	}
}

// WithTopK overrides the number of chunks retrieved per answer
func WithTopK(k int) Option {
	return func(e *Engine) {
		e.topK = k
	}
}

// WithSystemPrompt overrides the answering system prompt
func WithSystemPrompt(prompt string) Option {
	return func(e *Engine) {
		e.systemPrompt = prompt
	}
}

// New creates a knowledge engine bound to the given collection
func New(llmClient gollem.LLMClient, chunks interfaces.ChunkRepository, collection string, opts ...Option) (*Engine, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	if chunks == nil {
		return nil, goerr.New("chunk repository is required")
	}
	if collection == "" {
		return nil, goerr.New("collection is required")
	}

	e := &Engine{
		llmClient:    llmClient,
		chunks:       chunks,
		collection:   collection,
		chunkSize:    defaultChunkSize,
		chunkOverlap: defaultChunkOverlap,
		topK:         defaultTopK,
		systemPrompt: defaultSystemPrompt,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.chunkSize <= 0 || e.chunkOverlap < 0 || e.chunkOverlap >= e.chunkSize {
		return nil, goerr.New("invalid chunking parameters",
			goerr.V("size", e.chunkSize), goerr.V("overlap", e.chunkOverlap))
	}

	return e, nil
}

// Index splits the document into overlapping chunks, embeds them, and stores
// them into the engine's collection.
func (e *Engine) Index(ctx context.Context, text string, meta model.DocumentMetadata) error {
	parts := splitText(text, e.chunkSize, e.chunkOverlap)
	if len(parts) == 0 {
		return goerr.New("document is empty")
	}

	embeddings, err := e.llmClient.GenerateEmbedding(ctx, model.EmbeddingDimension, parts)
	if err != nil {
		return goerr.Wrap(err, "failed to generate chunk embeddings", goerr.V("chunks", len(parts)))
	}
	if len(embeddings) != len(parts) {
		return goerr.New("embedding count mismatch",
			goerr.V("chunks", len(parts)), goerr.V("embeddings", len(embeddings)))
	}

	chunks := make([]*model.Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, &model.Chunk{
			ID:        model.NewChunkID(),
			Index:     i,
			Text:      part,
			Title:     meta.Title,
			SourceURL: meta.URL,
			Embedding: toFloat32(embeddings[i]),
		})
	}

	if err := e.chunks.Put(ctx, e.collection, chunks); err != nil {
		return goerr.Wrap(err, "failed to store chunks", goerr.V("collection", e.collection))
	}

	return nil
}

// Answer embeds the prompt, retrieves the most similar chunks from the
// collection, and generates a grounded response.
func (e *Engine) Answer(ctx context.Context, prompt string) (string, error) {
	retrieved, err := e.retrieve(ctx, prompt)
	if err != nil {
		return "", err
	}

	session, err := e.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(e.systemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildAnswerPrompt(retrieved, prompt)))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate answer")
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("LLM returned no text")
	}

	return resp.Texts[0], nil
}

func (e *Engine) retrieve(ctx context.Context, prompt string) ([]*model.Chunk, error) {
	count, err := e.chunks.Count(ctx, e.collection)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to inspect collection", goerr.V("collection", e.collection))
	}
	if count == 0 {
		// Nothing indexed yet; the prompt may carry its own context inline
		// (the summary prompt embeds the transcript text).
		return nil, nil
	}

	embeddings, err := e.llmClient.GenerateEmbedding(ctx, model.EmbeddingDimension, []string{prompt})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed prompt")
	}
	if len(embeddings) == 0 {
		return nil, goerr.New("no embedding returned for prompt")
	}

	retrieved, err := e.chunks.FindByEmbedding(ctx, e.collection, toFloat32(embeddings[0]), e.topK)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to retrieve chunks", goerr.V("collection", e.collection))
	}

	return retrieved, nil
}

func buildAnswerPrompt(retrieved []*model.Chunk, prompt string) string {
	if len(retrieved) == 0 {
		return prompt
	}

	var sb strings.Builder
	sb.WriteString("## Transcript excerpts:\n\n")
	for i, chunk := range retrieved {
		fmt.Fprintf(&sb, "### Excerpt %d\n%s\n\n", i+1, chunk.Text)
	}
	sb.WriteString("## Question:\n\n")
	sb.WriteString(prompt)
	sb.WriteString("\n")

	return sb.String()
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
