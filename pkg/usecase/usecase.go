package usecase

import (
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/domain/interfaces"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
	"github.com/secmon-lab/tubeqa/pkg/domain/types"
)

// defaultSummaryPrompt prefixes the transcript text when requesting the
// one-shot summary
const defaultSummaryPrompt = "Provide a concise summary for the following video transcript:"

// EngineFactory builds a knowledge engine handle bound to an isolated
// collection. Called once per session.
type EngineFactory func(collection string) (interfaces.KnowledgeEngine, error)

// sessionEntry pairs the session state with its exclusive engine handle.
// transcriptText is held only until the summary is memoized; the indexed copy
// inside the engine is the source of truth afterwards.
type sessionEntry struct {
	state          *model.Session
	engine         interfaces.KnowledgeEngine
	transcriptText string
}

// UseCases is the orchestration layer: session lifecycle, video ingestion,
// summary memoization, question answering and conversation export. Each
// session is driven by one user at a time; the registry lock only protects
// the session map itself.
type UseCases struct {
	mu       sync.RWMutex
	sessions map[types.SessionID]*sessionEntry

	fetcher       interfaces.TranscriptFetcher
	newEngine     EngineFactory
	summaryPrompt string
}

// Option is a functional option for UseCases configuration
type Option func(*UseCases)

// WithSummaryPrompt overrides the summary prompt prefix
func WithSummaryPrompt(prompt string) Option {
	return func(uc *UseCases) {
		uc.summaryPrompt = prompt
	}
}

// New creates the orchestration layer
func New(fetcher interfaces.TranscriptFetcher, newEngine EngineFactory, opts ...Option) (*UseCases, error) {
	if fetcher == nil {
		return nil, goerr.New("transcript fetcher is required")
	}
	if newEngine == nil {
		return nil, goerr.New("engine factory is required")
	}

	uc := &UseCases{
		sessions:      make(map[types.SessionID]*sessionEntry),
		fetcher:       fetcher,
		newEngine:     newEngine,
		summaryPrompt: defaultSummaryPrompt,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc, nil
}

func (uc *UseCases) session(id types.SessionID) (*sessionEntry, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	entry, ok := uc.sessions[id]
	if !ok {
		return nil, goerr.Wrap(ErrSessionNotFound, "unknown session", goerr.V("sessionID", id))
	}
	return entry, nil
}
