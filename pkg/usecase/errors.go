package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors of the orchestration layer
var (
	// ErrSessionNotFound indicates an unknown or already closed session
	ErrSessionNotFound = goerr.New("session not found")

	// ErrVideoAlreadyIngested indicates that the session already completed an
	// ingestion; indexing the same video twice would duplicate the transcript
	ErrVideoAlreadyIngested = goerr.New("a video has already been ingested in this session")

	// ErrNoVideoIngested indicates that summary/QA was requested before a
	// transcript was successfully indexed
	ErrNoVideoIngested = goerr.New("no video has been ingested in this session")

	// ErrIndexingFailed indicates the knowledge engine rejected or failed to
	// store the transcript; ingestion is considered not completed
	ErrIndexingFailed = goerr.New("failed to index transcript")

	// ErrSummaryFailed indicates summary generation failed; nothing is memoized
	ErrSummaryFailed = goerr.New("failed to generate summary")

	// ErrAnswerFailed indicates answering failed; the conversation log is unchanged
	ErrAnswerFailed = goerr.New("failed to answer question")
)
