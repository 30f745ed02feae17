package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/domain/types"
	"github.com/secmon-lab/tubeqa/pkg/utils/logging"
)

// Summary returns the session's video summary, generating it on first call.
// Generation happens at most once per session: subsequent calls return the
// stored string without contacting the engine. A generation failure
// propagates and memoizes nothing, so the next call retries.
func (uc *UseCases) Summary(ctx context.Context, id types.SessionID) (string, error) {
	entry, err := uc.session(id)
	if err != nil {
		return "", err
	}

	if entry.state.HasSummary() {
		return entry.state.Summary(), nil
	}

	if !entry.state.Ready {
		return "", goerr.Wrap(ErrNoVideoIngested, "cannot summarize before ingestion", goerr.V("sessionID", id))
	}

	prompt := uc.summaryPrompt + "\n\n" + entry.transcriptText
	summary, err := entry.engine.Answer(ctx, prompt)
	if err != nil {
		return "", goerr.Wrap(ErrSummaryFailed, "engine failed to summarize",
			goerr.V("sessionID", id), goerr.V("cause", err.Error()))
	}

	entry.state.SetSummary(summary)
	// The transcript text is no longer needed once the summary is stored;
	// the indexed copy in the engine remains the source of truth.
	entry.transcriptText = ""

	logging.From(ctx).Info("video summary generated", "session_id", id)
	return summary, nil
}
