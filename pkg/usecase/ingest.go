package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
	"github.com/secmon-lab/tubeqa/pkg/domain/types"
	"github.com/secmon-lab/tubeqa/pkg/utils/logging"
)

// IndexOutcome describes what happened to a transcript during ingestion
type IndexOutcome string

const (
	// OutcomeIndexed means the transcript was stored into the knowledge engine
	OutcomeIndexed IndexOutcome = "indexed"
	// OutcomeSkipped means no transcript was available, nothing was indexed
	OutcomeSkipped IndexOutcome = "skipped"
)

// IngestResult is the outcome of one video ingestion attempt
type IngestResult struct {
	Video   *model.VideoReference
	Outcome IndexOutcome
}

// IngestVideo runs the ingestion pipeline for one URL: resolve the video ID,
// acquire the transcript, and index it into the session's knowledge engine.
//
// A transcript fetch failure is recovered into a skipped outcome, never an
// error: the session stays usable. An invalid URL or an engine failure is
// returned as an error; in both cases the session is left not ready, so the
// user may retry.
func (uc *UseCases) IngestVideo(ctx context.Context, id types.SessionID, rawURL string) (*IngestResult, error) {
	entry, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	if entry.state.Ready {
		return nil, goerr.Wrap(ErrVideoAlreadyIngested, "ingestion already completed",
			goerr.V("sessionID", id), goerr.V("videoID", entry.state.Video.ID))
	}

	ref, err := model.ParseVideoURL(rawURL)
	if err != nil {
		return nil, err
	}
	entry.state.Video = ref

	doc := uc.acquireTranscript(ctx, ref)

	outcome, err := uc.indexTranscript(ctx, entry, doc, ref)
	if err != nil {
		return nil, err
	}

	return &IngestResult{Video: ref, Outcome: outcome}, nil
}

// acquireTranscript obtains the normalized transcript document for a video.
// It never fails: any error from the transcript collaborator is converted
// into the unavailable sentinel document with a user-visible diagnostic.
func (uc *UseCases) acquireTranscript(ctx context.Context, ref *model.VideoReference) *model.TranscriptDocument {
	spans, err := uc.fetcher.FetchCaptions(ctx, ref.ID)
	if err != nil {
		logging.From(ctx).Warn("transcript unavailable",
			"video_id", ref.ID,
			"error", err.Error(),
		)
		return model.UnavailableTranscript()
	}

	return model.NewTranscript(model.JoinCaptions(spans))
}

// indexTranscript hands an available transcript to the knowledge engine
// exactly once. Unavailable documents are skipped and never indexed.
func (uc *UseCases) indexTranscript(ctx context.Context, entry *sessionEntry, doc *model.TranscriptDocument, ref *model.VideoReference) (IndexOutcome, error) {
	logger := logging.From(ctx)

	if !doc.Available {
		logger.Warn("no transcript to index, skipping knowledge base update",
			"video_id", ref.ID, "title", doc.Title)
		return OutcomeSkipped, nil
	}

	meta := model.DocumentMetadata{
		Title: doc.Title,
		URL:   ref.RawURL,
	}
	if err := entry.engine.Index(ctx, doc.Text, meta); err != nil {
		return "", goerr.Wrap(ErrIndexingFailed, "knowledge engine rejected transcript",
			goerr.V("videoID", ref.ID), goerr.V("cause", err.Error()))
	}

	entry.state.Ready = true
	entry.transcriptText = doc.Text

	logger.Info("video added to knowledge base", "video_id", ref.ID, "title", doc.Title)
	return OutcomeIndexed, nil
}
