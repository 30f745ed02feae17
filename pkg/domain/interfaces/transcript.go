package interfaces

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
	"github.com/secmon-lab/tubeqa/pkg/domain/types"
)

// ErrTranscriptUnavailable indicates that captions for a video cannot be
// obtained (missing, disabled, or the fetch itself failed). Callers recover
// from it by substituting the sentinel transcript document.
var ErrTranscriptUnavailable = goerr.New("transcript unavailable")

// TranscriptFetcher is the external transcript collaborator. It returns the
// ordered caption spans of a video or an error wrapping
// ErrTranscriptUnavailable.
type TranscriptFetcher interface {
	FetchCaptions(ctx context.Context, videoID types.VideoID) ([]model.CaptionSpan, error)
}
