package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
	"github.com/secmon-lab/tubeqa/pkg/domain/types"
	"github.com/secmon-lab/tubeqa/pkg/utils/logging"
)

// Ask forwards a question to the session's knowledge engine and records the
// exchange in the conversation log.
//
// A blank query is a no-op: (nil, nil) is returned and the log is untouched.
// On success exactly one exchange is appended, with its index equal to the
// prior log length. On failure the log is left unchanged and the error is
// returned; a failed exchange leaves no trace.
func (uc *UseCases) Ask(ctx context.Context, id types.SessionID, query string) (*model.QAExchange, error) {
	entry, err := uc.session(id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	if !entry.state.Ready {
		return nil, goerr.Wrap(ErrNoVideoIngested, "cannot answer before ingestion", goerr.V("sessionID", id))
	}

	answer, err := entry.engine.Answer(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(ErrAnswerFailed, "engine failed to answer",
			goerr.V("sessionID", id), goerr.V("cause", err.Error()))
	}

	exchange := entry.state.AppendExchange(query, answer)

	logging.From(ctx).Info("question answered",
		"session_id", id,
		"index", exchange.Index,
	)
	return &exchange, nil
}
