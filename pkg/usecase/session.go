package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
	"github.com/secmon-lab/tubeqa/pkg/domain/types"
	"github.com/secmon-lab/tubeqa/pkg/utils/logging"
)

// CreateSession starts a new session with its own isolated knowledge engine
// handle. The engine collection is keyed by the session ID so indexed
// transcripts never cross session boundaries.
func (uc *UseCases) CreateSession(ctx context.Context) (*model.Session, error) {
	state := model.NewSession()

	engine, err := uc.newEngine(state.ID.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create knowledge engine for session")
	}

	uc.mu.Lock()
	uc.sessions[state.ID] = &sessionEntry{
		state:  state,
		engine: engine,
	}
	uc.mu.Unlock()

	logging.From(ctx).Info("session created", "session_id", state.ID)
	return state, nil
}

// GetSession returns the state of an existing session
func (uc *UseCases) GetSession(id types.SessionID) (*model.Session, error) {
	entry, err := uc.session(id)
	if err != nil {
		return nil, err
	}
	return entry.state, nil
}

// CloseSession discards a session and its knowledge engine handle
func (uc *UseCases) CloseSession(ctx context.Context, id types.SessionID) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.sessions[id]; !ok {
		return goerr.Wrap(ErrSessionNotFound, "unknown session", goerr.V("sessionID", id))
	}
	delete(uc.sessions, id)

	logging.From(ctx).Info("session closed", "session_id", id)
	return nil
}
