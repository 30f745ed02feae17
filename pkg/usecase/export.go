package usecase

import (
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
	"github.com/secmon-lab/tubeqa/pkg/domain/types"
)

// Export serializes the session's conversation log into a downloadable
// artifact. Returns (nil, nil) while the log is empty. The call never
// mutates session state and always reflects the log at call time.
func (uc *UseCases) Export(id types.SessionID) (*model.ExportArtifact, error) {
	entry, err := uc.session(id)
	if err != nil {
		return nil, err
	}

	return model.ExportConversation(entry.state.Exchanges()), nil
}
