package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/cli/config"
	"github.com/secmon-lab/tubeqa/pkg/domain/interfaces"
	"github.com/secmon-lab/tubeqa/pkg/service/engine"
	"github.com/secmon-lab/tubeqa/pkg/service/transcript"
	"github.com/secmon-lab/tubeqa/pkg/usecase"
)

// buildUseCases wires the transcript service, the knowledge engine factory
// and the repository into the orchestration layer. The returned repository
// must be closed by the caller.
func buildUseCases(ctx context.Context, llmCfg *config.LLM, repoCfg *config.Repository, appCfg *config.AppConfig) (*usecase.UseCases, interfaces.Repository, error) {
	app, err := appCfg.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load application configuration")
	}

	llmClient, err := llmCfg.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to configure LLM client")
	}

	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}

	var engineOpts []engine.Option
	if app.Retrieval.ChunkSize > 0 {
		engineOpts = append(engineOpts, engine.WithChunking(app.Retrieval.ChunkSize, app.Retrieval.ChunkOverlap))
	}
	if app.Retrieval.TopK > 0 {
		engineOpts = append(engineOpts, engine.WithTopK(app.Retrieval.TopK))
	}
	if app.Prompts.System != "" {
		engineOpts = append(engineOpts, engine.WithSystemPrompt(app.Prompts.System))
	}

	factory := func(collection string) (interfaces.KnowledgeEngine, error) {
		return engine.New(llmClient, repo.Chunk(), collection, engineOpts...)
	}

	var ucOpts []usecase.Option
	if app.Prompts.Summary != "" {
		ucOpts = append(ucOpts, usecase.WithSummaryPrompt(app.Prompts.Summary))
	}

	uc, err := usecase.New(transcript.New(), factory, ucOpts...)
	if err != nil {
		if closeErr := repo.Close(); closeErr != nil {
			return nil, nil, goerr.Wrap(err, "failed to build use cases", goerr.V("closeError", closeErr))
		}
		return nil, nil, goerr.Wrap(err, "failed to build use cases")
	}

	return uc, repo, nil
}
