package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"
)

// LLM holds CLI flags for the LLM client configuration. Both the generation
// and the embedding calls go through the same client.
type LLM struct {
	provider string

	openaiAPIKey string `masq:"secret"`
	openaiModel  string

	geminiProject  string
	geminiLocation string
	geminiModel    string
}

// Flags returns CLI flags for LLM configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "LLM provider (openai or gemini)",
			Value:       "openai",
			Sources:     cli.EnvVars("TUBEQA_LLM_PROVIDER"),
			Destination: &l.provider,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key (required when using openai provider)",
			Sources:     cli.EnvVars("TUBEQA_OPENAI_API_KEY", "OPENAI_API_KEY"),
			Destination: &l.openaiAPIKey,
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Usage:       "OpenAI model for generation",
			Value:       "gpt-4o-mini",
			Sources:     cli.EnvVars("TUBEQA_OPENAI_MODEL"),
			Destination: &l.openaiModel,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID (required when using gemini provider)",
			Sources:     cli.EnvVars("TUBEQA_GEMINI_PROJECT"),
			Destination: &l.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for the Gemini API",
			Value:       "us-central1",
			Sources:     cli.EnvVars("TUBEQA_GEMINI_LOCATION"),
			Destination: &l.geminiLocation,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model for generation",
			Value:       "gemini-2.0-flash",
			Sources:     cli.EnvVars("TUBEQA_GEMINI_MODEL"),
			Destination: &l.geminiModel,
		},
	}
}

// LogValue returns log attributes for the LLM configuration. The API key is
// never included.
func (l *LLM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", l.provider),
		slog.String("openai_model", l.openaiModel),
		slog.String("gemini_project", l.geminiProject),
		slog.String("gemini_location", l.geminiLocation),
	)
}

// Configure creates the LLM client from the configured flags
func (l *LLM) Configure(ctx context.Context) (gollem.LLMClient, error) {
	switch l.provider {
	case "openai":
		if l.openaiAPIKey == "" {
			return nil, goerr.Wrap(ErrInvalidLLMConfig, "openai-api-key is required when using openai provider")
		}
		client, err := openai.New(ctx, l.openaiAPIKey, openai.WithModel(l.openaiModel))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenAI client")
		}
		return client, nil

	case "gemini":
		if l.geminiProject == "" {
			return nil, goerr.Wrap(ErrInvalidLLMConfig, "gemini-project is required when using gemini provider")
		}
		client, err := gemini.New(ctx, l.geminiProject, l.geminiLocation, gemini.WithModel(l.geminiModel))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		return client, nil

	default:
		return nil, goerr.Wrap(ErrInvalidLLMConfig, "unsupported provider", goerr.V("provider", l.provider))
	}
}
