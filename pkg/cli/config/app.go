package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// AppConfig tunes prompting and retrieval behavior. All fields are optional;
// zero values fall back to the built-in defaults.
type AppConfig struct {
	Prompts   Prompts   `toml:"prompts"`
	Retrieval Retrieval `toml:"retrieval"`

	path string
}

// Prompts overrides the built-in prompt templates
type Prompts struct {
	Summary string `toml:"summary"`
	System  string `toml:"system"`
}

// Retrieval tunes the chunking and lookup parameters of the knowledge engine
type Retrieval struct {
	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`
	TopK         int `toml:"top_k"`
}

// Flags returns CLI flags for application configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML file tuning prompts and retrieval",
			Sources:     cli.EnvVars("TUBEQA_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	r := a.Retrieval
	if r.ChunkSize < 0 || r.ChunkOverlap < 0 || r.TopK < 0 {
		return goerr.Wrap(ErrInvalidAppConfig, "retrieval parameters must not be negative")
	}
	if r.ChunkSize > 0 && r.ChunkOverlap >= r.ChunkSize {
		return goerr.Wrap(ErrInvalidAppConfig, "chunk_overlap must be smaller than chunk_size",
			goerr.V("chunk_size", r.ChunkSize),
			goerr.V("chunk_overlap", r.ChunkOverlap),
		)
	}
	return nil
}

// Configure loads the TOML file when a path is configured and validates the
// result. Without a path the zero-value config is returned.
func (a *AppConfig) Configure() (*AppConfig, error) {
	if a.path != "" {
		data, err := os.ReadFile(a.path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", a.path))
		}
		if err := toml.Unmarshal(data, a); err != nil {
			return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", a.path))
		}
	}

	if err := a.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", a.path))
	}

	return a, nil
}
