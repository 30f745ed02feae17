package config

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/domain/interfaces"
	"github.com/secmon-lab/tubeqa/pkg/repository/memory"
	"github.com/secmon-lab/tubeqa/pkg/repository/sqlite"
	"github.com/secmon-lab/tubeqa/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend   string
	sqliteDir string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (memory or sqlite)",
			Value:       "memory",
			Sources:     cli.EnvVars("TUBEQA_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "sqlite-dir",
			Usage:       "Directory for the SQLite database file (a temporary directory is used when empty)",
			Sources:     cli.EnvVars("TUBEQA_SQLITE_DIR"),
			Destination: &r.sqliteDir,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes and returns a repository based on the configured
// backend. The caller is responsible for calling Close() on the returned
// repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "memory":
		logging.Default().Info("Using in-memory repository")
		return memory.New(), nil

	case "sqlite":
		dir := r.sqliteDir
		if dir == "" {
			tmpDir, err := os.MkdirTemp("", "tubeqa-*")
			if err != nil {
				return nil, goerr.Wrap(err, "failed to create temporary directory")
			}
			dir = tmpDir
		}
		repo, err := sqlite.New(dir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sqlite repository")
		}
		logging.Default().Info("Using SQLite repository", "dir", dir)
		return repo, nil

	default:
		return nil, goerr.Wrap(ErrInvalidBackend, "unsupported backend", goerr.V("backend", r.backend))
	}
}
