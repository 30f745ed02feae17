package sqlite

import (
	"database/sql"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/domain/interfaces"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	id         TEXT PRIMARY KEY,
	collection TEXT NOT NULL,
	idx        INTEGER NOT NULL,
	text       TEXT NOT NULL,
	title      TEXT NOT NULL,
	source_url TEXT NOT NULL,
	embedding  BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chunks_collection ON chunks (collection);
`

// Client is a SQLite-backed repository. The database file lives under the
// given directory, which is expected to be an ephemeral per-process location.
type Client struct {
	db    *sql.DB
	chunk *chunkRepository
}

var _ interfaces.Repository = &Client{}

// New opens (or creates) the database file under dir and prepares the schema
func New(dir string) (*Client, error) {
	path := filepath.Join(dir, "tubeqa.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to prepare sqlite schema", goerr.V("path", path))
	}

	return &Client{
		db:    db,
		chunk: &chunkRepository{db: db},
	}, nil
}

func (c *Client) Chunk() interfaces.ChunkRepository {
	return c.chunk
}

func (c *Client) Close() error {
	if err := c.db.Close(); err != nil {
		return goerr.Wrap(err, "failed to close sqlite database")
	}
	return nil
}
