package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"math"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
)

type chunkRepository struct {
	db *sql.DB
}

func encodeEmbedding(embedding []float32) []byte {
	buf := make([]byte, 4*len(embedding))
	for i, v := range embedding {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeEmbedding(buf []byte) []float32 {
	embedding := make([]float32, len(buf)/4)
	for i := range embedding {
		embedding[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return embedding
}

func (r *chunkRepository) Put(ctx context.Context, collection string, chunks []*model.Chunk) error {
	if collection == "" {
		return goerr.New("collection is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (id, collection, idx, text, title, source_url, embedding) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return goerr.Wrap(err, "failed to prepare insert")
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, chunk := range chunks {
		id := chunk.ID
		if id == "" {
			id = model.NewChunkID()
		}
		if _, err := stmt.ExecContext(ctx,
			string(id), collection, chunk.Index, chunk.Text, chunk.Title, chunk.SourceURL,
			encodeEmbedding(chunk.Embedding),
		); err != nil {
			return goerr.Wrap(err, "failed to insert chunk", goerr.V("chunkID", id))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit chunks")
	}

	return nil
}

func (r *chunkRepository) FindByEmbedding(ctx context.Context, collection string, embedding []float32, limit int) ([]*model.Chunk, error) {
	if len(embedding) == 0 {
		return nil, goerr.New("embedding is required")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, idx, text, title, source_url, embedding FROM chunks WHERE collection = ?`, collection)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query chunks", goerr.V("collection", collection))
	}
	defer func() {
		_ = rows.Close()
	}()

	type scored struct {
		chunk *model.Chunk
		score float64
	}

	var candidates []scored
	for rows.Next() {
		var (
			id      string
			chunk   model.Chunk
			rawEmbd []byte
		)
		if err := rows.Scan(&id, &chunk.Index, &chunk.Text, &chunk.Title, &chunk.SourceURL, &rawEmbd); err != nil {
			return nil, goerr.Wrap(err, "failed to scan chunk row")
		}
		chunk.ID = model.ChunkID(id)
		chunk.Embedding = decodeEmbedding(rawEmbd)

		candidates = append(candidates, scored{
			chunk: &chunk,
			score: cosineSimilarity(embedding, chunk.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate chunk rows")
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	results := make([]*model.Chunk, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, c.chunk)
	}

	return results, nil
}

func (r *chunkRepository) Count(ctx context.Context, collection string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chunks WHERE collection = ?`, collection).Scan(&count)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count chunks", goerr.V("collection", collection))
	}
	return count, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
