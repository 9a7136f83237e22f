package pgvectorDB

import (
	"context"
	"fmt"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/rag/vectorDB"
	"github.com/akolanti/CampusAI/pkg/logger_i"
	"github.com/pgvector/pgvector-go"
	"github.com/uptrace/bun"
)

type embeddingRow struct {
	bun.BaseModel `bun:"table:material_embeddings,alias:me"`

	Id             int64           `bun:"id,pk,autoincrement"`
	MaterialId     string          `bun:"material_id,notnull"`
	CourseId       string          `bun:"course_id,notnull"`
	Ordinal        int             `bun:"ordinal,notnull"`
	Content        string          `bun:"content,notnull"`
	EmbeddingModel string          `bun:"embedding_model,notnull"`
	Embedding      pgvector.Vector `bun:"embedding,type:vector"`
}

type matchRow struct {
	MaterialId string  `bun:"material_id"`
	Ordinal    int     `bun:"ordinal"`
	Content    string  `bun:"content"`
	Similarity float64 `bun:"similarity"`
}

// Store keeps chunk rows in Postgres with pgvector and reads them through match_material_embeddings.
// The *bun.DB is owned by the caller.
type Store struct {
	db        *bun.DB
	dimension int
	logger    *logger_i.Logger
}

func NewStore(db *bun.DB, dimension int) *Store {
	return &Store{
		db:        db,
		dimension: dimension,
		logger:    logger_i.NewLogger("pgvector"),
	}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements(s.dimension) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("pgvector schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) InsertBatch(ctx context.Context, records []commonModels.ChunkRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]embeddingRow, 0, len(records))
	for _, r := range records {
		if r.Embedding.Dimension() != s.dimension {
			return fmt.Errorf("pgvector insert: chunk %d of %s has %d dimensions, column has %d",
				r.Chunk.Ordinal, r.Chunk.MaterialId, r.Embedding.Dimension(), s.dimension)
		}
		rows = append(rows, embeddingRow{
			MaterialId:     r.Chunk.MaterialId,
			CourseId:       r.Chunk.CourseId,
			Ordinal:        r.Chunk.Ordinal,
			Content:        r.Chunk.Content,
			EmbeddingModel: r.Embedding.Model,
			Embedding:      pgvector.NewVector(r.Embedding.Values),
		})
	}

	_, err := s.db.NewInsert().
		Model(&rows).
		ExcludeColumn("id").
		On("CONFLICT (material_id, ordinal, embedding_model) DO UPDATE").
		Set("content = EXCLUDED.content").
		Set("course_id = EXCLUDED.course_id").
		Set("embedding = EXCLUDED.embedding").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("pgvector insert failed: %w", err)
	}
	return nil
}

func (s *Store) Match(ctx context.Context, query vectorDB.MatchQuery) ([]commonModels.RetrievalMatch, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []matchRow
	err := s.db.NewRaw(
		"SELECT material_id, ordinal, content, similarity FROM match_material_embeddings(?, ?, ?, ?, ?)",
		pgvector.NewVector(query.Embedding), query.Threshold, query.Limit, query.CourseId, query.Model,
	).Scan(ctx, &rows)
	if err != nil {
		s.logger.Error("match_material_embeddings failed", "traceId", ctx.Value(config.TRACE_ID_KEY), "error", err)
		return nil, err
	}

	matches := make([]commonModels.RetrievalMatch, 0, len(rows))
	for _, r := range rows {
		matches = append(matches, commonModels.RetrievalMatch{
			MaterialId: r.MaterialId,
			Ordinal:    r.Ordinal,
			Content:    r.Content,
			Similarity: float32(r.Similarity),
		})
	}
	return vectorDB.FilterAndRank(matches, query.Threshold, query.Limit), nil
}

func (s *Store) DeleteMaterial(ctx context.Context, materialId string) error {
	_, err := s.db.NewDelete().
		Model((*embeddingRow)(nil)).
		Where("material_id = ?", materialId).
		Exec(ctx)
	return err
}
