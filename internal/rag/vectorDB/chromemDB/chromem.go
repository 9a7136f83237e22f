package chromemDB

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/rag/vectorDB"
	"github.com/akolanti/CampusAI/pkg/logger_i"
	"github.com/philippgille/chromem-go"
)

const (
	metaCourseId       = "course_id"
	metaMaterialId     = "material_id"
	metaOrdinal        = "ordinal"
	metaEmbeddingModel = "embedding_model"
)

var errNoEmbeddingFunc = errors.New("chromem store only accepts precomputed embeddings")

// Store is an in-process vector store. With an empty path it lives in memory only.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	logger     *logger_i.Logger
}

func NewStore(path string, collectionName string) (*Store, error) {
	var db *chromem.DB
	if path == "" {
		db = chromem.NewDB()
	} else {
		var err error
		db, err = chromem.NewPersistentDB(path, false)
		if err != nil {
			return nil, fmt.Errorf("open chromem db at %s: %w", path, err)
		}
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, refuseEmbedding)
	if err != nil {
		return nil, fmt.Errorf("create chromem collection: %w", err)
	}

	return &Store{
		db:         db,
		collection: collection,
		logger:     logger_i.NewLogger("chromem"),
	}, nil
}

func refuseEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, errNoEmbeddingFunc
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

func documentId(chunk commonModels.TextChunk, model string) string {
	return fmt.Sprintf("%s:%d:%s", chunk.MaterialId, chunk.Ordinal, model)
}

func (s *Store) InsertBatch(ctx context.Context, records []commonModels.ChunkRecord) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]chromem.Document, 0, len(records))
	for _, r := range records {
		docs = append(docs, chromem.Document{
			ID: documentId(r.Chunk, r.Embedding.Model),
			Metadata: map[string]string{
				metaCourseId:       r.Chunk.CourseId,
				metaMaterialId:     r.Chunk.MaterialId,
				metaOrdinal:        strconv.Itoa(r.Chunk.Ordinal),
				metaEmbeddingModel: r.Embedding.Model,
			},
			Embedding: r.Embedding.Values,
			Content:   r.Chunk.Content,
		})
	}
	return s.collection.AddDocuments(ctx, docs, runtime.NumCPU())
}

func (s *Store) Match(ctx context.Context, query vectorDB.MatchQuery) ([]commonModels.RetrievalMatch, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	count := s.collection.Count()
	if count == 0 {
		return []commonModels.RetrievalMatch{}, nil
	}

	where := map[string]string{metaCourseId: query.CourseId}
	if query.Model != "" {
		where[metaEmbeddingModel] = query.Model
	}

	results, err := s.collection.QueryEmbedding(ctx, query.Embedding, min(query.Limit, count), where, nil)
	if err != nil {
		s.logger.Error("chromem query failed", "traceId", ctx.Value(config.TRACE_ID_KEY), "error", err)
		return nil, err
	}

	matches := make([]commonModels.RetrievalMatch, 0, len(results))
	for _, r := range results {
		ordinal, _ := strconv.Atoi(r.Metadata[metaOrdinal])
		matches = append(matches, commonModels.RetrievalMatch{
			MaterialId: r.Metadata[metaMaterialId],
			Ordinal:    ordinal,
			Content:    r.Content,
			Similarity: r.Similarity,
		})
	}
	return vectorDB.FilterAndRank(matches, query.Threshold, query.Limit), nil
}

func (s *Store) DeleteMaterial(ctx context.Context, materialId string) error {
	return s.collection.Delete(ctx, map[string]string{metaMaterialId: materialId}, nil)
}
