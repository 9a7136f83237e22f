package qdrantDB

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/rag/vectorDB"
	"github.com/akolanti/CampusAI/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
)

type Options struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	PoolSize   uint
	Collection string
	Dimensions uint64
}

type Store struct {
	client     *qdrant.Client
	collection string
	dimension  uint64
	logger     *logger_i.Logger
}

func NewStore(opts Options) (*Store, error) {
	if opts.Collection == "" {
		return nil, errors.New("empty collection name")
	}
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     opts.Host,
		Port:     opts.Port,
		APIKey:   opts.APIKey,
		UseTLS:   opts.UseTLS,
		PoolSize: opts.PoolSize,
		GrpcOptions: []grpc.DialOption{grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    config.QdrantKeepAliveTimeout,
			Timeout: config.QdrantKeepAliveTimeout,
		})},
	})
	if err != nil {
		return nil, fmt.Errorf("could not instantiate qdrant client: %w", err)
	}

	return &Store{
		client:     client,
		collection: opts.Collection,
		dimension:  opts.Dimensions,
		logger:     logger_i.NewLogger("Qdrant"),
	}, nil
}

func (db *Store) Close() error {
	db.logger.Info("Shutting down Qdrant")
	return db.client.Close()
}

// EnsureSchema creates the cosine collection and keyword indexes on the filter fields.
func (db *Store) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, config.QdrantConnectionTimeout)
	defer cancel()

	exists, err := db.client.CollectionExists(ctx, db.collection)
	if err != nil {
		return err
	}
	if !exists {
		err = db.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: db.collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     db.dimension,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("create collection %s: %w", db.collection, err)
		}
		db.logger.Info("Created collection", "collection", db.collection, "dimension", db.dimension)
	}

	for _, field := range indexedFields {
		_, err := db.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: db.collection,
			FieldName:      field,
			FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
			Wait:           qdrant.PtrOf(true),
		})
		if err != nil {
			db.logger.Warn("Could not create payload index", "field", field, "error", err)
		}
	}
	return nil
}

func (db *Store) InsertBatch(ctx context.Context, records []commonModels.ChunkRecord) error {
	if len(records) == 0 {
		return nil
	}
	points := make([]*qdrant.PointStruct, 0, len(records))
	for _, record := range records {
		points = append(points, toPoint(record))
	}

	_, err := db.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: db.collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (db *Store) Match(ctx context.Context, query vectorDB.MatchQuery) ([]commonModels.RetrievalMatch, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	log := db.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "courseId", query.CourseId)

	result, err := db.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: db.collection,
		Query:          qdrant.NewQuery(query.Embedding...),
		Filter:         courseFilter(query.CourseId, query.Model),
		ScoreThreshold: qdrant.PtrOf(query.Threshold),
		Limit:          qdrant.PtrOf(uint64(query.Limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		log.Error("Error querying Qdrant", "error", err)
		return nil, err
	}

	matches := make([]commonModels.RetrievalMatch, 0, len(result))
	for _, hit := range result {
		matches = append(matches, fromScoredPoint(hit))
	}
	log.Debug("Found matches", "count", len(matches))
	return vectorDB.FilterAndRank(matches, query.Threshold, query.Limit), nil
}

func (db *Store) DeleteMaterial(ctx context.Context, materialId string) error {
	_, err := db.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: db.collection,
		Points:         qdrant.NewPointsSelectorFilter(materialFilter(materialId)),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant delete failed: %w", err)
	}
	return nil
}
