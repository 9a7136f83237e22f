package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/customHttpClient"
	"github.com/akolanti/CampusAI/internal/data/objectStore"
	"github.com/akolanti/CampusAI/internal/data/pgStore"
	"github.com/akolanti/CampusAI/internal/data/redisStore"
	"github.com/akolanti/CampusAI/internal/data/store"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/domain/indexModel"
	"github.com/akolanti/CampusAI/internal/handlers"
	"github.com/akolanti/CampusAI/internal/material"
	"github.com/akolanti/CampusAI/internal/mcpServer"
	"github.com/akolanti/CampusAI/internal/middleware"
	"github.com/akolanti/CampusAI/internal/rag"
	"github.com/akolanti/CampusAI/internal/rag/embedding"
	"github.com/akolanti/CampusAI/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/CampusAI/internal/rag/embedding/ollamaEmbedding"
	"github.com/akolanti/CampusAI/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/CampusAI/internal/rag/ingest"
	"github.com/akolanti/CampusAI/internal/rag/llm"
	"github.com/akolanti/CampusAI/internal/rag/llm/gemini"
	"github.com/akolanti/CampusAI/internal/rag/llm/ollamaLLM"
	"github.com/akolanti/CampusAI/internal/rag/llm/openaiLLM"
	"github.com/akolanti/CampusAI/internal/rag/vectorDB"
	"github.com/akolanti/CampusAI/internal/rag/vectorDB/chromemDB"
	"github.com/akolanti/CampusAI/internal/rag/vectorDB/pgvectorDB"
	"github.com/akolanti/CampusAI/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/CampusAI/internal/server"
	"github.com/akolanti/CampusAI/pkg/logger_i"
	"github.com/uptrace/bun"
)

const Version = "1.0.0"

// App holds every long-lived client. Build creates them, Close releases them in reverse order.
type App struct {
	Config    *config.Config
	Materials *material.Service
	Tutor     rag.Service
	Router    http.Handler

	closers []closer
	logger  *logger_i.Logger
}

type closer struct {
	name  string
	close func() error
}

func (a *App) onClose(name string, fn func() error) {
	a.closers = append(a.closers, closer{name: name, close: fn})
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.close(); err != nil {
			a.logger.Warn("Closing dependency failed", "dependency", c.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Build wires the whole service from configuration. On error everything created so far is closed.
func Build(ctx context.Context, cfg *config.Config) (app *App, err error) {
	app = &App{Config: cfg, logger: logger_i.NewLogger("bootstrap")}
	defer func() {
		if err != nil {
			_ = app.Close()
			app = nil
		}
	}()

	httpClient := customHttpClient.NewClient(config.DependencyTimeout)
	streamClient := customHttpClient.NewStreamingClient(config.DependencyTimeout)

	reports := app.indexStore(ctx, cfg.Redis)

	var db *bun.DB
	if cfg.Database.URL != "" {
		db, err = pgStore.Open(ctx, cfg.Database.URL, cfg.Database.Debug)
		if err != nil {
			return nil, err
		}
		app.onClose("postgres", db.Close)
	}

	materials, err := app.materialRepository(ctx, db)
	if err != nil {
		return nil, err
	}

	objects, err := newObjectStore(cfg.Storage)
	if err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(ctx, cfg.Embedding, httpClient)
	if err != nil {
		return nil, err
	}

	vectors, err := newVectorStore(cfg, db)
	if err != nil {
		return nil, err
	}
	app.onClose("vector store", vectors.Close)
	if err = vectors.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("vector store schema: %w", err)
	}

	streamer, err := newStreamer(ctx, cfg.Chat, streamClient)
	if err != nil {
		return nil, err
	}

	pipeline := ingest.NewPipeline(ingest.Options{
		Extractor:       ingest.NewExtractor(config.PageExtractionTimeout),
		Chunker:         ingest.NewChunker(cfg.Ingest.MaxChunkSize),
		Embedder:        embedding.NewBatcher(embedder, batcherConfig(cfg.Embedding, embedder, app.logger)),
		EmbeddingModel:  embedder.Model(),
		Writer:          vectors,
		Reports:         reports,
		InsertBatchSize: cfg.Ingest.InsertBatchSize,
		Policy:          indexModel.PersistPolicy(cfg.Ingest.PersistPolicy),
	})

	app.Materials = material.InitMaterialService(material.ServiceConfig{
		Materials: materials,
		Objects:   objects,
		Indexer:   pipeline,
		Reports:   reports,
		Vectors:   vectors,
	})

	app.Tutor = rag.NewService(rag.Options{
		Embedder:            embedder,
		Reader:              vectors,
		Streamer:            streamer,
		MatchThreshold:      cfg.Retrieval.MatchThreshold,
		MatchCount:          cfg.Retrieval.MatchCount,
		MaxResponseDuration: cfg.Chat.MaxResponseDuration,
	})

	handler := handlers.NewHandler(handlers.HandlerConfig{
		Materials:           app.Materials,
		Tutor:               app.Tutor,
		TempDir:             cfg.Ingest.TempDir,
		MaxUploadBytes:      cfg.Ingest.MaxUploadBytes,
		MaxResponseDuration: cfg.Chat.MaxResponseDuration,
	})

	app.Router = server.NewRouter(server.Routes{
		Handler: handler,
		Chain: middleware.NewChain(middleware.Config{
			AuthToken:          cfg.AuthToken,
			RateLimitPerSecond: cfg.RateLimitPerSecond,
			RateLimitBurst:     cfg.RateLimitBurst,
		}),
		MCP: mcpServer.Handler(mcpServer.NewServer(app.Tutor, Version)),
	})

	app.logger.Info("Services ready",
		"embedding", embedder.Model(),
		"chat", streamer.Model(),
		"vectorStore", cfg.VectorStore.Kind,
		"storage", cfg.Storage.Kind,
		"persistPolicy", cfg.Ingest.PersistPolicy)
	return app, nil
}

func (a *App) indexStore(ctx context.Context, cfg config.RedisConfig) indexModel.IndexStore {
	redisClient, err := redisStore.NewStore(ctx, redisStore.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	if err != nil {
		if !cfg.Fallback {
			a.logger.Error("Redis is offline and fallback is disabled, index reports are kept in memory anyway", "error", err)
		} else {
			a.logger.Warn("Redis is offline, using the in-memory index store", "error", err)
		}
		return store.InitInMemoryIndexStore()
	}
	a.onClose("redis", redisClient.Close)
	return store.NewRedisIndexStore(redisClient, cfg.IndexTTL)
}

func (a *App) materialRepository(ctx context.Context, db *bun.DB) (commonModels.MaterialRepository, error) {
	if db == nil {
		a.logger.Warn("DATABASE_URL is not set, materials are kept in memory")
		return store.InitInMemoryMaterialStore(), nil
	}
	repo := pgStore.NewMaterialRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func newObjectStore(cfg config.StorageConfig) (objectStore.ObjectStore, error) {
	switch cfg.Kind {
	case config.StorageR2:
		return objectStore.NewR2Store(objectStore.R2Options{
			AccountId:       cfg.R2AccountId,
			AccessKeyId:     cfg.R2AccessKeyId,
			SecretAccessKey: cfg.R2SecretAccessKey,
			Bucket:          cfg.R2Bucket,
			PublicURL:       cfg.R2PublicURL,
		}), nil
	default:
		return objectStore.NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	}
}

func newEmbedder(ctx context.Context, cfg config.EmbeddingConfig, httpClient *http.Client) (embedding.Embedder, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openaiEmbedding.NewClient(openaiEmbedding.Options{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			HTTPClient: httpClient,
		}), nil
	case config.ProviderOllama:
		return ollamaEmbedding.NewClient(ollamaEmbedding.Options{ServerURL: cfg.BaseURL, Model: cfg.Model})
	default:
		return googleEmbedding.NewClient(ctx, googleEmbedding.Options{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			HTTPClient: httpClient,
		})
	}
}

func batcherConfig(cfg config.EmbeddingConfig, embedder embedding.Embedder, logger *logger_i.Logger) embedding.BatcherConfig {
	policy := embedding.RetryPolicy{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   cfg.RetryBaseDelay,
		OnRetry: func(attempt int, wait time.Duration, err error) {
			logger.Warn("Embedding batch failed, retrying", "attempt", attempt, "wait", wait, "error", err)
		},
	}
	if classifier, ok := embedder.(embedding.RetryClassifier); ok {
		policy.Retryable = classifier.IsRetryable
	}
	return embedding.BatcherConfig{
		BatchSize:       cfg.BatchSize,
		InterBatchDelay: cfg.BatchDelay,
		Policy:          policy,
	}
}

func newVectorStore(cfg *config.Config, db *bun.DB) (vectorDB.VectorStore, error) {
	switch cfg.VectorStore.Kind {
	case config.VectorStorePgvector:
		if db == nil {
			return nil, errors.New("pgvector store needs a database connection")
		}
		return pgvectorDB.NewStore(db, int(cfg.Embedding.Dimensions)), nil
	case config.VectorStoreMemory:
		return chromemDB.NewStore(cfg.VectorStore.ChromemPath, cfg.VectorStore.Collection)
	default:
		return qdrantDB.NewStore(qdrantDB.Options{
			Host:       cfg.VectorStore.QdrantHost,
			Port:       cfg.VectorStore.QdrantPort,
			APIKey:     cfg.VectorStore.QdrantAPIKey,
			UseTLS:     cfg.VectorStore.QdrantUseTLS,
			PoolSize:   cfg.VectorStore.QdrantPoolSize,
			Collection: cfg.VectorStore.Collection,
			Dimensions: uint64(cfg.Embedding.Dimensions),
		})
	}
}

func newStreamer(ctx context.Context, cfg config.ChatConfig, httpClient *http.Client) (llm.Streamer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openaiLLM.NewClient(openaiLLM.Options{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: float64(cfg.Temperature),
			HTTPClient:  httpClient,
		}), nil
	case config.ProviderOllama:
		return ollamaLLM.NewClient(ollamaLLM.Options{
			ServerURL:   cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: float64(cfg.Temperature),
			HTTPClient:  httpClient,
		})
	default:
		return gemini.NewClient(ctx, gemini.Options{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			HTTPClient:  httpClient,
		})
	}
}
