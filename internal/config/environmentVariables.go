package config

import (
	"time"
)

// Defaults. Every value below can be overridden from the config file or the environment, see Load.
const (
	IS_PROD                         = false
	LOG_LEVEL                       = "debug"
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an internal in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	//serverTimeouts
	ReadTimeout            = 15 * time.Second
	WriteTimeout           = 60 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//uploads, matches the 50mb body limit of the web app
	MaxUploadBytes int64 = 50 << 20
	TempDirName          = "temporary_data"

	//extraction and chunking
	PageExtractionTimeout = 10 * time.Second
	MaxChunkSize          = 1500

	//embeddings
	EmbeddingProvider                   = ProviderGoogle
	GoogleEmbeddingModel                = "gemini-embedding-001"
	EmbeddingOutputDimensionality int32 = 768
	EmbeddingBatchSize                  = 20
	EmbeddingBatchDelay                 = 2 * time.Second //throttle between batches against provider rate limits
	EmbeddingMaxRetries                 = 3               //attempts per batch, including the first
	EmbeddingRetryBaseDelay             = 1 * time.Second
	InsertBatchSize                     = 50
	PersistPolicy                       = PersistAllOrNothing

	//llm
	ChatProvider             = ProviderGoogle
	GeminiModelName          = "gemini-2.5-flash"
	ModelTemperature float32 = 0.7
	MaxResponseDuration      = 30 * time.Second

	//retrieval
	MatchThreshold float32 = 0.3
	MatchCount             = 5

	//vectorDB
	VectorStoreKind         = VectorStoreQdrant
	EmbeddingCollectionName = "material_embeddings"
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = "localhost"
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false //set for https
	QdrantPoolSize          = 1     //2-5 is preferred for prod according to documentation
	QdrantKeepAliveTimeout  = 30 * time.Second

	//object storage
	StorageKind     = StorageLocal
	LocalStorageDir = "material_store"

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second
	DependencyTimeout   = 60 * time.Second

	//redis
	RedisAddr = "127.0.0.1:6379"

	//redis has 16 DB we can use
	RedisIndexStore = 0

	//redis timeouts
	RedisIndexStoreTTL = 7 * 24 * time.Hour
)

const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	VectorStoreQdrant   = "qdrant"
	VectorStorePgvector = "pgvector"
	VectorStoreMemory   = "memory"

	StorageLocal = "local"
	StorageR2    = "r2"

	PersistAllOrNothing = "all_or_nothing"
	PersistBestEffort   = "best_effort"
)
