package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	IsProd     bool   `yaml:"is_prod"`
	LogLevel   string `yaml:"log_level"`
	ListenAddr string `yaml:"listen_addr"`
	AuthToken  string `yaml:"auth_token"`

	RateLimitPerSecond float64 `yaml:"rate_limit_per_second"`
	RateLimitBurst     int     `yaml:"rate_limit_burst"`

	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Chat        ChatConfig        `yaml:"chat"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Storage     StorageConfig     `yaml:"storage"`
	Redis       RedisConfig       `yaml:"redis"`
	Database    DatabaseConfig    `yaml:"database"`
}

type EmbeddingConfig struct {
	Provider       string        `yaml:"provider"`
	Model          string        `yaml:"model"`
	Dimensions     int32         `yaml:"dimensions"`
	APIKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url"`
	BatchSize      int           `yaml:"batch_size"`
	BatchDelay     time.Duration `yaml:"batch_delay"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
}

type ChatConfig struct {
	Provider            string        `yaml:"provider"`
	Model               string        `yaml:"model"`
	APIKey              string        `yaml:"api_key"`
	BaseURL             string        `yaml:"base_url"`
	Temperature         float32       `yaml:"temperature"`
	MaxResponseDuration time.Duration `yaml:"max_response_duration"`
}

type IngestConfig struct {
	MaxChunkSize    int    `yaml:"max_chunk_size"`
	InsertBatchSize int    `yaml:"insert_batch_size"`
	PersistPolicy   string `yaml:"persist_policy"`
	TempDir         string `yaml:"temp_dir"`
	MaxUploadBytes  int64  `yaml:"max_upload_bytes"`
}

type RetrievalConfig struct {
	MatchThreshold float32 `yaml:"match_threshold"`
	MatchCount     int     `yaml:"match_count"`
}

type VectorStoreConfig struct {
	Kind           string `yaml:"kind"`
	Collection     string `yaml:"collection"`
	QdrantHost     string `yaml:"qdrant_host"`
	QdrantPort     int    `yaml:"qdrant_port"`
	QdrantAPIKey   string `yaml:"qdrant_api_key"`
	QdrantUseTLS   bool   `yaml:"qdrant_use_tls"`
	QdrantPoolSize uint   `yaml:"qdrant_pool_size"`
	ChromemPath    string `yaml:"chromem_path"`
}

type StorageConfig struct {
	Kind              string `yaml:"kind"`
	LocalDir          string `yaml:"local_dir"`
	PublicBaseURL     string `yaml:"public_base_url"`
	R2AccountId       string `yaml:"r2_account_id"`
	R2AccessKeyId     string `yaml:"r2_access_key_id"`
	R2SecretAccessKey string `yaml:"r2_secret_access_key"`
	R2Bucket          string `yaml:"r2_bucket"`
	R2PublicURL       string `yaml:"r2_public_url"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	IndexTTL time.Duration `yaml:"index_ttl"`
	Fallback bool          `yaml:"fallback"`
}

type DatabaseConfig struct {
	URL   string `yaml:"url"`
	Debug bool   `yaml:"debug"`
}

func Default() *Config {
	return &Config{
		IsProd:             IS_PROD,
		LogLevel:           LOG_LEVEL,
		ListenAddr:         ServerListenAddr,
		RateLimitPerSecond: RATE_LIMIT_PER_SECOND,
		RateLimitBurst:     BURST_RATE_LIMIT_PER_SECOND,
		Embedding: EmbeddingConfig{
			Provider:       EmbeddingProvider,
			Model:          GoogleEmbeddingModel,
			Dimensions:     EmbeddingOutputDimensionality,
			BatchSize:      EmbeddingBatchSize,
			BatchDelay:     EmbeddingBatchDelay,
			MaxRetries:     EmbeddingMaxRetries,
			RetryBaseDelay: EmbeddingRetryBaseDelay,
		},
		Chat: ChatConfig{
			Provider:            ChatProvider,
			Model:               GeminiModelName,
			Temperature:         ModelTemperature,
			MaxResponseDuration: MaxResponseDuration,
		},
		Ingest: IngestConfig{
			MaxChunkSize:    MaxChunkSize,
			InsertBatchSize: InsertBatchSize,
			PersistPolicy:   PersistPolicy,
			TempDir:         TempDirName,
			MaxUploadBytes:  MaxUploadBytes,
		},
		Retrieval: RetrievalConfig{
			MatchThreshold: MatchThreshold,
			MatchCount:     MatchCount,
		},
		VectorStore: VectorStoreConfig{
			Kind:           VectorStoreKind,
			Collection:     EmbeddingCollectionName,
			QdrantHost:     QdrantHost,
			QdrantPort:     QdrantGrpcPort,
			QdrantUseTLS:   QdrantUseTLS,
			QdrantPoolSize: QdrantPoolSize,
		},
		Storage: StorageConfig{
			Kind:     StorageKind,
			LocalDir: LocalStorageDir,
		},
		Redis: RedisConfig{
			Addr:     RedisAddr,
			DB:       RedisIndexStore,
			IndexTTL: RedisIndexStoreTTL,
			Fallback: FALLBACK_REDIS_TO_INTERNALSTORE,
		},
	}
}

// Load builds the configuration from defaults, then an optional YAML file (CONFIG_FILE),
// then environment variables. A .env file in the working directory is read first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	return LoadWith(os.LookupEnv)
}

func LoadWith(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path, ok := lookup("CONFIG_FILE"); ok && path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	e := envReader{lookup: lookup}

	e.bool("IS_PROD", &c.IsProd)
	e.str("LOG_LEVEL", &c.LogLevel)
	e.str("LISTEN_ADDR", &c.ListenAddr)
	e.str("AUTH_TOKEN", &c.AuthToken)
	e.float64("RATE_LIMIT_PER_SECOND", &c.RateLimitPerSecond)
	e.int("RATE_LIMIT_BURST", &c.RateLimitBurst)

	e.str("EMBEDDING_PROVIDER", &c.Embedding.Provider)
	e.str("EMBEDDING_MODEL", &c.Embedding.Model)
	e.int32("EMBEDDING_DIMENSIONS", &c.Embedding.Dimensions)
	e.str("EMBEDDING_API_KEY", &c.Embedding.APIKey)
	e.str("EMBEDDING_BASE_URL", &c.Embedding.BaseURL)
	e.int("EMBEDDING_BATCH_SIZE", &c.Embedding.BatchSize)
	e.duration("EMBEDDING_BATCH_DELAY", &c.Embedding.BatchDelay)
	e.int("EMBEDDING_MAX_RETRIES", &c.Embedding.MaxRetries)
	e.duration("EMBEDDING_RETRY_BASE_DELAY", &c.Embedding.RetryBaseDelay)

	e.str("CHAT_PROVIDER", &c.Chat.Provider)
	e.str("CHAT_MODEL", &c.Chat.Model)
	e.str("CHAT_API_KEY", &c.Chat.APIKey)
	e.str("CHAT_BASE_URL", &c.Chat.BaseURL)
	e.float32("CHAT_TEMPERATURE", &c.Chat.Temperature)
	e.duration("MAX_RESPONSE_DURATION", &c.Chat.MaxResponseDuration)

	// one key serves both google clients unless set separately
	if key, ok := lookup("GOOGLE_API_KEY"); ok && key != "" {
		if c.Embedding.APIKey == "" {
			c.Embedding.APIKey = key
		}
		if c.Chat.APIKey == "" {
			c.Chat.APIKey = key
		}
	}

	e.int("MAX_CHUNK_SIZE", &c.Ingest.MaxChunkSize)
	e.int("INSERT_BATCH_SIZE", &c.Ingest.InsertBatchSize)
	e.str("PERSIST_POLICY", &c.Ingest.PersistPolicy)
	e.str("UPLOAD_TEMP_DIR", &c.Ingest.TempDir)
	e.int64("MAX_UPLOAD_BYTES", &c.Ingest.MaxUploadBytes)

	e.float32("MATCH_THRESHOLD", &c.Retrieval.MatchThreshold)
	e.int("MATCH_COUNT", &c.Retrieval.MatchCount)

	e.str("VECTOR_STORE", &c.VectorStore.Kind)
	e.str("VECTOR_COLLECTION", &c.VectorStore.Collection)
	e.str("QDRANT_HOST", &c.VectorStore.QdrantHost)
	e.int("QDRANT_PORT", &c.VectorStore.QdrantPort)
	e.str("QDRANT_API_KEY", &c.VectorStore.QdrantAPIKey)
	e.bool("QDRANT_USE_TLS", &c.VectorStore.QdrantUseTLS)
	e.str("CHROMEM_PATH", &c.VectorStore.ChromemPath)

	e.str("STORAGE", &c.Storage.Kind)
	e.str("STORAGE_LOCAL_DIR", &c.Storage.LocalDir)
	e.str("STORAGE_PUBLIC_BASE_URL", &c.Storage.PublicBaseURL)
	e.str("R2_ACCOUNT_ID", &c.Storage.R2AccountId)
	e.str("R2_ACCESS_KEY_ID", &c.Storage.R2AccessKeyId)
	e.str("R2_SECRET_ACCESS_KEY", &c.Storage.R2SecretAccessKey)
	e.str("R2_BUCKET_NAME", &c.Storage.R2Bucket)
	e.str("R2_PUBLIC_URL", &c.Storage.R2PublicURL)

	e.str("REDIS_ADDR", &c.Redis.Addr)
	e.str("REDIS_PASSWORD", &c.Redis.Password)
	e.int("REDIS_DB", &c.Redis.DB)
	e.duration("REDIS_INDEX_TTL", &c.Redis.IndexTTL)
	e.bool("REDIS_FALLBACK", &c.Redis.Fallback)

	e.str("DATABASE_URL", &c.Database.URL)
	e.bool("DATABASE_DEBUG", &c.Database.Debug)

	return errors.Join(e.errs...)
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(oneOf(c.Embedding.Provider, ProviderGoogle, ProviderOpenAI, ProviderOllama), "unknown embedding provider %q", c.Embedding.Provider)
	check(oneOf(c.Chat.Provider, ProviderGoogle, ProviderOpenAI, ProviderOllama), "unknown chat provider %q", c.Chat.Provider)
	check(c.Embedding.Model != "", "embedding model is required")
	check(c.Chat.Model != "", "chat model is required")
	check(c.Embedding.Dimensions > 0, "embedding dimensions must be positive, got %d", c.Embedding.Dimensions)
	check(c.Embedding.BatchSize > 0, "embedding batch size must be positive, got %d", c.Embedding.BatchSize)
	check(c.Embedding.BatchDelay >= 0, "embedding batch delay must not be negative")
	check(c.Embedding.MaxRetries >= 1, "embedding max retries must be at least 1, got %d", c.Embedding.MaxRetries)
	check(c.Embedding.RetryBaseDelay >= 0, "embedding retry base delay must not be negative")
	check(c.Chat.MaxResponseDuration > 0, "max response duration must be positive")
	check(c.Ingest.MaxChunkSize > 0, "max chunk size must be positive, got %d", c.Ingest.MaxChunkSize)
	check(c.Ingest.InsertBatchSize > 0, "insert batch size must be positive, got %d", c.Ingest.InsertBatchSize)
	check(oneOf(c.Ingest.PersistPolicy, PersistAllOrNothing, PersistBestEffort), "unknown persist policy %q", c.Ingest.PersistPolicy)
	check(c.Ingest.MaxUploadBytes > 0, "max upload bytes must be positive")
	check(c.Retrieval.MatchThreshold >= -1 && c.Retrieval.MatchThreshold <= 1, "match threshold must be within [-1, 1], got %v", c.Retrieval.MatchThreshold)
	check(c.Retrieval.MatchCount > 0, "match count must be positive, got %d", c.Retrieval.MatchCount)
	check(oneOf(c.VectorStore.Kind, VectorStoreQdrant, VectorStorePgvector, VectorStoreMemory), "unknown vector store %q", c.VectorStore.Kind)
	check(c.VectorStore.Kind != VectorStorePgvector || c.Database.URL != "", "vector store pgvector requires DATABASE_URL")
	check(oneOf(c.Storage.Kind, StorageLocal, StorageR2), "unknown storage %q", c.Storage.Kind)
	check(c.Storage.Kind != StorageR2 || (c.Storage.R2AccountId != "" && c.Storage.R2Bucket != ""), "storage r2 requires R2_ACCOUNT_ID and R2_BUCKET_NAME")

	return errors.Join(errs...)
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *envReader) get(key string) (string, bool) {
	v, ok := e.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *envReader) fail(key, value string, err error) {
	e.errs = append(e.errs, fmt.Errorf("invalid %s=%q: %w", key, value, err))
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envReader) bool(key string, dst *bool) {
	if v, ok := e.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (e *envReader) int(key string, dst *int) {
	if v, ok := e.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) int32(key string, dst *int32) {
	if v, ok := e.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = int32(n)
	}
}

func (e *envReader) int64(key string, dst *int64) {
	if v, ok := e.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) float32(key string, dst *float32) {
	if v, ok := e.get(key); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = float32(f)
	}
}

func (e *envReader) float64(key string, dst *float64) {
	if v, ok := e.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = f
	}
}

// duration accepts Go duration strings ("2s") or plain milliseconds ("2000").
func (e *envReader) duration(key string, dst *time.Duration) {
	if v, ok := e.get(key); ok {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = time.Duration(ms) * time.Millisecond
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = d
	}
}
