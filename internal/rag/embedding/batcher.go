package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/metrics"
	"github.com/akolanti/CampusAI/pkg/logger_i"
)

// BatchError reports the batch that could not be embedded. Completed counts the chunks
// embedded by the batches before it.
type BatchError struct {
	Batch     int
	Start     int
	End       int
	Completed int
	Err       error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("embedding batch %d (chunks %d-%d) failed: %v", e.Batch, e.Start, e.End-1, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

type BatcherConfig struct {
	BatchSize       int
	InterBatchDelay time.Duration
	Policy          RetryPolicy
}

// Batcher embeds chunks in fixed-size batches, one batch at a time, pausing between batches
// to stay under the provider's rate limit.
type Batcher struct {
	embedder        DocumentEmbedder
	batchSize       int
	interBatchDelay time.Duration
	policy          RetryPolicy
	logger          *logger_i.Logger
}

func NewBatcher(embedder DocumentEmbedder, cfg BatcherConfig) *Batcher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = config.EmbeddingBatchSize
	}
	return &Batcher{
		embedder:        embedder,
		batchSize:       cfg.BatchSize,
		interBatchDelay: cfg.InterBatchDelay,
		policy:          cfg.Policy,
		logger:          logger_i.NewLogger("embedding_batcher"),
	}
}

// Embed returns exactly one vector per chunk, result[i] for chunks[i].
// On failure it returns the vectors of the batches that completed together with a *BatchError;
// what to do with them is the caller's persistence decision.
func (b *Batcher) Embed(ctx context.Context, chunks []string) ([][]float32, error) {
	log := b.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	result := make([][]float32, 0, len(chunks))
	sleep := b.policy.sleeper()

	for batch, start := 0, 0; start < len(chunks); batch, start = batch+1, start+b.batchSize {
		end := min(start+b.batchSize, len(chunks))

		if batch > 0 && b.interBatchDelay > 0 {
			if err := sleep(ctx, b.interBatchDelay); err != nil {
				return result, &BatchError{Batch: batch, Start: start, End: end, Completed: len(result), Err: err}
			}
		}

		texts := chunks[start:end]
		var vectors [][]float32
		callStart := time.Now()
		attempts, err := b.policy.Do(ctx, func(ctx context.Context) error {
			v, err := b.embedder.EmbedDocuments(ctx, texts)
			if err != nil {
				return err
			}
			if len(v) != len(texts) {
				return fmt.Errorf("%w: got %d for %d", ErrVectorCountMismatch, len(v), len(texts))
			}
			for i := range v {
				if len(v[i]) == 0 {
					return fmt.Errorf("%w at chunk %d", ErrEmptyEmbedding, start+i)
				}
			}
			vectors = v
			return nil
		})
		metrics.CaptureExecutionMetrics("embedding_batch", time.Since(callStart))
		metrics.RecordEmbeddingBatch(attempts, err == nil)

		if err != nil {
			log.Error("Embedding batch failed", "batch", batch, "attempts", attempts, "error", err)
			return result, &BatchError{Batch: batch, Start: start, End: end, Completed: len(result), Err: err}
		}

		log.Debug("Embedded batch", "batch", batch, "size", len(texts), "attempts", attempts)
		result = append(result, vectors...)
	}
	return result, nil
}
