package rag

import (
	"context"
	"time"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/metrics"
	"github.com/akolanti/CampusAI/internal/rag/llm"
	"github.com/akolanti/CampusAI/internal/rag/prompt"
	"github.com/akolanti/CampusAI/internal/rag/vectorDB"
	"github.com/akolanti/CampusAI/pkg/logger_i"
)

func fallback(cause string, err error) error {
	metrics.IncrementChatFallback(cause)
	return err
}

func (s *service) executeEmbeddingStep(ctx context.Context, log *logger_i.Logger, question string) ([]float32, error) {
	log.Debug("Answer", "step", "embedding")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("query_embedding", time.Since(start)) }()

	return s.embedder.EmbedQuery(ctx, question)
}

func (s *service) executeVectorSearchStep(ctx context.Context, log *logger_i.Logger, query vectorDB.MatchQuery) ([]commonModels.RetrievalMatch, error) {
	log.Debug("Answer", "step", "vector_search", "threshold", query.Threshold, "limit", query.Limit)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	matches, err := s.vectorDB.Match(ctx, query)
	if err == nil {
		metrics.ObserveRetrievalMatches(len(matches))
	}
	return matches, err
}

func (s *service) executeLLMStep(ctx context.Context, log *logger_i.Logger, p prompt.Prompt, onDelta llm.DeltaFunc) error {
	log.Debug("Answer", "step", "llm_generation", "messages", len(p.Messages))

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Stream(ctx, p, onDelta)
}
