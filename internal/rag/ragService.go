package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/CampusAI/internal/config"
	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/rag/llm"
	"github.com/akolanti/CampusAI/internal/rag/prompt"
	"github.com/akolanti/CampusAI/internal/rag/vectorDB"
	"github.com/akolanti/CampusAI/pkg/logger_i"
)

// QueryEmbedder is the part of embedding.Embedder the chat path needs.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
	Model() string
}

// Service answers course questions. Handlers, the MCP tool and the CLI only see this contract.
type Service interface {
	Answer(ctx context.Context, req ChatRequest, onDelta llm.DeltaFunc) (AnswerSummary, error)
	Search(ctx context.Context, courseId, question string) ([]commonModels.RetrievalMatch, error)
}

type ChatRequest struct {
	CourseId string
	Messages []commonModels.ChatTurn
}

// Question is the text of the latest user turn.
func (r ChatRequest) Question() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == commonModels.RoleUser {
			return strings.TrimSpace(r.Messages[i].Text)
		}
	}
	return ""
}

type AnswerSummary struct {
	Matches  int
	Fallback bool
	Model    string
}

type Options struct {
	Embedder            QueryEmbedder
	Reader              vectorDB.Reader
	Streamer            llm.Streamer
	MatchThreshold      float32
	MatchCount          int
	MaxResponseDuration time.Duration
}

type service struct {
	embedder    QueryEmbedder
	vectorDB    vectorDB.Reader
	llmProvider llm.Streamer
	threshold   float32
	count       int
	maxDuration time.Duration
	logger      *logger_i.Logger
}

func NewService(opts Options) Service {
	if opts.MatchCount <= 0 {
		opts.MatchCount = config.MatchCount
	}
	if opts.MaxResponseDuration <= 0 {
		opts.MaxResponseDuration = config.MaxResponseDuration
	}
	return &service{
		embedder:    opts.Embedder,
		vectorDB:    opts.Reader,
		llmProvider: opts.Streamer,
		threshold:   opts.MatchThreshold,
		count:       opts.MatchCount,
		maxDuration: opts.MaxResponseDuration,
		logger:      logger_i.NewLogger("rag_service"),
	}
}

// Answer retrieves course context for the latest user message and streams the model's answer.
// Retrieval failures degrade to an answer without course context; generation failures are returned.
func (s *service) Answer(ctx context.Context, req ChatRequest, onDelta llm.DeltaFunc) (AnswerSummary, error) {
	question := req.Question()
	if err := validate(req.CourseId, question); err != nil {
		return AnswerSummary{}, err
	}
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "courseId", req.CourseId)

	processContext, cancel := context.WithTimeout(ctx, s.maxDuration)
	defer cancel()

	summary := AnswerSummary{Model: s.llmProvider.Model()}
	matches, err := s.retrieve(processContext, log, req.CourseId, question)
	if err != nil {
		if errors.Is(processContext.Err(), context.Canceled) {
			return summary, processContext.Err()
		}
		log.Error("Retrieval failed, answering without course context", "error", err)
		summary.Fallback = true
	}
	summary.Matches = len(matches)

	p := prompt.Assemble(matches, req.Messages)
	if err := s.executeLLMStep(processContext, log, p, onDelta); err != nil {
		return summary, fmt.Errorf("generating answer: %w", err)
	}
	return summary, nil
}

func (s *service) Search(ctx context.Context, courseId, question string) ([]commonModels.RetrievalMatch, error) {
	question = strings.TrimSpace(question)
	if err := validate(courseId, question); err != nil {
		return nil, err
	}
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "courseId", courseId)
	return s.retrieve(ctx, log, courseId, question)
}

func (s *service) retrieve(ctx context.Context, log *logger_i.Logger, courseId, question string) ([]commonModels.RetrievalMatch, error) {
	queryEmbedding, err := s.executeEmbeddingStep(ctx, log, question)
	if err != nil {
		return nil, fallback("embedding", err)
	}
	matches, err := s.executeVectorSearchStep(ctx, log, vectorDB.MatchQuery{
		Embedding: queryEmbedding,
		Model:     s.embedder.Model(),
		CourseId:  courseId,
		Threshold: s.threshold,
		Limit:     s.count,
	})
	if err != nil {
		return nil, fallback("vector_search", err)
	}
	return matches, nil
}

func validate(courseId, question string) error {
	switch {
	case strings.TrimSpace(courseId) == "":
		return fmt.Errorf("%w: course is required", commonModels.ErrInvalidInput)
	case question == "":
		return fmt.Errorf("%w: question is empty", commonModels.ErrInvalidInput)
	}
	return nil
}
