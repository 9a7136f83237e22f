package rag_test

import (
	"context"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/rag/llm"
	"github.com/akolanti/CampusAI/internal/rag/prompt"
	"github.com/akolanti/CampusAI/internal/rag/vectorDB"
)

// MockVectorDB implements vectorDB.Reader
type MockVectorDB struct {
	OnMatch func(ctx context.Context, q vectorDB.MatchQuery) ([]commonModels.RetrievalMatch, error)
	Queries []vectorDB.MatchQuery
}

func (m *MockVectorDB) Match(ctx context.Context, q vectorDB.MatchQuery) ([]commonModels.RetrievalMatch, error) {
	m.Queries = append(m.Queries, q)
	if m.OnMatch != nil {
		return m.OnMatch(ctx, q)
	}
	return []commonModels.RetrievalMatch{{Content: "default context", Similarity: 0.9}}, nil
}

type MockEmbedder struct {
	OnEmbedQuery func(ctx context.Context, text string) ([]float32, error)
	Calls        int
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	m.Calls++
	if m.OnEmbedQuery != nil {
		return m.OnEmbedQuery(ctx, query)
	}
	return []float32{0.1, 0.2}, nil
}

func (m *MockEmbedder) Model() string { return "mock-embedding" }

// MockLLM implements llm.Streamer
type MockLLM struct {
	OnStream func(ctx context.Context, p prompt.Prompt, onDelta llm.DeltaFunc) error
	Prompts  []prompt.Prompt
}

func (m *MockLLM) Stream(ctx context.Context, p prompt.Prompt, onDelta llm.DeltaFunc) error {
	m.Prompts = append(m.Prompts, p)
	if m.OnStream != nil {
		return m.OnStream(ctx, p, onDelta)
	}
	for _, d := range []string{"mocked ", "llm ", "response"} {
		if err := onDelta(d); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockLLM) Model() string { return "mock-llm" }
